package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/mmrzaf/rowgen/internal/domain"
)

// HashRequest produces a stable fingerprint of a validated generation
// request for the history store. Field order is significant (it is the
// output column order); attribute keys inside each field are not, since
// map marshalling sorts them.
func HashRequest(req *domain.GenerationRequest) (string, error) {
	data, err := json.Marshal(canonicalizeRequest(req))
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalizeRequest(req *domain.GenerationRequest) map[string]any {
	fields := make([]map[string]any, len(req.Fields))
	for i, fd := range req.Fields {
		fields[i] = canonicalizeField(fd)
	}

	result := map[string]any{
		"fields": fields,
		"count":  req.Count,
	}
	if req.Seed != nil {
		result["seed"] = *req.Seed
	}
	return result
}

func canonicalizeField(fd domain.FieldDescriptor) map[string]any {
	m := map[string]any{
		"name": fd.Name,
		"type": string(fd.Type),
	}
	if fd.Related != "" {
		m["related"] = fd.Related
	}
	if fd.Format != "" {
		m["format"] = fd.Format
	}
	if fd.Values != nil {
		m["values"] = fd.Values
	}
	if fd.Min != nil {
		m["min"] = *fd.Min
	}
	if fd.Max != nil {
		m["max"] = *fd.Max
	}
	if fd.Length != nil {
		m["length"] = *fd.Length
	}
	return m
}
