package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mmrzaf/rowgen/internal/app"
	"github.com/mmrzaf/rowgen/internal/domain"
	"github.com/mmrzaf/rowgen/internal/infra/repos/history"
	"github.com/mmrzaf/rowgen/internal/infra/repos/presets"
	"github.com/mmrzaf/rowgen/internal/registry"
	"github.com/mmrzaf/rowgen/internal/schema"
	"github.com/mmrzaf/rowgen/internal/validation"
)

type Handler struct {
	recordService *app.RecordService
	validator     *validation.Validator
	capRegistry   *registry.CapabilityRegistry
	presetRepo    presets.Repository
	historyRepo   history.Repository
}

// NewHandler wires the API surface. historyRepo may be nil when the
// history store is disabled.
func NewHandler(recordService *app.RecordService, validator *validation.Validator, capRegistry *registry.CapabilityRegistry, presetRepo presets.Repository, historyRepo history.Repository) *Handler {
	return &Handler{
		recordService: recordService,
		validator:     validator,
		capRegistry:   capRegistry,
		presetRepo:    presetRepo,
		historyRepo:   historyRepo,
	}
}

// envelope is the body discriminator for record endpoints, which always
// respond 200: caller mistakes are data, not transport faults.
type envelope struct {
	Success bool                `json:"success"`
	Data    []domain.Row        `json:"data,omitempty"`
	Count   int                 `json:"count,omitempty"`
	Code    string              `json:"code,omitempty"`
	Error   string              `json:"error,omitempty"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// GenerateRecords serves both encodings of the schema: GET with a
// bracket-notation or JSON-string fields query parameter, and POST with
// a body whose fields attribute is a native array or a JSON string.
// Body attributes take precedence over query parameters.
func (h *Handler) GenerateRecords(w http.ResponseWriter, r *http.Request) {
	var (
		rawFields []any
		err       error
	)
	count := anyOrNil(r.URL.Query().Get("count"))
	seed := anyOrNil(r.URL.Query().Get("seed"))

	if r.Method == http.MethodPost {
		var body map[string]any
		if decodeErr := json.NewDecoder(r.Body).Decode(&body); decodeErr != nil {
			writeError(w, &domain.InvalidFieldsError{Reason: "request body is not valid JSON"})
			return
		}
		if v, present := body["fields"]; present {
			rawFields, err = schema.ResolveBodyFields(v)
		} else {
			rawFields, err = schema.ResolveQueryFields(r.URL.RawQuery)
		}
		if v, present := body["count"]; present {
			count = v
		}
		if v, present := body["seed"]; present {
			seed = v
		}
	} else {
		rawFields, err = schema.ResolveQueryFields(r.URL.RawQuery)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	req, err := h.validator.ValidateRequest(schema.Normalize(rawFields), count, seed)
	if err != nil {
		writeError(w, err)
		return
	}

	rows, err := h.recordService.Generate(req, domain.HistorySourceAPI)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rows, Count: len(rows)})
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": domain.FieldTypes()})
}

func (h *Handler) ListCapabilities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"capabilities": h.capRegistry.List()})
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	list, err := h.presetRepo.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := h.presetRepo.Get(r.PathValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

// GeneratePresetRecords generates from a stored preset. Query count and
// seed override the preset's own values.
func (h *Handler) GeneratePresetRecords(w http.ResponseWriter, r *http.Request) {
	preset, err := h.presetRepo.Get(r.PathValue("name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	count := anyOrNil(r.URL.Query().Get("count"))
	if count == nil && preset.Count > 0 {
		count = preset.Count
	}
	seed := anyOrNil(r.URL.Query().Get("seed"))
	if seed == nil && preset.Seed != nil {
		seed = *preset.Seed
	}

	req, err := h.validator.ValidateRequest(preset.Fields, count, seed)
	if err != nil {
		writeError(w, err)
		return
	}

	rows, err := h.recordService.Generate(req, domain.HistorySourceAPI)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{Success: true, Data: rows, Count: len(rows)})
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	if h.historyRepo == nil {
		http.Error(w, "history store is not configured", http.StatusNotFound)
		return
	}
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	records, err := h.historyRepo.List(limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.historyRepo == nil {
		http.Error(w, "history store is not configured", http.StatusNotFound)
		return
	}
	rec, err := h.historyRepo.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeError(w http.ResponseWriter, err error) {
	var invalidErr *domain.InvalidFieldsError
	var validationErr *domain.ValidationError

	resp := envelope{Success: false}
	switch {
	case errors.As(err, &invalidErr):
		resp.Code = domain.ErrCodeInvalidFieldsFormat
		resp.Error = invalidErr.Error()
	case errors.As(err, &validationErr):
		resp.Code = domain.ErrCodeValidationFailed
		resp.Error = "schema validation failed"
		resp.Details = validationErr.Errors
	default:
		resp.Code = domain.ErrCodeGenerationFailed
		resp.Error = err.Error()
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// anyOrNil maps the empty query value to "absent" for the validator's
// coercion rules.
func anyOrNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
