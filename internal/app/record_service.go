package app

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"

	"github.com/mmrzaf/rowgen/internal/domain"
	"github.com/mmrzaf/rowgen/internal/generators"
	"github.com/mmrzaf/rowgen/internal/hashing"
	"github.com/mmrzaf/rowgen/internal/infra/repos/history"
	"github.com/mmrzaf/rowgen/internal/logging"
)

// RecordService turns a validated generation request into rows. Each
// call gets its own rand.Rand, so seeded requests do not race each
// other on shared rng state. Faker-backed capabilities are the one
// exception: faker draws from a package-level source, which is reseeded
// once per seeded request.
type RecordService struct {
	valueGen    *generators.ValueGenerator
	historyRepo history.Repository
	logger      *logging.Logger
}

// NewRecordService wires the service. historyRepo may be nil, which
// disables audit recording.
func NewRecordService(valueGen *generators.ValueGenerator, historyRepo history.Repository, logger *logging.Logger) *RecordService {
	return &RecordService{
		valueGen:    valueGen,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// Generate produces req.Count rows, each holding one value per field in
// schema order. The outcome is recorded in the history store when one
// is configured; recording failures are logged, never surfaced.
func (s *RecordService) Generate(req *domain.GenerationRequest, source string) ([]domain.Row, error) {
	started := time.Now()
	rows, err := s.generate(req)
	s.record(req, source, started, err)
	return rows, err
}

func (s *RecordService) generate(req *domain.GenerationRequest) ([]domain.Row, error) {
	seed := int64(0)
	if req.Seed != nil {
		seed = *req.Seed
		// Seed exactly once before any row is produced, never per row.
		faker.SetRandomSource(rand.NewSource(seed))
	} else {
		seed = generateSeed()
	}
	rng := rand.New(rand.NewSource(seed))

	rows := make([]domain.Row, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		row := domain.NewRow()
		for _, fd := range req.Fields {
			val, err := s.valueGen.Generate(rng, fd)
			if err != nil {
				return nil, &domain.GenerationError{Err: err}
			}
			row.Set(fd.Name, val)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *RecordService) record(req *domain.GenerationRequest, source string, started time.Time, genErr error) {
	if s.historyRepo == nil {
		return
	}

	hash, err := hashing.HashRequest(req)
	if err != nil {
		s.logger.Warnw("history.hash_failed", map[string]any{"error": err.Error()})
		return
	}

	rec := &domain.HistoryRecord{
		ID:         uuid.New().String(),
		SchemaHash: hash,
		FieldCount: len(req.Fields),
		RowCount:   req.Count,
		Seed:       req.Seed,
		Source:     source,
		Status:     domain.HistoryStatusSuccess,
		DurationMs: time.Since(started).Milliseconds(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if genErr != nil {
		rec.Status = domain.HistoryStatusFailed
		rec.Error = genErr.Error()
	}

	if err := s.historyRepo.Record(rec); err != nil {
		s.logger.Warnw("history.record_failed", map[string]any{"error": err.Error()})
	}
}

func generateSeed() int64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}
