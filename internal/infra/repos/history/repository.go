package history

import "github.com/mmrzaf/rowgen/internal/domain"

// Repository stores per-request audit records. Generated rows are never
// persisted, only request metadata.
type Repository interface {
	Init() error
	Record(rec *domain.HistoryRecord) error
	Get(id string) (*domain.HistoryRecord, error)
	List(limit int) ([]*domain.HistoryRecord, error)
	Close() error
}
