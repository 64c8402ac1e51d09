package history

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/mmrzaf/rowgen/internal/domain"
)

type PostgresRepository struct {
	dsn string
	db  *sql.DB
}

func NewPostgresRepository(dsn string) *PostgresRepository {
	return &PostgresRepository{dsn: dsn}
}

func (r *PostgresRepository) Init() error {
	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS generation_history (
		id TEXT PRIMARY KEY,
		schema_hash TEXT NOT NULL,
		field_count INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		seed BIGINT,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		duration_ms BIGINT NOT NULL,
		created_at TEXT NOT NULL
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *PostgresRepository) Record(rec *domain.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	var seed any
	if rec.Seed != nil {
		seed = *rec.Seed
	}

	query := `
		INSERT INTO generation_history (
			id, schema_hash, field_count, row_count, seed,
			source, status, error, duration_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(query,
		rec.ID, rec.SchemaHash, rec.FieldCount, rec.RowCount, seed,
		rec.Source, rec.Status, rec.Error, rec.DurationMs, rec.CreatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(id string) (*domain.HistoryRecord, error) {
	query := `
		SELECT id, schema_hash, field_count, row_count, seed,
		       source, status, error, duration_ms, created_at
		FROM generation_history WHERE id = $1
	`
	return scanRecord(r.db.QueryRow(query, id))
}

func (r *PostgresRepository) List(limit int) ([]*domain.HistoryRecord, error) {
	query := `
		SELECT id, schema_hash, field_count, row_count, seed,
		       source, status, error, duration_ms, created_at
		FROM generation_history
		ORDER BY created_at DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.HistoryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
