package history

import (
	"database/sql"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mmrzaf/rowgen/internal/domain"
)

type SQLiteRepository struct {
	dbPath string
	db     *sql.DB
}

func NewSQLiteRepository(dbPath string) *SQLiteRepository {
	return &SQLiteRepository{dbPath: dbPath}
}

func (r *SQLiteRepository) Init() error {
	db, err := sql.Open("sqlite3", r.dbPath)
	if err != nil {
		return err
	}
	r.db = db

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS generation_history (
		id TEXT PRIMARY KEY,
		schema_hash TEXT NOT NULL,
		field_count INTEGER NOT NULL,
		row_count INTEGER NOT NULL,
		seed INTEGER,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`

	_, err = r.db.Exec(createTableSQL)
	return err
}

func (r *SQLiteRepository) Record(rec *domain.HistoryRecord) error {
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
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		rec.ID, rec.SchemaHash, rec.FieldCount, rec.RowCount, seed,
		rec.Source, rec.Status, rec.Error, rec.DurationMs, rec.CreatedAt,
	)
	return err
}

func (r *SQLiteRepository) Get(id string) (*domain.HistoryRecord, error) {
	query := `
		SELECT id, schema_hash, field_count, row_count, seed,
		       source, status, error, duration_ms, created_at
		FROM generation_history WHERE id = ?
	`
	return scanRecord(r.db.QueryRow(query, id))
}

func (r *SQLiteRepository) List(limit int) ([]*domain.HistoryRecord, error) {
	query := `
		SELECT id, schema_hash, field_count, row_count, seed,
		       source, status, error, duration_ms, created_at
		FROM generation_history
		ORDER BY created_at DESC
	`
	args := make([]any, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
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

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	var seed sql.NullInt64
	var errStr sql.NullString

	err := row.Scan(
		&rec.ID, &rec.SchemaHash, &rec.FieldCount, &rec.RowCount, &seed,
		&rec.Source, &rec.Status, &errStr, &rec.DurationMs, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if seed.Valid {
		s := seed.Int64
		rec.Seed = &s
	}
	if errStr.Valid {
		rec.Error = errStr.String
	}
	return &rec, nil
}
