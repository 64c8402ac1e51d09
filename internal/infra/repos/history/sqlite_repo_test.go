package history

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mmrzaf/rowgen/internal/domain"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbf, err := os.CreateTemp("", "rowgen_history_*.db")
	if err != nil {
		t.Fatal(err)
	}
	_ = dbf.Close()
	t.Cleanup(func() { _ = os.Remove(dbf.Name()) })

	repo := NewSQLiteRepository(dbf.Name())
	if err := repo.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleRecord(ts time.Time) *domain.HistoryRecord {
	seed := int64(42)
	return &domain.HistoryRecord{
		SchemaHash: "abc123",
		FieldCount: 3,
		RowCount:   10,
		Seed:       &seed,
		Source:     domain.HistorySourceAPI,
		Status:     domain.HistoryStatusSuccess,
		DurationMs: 12,
		CreatedAt:  ts.UTC().Format(time.RFC3339Nano),
	}
}

func TestRecordAndGet(t *testing.T) {
	repo := newTestRepo(t)

	rec := sampleRecord(time.Now())
	if err := repo.Record(rec); err != nil {
		t.Fatal(err)
	}
	if rec.ID == "" {
		t.Fatal("expected Record to assign an id")
	}

	got, err := repo.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SchemaHash != "abc123" || got.FieldCount != 3 || got.RowCount != 10 {
		t.Fatalf("unexpected record: %#v", got)
	}
	if got.Seed == nil || *got.Seed != 42 {
		t.Fatalf("expected seed 42, got %#v", got.Seed)
	}
	if got.Source != domain.HistorySourceAPI || got.Status != domain.HistoryStatusSuccess {
		t.Fatalf("unexpected record: %#v", got)
	}
}

func TestRecord_NullableColumns(t *testing.T) {
	repo := newTestRepo(t)

	rec := sampleRecord(time.Now())
	rec.Seed = nil
	rec.Status = domain.HistoryStatusFailed
	rec.Error = "max is less than min"
	if err := repo.Record(rec); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != nil {
		t.Fatalf("expected null seed, got %v", *got.Seed)
	}
	if got.Error != "max is less than min" {
		t.Fatalf("expected error message, got %q", got.Error)
	}
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		rec := sampleRecord(base.Add(time.Duration(i) * time.Minute))
		rec.SchemaHash = fmt.Sprintf("hash-%d", i)
		if err := repo.Record(rec); err != nil {
			t.Fatal(err)
		}
	}

	records, err := repo.List(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"hash-4", "hash-3", "hash-2"} {
		if records[i].SchemaHash != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, records[i].SchemaHash)
		}
	}

	all, err := repo.List(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("expected all 5 records, got %d", len(all))
	}
}

func TestGet_Unknown(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.Get("no-such-id"); err == nil {
		t.Fatal("expected error for unknown id")
	}
}
