package history

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLite_RecordAndRecent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = store.Close() }()

	entries := []Entry{
		{Command: "cache create", Args: "mycache", Success: true},
		{Command: "cache destroy", Args: "mycache --force", Success: false, Error: "not found"},
	}
	for _, e := range entries {
		if err := store.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Command != "cache destroy" || got[0].Success {
		t.Fatalf("expected most recent entry first (cache destroy, failed), got %+v", got[0])
	}
}

func TestOpenSQLite_RecentLimitsResults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = store.Close() }()

	for i := 0; i < 5; i++ {
		if err := store.Record(Entry{Command: "type list", Success: true}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected Recent(2) to return 2 entries, got %d", len(got))
	}
}
