package datasource

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/vanderheijden86/trellis/pkg/model"
)

// createTestDB builds an entries database with a few rows, including a
// soft-deleted one and one with null optional columns.
func createTestDB(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "outline.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE entries (
			id TEXT PRIMARY KEY,
			parent_id TEXT,
			title TEXT NOT NULL,
			kind TEXT,
			status TEXT,
			priority INTEGER,
			size INTEGER,
			created TEXT,
			updated TEXT,
			notes TEXT,
			deleted INTEGER DEFAULT 0
		)`)
	if err != nil {
		t.Fatal(err)
	}

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC).Format(time.RFC3339)
	rows := []struct {
		id, parent, title, kind, status string
		priority                        int
		size                            int64
		deleted                         int
	}{
		{"root", "", "Project", "group", "active", 1, 0, 0},
		{"child-a", "root", "Design notes", "note", "done", 2, 2048, 0},
		{"child-b", "root", "Implementation", "task", "todo", 1, 4096, 0},
		{"gone", "root", "Removed item", "task", "done", 3, 64, 1},
	}
	for _, r := range rows {
		var parent any
		if r.parent != "" {
			parent = r.parent
		}
		_, err := db.Exec(
			`INSERT INTO entries (id, parent_id, title, kind, status, priority, size, created, updated, notes, deleted)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.id, parent, r.title, r.kind, r.status, r.priority, r.size, now, now, nil, r.deleted)
		if err != nil {
			t.Fatal(err)
		}
	}

	return path
}

func TestLoadSQLite(t *testing.T) {
	path := createTestDB(t)

	entries, err := LoadSQLite(path)
	if err != nil {
		t.Fatalf("LoadSQLite failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 live entries, got %d", len(entries))
	}

	// rowid order preserves authoring order
	if entries[0].ID != "root" || entries[1].ID != "child-a" || entries[2].ID != "child-b" {
		t.Errorf("unexpected order: %v %v %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}

	root := entries[0]
	if root.ParentID != "" {
		t.Errorf("expected empty parent for root, got %q", root.ParentID)
	}
	if root.Kind != model.KindGroup {
		t.Errorf("expected kind group, got %q", root.Kind)
	}
	if root.Status != model.StatusActive {
		t.Errorf("expected status active, got %q", root.Status)
	}
	if root.Created.IsZero() {
		t.Error("expected created timestamp to parse")
	}

	childA := entries[1]
	if childA.ParentID != "root" {
		t.Errorf("expected parent root, got %q", childA.ParentID)
	}
	if childA.Size != 2048 {
		t.Errorf("expected size 2048, got %d", childA.Size)
	}
	if childA.Notes != "" {
		t.Errorf("expected empty notes for null column, got %q", childA.Notes)
	}

	for _, e := range entries {
		if e.ID == "gone" {
			t.Error("soft-deleted entry should be filtered out")
		}
	}
}

func TestCountEntries(t *testing.T) {
	path := createTestDB(t)

	count, err := CountEntries(path)
	if err != nil {
		t.Fatalf("CountEntries failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 live entries, got %d", count)
	}
}

func TestProbeSQLite(t *testing.T) {
	path := createTestDB(t)
	if err := probeSQLite(path); err != nil {
		t.Errorf("expected populated database to validate, got %v", err)
	}
}

func TestProbeSQLite_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE entries (id TEXT PRIMARY KEY, title TEXT)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := probeSQLite(path); err != nil {
		t.Errorf("expected empty entries table to validate, got %v", err)
	}
}

func TestProbeSQLite_WrongSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE things (name TEXT)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	if err := probeSQLite(path); err == nil {
		t.Error("expected missing entries table to fail validation")
	}
}

func TestProbeSQLite_MissingFile(t *testing.T) {
	if err := probeSQLite(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected missing database to fail validation")
	}
}
