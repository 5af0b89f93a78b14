package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/trellis/pkg/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONL(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "outline.jsonl", strings.Join([]string{
		`{"id":"a","title":"Alpha","kind":"group"}`,
		`{"id":"a1","parent_id":"a","title":"First child","status":"done","size":120}`,
		``,
		`{"id":"b","title":"Beta","kind":"NOTE"}`,
	}, "\n"))

	entries, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "a" || entries[1].ID != "a1" || entries[2].ID != "b" {
		t.Errorf("unexpected order: %v %v %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[1].ParentID != "a" {
		t.Errorf("expected parent link preserved, got %q", entries[1].ParentID)
	}
	if entries[1].Status != model.StatusDone {
		t.Errorf("expected status done, got %q", entries[1].Status)
	}
	if entries[1].Size != 120 {
		t.Errorf("expected size 120, got %d", entries[1].Size)
	}
	// Kind should be normalized to lowercase
	if entries[2].Kind != model.KindNote {
		t.Errorf("expected kind normalized to note, got %q", entries[2].Kind)
	}
}

func TestLoadJSONL_SkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "outline.jsonl", strings.Join([]string{
		`{"id":"good","title":"Good"}`,
		`{not json at all`,
		`{"id":"","title":"missing id"}`,
		`{"id":"also-good","title":"Also good"}`,
	}, "\n"))

	var warnings []string
	entries, err := LoadJSONLWithOptions(path, ParseOptions{
		WarningHandler: func(msg string) { warnings = append(warnings, msg) },
	})
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "good" || entries[1].ID != "also-good" {
		t.Errorf("unexpected entries: %v, %v", entries[0].ID, entries[1].ID)
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %d: %v", len(warnings), warnings)
	}
}

func TestLoadJSONL_StripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "outline.jsonl",
		"\xEF\xBB\xBF"+`{"id":"bom","title":"With BOM"}`)

	entries, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "bom" {
		t.Fatalf("expected the BOM-prefixed record to parse, got %v", entries)
	}
}

func TestLoadJSONL_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "outline.jsonl", "")

	entries, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestLoadJSONL_MissingFile(t *testing.T) {
	_, err := LoadJSONL("/nonexistent/outline.jsonl")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAppendJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.jsonl")

	first := model.Entry{ID: "n1", Title: "First"}
	second := model.Entry{ID: "n2", ParentID: "n1", Title: "Second", Kind: "note"}

	if err := AppendJSONL(path, first); err != nil {
		t.Fatalf("append to fresh file failed: %v", err)
	}
	if err := AppendJSONL(path, second); err != nil {
		t.Fatalf("append to existing file failed: %v", err)
	}

	entries, err := LoadJSONL(path)
	if err != nil {
		t.Fatalf("LoadJSONL failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ID != "n1" || entries[1].ID != "n2" {
		t.Errorf("unexpected order: %v, %v", entries[0].ID, entries[1].ID)
	}
	if entries[1].Kind != model.KindNote {
		t.Errorf("expected kind note, got %q", entries[1].Kind)
	}
}

func TestAppendJSONL_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.jsonl")

	if err := AppendJSONL(path, model.Entry{Title: "no id"}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("invalid entry should not create the file")
	}
}

func TestProbeJSONL(t *testing.T) {
	dir := t.TempDir()

	good := writeFile(t, dir, "good.jsonl", `{"id":"x","title":"ok"}`)
	if err := probeJSONL(good); err != nil {
		t.Errorf("expected good file to validate, got %v", err)
	}

	empty := writeFile(t, dir, "empty.jsonl", "\n\n")
	if err := probeJSONL(empty); err != nil {
		t.Errorf("expected empty file to validate, got %v", err)
	}

	bad := writeFile(t, dir, "bad.jsonl", "not json")
	if err := probeJSONL(bad); err == nil {
		t.Error("expected malformed file to fail validation")
	}

	if err := probeJSONL(filepath.Join(dir, "missing.jsonl")); err == nil {
		t.Error("expected missing file to fail validation")
	}
}
