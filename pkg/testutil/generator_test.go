package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/trellis/pkg/model"
)

func entryDepth(byID map[string]model.Entry, e model.Entry) int {
	depth := 0
	for e.ParentID != "" {
		parent, ok := byID[e.ParentID]
		if !ok {
			break
		}
		e = parent
		depth++
	}
	return depth
}

func indexByID(entries []model.Entry) map[string]model.Entry {
	byID := make(map[string]model.Entry, len(entries))
	for _, e := range entries {
		byID[e.ID] = e
	}
	return byID
}

func TestChain(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		name  string
		depth int
		want  int
	}{
		{"chain_1", 1, 1},
		{"chain_2", 2, 2},
		{"chain_5", 5, 5},
		{"chain_10", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := gen.Chain(tt.depth)

			if len(entries) != tt.want {
				t.Fatalf("Chain(%d) entries = %d, want %d", tt.depth, len(entries), tt.want)
			}
			if entries[0].ParentID != "" {
				t.Errorf("Chain root should have no parent, got %s", entries[0].ParentID)
			}
			for i := 1; i < len(entries); i++ {
				if entries[i].ParentID != entries[i-1].ID {
					t.Errorf("entry %d parent = %s, want %s", i, entries[i].ParentID, entries[i-1].ID)
				}
			}
			// Intermediate entries are groups, the leaf is not
			for i, e := range entries {
				if i < len(entries)-1 && e.Kind != model.KindGroup {
					t.Errorf("entry %d kind = %s, want group", i, e.Kind)
				}
			}
		})
	}
}

func TestFlat(t *testing.T) {
	gen := NewDefault()
	entries := gen.Flat(5)

	if len(entries) != 5 {
		t.Fatalf("Flat(5) entries = %d, want 5", len(entries))
	}
	for i, e := range entries {
		if e.ParentID != "" {
			t.Errorf("entry %d should be a root, parent = %s", i, e.ParentID)
		}
	}
}

func TestUniform(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		name    string
		depth   int
		breadth int
		want    int
	}{
		{"uniform_0_2", 0, 2, 1},  // lone root
		{"uniform_1_2", 1, 2, 3},  // 1 + 2
		{"uniform_2_2", 2, 2, 7},  // 1 + 2 + 4
		{"uniform_3_2", 3, 2, 15}, // 1 + 2 + 4 + 8
		{"uniform_2_3", 2, 3, 13}, // 1 + 3 + 9
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := gen.Uniform(tt.depth, tt.breadth)

			if len(entries) != tt.want {
				t.Fatalf("Uniform(%d,%d) entries = %d, want %d", tt.depth, tt.breadth, len(entries), tt.want)
			}

			byID := indexByID(entries)
			maxDepth := 0
			for _, e := range entries {
				if d := entryDepth(byID, e); d > maxDepth {
					maxDepth = d
				}
			}
			if maxDepth != tt.depth {
				t.Errorf("max depth = %d, want %d", maxDepth, tt.depth)
			}

			// Every parent reference resolves
			for _, e := range entries {
				if e.ParentID == "" {
					continue
				}
				if _, ok := byID[e.ParentID]; !ok {
					t.Errorf("entry %s references missing parent %s", e.ID, e.ParentID)
				}
			}
		})
	}
}

func TestForest(t *testing.T) {
	gen := NewDefault()
	entries := gen.Forest(3, 4)

	if len(entries) != 3*(1+4) {
		t.Fatalf("Forest(3,4) entries = %d, want 15", len(entries))
	}

	roots := 0
	for _, e := range entries {
		if e.ParentID == "" {
			roots++
			if e.Kind != model.KindGroup {
				t.Errorf("root %s kind = %s, want group", e.ID, e.Kind)
			}
		}
	}
	if roots != 3 {
		t.Errorf("Forest roots = %d, want 3", roots)
	}
}

func TestOrphans(t *testing.T) {
	gen := NewDefault()
	entries := gen.Orphans(4)

	if len(entries) != 4 {
		t.Fatalf("Orphans(4) entries = %d, want 4", len(entries))
	}

	byID := indexByID(entries)
	for _, e := range entries {
		if e.ParentID == "" {
			t.Errorf("orphan %s has empty parent, want a dangling reference", e.ID)
		}
		if _, ok := byID[e.ParentID]; ok {
			t.Errorf("orphan %s parent %s should not resolve", e.ID, e.ParentID)
		}
	}
}

func TestWithCycle(t *testing.T) {
	gen := NewDefault()
	entries := gen.WithCycle(3)

	if len(entries) != 3 {
		t.Fatalf("WithCycle(3) entries = %d, want 3", len(entries))
	}
	for i, e := range entries {
		want := entries[(i+1)%len(entries)].ID
		if e.ParentID != want {
			t.Errorf("entry %d parent = %s, want %s", i, e.ParentID, want)
		}
		if e.ParentID == e.ID {
			t.Errorf("entry %d is its own parent", i)
		}
	}
}

func TestRandomShape(t *testing.T) {
	gen := NewDefault()
	entries := gen.Random(25)

	if len(entries) != 25 {
		t.Fatalf("Random(25) entries = %d, want 25", len(entries))
	}
	if entries[0].ParentID != "" {
		t.Errorf("first entry should be a root, parent = %s", entries[0].ParentID)
	}

	// Parents always precede children, so assembly never sees a forward
	// reference.
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.ParentID != "" && !seen[e.ParentID] {
			t.Errorf("entry %s references parent %s before it appears", e.ID, e.ParentID)
		}
		seen[e.ID] = true
	}
}

func TestGeneratedEntriesValidate(t *testing.T) {
	cfg := GeneratorConfig{
		Seed:      123,
		IDPrefix:  "custom",
		WithSizes: true,
		WithNotes: true,
		StatusMix: []model.Status{model.StatusTodo, model.StatusActive, model.StatusDone},
		KindMix:   []model.Kind{model.KindTask, model.KindNote, model.KindLink},
	}
	gen := New(cfg)
	entries := gen.Uniform(3, 3)

	hasSize := false
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			t.Errorf("entry %d invalid: %v", i, err)
		}
		if !strings.HasPrefix(e.ID, "custom-") {
			t.Errorf("entry %d ID = %s, want custom- prefix", i, e.ID)
		}
		if e.Size > 0 {
			hasSize = true
		}
		if e.Created.IsZero() || e.Updated.IsZero() {
			t.Errorf("entry %d missing timestamps", i)
		}
	}
	if !hasSize {
		t.Error("expected some entries to carry sizes")
	}
}

func TestToJSONL(t *testing.T) {
	entries := QuickChain(3)
	jsonl := ToJSONL(entries)

	lines := strings.Split(strings.TrimSpace(jsonl), "\n")
	if len(lines) != 3 {
		t.Fatalf("JSONL should have 3 lines, got %d", len(lines))
	}

	for i, line := range lines {
		var e model.Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Errorf("line %d is invalid JSON: %v", i, err)
		}
	}
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "outline.jsonl")
	entries := QuickFlat(4)

	if err := WriteJSONL(path, entries); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Errorf("file has %d lines, want 4", len(lines))
	}
}

func TestQuickFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func() []model.Entry
		want int
	}{
		{"QuickChain", func() []model.Entry { return QuickChain(5) }, 5},
		{"QuickFlat", func() []model.Entry { return QuickFlat(4) }, 4},
		{"QuickUniform", func() []model.Entry { return QuickUniform(2, 2) }, 7},
		{"Empty", Empty, 0},
		{"Single", Single, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := tt.fn()
			if len(entries) != tt.want {
				t.Errorf("%s returned %d entries, want %d", tt.name, len(entries), tt.want)
			}
			for i, e := range entries {
				if err := e.Validate(); err != nil {
					t.Errorf("%s entry %d invalid: %v", tt.name, i, err)
				}
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	cfg := DefaultConfig()

	gen1 := New(cfg)
	entries1 := gen1.Random(20)

	gen2 := New(cfg)
	entries2 := gen2.Random(20)

	if len(entries1) != len(entries2) {
		t.Fatalf("different lengths: %d vs %d", len(entries1), len(entries2))
	}
	for i := range entries1 {
		if entries1[i].ID != entries2[i].ID {
			t.Errorf("entry %d ID differs: %s vs %s", i, entries1[i].ID, entries2[i].ID)
		}
		if entries1[i].ParentID != entries2[i].ParentID {
			t.Errorf("entry %d parent differs: %s vs %s", i, entries1[i].ParentID, entries2[i].ParentID)
		}
		if entries1[i].Title != entries2[i].Title {
			t.Errorf("entry %d title differs: %s vs %s", i, entries1[i].Title, entries2[i].Title)
		}
	}
}

// Benchmarks

func BenchmarkUniform5x4(b *testing.B) {
	gen := NewDefault()
	for i := 0; i < b.N; i++ {
		_ = gen.Uniform(5, 4)
	}
}

func BenchmarkRandom500(b *testing.B) {
	gen := NewDefault()
	for i := 0; i < b.N; i++ {
		_ = gen.Random(500)
	}
}

func BenchmarkToJSONL1000(b *testing.B) {
	entries := NewDefault().Random(1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ToJSONL(entries)
	}
}
