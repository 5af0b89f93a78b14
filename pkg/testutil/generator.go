// Package testutil provides deterministic outline fixture generators for
// tests and benchmark data. All generators produce the same output for the
// same seed.
package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/trellis/pkg/model"
)

// GeneratorConfig controls entry generation.
type GeneratorConfig struct {
	Seed      int64          // Random seed for determinism (0 = use current time)
	IDPrefix  string         // Prefix for entry IDs (default: "test")
	BaseTime  time.Time      // Base time for timestamps (default: fixed time)
	StatusMix []model.Status // Status distribution (nil = all todo)
	KindMix   []model.Kind   // Leaf kind distribution (nil = all task)
	WithSizes bool           // Generate byte sizes on leaf entries
	WithNotes bool           // Generate notes on some entries
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:      42, // Deterministic
		IDPrefix:  "test",
		BaseTime:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		StatusMix: []model.Status{model.StatusTodo},
		KindMix:   []model.Kind{model.KindTask},
	}
}

// Generator creates outline fixtures with various shapes.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.BaseTime.IsZero() {
		cfg.BaseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "test"
	}
	if len(cfg.StatusMix) == 0 {
		cfg.StatusMix = []model.Status{model.StatusTodo}
	}
	if len(cfg.KindMix) == 0 {
		cfg.KindMix = []model.Kind{model.KindTask}
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// Flat creates n root entries with no nesting.
func (g *Generator) Flat(n int) []model.Entry {
	entries := make([]model.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, g.entry(i, "", g.pickKind()))
	}
	return entries
}

// Chain creates a single path of the given depth: each entry is the only
// child of the previous one. depth 1 is a lone root.
func (g *Generator) Chain(depth int) []model.Entry {
	if depth < 1 {
		depth = 1
	}
	entries := make([]model.Entry, 0, depth)
	parent := ""
	for i := 0; i < depth; i++ {
		kind := model.KindGroup
		if i == depth-1 {
			kind = g.pickKind()
		}
		e := g.entry(i, parent, kind)
		entries = append(entries, e)
		parent = e.ID
	}
	return entries
}

// Uniform creates a full tree: one root, every non-leaf entry has exactly
// breadth children, leaves sit at the given depth. depth 0 is a lone root.
func (g *Generator) Uniform(depth, breadth int) []model.Entry {
	if depth < 0 {
		depth = 0
	}
	if breadth < 1 {
		breadth = 1
	}

	var entries []model.Entry
	id := 0

	rootKind := model.KindGroup
	if depth == 0 {
		rootKind = g.pickKind()
	}
	root := g.entry(id, "", rootKind)
	entries = append(entries, root)
	id++

	currentLevel := []string{root.ID}
	for d := 1; d <= depth; d++ {
		var nextLevel []string
		for _, parent := range currentLevel {
			for b := 0; b < breadth; b++ {
				kind := model.KindGroup
				if d == depth {
					kind = g.pickKind()
				}
				e := g.entry(id, parent, kind)
				entries = append(entries, e)
				nextLevel = append(nextLevel, e.ID)
				id++
			}
		}
		currentLevel = nextLevel
	}
	return entries
}

// Random creates n entries where each non-first entry hangs off a random
// earlier one, with an occasional extra root. Shapes vary with the seed but
// repeat for the same seed.
func (g *Generator) Random(n int) []model.Entry {
	if n < 1 {
		n = 1
	}
	entries := make([]model.Entry, 0, n)
	entries = append(entries, g.entry(0, "", model.KindGroup))
	for i := 1; i < n; i++ {
		parent := ""
		if g.rng.Intn(8) != 0 {
			parent = entries[g.rng.Intn(i)].ID
		}
		kind := g.pickKind()
		if g.rng.Intn(4) == 0 {
			kind = model.KindGroup
		}
		entries = append(entries, g.entry(i, parent, kind))
	}
	return entries
}

// Forest creates several independent roots, each with the given number of
// leaf children.
func (g *Generator) Forest(roots, childrenPer int) []model.Entry {
	if roots < 1 {
		roots = 1
	}
	var entries []model.Entry
	id := 0
	for r := 0; r < roots; r++ {
		root := g.entry(id, "", model.KindGroup)
		entries = append(entries, root)
		id++
		for c := 0; c < childrenPer; c++ {
			entries = append(entries, g.entry(id, root.ID, g.pickKind()))
			id++
		}
	}
	return entries
}

// Orphans creates n entries whose parents do not exist, for exercising
// orphan promotion in tree assembly.
func (g *Generator) Orphans(n int) []model.Entry {
	entries := make([]model.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := g.entry(i, fmt.Sprintf("missing-%d", i), g.pickKind())
		entries = append(entries, e)
	}
	return entries
}

// WithCycle creates n entries forming a parent loop, for exercising the
// cycle guard in tree assembly.
func (g *Generator) WithCycle(n int) []model.Entry {
	if n < 2 {
		n = 2
	}
	entries := make([]model.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, g.entry(i, "", model.KindGroup))
	}
	for i := range entries {
		entries[i].ParentID = entries[(i+1)%n].ID
	}
	return entries
}

func (g *Generator) entry(i int, parentID string, kind model.Kind) model.Entry {
	e := model.Entry{
		ID:       fmt.Sprintf("%s-%03d", g.cfg.IDPrefix, i),
		ParentID: parentID,
		Title:    g.title(),
		Kind:     kind,
		Status:   g.pickStatus(),
		Priority: g.rng.Intn(5), // P0-P4
		Created:  g.cfg.BaseTime.Add(time.Duration(i) * time.Hour),
		Updated:  g.cfg.BaseTime.Add(time.Duration(i) * time.Hour),
	}
	if g.cfg.WithSizes && kind != model.KindGroup {
		e.Size = int64(g.rng.Intn(1<<20) + 256)
	}
	if g.cfg.WithNotes && g.rng.Intn(4) == 0 {
		e.Notes = fmt.Sprintf("Generated note for %s", e.ID)
	}
	return e
}

var sampleWords = []string{
	"cache", "index", "layout", "parser", "schema", "viewer", "watcher",
	"archive", "billing", "catalog", "deploy", "ingest", "metrics",
	"onboarding", "pipeline", "rollout", "search", "storage",
}

func (g *Generator) title() string {
	a := sampleWords[g.rng.Intn(len(sampleWords))]
	b := sampleWords[g.rng.Intn(len(sampleWords))]
	return fmt.Sprintf("%s %s %02d", strings.ToUpper(a[:1])+a[1:], b, g.rng.Intn(100))
}

func (g *Generator) pickStatus() model.Status {
	return g.cfg.StatusMix[g.rng.Intn(len(g.cfg.StatusMix))]
}

func (g *Generator) pickKind() model.Kind {
	return g.cfg.KindMix[g.rng.Intn(len(g.cfg.KindMix))]
}

// ToJSONL converts entries to JSONL format (one JSON object per line).
func ToJSONL(entries []model.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			continue
		}
		sb.Write(data)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteJSONL writes entries to path in JSONL format, creating parent
// directories as needed.
func WriteJSONL(path string, entries []model.Entry) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(ToJSONL(entries)), 0o644)
}

// QuickUniform creates a full tree fixture with default settings.
func QuickUniform(depth, breadth int) []model.Entry {
	return NewDefault().Uniform(depth, breadth)
}

// QuickChain creates a chain fixture with default settings.
func QuickChain(depth int) []model.Entry {
	return NewDefault().Chain(depth)
}

// QuickFlat creates a flat fixture with default settings.
func QuickFlat(n int) []model.Entry {
	return NewDefault().Flat(n)
}

// Empty returns an empty entry slice for edge case testing.
func Empty() []model.Entry {
	return []model.Entry{}
}

// Single returns a single root entry.
func Single() []model.Entry {
	gen := NewDefault()
	return []model.Entry{{
		ID:      fmt.Sprintf("%s-single", gen.cfg.IDPrefix),
		Title:   "Single entry",
		Kind:    model.KindTask,
		Status:  model.StatusTodo,
		Created: gen.cfg.BaseTime,
		Updated: gen.cfg.BaseTime,
	}}
}
