// Package datasource finds and loads flat Entry records from JSONL outline
// files and SQLite databases. Tree assembly from the parent links happens in
// the UI layer; this package only deals in flat slices.
package datasource

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/trellis/pkg/debug"
)

// Type identifies the storage format of a source.
type Type string

const (
	TypeJSONL  Type = "jsonl"
	TypeSQLite Type = "sqlite"
)

// Selection priority when modification times tie. Databases win because a
// database is usually the canonical store and the JSONL next to it an export.
const (
	PrioritySQLite = 100
	PriorityJSONL  = 80
)

// Source describes one discovered data file.
type Source struct {
	Path     string    `json:"path"`
	Type     Type      `json:"type"`
	Name     string    `json:"name"`
	Priority int       `json:"priority"`
	ModTime  time.Time `json:"mod_time"`
	Size     int64     `json:"size"`
	Valid    bool      `json:"valid"`
	Err      error     `json:"-"`
}

func (s Source) String() string {
	return fmt.Sprintf("%s (%s, %s)", s.Name, s.Type, s.Path)
}

// DetectType classifies a path by extension. The second return is false for
// paths this package cannot load.
func DetectType(path string) (Type, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return TypeJSONL, true
	case ".db", ".sqlite", ".sqlite3":
		return TypeSQLite, true
	default:
		return "", false
	}
}

// FromPath builds a Source for a single known file, stat included.
func FromPath(path string) (Source, error) {
	typ, ok := DetectType(path)
	if !ok {
		return Source{}, fmt.Errorf("unsupported data file %s (want .jsonl or .db)", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, err
	}

	src := Source{
		Path: abs,
		Type: typ,
		Name: sourceName(abs),
	}
	switch typ {
	case TypeSQLite:
		src.Priority = PrioritySQLite
	default:
		src.Priority = PriorityJSONL
	}

	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, fmt.Errorf("stat %s: %w", path, err)
	}
	src.ModTime = info.ModTime()
	src.Size = info.Size()

	return src, nil
}

// sourceName derives a display name from the file name without extension.
func sourceName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// skippedFile reports data files that are backup or merge artifacts and
// should never be offered as sources.
func skippedFile(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range []string{".backup", ".orig", ".bak", ".merge", ".left", ".right"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Discover walks the given root directories up to maxDepth levels deep and
// collects every loadable data file. Roots that are themselves files are
// taken directly. Hidden directories are not descended into. Missing roots
// are skipped, not errors.
func Discover(roots []string, maxDepth int) []Source {
	if maxDepth <= 0 {
		maxDepth = 3
	}

	var sources []Source
	seen := make(map[string]bool)

	add := func(path string) {
		if skippedFile(filepath.Base(path)) {
			return
		}
		src, err := FromPath(path)
		if err != nil {
			return
		}
		if seen[src.Path] {
			return
		}
		seen[src.Path] = true
		sources = append(sources, src)
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
				if depth >= maxDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := DetectType(path); ok {
				add(path)
			}
			return nil
		})
	}

	// Newest first; priority breaks modification-time ties.
	sort.SliceStable(sources, func(i, j int) bool {
		if !sources[i].ModTime.Equal(sources[j].ModTime) {
			return sources[i].ModTime.After(sources[j].ModTime)
		}
		return sources[i].Priority > sources[j].Priority
	})

	return sources
}

// Validate probes a source cheaply: the file must open and yield at least
// well-formed content (first JSONL record, or the entries table in SQLite).
// The outcome is recorded on the source itself.
func Validate(src *Source) error {
	var err error
	switch src.Type {
	case TypeSQLite:
		err = probeSQLite(src.Path)
	case TypeJSONL:
		err = probeJSONL(src.Path)
	default:
		err = fmt.Errorf("unknown source type %q", src.Type)
	}

	src.Valid = err == nil
	src.Err = err
	return err
}

// ValidateAll probes every source concurrently. Individual failures are
// recorded per source, never propagated; the returned error is only for a
// cancelled context.
func ValidateAll(ctx context.Context, sources []Source) error {
	g, ctx := errgroup.WithContext(ctx)
	// File probes are cheap; the limit just bounds open descriptors.
	g.SetLimit(8)

	for i := range sources {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := Validate(&sources[i]); err != nil {
				debug.Log("source %s failed validation: %v", sources[i].Path, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// SelectBest returns the freshest valid source, or nil when none validates.
// Sources must already be in Discover order (newest first).
func SelectBest(sources []Source) *Source {
	for i := range sources {
		if sources[i].Valid {
			return &sources[i]
		}
	}
	return nil
}
