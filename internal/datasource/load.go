package datasource

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/trellis/pkg/debug"
	"github.com/vanderheijden86/trellis/pkg/model"
)

// LoadResult carries the outcome of loading a single source.
type LoadResult struct {
	Source  Source
	Entries []model.Entry
	Err     error
}

// Load reads one data file, dispatching on its type.
func Load(path string) ([]model.Entry, error) {
	src, err := FromPath(path)
	if err != nil {
		return nil, err
	}
	return LoadSource(src)
}

// LoadSource reads the entries behind a discovered source.
func LoadSource(src Source) ([]model.Entry, error) {
	start := time.Now()
	defer func() { debug.LogTiming("LoadSource "+src.Name, time.Since(start)) }()

	switch src.Type {
	case TypeSQLite:
		return LoadSQLite(src.Path)
	case TypeJSONL:
		return LoadJSONL(src.Path)
	default:
		return nil, fmt.Errorf("unknown source type %q for %s", src.Type, src.Path)
	}
}

// LoadAll loads every source concurrently and merges the results. With more
// than one source, IDs and parent links are namespaced with the source name
// so entries from different files can never collide or cross-link. A failed
// source is reported in its result and skipped; the load as a whole only
// fails on a cancelled context.
func LoadAll(ctx context.Context, sources []Source) ([]model.Entry, []LoadResult, error) {
	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("no data sources")
	}

	results := make([]LoadResult, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for i, src := range sources {
		i, src := i, src

		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i] = LoadResult{Source: src, Err: ctx.Err()}
				return nil
			default:
			}

			entries, err := LoadSource(src)
			results[i] = LoadResult{Source: src, Entries: entries, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, results, err
	}

	var merged []model.Entry
	for i := range results {
		if results[i].Err != nil {
			debug.Log("skipping source %s: %v", results[i].Source.Name, results[i].Err)
			continue
		}
		entries := results[i].Entries
		if len(sources) > 1 {
			namespaceEntries(entries, qualifier(sources, i))
		}
		merged = append(merged, entries...)
	}

	return merged, results, nil
}

// qualifier returns the namespace prefix for the i-th source. Duplicate
// source names get an index suffix so qualified IDs stay unique.
func qualifier(sources []Source, i int) string {
	name := sources[i].Name
	for j := 0; j < i; j++ {
		if sources[j].Name == name {
			return fmt.Sprintf("%s#%d", name, i)
		}
	}
	return name
}

// namespaceEntries prefixes IDs and parent links in place.
func namespaceEntries(entries []model.Entry, prefix string) {
	for i := range entries {
		e := &entries[i]
		e.ID = prefix + ":" + e.ID
		if e.ParentID != "" {
			e.ParentID = prefix + ":" + e.ParentID
		}
	}
}
