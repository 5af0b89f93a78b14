package datasource

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vanderheijden86/trellis/pkg/model"
)

// openReadOnly opens a SQLite database for reading. The busy timeout keeps
// us from failing outright while a writer holds the lock.
func openReadOnly(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// Read-heavy tuning; failures here are not fatal.
	for _, pragma := range []string{
		"PRAGMA cache_size = -64000",
		"PRAGMA mmap_size = 268435456",
		"PRAGMA temp_store = MEMORY",
	} {
		db.Exec(pragma)
	}

	return db, nil
}

// LoadSQLite reads every live entry from the entries table. Soft-deleted
// rows (deleted != 0) are filtered out. Row order follows rowid so sibling
// order in the assembled tree matches authoring order.
func LoadSQLite(path string) ([]model.Entry, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, parent_id, title, kind, status, priority, size,
		       created, updated, notes
		FROM entries
		WHERE COALESCE(deleted, 0) = 0
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		var (
			e        model.Entry
			parentID sql.NullString
			kind     sql.NullString
			status   sql.NullString
			priority sql.NullInt64
			size     sql.NullInt64
			created  sql.NullString
			updated  sql.NullString
			notes    sql.NullString
		)

		if err := rows.Scan(&e.ID, &parentID, &e.Title, &kind, &status,
			&priority, &size, &created, &updated, &notes); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}

		e.ParentID = parentID.String
		e.Kind = model.NormalizeKind(kind.String)
		e.Status = model.NormalizeStatus(status.String)
		e.Priority = int(priority.Int64)
		e.Size = size.Int64
		e.Created = parseTime(created)
		e.Updated = parseTime(updated)
		e.Notes = notes.String

		if err := e.Validate(); err != nil {
			// Bad rows are a data problem, not a loading problem.
			continue
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	return entries, nil
}

// probeSQLite checks that the database opens and has an entries table.
func probeSQLite(path string) error {
	db, err := openReadOnly(path)
	if err != nil {
		return err
	}
	defer db.Close()

	var id string
	err = db.QueryRow("SELECT id FROM entries LIMIT 1").Scan(&id)
	if err == sql.ErrNoRows {
		// Empty table is a valid source.
		return nil
	}
	return err
}

// CountEntries returns the number of live entries without loading them.
func CountEntries(path string) (int, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM entries WHERE COALESCE(deleted, 0) = 0").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// parseTime decodes an RFC 3339 timestamp column, zero time on null or
// malformed values.
func parseTime(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}
