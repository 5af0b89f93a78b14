// Package model defines the Entry record backing the demo tree: a flat,
// parent-linked outline item as stored in JSONL or SQLite sources.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies an entry. Unknown kinds normalize to KindTask.
type Kind string

const (
	KindGroup Kind = "group"
	KindTask  Kind = "task"
	KindNote  Kind = "note"
	KindLink  Kind = "link"
)

// Status is the workflow state of an entry. Unknown statuses normalize
// to StatusTodo.
type Status string

const (
	StatusTodo    Status = "todo"
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
	StatusDone    Status = "done"
)

// Entry is one outline item. Hierarchy is expressed through ParentID;
// tree assembly happens in the datasource layer, not here.
type Entry struct {
	ID       string    `json:"id"`
	ParentID string    `json:"parent_id,omitempty"`
	Title    string    `json:"title"`
	Kind     Kind      `json:"kind,omitempty"`
	Status   Status    `json:"status,omitempty"`
	Priority int       `json:"priority,omitempty"`
	Size     int64     `json:"size,omitempty"`
	Created  time.Time `json:"created,omitempty"`
	Updated  time.Time `json:"updated,omitempty"`
	Notes    string    `json:"notes,omitempty"`
}

// Validate reports whether the entry carries the minimum required fields.
// Sources skip invalid records instead of aborting the whole load.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry missing id")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("entry %s missing title", e.ID)
	}
	if e.ID == e.ParentID {
		return fmt.Errorf("entry %s is its own parent", e.ID)
	}
	return nil
}

// Normalize lowercases and defaults the enum fields in place. Sources call
// this once per record so the rest of the program can compare directly.
func (e *Entry) Normalize() {
	e.Kind = NormalizeKind(string(e.Kind))
	e.Status = NormalizeStatus(string(e.Status))
}

// NormalizeKind maps arbitrary input to a known Kind.
func NormalizeKind(s string) Kind {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindGroup:
		return KindGroup
	case KindNote:
		return KindNote
	case KindLink:
		return KindLink
	default:
		return KindTask
	}
}

// NormalizeStatus maps arbitrary input to a known Status.
func NormalizeStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive
	case StatusBlocked:
		return StatusBlocked
	case StatusDone:
		return StatusDone
	default:
		return StatusTodo
	}
}

// Label returns the single-letter column label for the kind.
func (k Kind) Label() string {
	switch k {
	case KindGroup:
		return "G"
	case KindNote:
		return "N"
	case KindLink:
		return "L"
	default:
		return "T"
	}
}

// Label returns the short column label for the status.
func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusBlocked:
		return "blocked"
	case StatusDone:
		return "done"
	default:
		return "todo"
	}
}

// Closed reports whether the entry is in a terminal state.
func (s Status) Closed() bool {
	return s == StatusDone
}
