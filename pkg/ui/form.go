// Package ui provides the terminal user interface for trellis.
//
// This file implements the interactive new-entry wizard for --add.
// It runs before the TUI starts and appends the collected entry to the
// outline file, so the running view picks it up through the watcher.
package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/trellis/internal/datasource"
	"github.com/vanderheijden86/trellis/pkg/model"
)

// AddWizard collects one new outline entry interactively.
type AddWizard struct {
	path    string
	entries []model.Entry
	entry   model.Entry
}

// NewAddWizard creates a wizard that appends to the JSONL file at path.
// The existing entries feed the parent picker and ID deduplication.
func NewAddWizard(path string, entries []model.Entry) *AddWizard {
	return &AddWizard{
		path:    path,
		entries: entries,
		entry: model.Entry{
			Kind:     model.KindTask,
			Status:   model.StatusTodo,
			Priority: 2,
		},
	}
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run executes the wizard flow. A nil entry with a nil error means the
// user discarded the draft at the confirm step.
func (w *AddWizard) Run() (*model.Entry, error) {
	w.printBanner()

	if err := w.collectBasics(); err != nil {
		return nil, err
	}
	if err := w.collectDetails(); err != nil {
		return nil, err
	}
	if err := w.collectPlacement(); err != nil {
		return nil, err
	}

	save, err := w.confirmSave()
	if err != nil {
		return nil, err
	}
	if !save {
		fmt.Println("Discarded.")
		return nil, nil
	}

	w.entry.ID = newEntryID(w.entry.Title, w.entries)
	now := time.Now().UTC()
	w.entry.Created = now
	w.entry.Updated = now

	if err := datasource.AppendJSONL(w.path, w.entry); err != nil {
		return nil, err
	}

	fmt.Printf("Appended %s to %s\n", w.entry.ID, w.path)
	return &w.entry, nil
}

func (w *AddWizard) printBanner() {
	fmt.Println("")
	fmt.Println("╔══════════════════════════════════════════╗")
	fmt.Println("║        trellis · New Outline Entry       ║")
	fmt.Println("╚══════════════════════════════════════════╝")
	fmt.Println("")
}

func (w *AddWizard) collectBasics() error {
	fmt.Println("Step 1: Basics")
	fmt.Println("────────────────────────────")

	kind := string(w.entry.Kind)
	status := string(w.entry.Status)

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&w.entry.Title).
				Placeholder("New entry").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Kind").
				Options(
					huh.NewOption("Task", string(model.KindTask)),
					huh.NewOption("Group", string(model.KindGroup)),
					huh.NewOption("Note", string(model.KindNote)),
					huh.NewOption("Link", string(model.KindLink)),
				).
				Value(&kind),
			huh.NewSelect[string]().
				Title("Status").
				Options(
					huh.NewOption("Todo", string(model.StatusTodo)),
					huh.NewOption("Active", string(model.StatusActive)),
					huh.NewOption("Blocked", string(model.StatusBlocked)),
					huh.NewOption("Done", string(model.StatusDone)),
				).
				Value(&status),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	w.entry.Title = strings.TrimSpace(w.entry.Title)
	w.entry.Kind = model.NormalizeKind(kind)
	w.entry.Status = model.NormalizeStatus(status)

	fmt.Println("")
	return nil
}

func (w *AddWizard) collectDetails() error {
	fmt.Println("Step 2: Details")
	fmt.Println("────────────────────────────")

	priority := w.entry.Priority
	sizeStr := ""

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Priority").
				Options(
					huh.NewOption("P0 (urgent)", 0),
					huh.NewOption("P1", 1),
					huh.NewOption("P2", 2),
					huh.NewOption("P3", 3),
					huh.NewOption("P4 (someday)", 4),
				).
				Value(&priority),
			huh.NewInput().
				Title("Size in bytes (optional)").
				Value(&sizeStr).
				Placeholder("0").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					n, err := strconv.ParseInt(s, 10, 64)
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative integer")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes (optional)").
				Value(&w.entry.Notes),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	w.entry.Priority = priority
	if s := strings.TrimSpace(sizeStr); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			w.entry.Size = n
		}
	}

	fmt.Println("")
	return nil
}

func (w *AddWizard) collectPlacement() error {
	fmt.Println("Step 3: Placement")
	fmt.Println("────────────────────────────")

	opts := parentOptions(w.entries)
	if len(opts) == 1 {
		fmt.Println("No existing entries; the new entry becomes a root.")
		fmt.Println("")
		return nil
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Parent").
				Options(opts...).
				Value(&w.entry.ParentID),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	fmt.Println("")
	return nil
}

// parentOptions builds the parent picker: top level first, then every
// existing entry in load order.
func parentOptions(entries []model.Entry) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(entries)+1)
	opts = append(opts, huh.NewOption("(top level)", ""))
	for i := range entries {
		e := &entries[i]
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s  (%s)", e.Title, e.ID), e.ID))
	}
	return opts
}

func (w *AddWizard) confirmSave() (bool, error) {
	fmt.Println("New entry:")
	fmt.Println("────────────────────────────")
	fmt.Printf("  Title:    %s\n", w.entry.Title)
	fmt.Printf("  Kind:     %s\n", w.entry.Kind)
	fmt.Printf("  Status:   %s\n", w.entry.Status)
	fmt.Printf("  Priority: P%d\n", w.entry.Priority)
	if w.entry.Size > 0 {
		fmt.Printf("  Size:     %s\n", FormatSize(w.entry.Size))
	}
	if w.entry.ParentID != "" {
		fmt.Printf("  Parent:   %s\n", w.entry.ParentID)
	}
	fmt.Println("")

	save := true
	form := newForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Append to %s?", w.path)).
				Value(&save).
				Affirmative("Yes, append").
				Negative("No, discard"),
		),
	)

	if err := form.Run(); err != nil {
		return false, err
	}
	return save, nil
}

// newEntryID derives a unique ID from the title: a lowercase slug with a
// numeric suffix when the slug is already taken.
func newEntryID(title string, existing []model.Entry) string {
	slug := slugify(title)
	if slug == "" {
		slug = "entry"
	}
	taken := make(map[string]bool, len(existing))
	for i := range existing {
		taken[existing[i].ID] = true
	}
	if !taken[slug] {
		return slug
	}
	for n := 2; ; n++ {
		id := fmt.Sprintf("%s-%d", slug, n)
		if !taken[id] {
			return id
		}
	}
}

func slugify(s string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		case !lastDash:
			sb.WriteByte('-')
			lastDash = true
		}
		if sb.Len() >= 32 {
			break
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
