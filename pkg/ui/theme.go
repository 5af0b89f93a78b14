package ui

import (
	"image/color"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trellis/pkg/treeview"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns the given hex color for TrueColor terminals and
// lipgloss.NoColor{} otherwise, so 16/256-color terminals use the
// terminal's own background instead of a down-converted approximation
// that may clash with palettes like Solarized.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Status
	Todo    lipgloss.AdaptiveColor
	Active  lipgloss.AdaptiveColor
	Blocked lipgloss.AdaptiveColor
	Done    lipgloss.AdaptiveColor

	// Kinds
	Group lipgloss.AdaptiveColor
	Task  lipgloss.AdaptiveColor
	Note  lipgloss.AdaptiveColor
	Link  lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Row chrome, fed to the tree engine through Palette
	RowSelBg   lipgloss.AdaptiveColor
	RowHoverBg lipgloss.AdaptiveColor
	HeaderBg   lipgloss.AdaptiveColor
	HeaderFg   lipgloss.AdaptiveColor
	GridLine   lipgloss.AdaptiveColor
	TreeLine   lipgloss.AdaptiveColor
	Marker     lipgloss.AdaptiveColor
	MarkerHot  lipgloss.AdaptiveColor
	CursorLine lipgloss.AdaptiveColor
	DropHint   lipgloss.AdaptiveColor

	// Styles
	Base        lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style

	// Pre-computed styles, created once at startup instead of per-frame
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	PrimaryBold   lipgloss.Style
	FilterPrompt  lipgloss.Style
	FilterMatch   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Todo:    lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}, // Neutral
		Active:  lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Blocked: lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}, // Red
		Done:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green

		Group: lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Task:  lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"}, // Blue
		Note:  lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange
		Link:  lipgloss.AdaptiveColor{Light: "#008080", Dark: "#00CED1"}, // Teal

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},

		RowSelBg:   lipgloss.AdaptiveColor{Light: "#CCE5FF", Dark: "#2F558A"},
		RowHoverBg: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#3A3F4A"},
		HeaderBg:   lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#20242B"},
		HeaderFg:   lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#D8DCE2"},
		GridLine:   lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#3C414B"},
		TreeLine:   lipgloss.AdaptiveColor{Light: "#999999", Dark: "#5C6370"},
		Marker:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#9AA3B2"},
		MarkerHot:  lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#E8C45E"},
		CursorLine: lipgloss.AdaptiveColor{Light: "#333333", Dark: "#C8CED6"},
		DropHint:   lipgloss.AdaptiveColor{Light: "#007700", Dark: "#4F8A5A"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Footer = r.NewStyle().Foreground(t.Subtext)
	t.StatusInfo = r.NewStyle().Foreground(t.Active)
	t.StatusError = r.NewStyle().Foreground(t.Blocked).Bold(true)

	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.SecondaryText = r.NewStyle().Foreground(t.Secondary)
	t.PrimaryBold = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.FilterPrompt = r.NewStyle().Foreground(t.Primary)
	t.FilterMatch = r.NewStyle().Foreground(ThemeFg("#FFD700")).Bold(true)

	return t
}

func (t Theme) GetStatusColor(s string) lipgloss.AdaptiveColor {
	switch s {
	case "todo":
		return t.Todo
	case "active":
		return t.Active
	case "blocked":
		return t.Blocked
	case "done":
		return t.Done
	default:
		return t.Subtext
	}
}

func (t Theme) GetKindBadge(kind string) (string, lipgloss.AdaptiveColor) {
	switch kind {
	case "group":
		return "G", t.Group
	case "task":
		return "T", t.Task
	case "note":
		return "N", t.Note
	case "link":
		return "L", t.Link
	default:
		return "·", t.Subtext
	}
}

// Resolve picks the light or dark variant of an adaptive color for the
// renderer's background and returns it as a concrete color for the
// engine's painters.
func (t Theme) Resolve(c lipgloss.AdaptiveColor) color.Color {
	dark := true
	if t.Renderer != nil {
		dark = t.Renderer.HasDarkBackground()
	}
	if dark {
		return hexRGBA(c.Dark)
	}
	return hexRGBA(c.Light)
}

// Palette converts the theme's row chrome into the engine's color set,
// resolving each adaptive pair against the renderer's background. Row stays
// nil so unselected rows keep the terminal's own background.
func (t Theme) Palette() *treeview.Palette {
	return &treeview.Palette{
		RowSel:    t.Resolve(t.RowSelBg),
		RowHover:  t.Resolve(t.RowHoverBg),
		HeaderBg:  t.Resolve(t.HeaderBg),
		HeaderFg:  t.Resolve(t.HeaderFg),
		Grid:      t.Resolve(t.GridLine),
		TreeLine:  t.Resolve(t.TreeLine),
		Marker:    t.Resolve(t.Marker),
		MarkerHot: t.Resolve(t.MarkerHot),
		Cursor:    t.Resolve(t.CursorLine),
		Drop:      t.Resolve(t.DropHint),
	}
}

// hexRGBA parses "#RRGGBB" into an opaque RGBA. Malformed input yields
// mid-gray rather than an error; theme tables are static and typo-checked
// by tests.
func hexRGBA(hex string) color.RGBA {
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	var r, g, b uint8
	for i, dst := range []*uint8{&r, &g, &b} {
		hi := hexDigit(hex[1+2*i])
		lo := hexDigit(hex[2+2*i])
		if hi < 0 || lo < 0 {
			return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
		}
		*dst = uint8(hi<<4 | lo)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// TestTheme returns a theme suitable for use in tests (uses nil renderer).
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
