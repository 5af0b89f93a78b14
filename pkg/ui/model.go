package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/trellis/internal/datasource"
	"github.com/vanderheijden86/trellis/pkg/config"
	"github.com/vanderheijden86/trellis/pkg/debug"
	"github.com/vanderheijden86/trellis/pkg/model"
	"github.com/vanderheijden86/trellis/pkg/treeview"
	"github.com/vanderheijden86/trellis/pkg/watcher"
)

const (
	headerLines = 1
	footerLines = 1

	// doubleClickWindow is how close two presses at the same cell must be
	// to count as a double click. The terminal only reports single
	// presses, so pairing is done here.
	doubleClickWindow = 400 * time.Millisecond
)

// focus identifies which surface receives key input.
type focus int

const (
	focusOutline focus = iota
	focusFilter
	focusHelp
	focusInsights
)

// FileChangedMsg signals that the outline file changed on disk.
type FileChangedMsg struct{}

// WatchFileCmd returns a command that blocks until the watcher reports a
// change, then delivers FileChangedMsg. Re-arm it after every delivery.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Model is the main TUI model: an outline view over the entries of one
// data file, plus filter, insights, and help surfaces layered on top.
type Model struct {
	entries  []model.Entry
	dataPath string
	watcher  *watcher.Watcher

	view     *treeview.View[model.Entry]
	nodeByID map[string]*treeview.Node[model.Entry]
	painter  *cellPainter
	theme    Theme
	stats    OutlineStats

	focused focus
	ready   bool
	width   int
	height  int

	sortColumn int
	sortState  treeview.SortState

	filterInput   textinput.Model
	filterQuery   string
	filterMatches []*treeview.Node[model.Entry]
	filterIndex   int

	insightsVP viewport.Model

	lastClickTime time.Time
	lastClickPos  treeview.Point

	statusMsg     string
	statusIsError bool

	lastForceRefresh time.Time

	appConfig config.Config
}

// NewModel builds a ready model over the entries. Defaults make the model
// usable immediately; the first WindowSizeMsg adopts the real terminal
// size. A file watcher for dataPath starts here so live reload works
// without further wiring; failure to watch degrades to a status note.
func NewModel(entries []model.Entry, dataPath string) Model {
	const defaultWidth = 120
	const defaultHeight = 40

	theme := DefaultTheme(lipgloss.NewRenderer(os.Stdout))
	view, nodeByID := NewOutlineView(entries, theme)
	wireOutlineCallbacks(view)

	bodyH := defaultHeight - headerLines - footerLines
	view.SetViewport(defaultWidth-1, bodyH)
	painter := newCellPainter(theme, defaultWidth, bodyH)

	filter := textinput.New()
	filter.Prompt = "/"
	filter.PromptStyle = theme.FilterPrompt
	filter.CharLimit = 64
	filter.Width = 24

	var initialStatus string
	var initialStatusErr bool
	var w *watcher.Watcher
	if dataPath != "" {
		fw, err := watcher.New(dataPath, watcher.WithDebounce(200*time.Millisecond))
		if err == nil {
			err = fw.Start()
		}
		if err != nil {
			initialStatus = fmt.Sprintf("Live reload unavailable: %v", err)
			initialStatusErr = true
		} else {
			w = fw
		}
	}

	return Model{
		entries:       entries,
		dataPath:      dataPath,
		watcher:       w,
		view:          view,
		nodeByID:      nodeByID,
		painter:       painter,
		theme:         theme,
		stats:         ComputeStats(entries),
		ready:         true,
		width:         defaultWidth,
		height:        defaultHeight,
		sortColumn:    -1,
		filterInput:   filter,
		insightsVP:    viewport.New(defaultWidth, bodyH),
		statusMsg:     initialStatus,
		statusIsError: initialStatusErr,
	}
}

// WithConfig applies configured view preferences and the configured
// initial sort. Call it after NewModel and before the program starts.
func (m Model) WithConfig(cfg config.Config) Model {
	m.appConfig = cfg
	m.applyViewConfig(m.view)
	if col := sortColumnIndex(cfg.UI.SortColumn); col >= 0 {
		m.sortColumn = col
		m.sortState = treeview.Ascending
		if cfg.UI.SortDesc {
			m.sortState = treeview.Descending
		}
		m.view.SortBy(m.sortColumn, m.sortState)
	}
	if cfg.Watch.Enabled {
		if m.watcher != nil && cfg.Watch.DebounceMS > 0 {
			m.watcher.Stop()
			m.watcher = startWatcher(m.dataPath, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
		}
	} else if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
	return m
}

// startWatcher builds and starts a file watcher, or returns nil when the
// path cannot be watched.
func startWatcher(path string, debounce time.Duration) *watcher.Watcher {
	if path == "" {
		return nil
	}
	w, err := watcher.New(path, watcher.WithDebounce(debounce))
	if err != nil {
		return nil
	}
	if err := w.Start(); err != nil {
		return nil
	}
	return w
}

// applyViewConfig pushes the configured display options onto a view.
// Used on the initial view and again on every rebuilt view.
func (m *Model) applyViewConfig(v *treeview.View[model.Entry]) {
	ui := m.appConfig.UI
	if ui.Indent >= 2 {
		v.SetIndent(ui.Indent)
	}
	switch ui.Grid {
	case "horizontal":
		v.SetGridLines(treeview.GridHorizontal)
	case "vertical":
		v.SetGridLines(treeview.GridVertical)
	case "both":
		v.SetGridLines(treeview.GridBoth)
	}
	if ui.HideHeaders {
		v.HideColumnHeaders()
	}
	v.SetTableMode(ui.Table)
}

// sortColumnIndex maps a configured column name to its display index.
// Unknown names return -1.
func sortColumnIndex(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "title":
		return 0
	case "kind":
		return 1
	case "status":
		return 2
	case "priority", "pri":
		return 3
	case "size":
		return 4
	case "updated":
		return 5
	}
	return -1
}

// wireOutlineCallbacks hooks the view events that mutate the outline:
// double click toggles a subtree, and a completed drag moves the dragged
// node under the resolved drop target.
func wireOutlineCallbacks(v *treeview.View[model.Entry]) {
	v.OnActivate = func(n *treeview.Node[model.Entry]) {
		if n.Collapsed() {
			v.Expand(n)
		} else {
			v.Collapse(n)
		}
	}
	v.OnDrop = func(t treeview.DropTarget[model.Entry]) {
		moveNode(v, t)
	}
}

// moveNode applies a resolved drop. The dragged node is the cursor node,
// selected by the press that started the drag. Drops into the dragged
// node's own subtree are ignored.
func moveNode(v *treeview.View[model.Entry], target treeview.DropTarget[model.Entry]) {
	dragged := v.Cursor()
	if dragged == nil || target.Zone == treeview.DropNone {
		return
	}
	for n := target.Node; n != nil; n = n.Parent() {
		if n == dragged {
			return
		}
	}
	tr := v.Tree()
	switch target.Zone {
	case treeview.DropRoot:
		v.Remove(dragged)
		tr.Append(nil, dragged)
	case treeview.DropChild:
		v.Remove(dragged)
		tr.Append(target.Node, dragged)
		v.Expand(target.Node)
	case treeview.DropAbove:
		v.Remove(dragged)
		tr.Insert(target.Node.Parent(), target.Node.Index(), dragged)
	case treeview.DropBelow:
		v.Remove(dragged)
		tr.Insert(target.Node.Parent(), target.Node.Index()+1, dragged)
	default:
		return
	}
	v.Select(dragged)
	v.EnsureVisible(dragged)
}

// Stop releases the model's background resources. Safe to call more than
// once; the quit keys call it too.
func (m Model) Stop() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return WatchFileCmd(m.watcher)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case FileChangedMsg:
		return m.reloadFromDisk()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.view.SetViewport(m.bodyWidth(), m.bodyHeight())
		m.painter.Resize(m.width, m.bodyHeight())
		m.insightsVP.Width = m.width
		m.insightsVP.Height = m.bodyHeight()
		if m.focused == focusInsights {
			m.refreshInsights()
		}
		return m, nil

	case tea.MouseMsg:
		if m.focused == focusInsights {
			var cmd tea.Cmd
			m.insightsVP, cmd = m.insightsVP.Update(msg)
			return m, cmd
		}
		if m.focused != focusOutline {
			return m, nil
		}
		return m.handleOutlineMouse(msg), nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.statusIsError = false

		switch m.focused {
		case focusFilter:
			return m.handleFilterKeys(msg)
		case focusHelp:
			return m.handleHelpKeys(msg)
		case focusInsights:
			return m.handleInsightsKeys(msg)
		default:
			return m.handleOutlineKeys(msg)
		}
	}

	return m, tea.Batch(cmds...)
}

// reloadFromDisk re-reads the data file and swaps in a rebuilt outline,
// preserving cursor, collapsed subtrees, sort, and filter. The watch
// command is re-armed on every path out so live reload keeps working.
func (m Model) reloadFromDisk() (tea.Model, tea.Cmd) {
	rearm := func() tea.Cmd {
		if m.watcher != nil {
			return WatchFileCmd(m.watcher)
		}
		return nil
	}
	if m.dataPath == "" {
		return m, rearm()
	}

	start := time.Now()
	var warnings []string
	var entries []model.Entry
	var err error
	if t, ok := datasource.DetectType(m.dataPath); ok && t == datasource.TypeJSONL {
		entries, err = datasource.LoadJSONLWithOptions(m.dataPath, datasource.ParseOptions{
			WarningHandler: func(msg string) { warnings = append(warnings, msg) },
		})
	} else {
		entries, err = datasource.Load(m.dataPath)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Reload error: %v", err)
		m.statusIsError = true
		return m, rearm()
	}

	m.entries = entries
	m.rebuildOutline()
	m.stats = ComputeStats(entries)

	m.statusMsg = fmt.Sprintf("Reloaded %d entries", len(entries))
	if len(warnings) > 0 {
		m.statusMsg += fmt.Sprintf(" (%d warnings)", len(warnings))
	}
	m.statusIsError = false
	if debug.Enabled() {
		debug.LogTiming("ui.reload", time.Since(start))
	}
	return m, rearm()
}

// rebuildOutline swaps in a fresh view over m.entries, carrying over the
// view state that should survive a reload: collapsed subtrees, the active
// sort, the cursor entry, and the confirmed filter.
func (m *Model) rebuildOutline() {
	var cursorID string
	if cur := m.view.Cursor(); cur != nil && cur.Data() != nil {
		cursorID = cur.Data().ID
	}
	collapsed := make(map[string]bool)
	m.view.Tree().Walk(func(n *treeview.Node[model.Entry]) treeview.Visit {
		if n.Collapsed() && n.Data() != nil {
			collapsed[n.Data().ID] = true
		}
		return treeview.Continue
	})

	view, nodeByID := NewOutlineView(m.entries, m.theme)
	wireOutlineCallbacks(view)
	m.applyViewConfig(view)
	view.SetViewport(m.bodyWidth(), m.bodyHeight())
	for id := range collapsed {
		if n := nodeByID[id]; n != nil {
			view.Collapse(n)
		}
	}
	if m.sortColumn >= 0 {
		view.SortBy(m.sortColumn, m.sortState)
	}
	m.view = view
	m.nodeByID = nodeByID
	if cursorID != "" {
		if n := nodeByID[cursorID]; n != nil {
			view.Select(n)
			view.EnsureVisible(n)
		}
	}
	m.applyFilter(m.filterQuery)
}

func (m Model) handleOutlineMouse(msg tea.MouseMsg) Model {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.ScrollBy(-3)
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.ScrollBy(3)
	default:
		pt := treeview.Point{X: msg.X, Y: msg.Y - headerLines}
		switch {
		case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
			now := time.Now()
			double := pt == m.lastClickPos && now.Sub(m.lastClickTime) < doubleClickWindow
			m.lastClickTime = now
			m.lastClickPos = pt
			m.view.HandleMouse(treeview.MouseEvent{
				Pos:    pt,
				Kind:   treeview.MousePress,
				Double: double,
				Ctrl:   msg.Ctrl,
				Shift:  msg.Shift,
			})
		case msg.Action == tea.MouseActionRelease:
			m.view.HandleMouse(treeview.MouseEvent{Pos: pt, Kind: treeview.MouseRelease})
		case msg.Action == tea.MouseActionMotion:
			m.view.HandleMouse(treeview.MouseEvent{Pos: pt, Kind: treeview.MouseMove})
		}
	}
	return m
}

func (m Model) handleOutlineKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.watcher != nil {
			m.watcher.Stop()
		}
		return m, tea.Quit

	case "j", "down":
		m.view.HandleKey(treeview.KeyEvent{Key: treeview.KeyDown})
	case "k", "up":
		m.view.HandleKey(treeview.KeyEvent{Key: treeview.KeyUp})
	case "h", "left":
		m.view.HandleKey(treeview.KeyEvent{Key: treeview.KeyLeft})
	case "l", "right":
		m.view.HandleKey(treeview.KeyEvent{Key: treeview.KeyRight})

	case "g":
		if roots := m.view.Tree().Roots(); len(roots) > 0 {
			m.view.Select(roots[0])
			m.view.EnsureVisible(roots[0])
		}
	case "G":
		if n := m.lastVisibleNode(); n != nil {
			m.view.Select(n)
			m.view.EnsureVisible(n)
		}

	case "ctrl+d":
		m.view.ScrollBy(m.bodyHeight() / 2)
	case "ctrl+u":
		m.view.ScrollBy(-m.bodyHeight() / 2)

	case "enter", " ":
		if cur := m.view.Cursor(); cur != nil {
			if cur.Collapsed() {
				m.view.Expand(cur)
			} else {
				m.view.Collapse(cur)
			}
		}
	case "E":
		m.view.ExpandAll()
	case "W":
		m.view.CollapseAll()

	case "x":
		if cur := m.view.Cursor(); cur != nil {
			m.view.Multiselect(cur)
		}

	case "c":
		if cur := m.view.Cursor(); cur != nil && cur.Data() != nil {
			id := cur.Data().ID
			if err := clipboard.WriteAll(id); err != nil {
				m.statusMsg = fmt.Sprintf("Copy failed: %v", err)
				m.statusIsError = true
			} else {
				m.statusMsg = fmt.Sprintf("Copied %s", id)
			}
		}

	case "s":
		m.cycleSortColumn()
	case "S":
		m.reverseSortColumn()

	case "/":
		m.focused = focusFilter
		m.filterInput.SetValue(m.filterQuery)
		m.filterInput.Focus()
		return m, textinput.Blink
	case "n":
		m.jumpToMatch(1)
	case "N":
		m.jumpToMatch(-1)

	case "i":
		m.focused = focusInsights
		m.stats = ComputeStats(m.entries)
		m.refreshInsights()
	case "?", "f1":
		m.focused = focusHelp

	case "ctrl+r", "f5":
		now := time.Now()
		if !m.lastForceRefresh.IsZero() && now.Sub(m.lastForceRefresh) < time.Second {
			return m, nil
		}
		m.lastForceRefresh = now
		return m, func() tea.Msg { return FileChangedMsg{} }

	case "esc":
		if m.filterQuery != "" {
			m.applyFilter("")
			m.filterInput.SetValue("")
		} else {
			m.view.DeselectAll()
		}
	}
	return m, nil
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.applyFilter("")
		m.focused = focusOutline
		return m, nil
	case "enter":
		m.filterInput.Blur()
		m.focused = focusOutline
		if m.filterQuery != "" && len(m.filterMatches) == 0 {
			m.statusMsg = fmt.Sprintf("No matches for %q", m.filterQuery)
		}
		return m, nil
	case "down", "ctrl+n":
		m.jumpToMatch(1)
		return m, nil
	case "up", "ctrl+p":
		m.jumpToMatch(-1)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if q := m.filterInput.Value(); q != m.filterQuery {
		m.applyFilter(q)
		if len(m.filterMatches) > 0 {
			m.jumpToMatch(0)
		}
	}
	return m, cmd
}

func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "f1":
		m.focused = focusOutline
	}
	return m, nil
}

func (m Model) handleInsightsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "i":
		m.focused = focusOutline
		return m, nil
	}
	var cmd tea.Cmd
	m.insightsVP, cmd = m.insightsVP.Update(msg)
	return m, cmd
}

// cycleSortColumn advances the active sort to the next sortable column,
// ascending. Sorting is sticky: once a sibling order has been sorted the
// engine cannot restore the original order, so the cycle never returns
// to an unsorted state.
func (m *Model) cycleSortColumn() {
	cols := m.view.Columns()
	if len(cols) == 0 {
		return
	}
	for i := 1; i <= len(cols); i++ {
		idx := (m.sortColumn + i) % len(cols)
		if idx < 0 {
			idx += len(cols)
		}
		if cols[idx].Sortable() {
			m.sortColumn = idx
			m.sortState = treeview.Ascending
			m.view.SortBy(idx, treeview.Ascending)
			m.statusMsg = fmt.Sprintf("Sorted by %s ↑", m.columnName(idx))
			return
		}
	}
}

// reverseSortColumn flips the direction of the active sort column.
func (m *Model) reverseSortColumn() {
	if m.sortColumn < 0 {
		m.cycleSortColumn()
		return
	}
	if m.sortState == treeview.Ascending {
		m.sortState = treeview.Descending
	} else {
		m.sortState = treeview.Ascending
	}
	m.view.SortBy(m.sortColumn, m.sortState)
	arrow := "↑"
	if m.sortState == treeview.Descending {
		arrow = "↓"
	}
	m.statusMsg = fmt.Sprintf("Sorted by %s %s", m.columnName(m.sortColumn), arrow)
}

func (m *Model) columnName(i int) string {
	col := m.view.ColumnAt(i)
	if col == nil {
		return "?"
	}
	if tc, ok := col.Title().(*treeview.TextCell); ok && tc.Text != "" {
		return tc.Text
	}
	return fmt.Sprintf("column %d", i+1)
}

// applyFilter recomputes the match set for a title substring query. An
// empty query clears the filter. The cursor is left alone; callers jump
// to a match explicitly.
func (m *Model) applyFilter(query string) {
	m.filterQuery = query
	m.filterMatches = nil
	m.filterIndex = 0
	if query == "" {
		return
	}
	q := strings.ToLower(query)
	m.view.Tree().Walk(func(n *treeview.Node[model.Entry]) treeview.Visit {
		if e := n.Data(); e != nil && strings.Contains(strings.ToLower(e.Title), q) {
			m.filterMatches = append(m.filterMatches, n)
		}
		return treeview.Continue
	})
}

// jumpToMatch moves the cursor to the match filterIndex+step away,
// wrapping at both ends and expanding ancestors so the match is visible.
func (m *Model) jumpToMatch(step int) {
	n := len(m.filterMatches)
	if n == 0 {
		return
	}
	m.filterIndex = ((m.filterIndex+step)%n + n) % n
	match := m.filterMatches[m.filterIndex]
	for p := match.Parent(); p != nil; p = p.Parent() {
		m.view.Expand(p)
	}
	m.view.Select(match)
	m.view.EnsureVisible(match)
}

// lastVisibleNode descends the last root through expanded children to the
// bottom row of the outline.
func (m Model) lastVisibleNode() *treeview.Node[model.Entry] {
	roots := m.view.Tree().Roots()
	if len(roots) == 0 {
		return nil
	}
	n := roots[len(roots)-1]
	for len(n.Children()) > 0 && !n.Collapsed() {
		ch := n.Children()
		n = ch[len(ch)-1]
	}
	return n
}

func (m Model) bodyWidth() int {
	w := m.width - 1
	if w < 10 {
		w = 10
	}
	return w
}

func (m Model) bodyHeight() int {
	h := m.height - headerLines - footerLines
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var body string
	switch m.focused {
	case focusHelp:
		body = m.renderHelpOverlay()
	case focusInsights:
		body = m.insightsVP.View()
	default:
		body = m.renderOutline()
	}

	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)

	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	))
}

// renderOutline paints the tree into the cell grid and returns it as
// styled terminal lines, with a scrollbar gutter on the right edge.
func (m Model) renderOutline() string {
	m.painter.Reset()
	m.view.Draw(m.painter, treeview.Rect{W: m.bodyWidth(), H: m.bodyHeight()})
	m.drawScrollbar()
	return m.painter.Render()
}

// drawScrollbar paints a one column gutter at the right edge of the body
// from the view's vertical scrollbar state.
func (m Model) drawScrollbar() {
	sb := m.view.VerticalScrollbar()
	if sb == nil || !sb.Visible() {
		return
	}
	h := m.bodyHeight()
	virtual := m.view.VirtualSize().H
	if virtual <= h || h < 1 {
		return
	}
	x := m.width - 1
	track := m.theme.Resolve(m.theme.GridLine)
	thumb := m.theme.Resolve(m.theme.Marker)
	for y := 0; y < h; y++ {
		m.painter.Text(treeview.Point{X: x, Y: y}, "│", track)
	}
	thumbH := h * h / virtual
	if thumbH < 1 {
		thumbH = 1
	}
	if thumbH > h {
		thumbH = h
	}
	top := int(sb.Value()*float64(h-thumbH) + 0.5)
	for y := top; y < top+thumbH && y < h; y++ {
		m.painter.Text(treeview.Point{X: x, Y: y}, "█", thumb)
	}
}

func (m Model) renderHeader() string {
	t := m.theme
	title := t.Header.Render(" trellis ")
	src := ""
	if m.dataPath != "" {
		src = " " + t.MutedText.Render(truncate(m.dataPath, 48))
	}
	var filter string
	if m.focused == focusFilter {
		filter = "  " + m.filterInput.View()
	} else if m.filterQuery != "" {
		pos := fmt.Sprintf("%d/%d", m.filterIndex+1, len(m.filterMatches))
		if len(m.filterMatches) == 0 {
			pos = "no matches"
		}
		filter = "  " + t.FilterMatch.Render("/"+m.filterQuery) +
			t.MutedText.Render(" "+pos)
	}
	return title + src + filter
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		msgStyle := m.theme.StatusInfo
		prefix := "✓ "
		if m.statusIsError {
			msgStyle = m.theme.StatusError
			prefix = "✗ "
		}
		msgSection := msgStyle.Render(prefix + m.statusMsg)
		remaining := m.width - lipgloss.Width(msgSection)
		if remaining < 0 {
			remaining = 0
		}
		filler := lipgloss.NewStyle().Width(remaining).Render("")
		return lipgloss.JoinHorizontal(lipgloss.Bottom, msgSection, filler)
	}

	keyStyle := m.theme.MutedText
	labelStyle := m.theme.Footer

	type hint struct {
		key   string
		label string
	}
	var hints []hint
	switch m.focused {
	case focusFilter:
		hints = []hint{{"enter", "confirm"}, {"esc", "cancel"}, {"↑/↓", "match"}}
	case focusHelp:
		hints = []hint{{"?", "close"}}
	case focusInsights:
		hints = []hint{{"j/k", "scroll"}, {"esc", "close"}}
	default:
		hints = []hint{
			{"j/k", "nav"},
			{"h/l", "fold"},
			{"s", "sort"},
			{"/", "filter"},
			{"i", "insights"},
			{"?", "help"},
			{"q", "quit"},
		}
	}

	var hintParts []string
	for _, h := range hints {
		hintParts = append(hintParts, keyStyle.Render(h.key)+":"+labelStyle.Render(h.label))
	}
	shortcutBar := " " + strings.Join(hintParts, "  ")

	summary := ""
	if m.focused == focusOutline {
		summary = m.footerSummary()
	}

	remaining := m.width - lipgloss.Width(shortcutBar) - lipgloss.Width(summary)
	if remaining < 0 {
		remaining = 0
	}
	filler := lipgloss.NewStyle().Width(remaining).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, shortcutBar, filler, summary)
}

func (m Model) footerSummary() string {
	s := m.stats.FooterSummary()
	if n := len(m.view.Selected()); n > 1 {
		s = fmt.Sprintf("%d selected · %s", n, s)
	}
	return m.theme.MutedText.Render(s + " ")
}

func (m Model) renderHelpOverlay() string {
	t := m.theme
	row := func(k, desc string) string {
		return fmt.Sprintf("  %s %s", t.PrimaryBold.Render(padRight(k, 9)), t.Base.Render(desc))
	}
	lines := []string{
		t.PrimaryBold.Render("  trellis keys"),
		"",
		row("j/k ↓/↑", "move cursor"),
		row("h/l ←/→", "collapse / expand"),
		row("enter", "toggle fold"),
		row("g / G", "first / last row"),
		row("ctrl+d/u", "half page scroll"),
		row("E / W", "expand all / collapse all"),
		row("x", "mark row"),
		row("s / S", "sort next column / reverse"),
		row("/", "filter titles"),
		row("n / N", "next / previous match"),
		row("c", "copy entry id"),
		row("i", "insights"),
		row("ctrl+r", "reload from disk"),
		row("q", "quit"),
		"",
		t.MutedText.Render("  press ? or esc to close"),
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, box)
}

// refreshInsights renders the stats report through glamour into the
// insights viewport. Render failures fall back to the raw markdown.
func (m *Model) refreshInsights() {
	wrap := m.width - 4
	if wrap > 80 {
		wrap = 80
	}
	if wrap < 20 {
		wrap = 20
	}
	md := m.stats.Markdown()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.insightsVP.SetContent(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		m.insightsVP.SetContent(md)
		return
	}
	m.insightsVP.SetContent(out)
	m.insightsVP.GotoTop()
}
