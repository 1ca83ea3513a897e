package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wrqqqr/todoList/internal/engine"
	"github.com/wrqqqr/todoList/internal/logger"
	"github.com/wrqqqr/todoList/models"
)

type boardMode int

const (
	modeNormal boardMode = iota
	modeAdd
	modeSearch
	modeEdit
	modeGrab
)

// grab tracks a task picked up with "m". The target is a slot among the
// visible rows of the target collection, the grabbed row excluded.
type grab struct {
	id     string
	src    models.Location
	target models.CollectionID
	slot   int
}

// Board is the interactive two-column view. It drives the engine from the
// bubbletea update loop, so the engine only ever sees one goroutine.
type Board struct {
	eng    *engine.Engine
	focus  models.CollectionID
	cursor map[models.CollectionID]int

	mode      boardMode
	input     textinput.Model
	editingID string
	grabbed   *grab

	status     string
	lastChange *engine.Change
	unsub      func()
	width      int
}

// NewBoard creates a board over eng.
func NewBoard(eng *engine.Engine) *Board {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500

	b := &Board{
		eng:    eng,
		focus:  models.CollectionActive,
		cursor: map[models.CollectionID]int{},
		input:  ti,
	}
	b.unsub = eng.Subscribe(func(ch engine.Change) {
		b.lastChange = &ch
	})
	return b
}

// RunBoard runs the board full-screen until the user quits.
func RunBoard(eng *engine.Engine) error {
	b := NewBoard(eng)
	defer b.Close()

	if _, err := tea.NewProgram(b, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

// Close drops the engine subscription.
func (b *Board) Close() {
	if b.unsub != nil {
		b.unsub()
		b.unsub = nil
	}
}

func (b *Board) Init() tea.Cmd {
	return nil
}

func (b *Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		return b, nil
	case tea.KeyMsg:
		logger.SetLastInput("board key: " + msg.String())
		if msg.Type == tea.KeyCtrlC {
			return b, tea.Quit
		}
		b.status = ""
		switch b.mode {
		case modeAdd, modeSearch, modeEdit:
			return b, b.updateInput(msg)
		case modeGrab:
			b.updateGrab(msg)
			return b, nil
		default:
			return b, b.updateNormal(msg)
		}
	}
	// Cursor blinks and other textinput ticks.
	if b.inputActive() {
		var cmd tea.Cmd
		b.input, cmd = b.input.Update(msg)
		return b, cmd
	}
	return b, nil
}

func (b *Board) inputActive() bool {
	return b.mode == modeAdd || b.mode == modeSearch || b.mode == modeEdit
}

func (b *Board) updateNormal(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "tab":
		b.focus = b.focus.Other()
	case "left", "h":
		b.focus = models.CollectionActive
	case "right", "l":
		b.focus = models.CollectionCompleted
	case "up", "k":
		b.setCursor(b.cursorRow() - 1)
	case "down", "j":
		b.setCursor(b.cursorRow() + 1)
	case "a":
		return b.startInput(modeAdd, b.eng.DraftText())
	case "/":
		return b.startInput(modeSearch, b.eng.SearchQuery())
	case "e":
		if t, ok := b.selected(); ok {
			b.editingID = t.ID
			return b.startInput(modeEdit, t.Text)
		}
	case " ", "space", "x":
		if t, ok := b.selected(); ok && b.eng.ToggleTask(t.ID) {
			b.status = "toggled"
		}
	case "d":
		if t, ok := b.selected(); ok && b.eng.DeleteTask(t.ID) {
			b.status = "deleted"
		}
	case "K":
		b.nudge(-1)
	case "J":
		b.nudge(1)
	case "m":
		b.startGrab()
	}
	b.clampCursors()
	return nil
}

func (b *Board) startInput(mode boardMode, value string) tea.Cmd {
	b.mode = mode
	b.input.SetValue(value)
	b.input.CursorEnd()
	switch mode {
	case modeAdd:
		b.input.Placeholder = "new task"
	case modeSearch:
		b.input.Placeholder = "filter"
	case modeEdit:
		b.input.Placeholder = "task text"
	}
	return b.input.Focus()
}

func (b *Board) stopInput() {
	b.mode = modeNormal
	b.editingID = ""
	b.input.Blur()
	b.input.SetValue("")
	b.clampCursors()
}

func (b *Board) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		b.submitInput()
		return nil
	case tea.KeyEsc:
		if b.mode == modeSearch {
			b.eng.SetSearchQuery("")
		}
		b.stopInput()
		return nil
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	switch b.mode {
	case modeAdd:
		b.eng.SetDraftText(b.input.Value())
	case modeSearch:
		b.eng.SetSearchQuery(b.input.Value())
		b.clampCursors()
	}
	return cmd
}

func (b *Board) submitInput() {
	value := b.input.Value()
	switch b.mode {
	case modeAdd:
		b.eng.SetDraftText(value)
		if _, ok := b.eng.AddTask(); ok {
			b.status = "added"
			b.focus = models.CollectionActive
			b.setCursor(len(b.visible(models.CollectionActive)) - 1)
		} else {
			b.status = "nothing to add"
		}
	case modeSearch:
		b.eng.SetSearchQuery(value)
	case modeEdit:
		if b.eng.EditTask(b.editingID, value) {
			b.status = "edited"
		}
	}
	b.stopInput()
}

// nudge swaps the selected task with its visible neighbour in direction dir.
func (b *Board) nudge(dir int) {
	rows := b.visible(b.focus)
	row := b.cursorRow()
	next := row + dir
	if row < 0 || row >= len(rows) || next < 0 || next >= len(rows) {
		return
	}

	src, ok := b.eng.Locate(rows[row].ID)
	if !ok {
		return
	}
	neighbour, ok := b.eng.Locate(rows[next].ID)
	if !ok {
		return
	}
	// Indices are post-removal: moving down lands after the neighbour,
	// whose index drops by one once the source is removed.
	dst := models.Location{Collection: b.focus, Index: neighbour.Index}
	if b.eng.MoveTask(src, &dst) == engine.MoveApplied {
		b.setCursor(next)
	}
}

func (b *Board) startGrab() {
	t, ok := b.selected()
	if !ok {
		return
	}
	src, ok := b.eng.Locate(t.ID)
	if !ok {
		return
	}
	b.grabbed = &grab{id: t.ID, src: src, target: b.focus, slot: b.cursorRow()}
	b.mode = modeGrab
	b.status = "moving: ↑/↓ choose slot, tab switch column, enter drop, esc cancel"
}

func (b *Board) updateGrab(msg tea.KeyMsg) {
	g := b.grabbed
	switch msg.String() {
	case "up", "k":
		if g.slot > 0 {
			g.slot--
		}
	case "down", "j":
		if g.slot < len(b.dropRows(g.target)) {
			g.slot++
		}
	case "tab", "left", "right", "h", "l":
		g.target = g.target.Other()
		g.slot = min(g.slot, len(b.dropRows(g.target)))
	case "enter":
		dst := b.dropLocation(g)
		outcome := b.eng.MoveTask(g.src, &dst)
		b.status = "move " + outcome.String()
		if outcome == engine.MoveApplied {
			b.focus = g.target
			b.setCursor(g.slot)
		}
		b.endGrab()
	case "esc", "q":
		b.status = "move " + b.eng.MoveTask(g.src, nil).String()
		b.endGrab()
	}
}

func (b *Board) endGrab() {
	b.grabbed = nil
	b.mode = modeNormal
	b.clampCursors()
}

// dropRows is the visible rows of c without the grabbed task.
func (b *Board) dropRows(c models.CollectionID) []models.Task {
	rows := b.visible(c)
	if b.grabbed == nil {
		return rows
	}
	out := make([]models.Task, 0, len(rows))
	for _, t := range rows {
		if t.ID != b.grabbed.id {
			out = append(out, t)
		}
	}
	return out
}

// dropLocation translates a visible slot into a post-removal engine index.
// Slots past the last visible row land right after it, ahead of any hidden tasks.
func (b *Board) dropLocation(g *grab) models.Location {
	rows := b.dropRows(g.target)
	postRemoval := func(id string) int {
		loc, _ := b.eng.Locate(id)
		if g.target == g.src.Collection && loc.Index > g.src.Index {
			return loc.Index - 1
		}
		return loc.Index
	}

	switch {
	case g.slot < len(rows):
		return models.Location{Collection: g.target, Index: postRemoval(rows[g.slot].ID)}
	case len(rows) > 0:
		return models.Location{Collection: g.target, Index: postRemoval(rows[len(rows)-1].ID) + 1}
	default:
		n := len(b.eng.Snapshot().Collection(g.target))
		if g.target == g.src.Collection {
			n--
		}
		return models.Location{Collection: g.target, Index: n}
	}
}

func (b *Board) visible(c models.CollectionID) []models.Task {
	return b.eng.QueryVisible().Collection(c)
}

func (b *Board) selected() (models.Task, bool) {
	rows := b.visible(b.focus)
	row := b.cursorRow()
	if row < 0 || row >= len(rows) {
		return models.Task{}, false
	}
	return rows[row], true
}

func (b *Board) cursorRow() int {
	return b.cursor[b.focus]
}

func (b *Board) setCursor(row int) {
	n := len(b.visible(b.focus))
	b.cursor[b.focus] = max(0, min(row, n-1))
}

func (b *Board) clampCursors() {
	for _, c := range models.Collections() {
		n := len(b.visible(c))
		b.cursor[c] = max(0, min(b.cursor[c], n-1))
	}
}

func (b *Board) View() string {
	colWidth := 38
	if b.width > 0 {
		colWidth = max(20, b.width/2-4)
	}

	var cols []string
	for _, c := range models.Collections() {
		border := ColorSecondary
		if (c == b.focus && b.mode != modeGrab) || (b.grabbed != nil && b.grabbed.target == c) {
			border = ColorPrimary
		}
		title := fmt.Sprintf("%s (%d)", collectionTitle(c), len(b.visible(c)))
		cols = append(cols, NewPanel(title, b.renderColumn(c, colWidth-4)).
			WithBorderColor(border).
			WithWidth(colWidth).
			Render())
	}

	var sb strings.Builder
	sb.WriteString(StyleHeader.Render("todolist") + "\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...) + "\n")

	switch b.mode {
	case modeAdd:
		sb.WriteString(StyleInputMode.Render("add ") + b.input.View() + "\n")
	case modeSearch:
		sb.WriteString(StyleInputMode.Render("search ") + b.input.View() + "\n")
	case modeEdit:
		sb.WriteString(StyleInputMode.Render("edit ") + b.input.View() + "\n")
	default:
		if q := b.eng.SearchQuery(); q != "" {
			sb.WriteString(StyleSubtle.Render(fmt.Sprintf("filter: %q", q)) + "\n")
		}
	}

	switch {
	case b.status != "":
		sb.WriteString(StyleSuccess.Render(b.status) + "\n")
	case b.lastChange != nil:
		sb.WriteString(StyleSubtle.Render(fmt.Sprintf("last change: %s", b.lastChange.Kind)) + "\n")
	}
	sb.WriteString(StyleHelp.Render(b.helpLine()) + "\n")
	return sb.String()
}

func (b *Board) renderColumn(c models.CollectionID, width int) string {
	var lines []string
	rows := b.visible(c)
	if b.mode == modeGrab {
		rows = b.dropRows(c)
	}

	for i, t := range rows {
		if b.mode == modeGrab && b.grabbed.target == c && b.grabbed.slot == i {
			lines = append(lines, StyleDropSlot.Render("  ── drop here ──"))
		}
		lines = append(lines, b.renderRow(c, i, t, width))
	}
	if b.mode == modeGrab && b.grabbed.target == c && b.grabbed.slot >= len(rows) {
		lines = append(lines, StyleDropSlot.Render("  ── drop here ──"))
	}
	if b.mode == modeGrab && b.grabbed.src.Collection == c {
		if t, ok := b.eng.Get(b.grabbed.id); ok {
			lines = append(lines, StyleGrabbed.Render("  ✋ "+fit(t.Text, width-4)))
		}
	}

	if len(lines) == 0 {
		return StyleSubtle.Render("nothing here")
	}
	return strings.Join(lines, "\n")
}

func (b *Board) renderRow(c models.CollectionID, i int, t models.Task, width int) string {
	text := t.Text
	if strings.TrimSpace(text) == "" {
		text = "(empty)"
	}
	line := Checkbox(t.Completed) + " " + fit(text, width-6)

	if t.Completed {
		line = StyleDone.Render(line)
	}
	if b.mode != modeGrab && c == b.focus && i == b.cursorRow() {
		return StyleCursor.Render("› ") + line
	}
	return "  " + line
}

func (b *Board) helpLine() string {
	switch b.mode {
	case modeAdd, modeEdit:
		return "enter save • esc cancel"
	case modeSearch:
		return "enter keep filter • esc clear"
	case modeGrab:
		return "↑/↓ slot • tab column • enter drop • esc cancel"
	default:
		return "a add • / search • e edit • space toggle • d delete • K/J reorder • m move • tab switch • q quit"
	}
}
