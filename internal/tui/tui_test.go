package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

type cells struct {
	rows [][]any
}

func (c *cells) RowCount() int               { return len(c.rows) }
func (c *cells) ColCount() int               { return 2 }
func (c *cells) ColLabel(col int) string     { return []string{"name", "level"}[col] }
func (c *cells) Cell(row, col int) any       { return c.rows[row][col] }
func (c *cells) SetCell(row, col int, v any) { c.rows[row][col] = v }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTextFieldKeys(t *testing.T) {
	f := NewTextField("name")
	var events int
	f.On(widget.EventText, func(e *widget.Event) { events++ })

	assert.True(t, f.HandleKey(runes("Bo")))
	assert.True(t, f.HandleKey(tea.KeyMsg{Type: tea.KeySpace}))
	assert.True(t, f.HandleKey(runes("ké")))
	assert.True(t, f.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.False(t, f.HandleKey(tea.KeyMsg{Type: tea.KeyUp}))

	assert.Equal(t, "Bo k", f.Value())
	assert.Equal(t, 4, events)
}

func TestFocusSkipsHiddenAndDisabled(t *testing.T) {
	a, b, c := NewTextField("a"), NewTextField("b"), NewCheckBox("c")
	inner := NewPanel(b)
	f := NewFrame("t", a, inner, c)

	f.FocusNext(false)
	assert.Same(t, a, f.Focused())
	f.FocusNext(false)
	assert.Same(t, b, f.Focused())

	inner.Show(false)
	a.Enable(false)
	f.FocusNext(false)
	assert.Same(t, c, f.Focused())
	f.FocusNext(false)
	assert.Same(t, c, f.Focused())

	a.Enable(true)
	f.FocusNext(true)
	assert.Same(t, a, f.Focused())
	assert.True(t, a.HasFocus())
	assert.False(t, c.HasFocus())
}

func TestSetFocusInsideFrame(t *testing.T) {
	a, b := NewTextField("a"), NewTextField("b")
	f := NewFrame("t", a, NewPanel(b))

	a.SetFocus()
	b.SetFocus()

	assert.False(t, a.HasFocus())
	assert.Same(t, b, f.Focused())
}

func TestFrameClose(t *testing.T) {
	f := NewFrame("t")
	veto := true
	f.On(widget.EventClose, func(e *widget.Event) {
		if veto {
			e.Veto()
			return
		}
		e.Skip()
	})

	assert.False(t, f.Close())
	assert.False(t, f.Closed())

	veto = false
	assert.True(t, f.Close())
	assert.True(t, f.Closed())
}

func TestDestroyCascades(t *testing.T) {
	a := NewTextField("a")
	f := NewFrame("t", NewPanel(a))
	var destroyed int
	a.On(widget.EventDestroy, func(e *widget.Event) { destroyed++ })

	f.Destroy()
	f.Destroy()

	assert.True(t, a.Destroyed())
	assert.Equal(t, 1, destroyed)
}

func TestPanelBestSizeCached(t *testing.T) {
	l := NewLabel("hello")
	p := NewPanel(l)

	s := p.BestSize()
	assert.Equal(t, 1, s.H)

	l.SetLabel("hello world")
	assert.Equal(t, s, p.BestSize())

	p.InvalidateBestSize()
	assert.Greater(t, p.BestSize().W, s.W)

	l.Show(false)
	p.Layout()
	assert.Equal(t, 0, p.BestSize().H)
	assert.Equal(t, 1, p.Layouts())
}

func TestPanelViewSkipsHidden(t *testing.T) {
	name := NewLabel("Bouke")
	club := NewLabel("Thialf")
	var c Component = club
	p := NewPanel(name, club)
	st := GetTheme("minimal").Styles()

	assert.Contains(t, p.View(st), "Thialf")

	club.Show(false)
	assert.False(t, c.IsShown())
	assert.Contains(t, p.View(st), "Bouke")
	assert.NotContains(t, p.View(st), "Thialf")
}

func TestGridEditing(t *testing.T) {
	g := NewGrid(5)
	g.SetTable(&cells{rows: [][]any{{"Bouke", 3}, {"Arie", 5}}})
	var changed []int
	g.On(widget.EventCellChanged, func(e *widget.Event) { changed = append(changed, e.Row, e.Col) })

	require.True(t, g.HandleKey(runes("K")))
	assert.True(t, g.IsCellEditControlEnabled())
	g.HandleKey(runes("ees"))
	assert.Equal(t, "Kees", g.EditText())

	g.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, g.IsCellEditControlEnabled())
	assert.Equal(t, "Kees", g.Table().Cell(0, 0))
	assert.Equal(t, []int{0, 0}, changed)
	assert.Equal(t, 1, g.CursorRow())
}

func TestGridUnchangedEditIsSilent(t *testing.T) {
	g := NewGrid(5)
	g.SetTable(&cells{rows: [][]any{{"Bouke", 3}}})
	var changed int
	g.On(widget.EventCellChanged, func(e *widget.Event) { changed++ })

	g.EnableCellEditControl()
	g.DisableCellEditControl()
	g.TypeInCell("x")
	g.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, 0, changed)
	assert.Equal(t, "Bouke", g.Table().Cell(0, 0))
}

func TestGridVetoKeepsCursor(t *testing.T) {
	g := NewGrid(5)
	g.SetTable(&cells{rows: [][]any{{"a", 1}, {"b", 2}}})
	g.On(widget.EventSelectCell, func(e *widget.Event) {
		if e.Row == 1 {
			e.Veto()
			return
		}
		e.Skip()
	})

	g.MoveBy(1, 0)
	assert.Equal(t, 0, g.CursorRow())
	g.MoveBy(0, 1)
	assert.Equal(t, 1, g.CursorCol())
	g.MoveBy(0, 5)
	assert.Equal(t, 1, g.CursorCol())
}

func TestGridHandledKeySkipsDefault(t *testing.T) {
	g := NewGrid(5)
	g.SetTable(&cells{rows: [][]any{{"a", 1}, {"b", 2}}})
	g.On(widget.EventKeyDown, func(e *widget.Event) {})

	g.PressKey(widget.KeyDown)
	assert.Equal(t, 0, g.CursorRow())
}

func TestListClick(t *testing.T) {
	l := NewListCtrl()
	l.SetItemCount(4)
	var log []string
	l.On(widget.EventItemSelected, func(e *widget.Event) { log = append(log, "+"+string(rune('0'+e.Row))); e.Skip() })
	l.On(widget.EventItemDeselected, func(e *widget.Event) { log = append(log, "-"+string(rune('0'+e.Row))); e.Skip() })

	l.Click(1, false)
	l.Click(3, true)
	l.Click(1, true)
	l.Click(2, false)

	assert.Equal(t, []string{"+1", "+3", "-1", "-3", "+2"}, log)
	assert.Equal(t, []int{2}, l.SelectedIndices())

	l.SetSelected(3, true)
	l.SetItemCount(3)
	assert.Equal(t, []int{2}, l.SelectedIndices())
}

func TestComboSuggestions(t *testing.T) {
	c := NewCombo("club")
	c.Append("Thialf", 1)
	c.Append("Haarlem", 2)

	assert.True(t, c.SetStringSelection("Haarlem"))
	assert.Equal(t, 1, c.Selection())
	assert.Equal(t, 2, c.ClientData(1))
	assert.Nil(t, c.ClientData(5))

	c.TypeText("Th")
	assert.Equal(t, -1, c.Selection())

	c.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, c.Selection())
	assert.Equal(t, "Thialf", c.Value())
}

func TestHostRoutesKeys(t *testing.T) {
	a, b := NewTextField("a"), NewTextField("b")
	f := NewFrame("t", a, b)
	h := NewHost(f, sched.NewQueue(), GetTheme("retro"))
	var unused []string
	h.OnKey = func(msg tea.KeyMsg) bool {
		unused = append(unused, msg.String())
		return true
	}

	h.Init()
	assert.Same(t, a, f.Focused())

	h.Update(runes("x"))
	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.Update(runes("y"))
	h.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.Equal(t, "x", a.Value())
	assert.Equal(t, "y", b.Value())
	assert.Equal(t, []string{"ctrl+s"}, unused)

	_, cmd := h.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})
	assert.True(t, f.Closed())
	require.NotNil(t, cmd)
	assert.Contains(t, h.View(), "t")
}

func TestHostDrainsPostedWork(t *testing.T) {
	q := sched.NewQueue()
	l := NewLabel("")
	h := NewHost(NewFrame("t", l), q, ThemeOcean)

	q.Post(func() { l.SetLabel("posted") })
	assert.Equal(t, "", l.Label())

	h.Update(wakeMsg{})
	assert.Equal(t, "posted", l.Label())
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, "minimal", GetTheme("minimal").Name)
	assert.Equal(t, "ocean", GetTheme("nope").Name)
	assert.Equal(t, []string{"ocean", "retro", "minimal"}, ThemeNames())
}
