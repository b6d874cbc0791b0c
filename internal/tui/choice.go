package tui

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/viewbind/internal/widget"
)

// Choice is a single-selection drop-down.
type Choice struct {
	Base
	label     string
	items     []string
	selection int
}

func NewChoice(label string) *Choice {
	return &Choice{label: label, selection: -1}
}

func (c *Choice) Items() []string { return c.items }
func (c *Choice) Selection() int  { return c.selection }
func (c *Choice) Focusable() bool { return c.interactive() }

// SetItems replaces the items. The selection index is kept while it is still
// in range.
func (c *Choice) SetItems(items []string) {
	c.items = slices.Clone(items)
	if c.selection >= len(c.items) {
		c.selection = -1
	}
}

func (c *Choice) SetSelection(i int) {
	if i < -1 || i >= len(c.items) {
		return
	}
	c.selection = i
}

// Pick selects item i as if the user chose it.
func (c *Choice) Pick(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.selection = i
	c.emit(widget.EventChoice, func(e *widget.Event) { e.Selection = i })
}

func (c *Choice) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		c.Pick(c.selection - 1)
	case tea.KeyRight, tea.KeyDown:
		c.Pick(c.selection + 1)
	default:
		return false
	}
	return true
}

func (c *Choice) View(st Styles) string {
	text := "—"
	if c.selection >= 0 {
		text = c.items[c.selection]
	}
	return c.render(st, c.label, "‹ "+text+" ›")
}

type comboItem struct {
	text string
	data any
}

// Combo is a text field with a list of suggestions carrying client data.
type Combo struct {
	Base
	label     string
	value     string
	items     []comboItem
	selection int
	frozen    int
	popped    bool
}

func NewCombo(label string) *Combo {
	return &Combo{label: label, selection: -1}
}

func (c *Combo) Value() string     { return c.value }
func (c *Combo) SetValue(s string) { c.value = s }
func (c *Combo) Selection() int    { return c.selection }
func (c *Combo) Count() int        { return len(c.items) }
func (c *Combo) Focusable() bool   { return c.interactive() }
func (c *Combo) Freeze()           { c.frozen++ }
func (c *Combo) Thaw()             { c.frozen = max(0, c.frozen-1) }
func (c *Combo) Frozen() bool      { return c.frozen > 0 }
func (c *Combo) Popup()            { c.popped = true }
func (c *Combo) PoppedUp() bool    { return c.popped }

func (c *Combo) Append(text string, data any) {
	c.items = append(c.items, comboItem{text: text, data: data})
}

func (c *Combo) Clear() {
	c.items = nil
	c.selection = -1
	c.popped = false
}

// Texts returns the suggestion texts.
func (c *Combo) Texts() []string {
	texts := make([]string, len(c.items))
	for i, it := range c.items {
		texts[i] = it.text
	}
	return texts
}

func (c *Combo) ClientData(i int) any {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i].data
}

func (c *Combo) SetStringSelection(s string) bool {
	for i, it := range c.items {
		if it.text == s {
			c.selection = i
			return true
		}
	}
	return false
}

// TypeText replaces the text as if the user typed it, dropping any committed
// selection.
func (c *Combo) TypeText(s string) {
	c.value = s
	c.selection = -1
	c.emit(widget.EventText, nil)
}

// Pick selects suggestion i as if the user chose it from the drop-down.
func (c *Combo) Pick(i int) {
	if i < 0 || i >= len(c.items) {
		return
	}
	c.selection = i
	c.value = c.items[i].text
	c.popped = false
	c.emit(widget.EventCombo, func(e *widget.Event) { e.Selection = i })
}

func (c *Combo) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyDown:
		if len(c.items) > 0 {
			c.Pick((c.selection + 1) % len(c.items))
		}
		return true
	case tea.KeyUp:
		if len(c.items) > 0 {
			c.Pick((c.selection - 1 + len(c.items)) % len(c.items))
		}
		return true
	}
	s, ok := editText(c.value, msg)
	if ok {
		c.TypeText(s)
	}
	return ok
}

func (c *Combo) View(st Styles) string {
	v := c.value
	if c.focused {
		v += "▏"
	}
	out := c.render(st, c.label, v)
	if c.popped && len(c.items) > 0 {
		out += "\n" + st.Label.Render("  ↳ "+strings.Join(c.Texts(), ", "))
	}
	return out
}
