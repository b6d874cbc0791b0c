package tui

import (
	"fmt"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/viewbind/internal/widget"
)

// Component is a widget the host can draw and route keys to.
type Component interface {
	widget.Widget
	widget.Node
	View(st Styles) string
	// HandleKey processes a key press while the component has focus and
	// reports whether it used the key.
	HandleKey(msg tea.KeyMsg) bool
	Focusable() bool
	IsShown() bool
	Destroy()
	base() *Base
}

// Base holds the state every component shares.
type Base struct {
	widget.Emitter
	parent    widget.Node
	hidden    bool
	disabled  bool
	focused   bool
	destroyed bool
}

func (b *Base) base() *Base { return b }

func (b *Base) Parent() widget.Node { return b.parent }

func (b *Base) IsShown() bool   { return !b.hidden }
func (b *Base) Show(on bool)    { b.hidden = !on }
func (b *Base) IsEnabled() bool { return !b.disabled }
func (b *Base) Enable(on bool)  { b.disabled = !on }
func (b *Base) HasFocus() bool  { return b.focused }

// SetFocus moves the keyboard focus of the enclosing frame to b.
func (b *Base) SetFocus() {
	if f := b.frame(); f != nil {
		f.focusBase(b)
		return
	}
	b.focused = true
}

func (b *Base) HandleKey(tea.KeyMsg) bool { return false }

func (b *Base) Focusable() bool { return false }

// Destroy emits EventDestroy once.
func (b *Base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	b.Emit(widget.NewEvent(widget.EventDestroy))
}

// Destroyed reports whether Destroy was called.
func (b *Base) Destroyed() bool { return b.destroyed }

func (b *Base) frame() *Frame {
	for p := b.parent; p != nil; p = p.Parent() {
		if f, ok := p.(*Frame); ok {
			return f
		}
	}
	return nil
}

func (b *Base) interactive() bool {
	return !b.hidden && !b.disabled
}

func (b *Base) emit(t widget.EventType, set func(*widget.Event)) *widget.Event {
	e := widget.NewEvent(t)
	if set != nil {
		set(e)
	}
	return b.Emit(e)
}

func (b *Base) render(st Styles, label, value string) string {
	valueStyle := st.Value
	switch {
	case b.disabled:
		valueStyle = st.Disabled
	case b.focused:
		valueStyle = st.Focused
	}
	if label == "" {
		return valueStyle.Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, st.Label.Render(label+": "), valueStyle.Render(value))
}

// cellText formats a table cell for display.
func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(v)
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// editText applies an editing key to s. ok is false for keys that do not edit
// text.
func editText(s string, msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return s + string(msg.Runes), true
	case tea.KeySpace:
		return s + " ", true
	case tea.KeyBackspace:
		return trimLastRune(s), true
	}
	return s, false
}
