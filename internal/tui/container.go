package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/viewbind/internal/widget"
)

// Panel stacks its visible children vertically.
type Panel struct {
	Base
	self     widget.Node
	children []Component
	layouts  int
	best     *widget.Size
}

// NewPanel creates a panel holding children.
func NewPanel(children ...Component) *Panel {
	p := &Panel{}
	p.self = p
	p.Add(children...)
	return p
}

// Add appends children to the panel.
func (p *Panel) Add(children ...Component) {
	for _, c := range children {
		c.base().parent = p.self
		p.children = append(p.children, c)
	}
	p.best = nil
}

// Children returns the panel's children.
func (p *Panel) Children() []Component { return p.children }

// Layout recomputes child placement. Children are stacked, so all it has to
// do is drop the cached size.
func (p *Panel) Layout() {
	p.layouts++
	p.best = nil
}

// Layouts returns how many layout passes ran.
func (p *Panel) Layouts() int { return p.layouts }

func (p *Panel) InvalidateBestSize() { p.best = nil }

// BestSize measures the visible children.
func (p *Panel) BestSize() widget.Size {
	if p.best != nil {
		return *p.best
	}
	view := p.View(ThemeMinimal.Styles())
	s := widget.Size{W: lipgloss.Width(view), H: lipgloss.Height(view)}
	if view == "" {
		s.H = 0
	}
	p.best = &s
	return s
}

func (p *Panel) View(st Styles) string {
	var rows []string
	for _, c := range p.children {
		if c.IsShown() {
			rows = append(rows, c.View(st))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Destroy destroys the children before the panel itself.
func (p *Panel) Destroy() {
	for _, c := range p.children {
		c.Destroy()
	}
	p.Base.Destroy()
}

// Walk calls fn for every component below p, depth first.
func (p *Panel) Walk(fn func(Component)) {
	for _, c := range p.children {
		fn(c)
		if sub, ok := c.(interface{ Walk(func(Component)) }); ok {
			sub.Walk(fn)
		}
	}
}

// Frame is a top-level window. It owns the keyboard focus and tracks its best
// size.
type Frame struct {
	Panel
	title  string
	size   widget.Size
	closed bool
}

// NewFrame creates a frame titled title.
func NewFrame(title string, children ...Component) *Frame {
	f := &Frame{title: title}
	f.self = f
	f.Add(children...)
	return f
}

func (f *Frame) Title() string         { return f.title }
func (f *Frame) SetTitle(s string)     { f.title = s }
func (f *Frame) Size() widget.Size     { return f.size }
func (f *Frame) SetSize(s widget.Size) { f.size = s }

// MinBestSize is the size needed to show the title and all visible children.
func (f *Frame) MinBestSize() widget.Size {
	s := f.BestSize()
	s.H++
	if w := lipgloss.Width(f.title) + 2; w > s.W {
		s.W = w
	}
	return s
}

func (f *Frame) View(st Styles) string {
	return lipgloss.JoinVertical(lipgloss.Left, st.Title.Render(f.title), f.Panel.View(st))
}

// Focused returns the component holding the focus, or nil.
func (f *Frame) Focused() Component {
	var found Component
	f.Walk(func(c Component) {
		if found == nil && c.base().focused {
			found = c
		}
	})
	return found
}

// FocusNext moves the focus to the next focusable component, wrapping around.
// With back set it moves to the previous one.
func (f *Frame) FocusNext(back bool) {
	var ring []Component
	current := -1
	f.Walk(func(c Component) {
		if !c.Focusable() || !visible(c) {
			return
		}
		if c.base().focused {
			current = len(ring)
		}
		ring = append(ring, c)
	})
	if len(ring) == 0 {
		return
	}
	next := 0
	switch {
	case current >= 0 && back:
		next = (current - 1 + len(ring)) % len(ring)
	case current >= 0:
		next = (current + 1) % len(ring)
	case back:
		next = len(ring) - 1
	}
	f.focusBase(ring[next].base())
}

func (f *Frame) focusBase(b *Base) {
	f.Walk(func(c Component) {
		c.base().focused = c.base() == b
	})
}

// visible reports whether c and all of its ancestors are shown.
func visible(c Component) bool {
	if !c.IsShown() {
		return false
	}
	for p := c.Parent(); p != nil; p = p.Parent() {
		if s, ok := p.(interface{ IsShown() bool }); ok && !s.IsShown() {
			return false
		}
	}
	return true
}

// Close asks the frame to close by emitting EventClose. It reports whether
// the request was accepted.
func (f *Frame) Close() bool {
	e := f.emit(widget.EventClose, nil)
	if e.Vetoed() {
		return false
	}
	f.closed = true
	return true
}

// Closed reports whether a close request was accepted.
func (f *Frame) Closed() bool { return f.closed }
