package tui

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/viewbind/internal/widget"
)

// TextField is a single-line text input.
type TextField struct {
	Base
	label string
	value string
}

func NewTextField(label string) *TextField {
	return &TextField{label: label}
}

func (t *TextField) Value() string     { return t.value }
func (t *TextField) SetValue(s string) { t.value = s }
func (t *TextField) Focusable() bool   { return t.interactive() }

// Type replaces the text as if the user typed it.
func (t *TextField) Type(s string) {
	t.value = s
	t.emit(widget.EventText, nil)
}

func (t *TextField) HandleKey(msg tea.KeyMsg) bool {
	s, ok := editText(t.value, msg)
	if ok {
		t.Type(s)
	}
	return ok
}

func (t *TextField) View(st Styles) string {
	v := t.value
	if t.focused {
		v += "▏"
	}
	return t.render(st, t.label, v)
}

// Label is a static text.
type Label struct {
	Base
	text string
}

func NewLabel(text string) *Label {
	return &Label{text: text}
}

func (l *Label) Label() string         { return l.text }
func (l *Label) SetLabel(s string)     { l.text = s }
func (l *Label) View(st Styles) string { return l.render(st, "", l.text) }

// CheckBox is a boolean toggle.
type CheckBox struct {
	Base
	label   string
	checked bool
}

func NewCheckBox(label string) *CheckBox {
	return &CheckBox{label: label}
}

func (c *CheckBox) Value() bool     { return c.checked }
func (c *CheckBox) SetValue(v bool) { c.checked = v }
func (c *CheckBox) Focusable() bool { return c.interactive() }

// Toggle flips the box as if the user clicked it.
func (c *CheckBox) Toggle() {
	c.checked = !c.checked
	c.emit(widget.EventCheck, nil)
}

func (c *CheckBox) HandleKey(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeySpace || msg.Type == tea.KeyEnter {
		c.Toggle()
		return true
	}
	return false
}

func (c *CheckBox) View(st Styles) string {
	box := "[ ]"
	if c.checked {
		box = "[x]"
	}
	return c.render(st, "", box+" "+c.label)
}

// Slider selects an int in [Min, Max].
type Slider struct {
	Base
	label    string
	min, max int
	value    int
}

func NewSlider(label string, min, max int) *Slider {
	return &Slider{label: label, min: min, max: max, value: min}
}

func (s *Slider) Value() int      { return s.value }
func (s *Slider) SetValue(v int)  { s.value = s.clamp(v) }
func (s *Slider) Focusable() bool { return s.interactive() }

// Move drags the slider to v.
func (s *Slider) Move(v int) {
	s.value = s.clamp(v)
	s.emit(widget.EventSlider, nil)
}

func (s *Slider) clamp(v int) int {
	return max(s.min, min(s.max, v))
}

func (s *Slider) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyLeft:
		s.Move(s.value - 1)
	case tea.KeyRight:
		s.Move(s.value + 1)
	default:
		return false
	}
	return true
}

func (s *Slider) View(st Styles) string {
	width := s.max - s.min
	pos := s.value - s.min
	bar := strings.Repeat("━", pos) + "●" + strings.Repeat("─", max(0, width-pos))
	return s.render(st, s.label, bar+" "+strconv.Itoa(s.value))
}

// DatePicker is a spinner over calendar days. It always shows a date.
type DatePicker struct {
	Base
	label string
	value time.Time
}

func NewDatePicker(label string) *DatePicker {
	return &DatePicker{label: label, value: time.Now()}
}

func (d *DatePicker) Value() time.Time     { return d.value }
func (d *DatePicker) SetValue(t time.Time) { d.value = t }
func (d *DatePicker) Focusable() bool      { return d.interactive() }

// Pick sets the date as if the user spun to it.
func (d *DatePicker) Pick(t time.Time) {
	d.value = t
	d.emit(widget.EventDateChanged, nil)
}

func (d *DatePicker) HandleKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp:
		d.Pick(d.value.AddDate(0, 0, 1))
	case tea.KeyDown:
		d.Pick(d.value.AddDate(0, 0, -1))
	default:
		return false
	}
	return true
}

func (d *DatePicker) View(st Styles) string {
	return d.render(st, d.label, "◂ "+d.value.Format(time.DateOnly)+" ▸")
}

// DateTimeField is a text field that parses its text with a time layout.
type DateTimeField struct {
	TextField
	layout string
}

func NewDateTimeField(label, layout string) *DateTimeField {
	return &DateTimeField{TextField: TextField{label: label}, layout: layout}
}

func (d *DateTimeField) Layout() string { return d.layout }

func (d *DateTimeField) DateTimeValue() (time.Time, bool) {
	t, err := time.ParseInLocation(d.layout, d.value, time.Local)
	return t, err == nil
}

func (d *DateTimeField) View(st Styles) string {
	v := d.TextField.View(st)
	if _, ok := d.DateTimeValue(); !ok && d.value != "" {
		v += st.Error.Render(" !")
	}
	return v
}

// FilePicker lets the user choose a path.
type FilePicker struct {
	Base
	label string
	path  string
	edit  string
}

func NewFilePicker(label string) *FilePicker {
	return &FilePicker{label: label}
}

func (f *FilePicker) Path() string    { return f.path }
func (f *FilePicker) Focusable() bool { return f.interactive() }

// Pick chooses path.
func (f *FilePicker) Pick(path string) {
	f.path = path
	f.edit = path
	f.emit(widget.EventFilePicked, func(e *widget.Event) { e.Path = path })
}

func (f *FilePicker) HandleKey(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEnter {
		f.Pick(f.edit)
		return true
	}
	s, ok := editText(f.edit, msg)
	f.edit = s
	return ok
}

func (f *FilePicker) View(st Styles) string {
	return f.render(st, f.label, f.edit+" …")
}

// StatusBar shows text in a row of fields.
type StatusBar struct {
	Base
	fields []string
}

func NewStatusBar(fields int) *StatusBar {
	return &StatusBar{fields: make([]string, fields)}
}

func (s *StatusBar) StatusText(field int) string {
	if field < 0 || field >= len(s.fields) {
		return ""
	}
	return s.fields[field]
}

func (s *StatusBar) SetStatusText(text string, field int) {
	if field >= 0 && field < len(s.fields) {
		s.fields[field] = text
	}
}

func (s *StatusBar) View(st Styles) string {
	return st.Status.Render(strings.Join(s.fields, " │ "))
}
