package table

import (
	"fmt"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/choice"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/widget"
)

// ChoiceEditor edits a cell with a drop-down. The control is bound to a
// private value, so the cell only changes on EndEdit.
type ChoiceEditor[K comparable] struct {
	value    *observable.Value[K]
	choices  choice.Source[K]
	provider choice.Provider[K]
	control  widget.Widget
	binding  binding.Binding
}

// NewChoiceEditor creates an editor picking from a fixed set of choices.
func NewChoiceEditor[K comparable](choices choice.Source[K]) *ChoiceEditor[K] {
	var zero K
	return &ChoiceEditor[K]{value: observable.NewValue("value", zero), choices: choices}
}

// NewComboEditor creates an editor with free text and suggestions from p.
func NewComboEditor[K comparable](p choice.Provider[K]) *ChoiceEditor[K] {
	var zero K
	return &ChoiceEditor[K]{value: observable.NewValue("value", zero), provider: p}
}

// Create binds control, which must be a widget.Combo for a combo editor and a
// widget.Chooser otherwise.
func (ed *ChoiceEditor[K]) Create(control widget.Widget, s sched.Scheduler) error {
	if ed.provider != nil {
		c, ok := control.(widget.Combo)
		if !ok {
			return fmt.Errorf("table: combo editor needs a combo box, got %T", control)
		}
		ed.binding = choice.Combo(c, ed.value, ed.provider, s)
	} else {
		c, ok := control.(widget.Chooser)
		if !ok {
			return fmt.Errorf("table: choice editor needs a chooser, got %T", control)
		}
		ed.binding = choice.Bind(c, ed.value, ed.choices, s)
	}
	ed.control = control
	return nil
}

// Control returns the bound control, or nil before Create.
func (ed *ChoiceEditor[K]) Control() widget.Widget { return ed.control }

// Value returns the key currently picked in the editor.
func (ed *ChoiceEditor[K]) Value() K { return ed.value.Get() }

// BeginEdit loads the cell into the control, focuses it and opens the
// drop-down.
func (ed *ChoiceEditor[K]) BeginEdit(row, col int, t widget.TableSource) {
	if k, ok := t.Cell(row, col).(K); ok {
		_ = ed.value.Set(k)
	}
	if f, ok := ed.control.(widget.Focuser); ok {
		f.SetFocus()
	}
	if p, ok := ed.control.(widget.Popuper); ok {
		p.Popup()
	}
}

// EndEdit writes the picked key into the cell.
func (ed *ChoiceEditor[K]) EndEdit(row, col int, t widget.TableSource) {
	t.SetCell(row, col, ed.value.Get())
}

// Reset would restore the text the cell had before editing. Editors are
// never reset this way, so calling it is a programming error.
func (ed *ChoiceEditor[K]) Reset() {
	panic(ErrNotImplemented)
}

// Close unbinds the control.
func (ed *ChoiceEditor[K]) Close() {
	if ed.binding != nil {
		ed.binding.Close()
	}
}
