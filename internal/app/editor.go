package app

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/choice"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/roster"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/tui"
)

// lapsCodec edits lap times as space separated seconds.
var lapsCodec = binding.Codec[[]float64]{
	Format: func(laps []float64) string {
		parts := make([]string, len(laps))
		for i, l := range laps {
			parts[i] = strconv.FormatFloat(l, 'f', 2, 64)
		}
		return strings.Join(parts, " ")
	},
	Parse: func(s string) ([]float64, error) {
		var laps []float64
		for _, f := range strings.Fields(s) {
			l, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, err
			}
			laps = append(laps, l)
		}
		return laps, nil
	},
}

// editor is the form for one skater.
type editor struct {
	panel    *tui.Panel
	heading  *tui.Label
	id       *tui.TextField
	first    *tui.TextField
	last     *tui.TextField
	level    *tui.Slider
	category *tui.Choice
	club     *tui.Combo
	active   *tui.CheckBox
	born     *tui.DatePicker
	laps     *tui.TextField

	skater     *roster.Skater
	model      *observable.Struct[roster.Skater]
	buffer     *observable.Buffer
	categories *observable.Value[choice.Set[string]]
	bindings   []binding.Binding
	cancels    []func()
}

func newEditor() *editor {
	ed := &editor{
		heading:    tui.NewLabel(""),
		id:         tui.NewTextField("ID"),
		first:      tui.NewTextField("First name"),
		last:       tui.NewTextField("Last name"),
		level:      tui.NewSlider("Level", roster.MinLevel, roster.MaxLevel),
		category:   tui.NewChoice("Category"),
		club:       tui.NewCombo("Club"),
		active:     tui.NewCheckBox("Active"),
		born:       tui.NewDatePicker("Born"),
		laps:       tui.NewTextField("Laps"),
		categories: observable.NewValue("categories", roster.Categories),
	}
	ed.id.Enable(false)
	ed.panel = tui.NewPanel(ed.heading, ed.id, ed.first, ed.last, ed.level,
		ed.category, ed.club, ed.active, ed.born, ed.laps)
	return ed
}

// load binds the form to sk. Edits stay in a buffer until flush.
func (ed *editor) load(sk *roster.Skater, s sched.Scheduler, opts ...binding.Option) {
	ed.unload()
	if sk == nil {
		return
	}
	ed.skater = sk
	ed.model = roster.Model(sk)
	ed.buffer = observable.Wrap(ed.model, false)
	m := ed.buffer

	level := observable.MustAttr[int](m, "level")
	active := observable.MustAttr[bool](m, "active")
	_ = ed.categories.Set(roster.CategoriesFor(level.Get()))
	ed.cancels = append(ed.cancels, level.Subscribe(s, func(v int) {
		_ = ed.categories.Set(roster.CategoriesFor(v))
	}))

	ed.bindings = []binding.Binding{
		binding.Label(ed.heading, observable.MustAttr[string](m, "first_name"), s),
		binding.TextAs(ed.id, observable.MustAttr[int](m, "id"), binding.IntCodec, s, binding.ReadOnly()),
		binding.Text(ed.first, observable.MustAttr[string](m, "first_name"), s, opts...),
		binding.Text(ed.last, observable.MustAttr[string](m, "last_name"), s, opts...),
		binding.Slider(ed.level, level, s, opts...),
		binding.Enabled(ed.level, active, binding.Truthy[bool](), s),
		choice.BindDynamic(ed.category, observable.MustAttr[string](m, "category"), ed.categories, s, opts...),
		choice.Combo(ed.club, observable.MustAttr[int](m, "club"), roster.ClubProvider, s, opts...),
		binding.Check(ed.active, active, s, opts...),
		binding.Date(ed.born, observable.MustAttr[time.Time](m, "birth_date"), s, opts...),
		binding.TextAs(ed.laps, observable.MustAttr[[]float64](m, "laps"), lapsCodec, s, opts...),
	}
}

func (ed *editor) unload() {
	for _, b := range ed.bindings {
		b.Close()
	}
	for _, cancel := range ed.cancels {
		cancel()
	}
	ed.bindings, ed.cancels = nil, nil
	ed.skater, ed.model, ed.buffer = nil, nil, nil
}

// touch republishes every field of the loaded skater after it was changed
// elsewhere. Fields with buffered edits keep showing the edit.
func (ed *editor) touch() {
	if ed.model == nil {
		return
	}
	for _, name := range slices.Sorted(maps.Keys(roster.Fields)) {
		ed.model.Touch(name)
	}
}

func (ed *editor) dirty() bool {
	return ed.buffer != nil && ed.buffer.Dirty()
}

// flush validates the buffered skater and writes it through.
func (ed *editor) flush() error {
	if ed.buffer == nil {
		return nil
	}
	check := *ed.skater
	for name, v := range ed.buffer.Changes() {
		if err := roster.Model(&check).Set(name, v); err != nil {
			return err
		}
	}
	if err := roster.Validate(&check); err != nil {
		return err
	}
	return ed.buffer.Flush()
}

func (ed *editor) discard() {
	if ed.buffer != nil {
		ed.buffer.Discard()
	}
}
