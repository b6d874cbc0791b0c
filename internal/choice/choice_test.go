package choice

import (
	"iter"
	"testing"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/tui"
	"github.com/san-kum/viewbind/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var categories = Set[string]{
	{Key: "pup", Text: "Pupil"},
	{Key: "jun", Text: "Junior"},
	{Key: "sen", Text: "Senior"},
}

func TestSet(t *testing.T) {
	assert.Equal(t, []string{"pup", "jun", "sen"}, categories.Keys())
	assert.Equal(t, []string{"Pupil", "Junior", "Senior"}, categories.Texts())
	assert.Equal(t, 1, categories.Index("jun"))
	assert.Equal(t, -1, categories.Index("vet"))

	text, ok := categories.Text("sen")
	assert.True(t, ok)
	assert.Equal(t, "Senior", text)

	_, ok = categories.Text("vet")
	assert.False(t, ok)

	assert.Equal(t, Set[string]{{Key: "a", Text: "a"}}, Strings("a"))
}

func TestBindInitialSync(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": "jun"})
	w := tui.NewChoice("category")

	Bind(w, observable.MustAttr[string](m, "category"), categories, ui)

	assert.Equal(t, []string{"Pupil", "Junior", "Senior"}, w.Items())
	assert.Equal(t, 1, w.Selection())
}

func TestBindAbsentValue(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": ""})
	w := tui.NewChoice("category")

	Bind(w, observable.MustAttr[string](m, "category"), categories, ui)
	assert.Equal(t, -1, w.Selection())
	assert.Equal(t, "", m.Get("category"))

	ui.Turn(func() { w.Pick(2) })
	require.Equal(t, "sen", m.Get("category"))

	ui.Dispatch(func() { _ = m.Set("category", "vet") })
	assert.Equal(t, 2, w.Selection(), "unknown value keeps the selection")
}

func TestBindSource(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": "pup"})
	w := tui.NewChoice("category")
	calls := 0
	src := SourceFunc[string](func() Set[string] {
		calls++
		return categories
	})

	Bind(w, observable.MustAttr[string](m, "category"), src, ui)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, w.Selection())
}

func TestBindReadOnly(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": "pup"})
	w := tui.NewChoice("category")

	Bind(w, observable.MustAttr[string](m, "category"), categories, ui, binding.ReadOnly())
	ui.Turn(func() { w.Pick(1) })

	assert.Equal(t, "pup", m.Get("category"))
}

func TestBindComboEvent(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": "pup"})
	w := tui.NewChoice("category")

	Bind(w, observable.MustAttr[string](m, "category"), categories, ui)
	ui.Turn(func() {
		w.SetSelection(1)
		w.Emit(widget.NewEvent(widget.EventCombo))
	})

	assert.Equal(t, "jun", m.Get("category"))
}

func TestBindDynamic(t *testing.T) {
	tests := []struct {
		name          string
		initial       string
		next          Set[string]
		wantSelection int
		wantValue     string
	}{
		{
			name:          "value moves",
			initial:       "jun",
			next:          Set[string]{{"sen", "Senior"}, {"jun", "Junior"}},
			wantSelection: 1,
			wantValue:     "jun",
		},
		{
			name:          "value dropped, selection kept",
			initial:       "jun",
			next:          Strings("x", "y", "z"),
			wantSelection: 1,
			wantValue:     "y",
		},
		{
			name:          "value dropped, selection out of range",
			initial:       "sen",
			next:          Strings("x"),
			wantSelection: -1,
			wantValue:     "sen",
		},
		{
			name:          "empty set",
			initial:       "pup",
			next:          nil,
			wantSelection: -1,
			wantValue:     "pup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := sched.NewQueue()
			m := observable.NewAttrs(map[string]any{"category": tt.initial})
			source := observable.NewValue("categories", categories)
			w := tui.NewChoice("category")

			BindDynamic(w, observable.MustAttr[string](m, "category"), source, ui)
			require.Equal(t, categories.Index(tt.initial), w.Selection())

			ui.Dispatch(func() { _ = source.Set(tt.next) })

			assert.Equal(t, tt.next.Texts(), w.Items())
			assert.Equal(t, tt.wantSelection, w.Selection())
			assert.Less(t, w.Selection(), len(tt.next))
			assert.Equal(t, tt.wantValue, m.Get("category"))
		})
	}
}

func TestBindCloseOnDestroy(t *testing.T) {
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"category": "pup"})
	source := observable.NewValue("categories", categories)
	w := tui.NewChoice("category")

	b := BindDynamic(w, observable.MustAttr[string](m, "category"), source, ui)
	w.Destroy()
	require.True(t, b.Closed())

	ui.Dispatch(func() { _ = source.Set(Strings("x")) })
	assert.Equal(t, categories, b.Choices())
	assert.Equal(t, 0, m.Subscribers("category"))
}

var clubs = Set[int]{
	{Key: 1, Text: "IJsclub Thialf"},
	{Key: 2, Text: "IJsvereniging Haarlem"},
	{Key: 3, Text: "Schaatsclub Amsterdam"},
}

// countingProvider records every Suggest call.
type countingProvider struct {
	PrefixProvider[int]
	queries []string
}

func (p *countingProvider) Suggest(text string) iter.Seq[Item[int]] {
	p.queries = append(p.queries, text)
	return p.PrefixProvider.Suggest(text)
}

func newCombo(t *testing.T, club int) (*tui.Combo, *observable.Attrs, *countingProvider, *sched.Queue) {
	t.Helper()
	ui := sched.NewQueue()
	m := observable.NewAttrs(map[string]any{"club": club})
	p := &countingProvider{PrefixProvider: PrefixProvider[int]{Set: clubs}}
	w := tui.NewCombo("club")
	Combo(w, observable.MustAttr[int](m, "club"), p, ui)
	return w, m, p, ui
}

func TestComboInitialSync(t *testing.T) {
	w, _, p, _ := newCombo(t, 3)

	assert.Equal(t, "Schaatsclub Amsterdam", w.Value())
	assert.Empty(t, p.queries)
}

func TestComboSuggestions(t *testing.T) {
	w, m, p, ui := newCombo(t, 0)

	ui.Turn(func() { w.TypeText("i") })
	assert.Equal(t, []string{"IJsclub Thialf", "IJsvereniging Haarlem"}, w.Texts())
	assert.True(t, w.PoppedUp())
	assert.False(t, w.Frozen())

	ui.Turn(func() { w.TypeText("ijsv") })
	assert.Equal(t, []string{"IJsvereniging Haarlem"}, w.Texts())
	assert.Equal(t, []string{"i", "ijsv"}, p.queries, "suggestions are queried per keystroke")

	ui.Turn(func() { w.Pick(0) })
	assert.Equal(t, 2, m.Get("club"))
	assert.Equal(t, "IJsvereniging Haarlem", w.Value())
	assert.Equal(t, 0, w.Selection())
}

func TestComboNoSuggestions(t *testing.T) {
	w, _, _, ui := newCombo(t, 0)

	ui.Turn(func() { w.TypeText("zz") })

	assert.Zero(t, w.Count())
	assert.False(t, w.PoppedUp())
}

func TestComboIgnoresTextAfterSelection(t *testing.T) {
	w, m, p, ui := newCombo(t, 0)
	ui.Turn(func() { w.TypeText("s") })
	ui.Turn(func() { w.Pick(0) })
	require.Equal(t, 3, m.Get("club"))

	ui.Turn(func() { w.Emit(widget.NewEvent(widget.EventText)) })

	assert.Equal(t, []string{"s"}, p.queries)
	assert.Equal(t, 1, w.Count())
	assert.Equal(t, 0, w.Selection())
}

func TestComboEmptyTextClearsModel(t *testing.T) {
	w, m, _, ui := newCombo(t, 1)

	ui.Turn(func() { w.TypeText("") })

	assert.Equal(t, 0, m.Get("club"))
	assert.Equal(t, 3, w.Count(), "empty text suggests everything")
}

func TestComboModelChange(t *testing.T) {
	w, m, _, ui := newCombo(t, 1)

	ui.Dispatch(func() { _ = m.Set("club", 2) })

	assert.Equal(t, "IJsvereniging Haarlem", w.Value())
}

func TestPrefixProviderStops(t *testing.T) {
	p := PrefixProvider[int]{Set: clubs}
	var got []int
	for it := range p.Suggest("") {
		got = append(got, it.Key)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
	assert.Equal(t, "", p.DisplayText(9))
}
