package roster

import (
	"testing"
	"time"

	"github.com/san-kum/viewbind/internal/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		skater  Skater
		wantErr error
	}{
		{"valid", Skater{FirstName: "Bouke", Level: 4}, nil},
		{"blank first name", Skater{FirstName: "  ", Level: 4}, ErrFirstName},
		{"negative level", Skater{FirstName: "Arie", Level: -1}, ErrLevel},
		{"level too high", Skater{FirstName: "Kees", Level: 11}, ErrLevel},
		{"top level", Skater{FirstName: "Kees", Level: MaxLevel}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.skater)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSkater(t *testing.T) {
	s := &Skater{FirstName: "Bouke", LastName: "de Vries", Laps: []float64{31.2, 30.4, 30.9}}

	assert.Equal(t, "Bouke de Vries", s.Name())
	assert.Equal(t, 30.4, s.BestLap())
	assert.Zero(t, (&Skater{}).BestLap())
	assert.Equal(t, "Kees", (&Skater{FirstName: "Kees"}).Name())
}

func TestFindAndNextID(t *testing.T) {
	skaters := []*Skater{{ID: 3}, {ID: 7}}

	s, ok := Find(skaters, 7)
	require.True(t, ok)
	assert.Same(t, skaters[1], s)

	_, ok = Find(skaters, 5)
	assert.False(t, ok)

	assert.Equal(t, 8, NextID(skaters))
	assert.Equal(t, 1, NextID(nil))
}

func TestModel(t *testing.T) {
	s := &Skater{FirstName: "Bouke"}
	m := Model(s)
	var seen []any
	m.Subscribe("level", sched.Immediate{}, func(v any) { seen = append(seen, v) })

	require.NoError(t, m.Set("level", 6))
	require.NoError(t, m.Set("birth_date", time.Date(2010, 1, 2, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, 6, s.Level)
	assert.Equal(t, 2010, s.BirthDate.Year())
	assert.Equal(t, []any{6}, seen)
	assert.Error(t, m.Set("level", "six"))
}

func TestCategoriesFor(t *testing.T) {
	assert.Equal(t, []string{"pupil", "junior", "senior"}, CategoriesFor(2).Keys())
	assert.Equal(t, []string{"junior", "senior"}, CategoriesFor(4).Keys())
	assert.Equal(t, []string{"junior", "senior", "master"}, CategoriesFor(8).Keys())
}

func TestClubProvider(t *testing.T) {
	var names []string
	for it := range ClubProvider.Suggest("ijsc") {
		names = append(names, it.Text)
	}

	assert.Equal(t, []string{"IJsclub Thialf", "IJsclub Leeuwarden", "IJsclub Hollandia"}, names)
	assert.Equal(t, "Schaatsclub Amsterdam", ClubProvider.DisplayText(3))
}

func TestNewTable(t *testing.T) {
	skaters := []*Skater{{ID: 4, FirstName: "Bouke", Level: 2}}
	var persisted int
	tbl := NewTable(skaters, DefaultColumns, func(*Skater) error {
		persisted++
		return nil
	}, nil)

	tbl.CreateRow()
	added := tbl.RowAt(1)
	assert.Equal(t, 5, added.ID)
	assert.True(t, added.Active)
	y, m, d := time.Now().Date()
	assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.Local), added.BirthDate)

	tbl.SetCell(1, 3, "12")
	assert.False(t, tbl.SaveRow(1))
	assert.ErrorIs(t, tbl.LastError(), ErrFirstName)

	tbl.SetCell(1, 0, "Arie")
	tbl.SetCell(1, 3, "9")
	require.True(t, tbl.SaveRow(1))
	assert.Equal(t, 1, persisted)

	tbl.DeleteRows([]int{0})
	assert.Equal(t, 2, persisted)
}
