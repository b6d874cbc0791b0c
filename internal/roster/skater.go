package roster

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/san-kum/viewbind/internal/observable"
)

const (
	MinLevel = 0
	MaxLevel = 10
)

var (
	ErrFirstName = errors.New("roster: first name is required")
	ErrLevel     = errors.New("roster: level out of range")
)

// Skater is one member of the roster.
type Skater struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Category  string    `json:"category"`
	Club      int       `json:"club"`
	Active    bool      `json:"active"`
	Level     int       `json:"level"`
	BirthDate time.Time `json:"birth_date"`
	// Laps holds lap times in seconds, oldest first.
	Laps []float64 `json:"laps,omitempty"`
}

func (s *Skater) Name() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// BestLap returns the fastest lap, or 0 without laps.
func (s *Skater) BestLap() float64 {
	if len(s.Laps) == 0 {
		return 0
	}
	return slices.Min(s.Laps)
}

// Validate checks s before it is stored.
func Validate(s *Skater) error {
	if strings.TrimSpace(s.FirstName) == "" {
		return ErrFirstName
	}
	if s.Level < MinLevel || s.Level > MaxLevel {
		return fmt.Errorf("%w: %d not in %d..%d", ErrLevel, s.Level, MinLevel, MaxLevel)
	}
	return nil
}

// Fields exposes the Skater attributes to bindings and tables.
var Fields = observable.Fields[Skater]{
	"id": observable.FieldOf(
		func(s *Skater) int { return s.ID },
		func(s *Skater, v int) { s.ID = v }),
	"first_name": observable.FieldOf(
		func(s *Skater) string { return s.FirstName },
		func(s *Skater, v string) { s.FirstName = v }),
	"last_name": observable.FieldOf(
		func(s *Skater) string { return s.LastName },
		func(s *Skater, v string) { s.LastName = v }),
	"category": observable.FieldOf(
		func(s *Skater) string { return s.Category },
		func(s *Skater, v string) { s.Category = v }),
	"club": observable.FieldOf(
		func(s *Skater) int { return s.Club },
		func(s *Skater, v int) { s.Club = v }),
	"active": observable.FieldOf(
		func(s *Skater) bool { return s.Active },
		func(s *Skater, v bool) { s.Active = v }),
	"level": observable.FieldOf(
		func(s *Skater) int { return s.Level },
		func(s *Skater, v int) { s.Level = v }),
	"birth_date": observable.FieldOf(
		func(s *Skater) time.Time { return s.BirthDate },
		func(s *Skater, v time.Time) { s.BirthDate = v }),
	"laps": observable.FieldOf(
		func(s *Skater) []float64 { return s.Laps },
		func(s *Skater, v []float64) { s.Laps = v }),
}

// Model makes s observable.
func Model(s *Skater) *observable.Struct[Skater] {
	return observable.NewStruct(s, Fields)
}

// Find returns the skater with the given id.
func Find(skaters []*Skater, id int) (*Skater, bool) {
	i := slices.IndexFunc(skaters, func(s *Skater) bool { return s.ID == id })
	if i < 0 {
		return nil, false
	}
	return skaters[i], true
}

// NextID returns an id not used by any of skaters.
func NextID(skaters []*Skater) int {
	id := 0
	for _, s := range skaters {
		id = max(id, s.ID)
	}
	return id + 1
}
