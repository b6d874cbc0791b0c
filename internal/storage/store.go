package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/viewbind/internal/roster"
)

const ext = ".json"

var ErrNotFound = errors.New("storage: roster not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RosterInfo describes a stored roster.
type RosterInfo struct {
	Name    string    `json:"name"`
	Saved   time.Time `json:"saved"`
	Skaters int       `json:"skaters"`
}

type rosterFile struct {
	RosterInfo
	Members []*roster.Skater `json:"members"`
}

func (s *Store) path(name string) string {
	return filepath.Join(s.baseDir, name+ext)
}

// SaveRoster writes skaters under name, replacing an earlier version. The
// file is written next to the old one and renamed into place.
func (s *Store) SaveRoster(name string, skaters []*roster.Skater) error {
	if err := s.Init(); err != nil {
		return err
	}
	data := rosterFile{
		RosterInfo: RosterInfo{Name: name, Saved: s.now(), Skaters: len(skaters)},
		Members:    skaters,
	}

	tmp, err := os.CreateTemp(s.baseDir, name+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		tmp.Close()
		return fmt.Errorf("encode roster %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(name))
}

// LoadRoster reads the roster stored under name.
func (s *Store) LoadRoster(name string) ([]*roster.Skater, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	var f rosterFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", name, err)
	}
	return f.Members, nil
}

// List returns the stored rosters sorted by name.
func (s *Store) List() ([]RosterInfo, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RosterInfo{}, nil
		}
		return nil, err
	}

	rosters := make([]RosterInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}

		var info RosterInfo
		if err := json.Unmarshal(data, &info); err != nil {
			continue
		}

		rosters = append(rosters, info)
	}

	sort.Slice(rosters, func(i, j int) bool { return rosters[i].Name < rosters[j].Name })
	return rosters, nil
}

// ExportCSV writes one line per lap of every skater in the named roster.
func (s *Store) ExportCSV(name string, out io.Writer) error {
	skaters, err := s.LoadRoster(name)
	if err != nil {
		return err
	}

	w := csv.NewWriter(out)
	if err := w.Write([]string{"id", "first_name", "last_name", "category", "lap", "seconds"}); err != nil {
		return err
	}

	for _, sk := range skaters {
		for i, lap := range sk.Laps {
			row := []string{
				strconv.Itoa(sk.ID),
				sk.FirstName,
				sk.LastName,
				sk.Category,
				strconv.Itoa(i + 1),
				strconv.FormatFloat(lap, 'f', 2, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
