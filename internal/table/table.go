package table

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/viewbind/internal/observable"
)

// DateLayout is the text form of date cells.
const DateLayout = time.DateOnly

type cellKey[R any] struct {
	row  *R
	attr string
}

// pendingCell is cell text that could not be stored in its row.
type pendingCell struct {
	text string
	err  error
}

type subscriber struct {
	fn     func(Change)
	active bool
}

// Table is a Store over a slice of *R. Columns are mapped onto row
// attributes through an observable.Fields table.
type Table[R any] struct {
	rows    []*R
	fields  observable.Fields[R]
	columns []Column

	validate func(*R) error
	persist  func(*R) error
	remove   func(*R) error
	create   func() *R
	log      *slog.Logger

	pending map[cellKey[R]]pendingCell
	dirty   map[*R]bool
	lastErr error
	subs    []*subscriber
}

// Option configures a Table.
type Option[R any] func(*Table[R])

// WithValidate sets the check a row must pass before it is committed.
func WithValidate[R any](fn func(*R) error) Option[R] {
	return func(t *Table[R]) { t.validate = fn }
}

// WithPersist sets the function storing a committed row.
func WithPersist[R any](fn func(*R) error) Option[R] {
	return func(t *Table[R]) { t.persist = fn }
}

// WithRemove sets the function called after a row was deleted.
func WithRemove[R any](fn func(*R) error) Option[R] {
	return func(t *Table[R]) { t.remove = fn }
}

// WithNew sets the constructor used by CreateRow.
func WithNew[R any](fn func() *R) Option[R] {
	return func(t *Table[R]) { t.create = fn }
}

// WithLogger sets the logger for rejected commits. nil keeps the default.
func WithLogger[R any](l *slog.Logger) Option[R] {
	return func(t *Table[R]) {
		if l != nil {
			t.log = l
		}
	}
}

// New creates a table over rows.
func New[R any](rows []*R, fields observable.Fields[R], columns []Column, opts ...Option[R]) *Table[R] {
	t := &Table[R]{
		rows:    rows,
		fields:  fields,
		columns: columns,
		create:  func() *R { return new(R) },
		log:     slog.Default(),
		pending: make(map[cellKey[R]]pendingCell),
		dirty:   make(map[*R]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Table[R]) RowCount() int { return len(t.rows) }
func (t *Table[R]) ColCount() int { return len(t.columns) }

func (t *Table[R]) ColLabel(col int) string {
	if col < 0 || col >= len(t.columns) {
		return ""
	}
	return t.columns[col].Label
}

// Columns returns the column mapping.
func (t *Table[R]) Columns() []Column { return slices.Clone(t.columns) }

// SetColumns replaces the column mapping.
func (t *Table[R]) SetColumns(cols []Column) {
	t.columns = slices.Clone(cols)
	t.publish(Change{Kind: Reset, Count: len(t.rows)})
}

// Rows returns the rows in display order.
func (t *Table[R]) Rows() []*R { return slices.Clone(t.rows) }

// SetRows replaces all rows, dropping uncommitted edits.
func (t *Table[R]) SetRows(rows []*R) {
	t.rows = rows
	clear(t.pending)
	clear(t.dirty)
	t.publish(Change{Kind: Reset, Count: len(rows)})
}

func (t *Table[R]) RowAt(i int) *R {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	return t.rows[i]
}

func (t *Table[R]) IndexOf(r *R) int {
	return slices.Index(t.rows, r)
}

func (t *Table[R]) field(col int) (observable.Field[R], string, bool) {
	if col < 0 || col >= len(t.columns) {
		return observable.Field[R]{}, "", false
	}
	attr := t.columns[col].Attribute
	f, ok := t.fields[attr]
	return f, attr, ok
}

// Cell returns the value of a cell. Dates are returned as DateLayout text and
// cells holding unparsable input return that input.
func (t *Table[R]) Cell(row, col int) any {
	r := t.RowAt(row)
	f, attr, ok := t.field(col)
	if r == nil || !ok {
		return nil
	}
	if p, ok := t.pending[cellKey[R]{r, attr}]; ok {
		return p.text
	}
	v := f.Get(r)
	if d, ok := v.(time.Time); ok {
		if d.IsZero() {
			return ""
		}
		return d.Format(DateLayout)
	}
	return v
}

// SetCell stores v in a cell. Text is converted to the type of the
// attribute; text that does not convert is kept as pending input and makes
// the next commit of the cell fail. nil clears the cell.
func (t *Table[R]) SetCell(row, col int, v any) {
	r := t.RowAt(row)
	f, attr, ok := t.field(col)
	if r == nil || !ok {
		return
	}
	key := cellKey[R]{r, attr}
	delete(t.pending, key)

	if text, ok := v.(string); ok {
		converted, err := convert(text, f.Get(r))
		if err != nil {
			t.pending[key] = pendingCell{text: text, err: err}
			t.dirty[r] = true
			t.publish(Change{Kind: ValuesUpdated, Pos: row, Count: 1})
			return
		}
		v = converted
	}
	if err := f.Set(r, v); err != nil {
		t.pending[key] = pendingCell{text: fmt.Sprint(v), err: err}
	}
	t.dirty[r] = true
	t.publish(Change{Kind: ValuesUpdated, Pos: row, Count: 1})
}

// convert parses text into the type of current. Empty text yields nil.
func convert(text string, current any) (any, error) {
	if _, ok := current.(string); ok {
		return text, nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	switch current.(type) {
	case int:
		return strconv.Atoi(text)
	case float64:
		return strconv.ParseFloat(text, 64)
	case bool:
		return strconv.ParseBool(text)
	case time.Time:
		return time.ParseInLocation(DateLayout, text, time.Local)
	}
	return text, nil
}

// Modified reports whether row has uncommitted edits.
func (t *Table[R]) Modified(row int) bool {
	r := t.RowAt(row)
	return r != nil && t.dirty[r]
}

// LastError returns why the last commit failed, or nil after a successful
// one.
func (t *Table[R]) LastError() error { return t.lastErr }

// check validates the row. col limits the pending input that is looked at;
// -1 checks every column.
func (t *Table[R]) check(row, col int) error {
	r := t.rows[row]
	for c, column := range t.columns {
		if col >= 0 && c != col {
			continue
		}
		if p, ok := t.pending[cellKey[R]{r, column.Attribute}]; ok {
			return &CommitError{Row: row, Col: c, Wrapped: fmt.Errorf("%w: %s: %w", ErrValidation, column.Label, p.err)}
		}
	}
	if t.validate != nil {
		if err := t.validate(r); err != nil {
			return &CommitError{Row: row, Col: col, Wrapped: fmt.Errorf("%w: %w", ErrValidation, err)}
		}
	}
	return nil
}

func (t *Table[R]) save(row, col int) bool {
	if row < 0 || row >= len(t.rows) {
		return true
	}
	r := t.rows[row]
	if !t.dirty[r] {
		return true
	}
	if err := t.check(row, col); err != nil {
		return t.fail(err)
	}
	if t.persist != nil {
		if err := t.persist(r); err != nil {
			return t.fail(&CommitError{Row: row, Col: col, Wrapped: err})
		}
	}
	if len(t.pendingIn(r)) == 0 {
		delete(t.dirty, r)
	}
	t.lastErr = nil
	return true
}

func (t *Table[R]) pendingIn(r *R) []string {
	var attrs []string
	for k := range t.pending {
		if k.row == r {
			attrs = append(attrs, k.attr)
		}
	}
	return attrs
}

func (t *Table[R]) fail(err error) bool {
	t.lastErr = err
	t.log.Debug("table: commit rejected", "err", err)
	return false
}

func (t *Table[R]) SaveCell(row, col int) bool { return t.save(row, col) }
func (t *Table[R]) SaveRow(row int) bool       { return t.save(row, -1) }

func (t *Table[R]) SaveCol(col int) bool {
	for row := range t.rows {
		if !t.save(row, col) {
			return false
		}
	}
	return true
}

func (t *Table[R]) SaveGrid() bool {
	for row := range t.rows {
		if !t.save(row, -1) {
			return false
		}
	}
	return true
}

// CreateRow appends a new row. It is not committed until it is edited.
func (t *Table[R]) CreateRow() {
	t.rows = append(t.rows, t.create())
	t.publish(Change{Kind: RowsInserted, Pos: len(t.rows) - 1, Count: 1})
}

// DeleteRows removes the rows at the given indices.
func (t *Table[R]) DeleteRows(rows []int) {
	rows = slices.Clone(rows)
	slices.Sort(rows)
	rows = slices.Compact(rows)
	for i := len(rows) - 1; i >= 0; i-- {
		idx := rows[i]
		if idx < 0 || idx >= len(t.rows) {
			continue
		}
		r := t.rows[idx]
		t.rows = slices.Delete(t.rows, idx, idx+1)
		for _, attr := range t.pendingIn(r) {
			delete(t.pending, cellKey[R]{r, attr})
		}
		delete(t.dirty, r)
		if t.remove != nil {
			if err := t.remove(r); err != nil {
				t.lastErr = err
				t.log.Warn("table: remove failed", "row", idx, "err", err)
			}
		}
		t.publish(Change{Kind: RowsDeleted, Pos: idx, Count: 1})
	}
}

// Subscribe calls fn after every structural change until cancelled.
func (t *Table[R]) Subscribe(fn func(Change)) func() {
	s := &subscriber{fn: fn, active: true}
	t.subs = append(t.subs, s)
	return func() {
		s.active = false
		t.subs = slices.DeleteFunc(t.subs, func(o *subscriber) bool { return o == s })
	}
}

func (t *Table[R]) publish(c Change) {
	for _, s := range slices.Clone(t.subs) {
		if s.active {
			s.fn(c)
		}
	}
}
