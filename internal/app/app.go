package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/viewbind/internal/binding"
	"github.com/san-kum/viewbind/internal/config"
	"github.com/san-kum/viewbind/internal/observable"
	"github.com/san-kum/viewbind/internal/roster"
	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/storage"
	"github.com/san-kum/viewbind/internal/table"
	"github.com/san-kum/viewbind/internal/tui"
	"github.com/san-kum/viewbind/internal/widget"
)

const help = "tab focus • ctrl+s save skater • esc discard • ctrl+e pick category • ctrl+w commit grid • ctrl+q quit"

// App is the roster editor window.
type App struct {
	cfg   *config.Config
	store *storage.Store
	queue *sched.Queue
	log   *slog.Logger

	Table     *table.Table[roster.Skater]
	Frame     *tui.Frame
	Grid      *tui.Grid
	List      *tui.ListCtrl
	Status    *tui.StatusBar
	Export    *tui.FilePicker
	CellPick  *tui.Choice
	Selection *observable.Value[[]*roster.Skater]

	state      *observable.Attrs
	editor     *editor
	grid       *table.Grid[roster.Skater]
	cellEditor *table.ChoiceEditor[string]
	editCell   [2]int
}

// New loads the configured roster and builds the window. A missing roster
// starts empty.
func New(cfg *config.Config, store *storage.Store, q *sched.Queue, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}
	skaters, err := store.LoadRoster(cfg.Roster)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		store:     store,
		queue:     q,
		log:       log,
		Grid:      tui.NewGrid(12),
		List:      tui.NewListCtrl(),
		Status:    tui.NewStatusBar(2),
		Export:    tui.NewFilePicker("Export CSV"),
		CellPick:  tui.NewChoice("Category"),
		Selection: observable.NewValue[[]*roster.Skater]("selection", nil),
		editor:    newEditor(),
		state: observable.NewAttrs(map[string]any{
			"title":  "viewbind: " + cfg.Roster,
			"status": "",
			"count":  "",
			"mode":   "grid",
			"export": "",
		}),
	}
	a.Table = roster.NewTable(skaters, cfg.Columns, a.persist, log)
	a.CellPick.Show(false)
	a.Frame = tui.NewFrame("", a.Grid, a.CellPick, a.List, a.editor.panel, a.Export, a.Status)
	a.bind()
	return a, nil
}

func (a *App) opts() []binding.Option {
	return []binding.Option{binding.WithLogger(a.log)}
}

func (a *App) bind() {
	q := a.queue
	title := observable.MustAttr[string](a.state, "title")
	status := observable.MustAttr[string](a.state, "status")
	count := observable.MustAttr[string](a.state, "count")
	mode := observable.MustAttr[string](a.state, "mode")
	export := observable.MustAttr[string](a.state, "export")

	a.grid = table.BindGrid[roster.Skater](a.Grid, a.Table, a.cfg.Commit(), q, a.opts()...)
	a.grid.GuardClose(a.Frame, func() { a.Frame.Close() })
	table.BindList[roster.Skater](a.List, a.Table, a.Selection, q, a.opts()...)

	binding.Title(a.Frame, title, q)
	binding.StatusBar(a.Status, status, 0, q)
	binding.StatusBar(a.Status, count, 1, q)
	binding.Show[[]*roster.Skater](a.editor.panel, a.Selection, func(rows []*roster.Skater) bool { return len(rows) == 1 }, q)
	binding.Focus(a.editor.first, mode, binding.Is("edit"), q)
	binding.File(a.Export, export, a.opts()...)

	a.cellEditor = table.NewChoiceEditor[string](roster.Categories)
	if err := a.cellEditor.Create(a.CellPick, q); err != nil {
		panic(err)
	}
	a.CellPick.On(widget.EventChoice, a.endCellEdit)

	a.Table.Subscribe(func(c table.Change) {
		a.updateCount()
		if c.Kind == table.ValuesUpdated && a.editor.skater != nil && a.Table.RowAt(c.Pos) == a.editor.skater {
			a.editor.touch()
		}
	})
	a.updateCount()
	a.Selection.Subscribe(q, a.selected)
	a.state.Subscribe("export", q, func(v any) {
		if path, _ := v.(string); path != "" {
			a.exportTo(path)
		}
	})
}

func (a *App) updateCount() {
	_ = a.state.Set("count", fmt.Sprintf("%d skaters", a.Table.RowCount()))
}

func (a *App) setStatus(format string, args ...any) {
	_ = a.state.Set("status", fmt.Sprintf(format, args...))
}

func (a *App) selected(rows []*roster.Skater) {
	if len(rows) != 1 {
		a.editor.unload()
		_ = a.state.Set("mode", "grid")
		return
	}
	if a.editor.skater == rows[0] {
		return
	}
	if a.editor.dirty() {
		a.setStatus("unsaved changes to %s dropped", a.editor.skater.Name())
	}
	a.editor.load(rows[0], a.queue, a.opts()...)
	_ = a.state.Set("mode", "edit")
}

// persist stores the whole roster. The table calls it for every committed
// row.
func (a *App) persist(*roster.Skater) error {
	if err := a.store.SaveRoster(a.cfg.Roster, a.Table.Rows()); err != nil {
		a.log.Error("save roster failed", "roster", a.cfg.Roster, "err", err)
		return err
	}
	a.log.Debug("roster saved", "roster", a.cfg.Roster, "skaters", a.Table.RowCount())
	return nil
}

// SaveSkater writes the edited skater back to the roster.
func (a *App) SaveSkater() {
	if !a.editor.dirty() {
		return
	}
	sk := a.editor.skater
	if err := a.editor.flush(); err != nil {
		a.setStatus("not saved: %v", err)
		return
	}
	a.Grid.Refresh()
	if err := a.persist(sk); err != nil {
		a.setStatus("save failed: %v", err)
		return
	}
	a.setStatus("saved %s", sk.Name())
}

// DiscardSkater drops the edits to the current skater.
func (a *App) DiscardSkater() {
	if a.editor.dirty() {
		a.editor.discard()
		a.setStatus("changes discarded")
	}
}

// CommitGrid commits every modified row.
func (a *App) CommitGrid() {
	if !a.Table.SaveGrid() {
		a.setStatus("%v", a.Table.LastError())
		return
	}
	a.Grid.Refresh()
	a.setStatus("roster committed")
}

// BeginCellEdit opens the category picker on the grid cell under the cursor
// when its column is a choice column.
func (a *App) BeginCellEdit() bool {
	row, col := a.Grid.CursorRow(), a.Grid.CursorCol()
	cols := a.Table.Columns()
	if row >= a.Table.RowCount() || col >= len(cols) || cols[col].Type != "choice" {
		return false
	}
	a.editCell = [2]int{row, col}
	a.CellPick.Show(true)
	a.cellEditor.BeginEdit(row, col, a.Table)
	return true
}

func (a *App) endCellEdit(e *widget.Event) {
	row, col := a.editCell[0], a.editCell[1]
	a.cellEditor.EndEdit(row, col, a.Table)
	a.CellPick.Show(false)
	a.Grid.SetFocus()
	if a.grid.CommitOn() == table.CommitCell && !a.Table.SaveCell(row, col) {
		a.setStatus("%v", a.Table.LastError())
	}
	a.Grid.Refresh()
}

func (a *App) exportTo(path string) {
	f, err := os.Create(path)
	if err != nil {
		a.setStatus("export failed: %v", err)
		return
	}
	defer f.Close()
	if err := a.store.ExportCSV(a.cfg.Roster, f); err != nil {
		a.setStatus("export failed: %v", err)
		return
	}
	a.setStatus("exported to %s", path)
}

// HandleKey runs the editor shortcuts for keys the focused widget left alone.
func (a *App) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+s":
		a.SaveSkater()
	case "esc":
		a.DiscardSkater()
	case "ctrl+e":
		return a.BeginCellEdit()
	case "ctrl+w":
		a.CommitGrid()
	default:
		return false
	}
	return true
}

// Run shows the window until it is closed.
func (a *App) Run() error {
	h := tui.NewHost(a.Frame, a.queue, a.cfg.GetTheme())
	h.OnKey = a.HandleKey
	h.Help = help
	return h.Run()
}
