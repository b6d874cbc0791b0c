package table_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/viewbind/internal/sched"
	"github.com/san-kum/viewbind/internal/table"
	"github.com/san-kum/viewbind/internal/tui"
	"github.com/san-kum/viewbind/internal/widget"
)

var _ = Describe("Grid binding", func() {
	var (
		ui    *sched.Queue
		store *spyStore
		grid  *tui.Grid
		g     *table.Grid[skater]
	)

	bind := func(on table.CommitOn) {
		g = table.BindGrid[skater](grid, store, on, ui)
	}

	cursor := func() [2]int {
		return [2]int{grid.CursorRow(), grid.CursorCol()}
	}

	BeforeEach(func() {
		ui = sched.NewQueue()
		store = newSpyStore(newSkaters())
		grid = tui.NewGrid(10)
	})

	It("shows the table and applies column widths", func() {
		bind(table.CommitRow)

		Expect(grid.Table()).To(BeIdenticalTo(store))
		Expect(grid.ColSize(0)).To(Equal(16))
		Expect(grid.ColSize(1)).To(Equal(5))
		Expect(grid.ColSize(2)).To(Equal(12), "zero width keeps the default")
	})

	It("re-applies column widths when the table changes", func() {
		bind(table.CommitRow)
		refreshes := grid.Refreshes()

		cols := store.Columns()
		cols[2].Width = 11
		store.SetColumns(cols)

		Expect(grid.ColSize(2)).To(Equal(11))
		Expect(grid.Refreshes()).To(BeNumerically(">", refreshes))
	})

	Context("committing per row", func() {
		BeforeEach(func() { bind(table.CommitRow) })

		It("does not save when moving within a row", func() {
			ui.Turn(func() { grid.SetGridCursor(0, 2) })

			Expect(cursor()).To(Equal([2]int{0, 2}))
			Expect(store.savedRows).To(BeEmpty())
		})

		It("saves the row being left", func() {
			ui.Turn(func() { grid.SetGridCursor(1, 0) })

			Expect(cursor()).To(Equal([2]int{1, 0}))
			Expect(store.savedRows).To(Equal([]int{0}))
		})

		It("keeps the cursor when the save is rejected", func() {
			store.SetCell(0, 0, "")

			ui.Turn(func() { grid.SetGridCursor(1, 0) })

			Expect(cursor()).To(Equal([2]int{0, 0}))
			Expect(store.savedRows).To(Equal([]int{0}))
			Expect(store.LastError()).To(MatchError(table.ErrValidation))
		})

		It("commits the open editor before moving", func() {
			grid.TypeInCell("Anna")

			ui.Turn(func() {
				grid.SetGridCursor(1, 0)
				Expect(cursor()).To(Equal([2]int{0, 0}), "the move waits for the end of the turn")
			})

			Expect(grid.IsCellEditControlEnabled()).To(BeFalse())
			Expect(store.RowAt(0).Name).To(Equal("Anna"))
			Expect(store.persisted).To(Equal([]string{"Anna"}))
			Expect(cursor()).To(Equal([2]int{1, 0}))
		})
	})

	Context("committing per cell", func() {
		BeforeEach(func() { bind(table.CommitCell) })

		It("saves the cell being left", func() {
			ui.Turn(func() { grid.SetGridCursor(0, 1) })

			Expect(store.savedCells).To(Equal([][2]int{{0, 0}}))
			Expect(cursor()).To(Equal([2]int{0, 1}))
		})

		It("stays on a rejected cell without saving it twice", func() {
			ui.Turn(func() { grid.SetGridCursor(0, 1) })
			store.savedCells = nil
			grid.TypeInCell("abc")

			ui.Turn(func() { grid.SetGridCursor(0, 2) })

			Expect(cursor()).To(Equal([2]int{0, 1}))
			Expect(store.savedCells).To(Equal([][2]int{{0, 1}}))
			Expect(store.Cell(0, 1)).To(Equal("abc"))
			Expect(store.LastError()).To(MatchError(table.ErrValidation))
		})

		It("moves normally after the input was fixed", func() {
			ui.Turn(func() { grid.SetGridCursor(0, 1) })
			grid.TypeInCell("abc")
			ui.Turn(func() { grid.SetGridCursor(0, 2) })

			grid.TypeInCell("4")
			ui.Turn(func() { grid.SetGridCursor(0, 2) })

			Expect(cursor()).To(Equal([2]int{0, 2}))
			Expect(store.RowAt(0).Level).To(Equal(4))
		})
	})

	Context("committing per column", func() {
		BeforeEach(func() { bind(table.CommitCol) })

		It("saves the column being left", func() {
			ui.Turn(func() { grid.SetGridCursor(1, 0) })
			Expect(store.savedCols).To(BeEmpty())

			ui.Turn(func() { grid.SetGridCursor(1, 1) })
			Expect(store.savedCols).To(Equal([]int{0}))
		})
	})

	Context("committing per grid", func() {
		BeforeEach(func() { bind(table.CommitGrid) })

		It("never saves on moves", func() {
			store.SetCell(0, 0, "")
			ui.Turn(func() { grid.SetGridCursor(2, 1) })

			Expect(cursor()).To(Equal([2]int{2, 1}))
			Expect(store.savedRows).To(BeEmpty())
			Expect(store.savedCells).To(BeEmpty())
		})
	})

	Context("with an empty table", func() {
		BeforeEach(func() {
			store = newSpyStore(nil)
			bind(table.CommitRow)
		})

		It("creates the first row on enter", func() {
			ui.Turn(func() { grid.PressKey(widget.KeyEnter) })

			Expect(store.RowCount()).To(Equal(1))
			Expect(cursor()).To(Equal([2]int{0, 0}))
			Expect(store.savedRows).To(BeEmpty())
		})
	})

	Describe("keyboard", func() {
		BeforeEach(func() { bind(table.CommitRow) })

		It("appends a row on enter in the last row", func() {
			ui.Turn(func() { grid.SetGridCursor(2, 1) })

			ui.Turn(func() { grid.PressKey(widget.KeyEnter) })

			Expect(store.RowCount()).To(Equal(4))
			Expect(cursor()).To(Equal([2]int{3, 0}))
		})

		It("moves down on enter elsewhere", func() {
			ui.Turn(func() { grid.SetGridCursor(0, 2) })

			ui.Turn(func() { grid.PressKey(widget.KeyNumpadEnter) })

			Expect(store.RowCount()).To(Equal(3))
			Expect(cursor()).To(Equal([2]int{1, 0}))
		})

		It("commits the editor before deciding on a new row", func() {
			ui.Turn(func() { grid.SetGridCursor(2, 0) })
			grid.TypeInCell("Klaas")

			ui.Turn(func() { grid.PressKey(widget.KeyEnter) })

			Expect(store.RowAt(2).Name).To(Equal("Klaas"))
			Expect(store.persisted).To(Equal([]string{"Klaas"}))
			Expect(store.RowCount()).To(Equal(4))
			Expect(cursor()).To(Equal([2]int{3, 0}))
		})

		It("deletes selected rows", func() {
			arie := store.RowAt(1)
			grid.SelectRows(0, 2)

			ui.Turn(func() { grid.PressKey(widget.KeyDelete) })

			Expect(store.Rows()).To(Equal([]*skater{arie}))
			Expect(grid.SelectedRows()).To(BeEmpty())
		})

		It("clears the active cell without a row selection", func() {
			ui.Turn(func() { grid.SetGridCursor(1, 1) })

			ui.Turn(func() { grid.PressKey(widget.KeyBack) })

			Expect(store.RowCount()).To(Equal(3))
			Expect(store.RowAt(1).Level).To(BeZero())
			Expect(store.Modified(1)).To(BeTrue())
		})

		It("leaves other keys to the grid", func() {
			ui.Turn(func() { grid.PressKey(widget.KeyDown) })

			Expect(cursor()).To(Equal([2]int{1, 0}))
			Expect(store.savedRows).To(Equal([]int{0}))
		})
	})

	Describe("closing", func() {
		BeforeEach(func() { bind(table.CommitGrid) })

		It("commits everything before closing", func() {
			Expect(g.RequestClose(func() {})).To(BeTrue())

			store.SetCell(1, 0, "")
			Expect(g.RequestClose(func() {})).To(BeFalse())
		})

		It("retries after closing an open editor", func() {
			closed := 0
			grid.TypeInCell("Anna")

			ui.Turn(func() {
				Expect(g.RequestClose(func() { closed++ })).To(BeFalse())
				Expect(closed).To(BeZero())
			})

			Expect(closed).To(Equal(1))
			Expect(store.RowAt(0).Name).To(Equal("Anna"))
		})

		It("vetoes closing the frame while a row is invalid", func() {
			frame := tui.NewFrame("roster", grid)
			g.GuardClose(frame, func() { frame.Close() })
			store.SetCell(1, 0, "")

			Expect(frame.Close()).To(BeFalse())

			store.SetCell(1, 0, "Arie")
			Expect(frame.Close()).To(BeTrue())
			Expect(store.persisted).To(Equal([]string{"Arie"}))
		})
	})

	It("stops reacting once the grid is destroyed", func() {
		bind(table.CommitRow)
		refreshes := grid.Refreshes()

		grid.Destroy()
		Expect(g.Closed()).To(BeTrue())

		ui.Turn(func() { grid.SetGridCursor(1, 0) })
		store.CreateRow()

		Expect(store.savedRows).To(BeEmpty())
		Expect(grid.Refreshes()).To(Equal(refreshes))
	})
})
