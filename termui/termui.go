package termui

import (
	"sync"

	"github.com/rivo/tview"
)

// TermUI is the wrapper for the basic terminal interface provided
// It shows the logs redirected to the side, along with the program status
// Notifications from the web part pop up as a modal over everything

const (
	pageMain  = "main"
	pageAlert = "alert"
)

type TermUI struct {
	sync.Mutex
	app   *tview.Application
	pages *tview.Pages

	//Logger points to this
	LogsView *tview.TextView

	statusTable *tview.Table
	statistics  *Statistics
	tasks       []*TaskState
	running     bool
}

func NewTermUI() *TermUI {

	t := &TermUI{
		tasks: []*TaskState{},
	}
	t.app = tview.NewApplication()

	//Logs stream

	t.LogsView = tview.NewTextView()
	t.LogsView.SetText("Loading...\n")
	t.LogsView.SetTextAlign(tview.AlignLeft)
	t.LogsView.SetDynamicColors(true)
	t.LogsView.SetChangedFunc(func() {
		t.app.Draw()
	})
	t.LogsView.SetMaxLines(4096)
	t.LogsView.SetWrap(false)
	t.LogsView.SetTitle("Logs")
	t.LogsView.SetBorder(true)

	//Status table

	t.statusTable = tview.NewTable()
	t.statusTable.SetBorders(true)
	t.statusTable.SetTitle("Status")
	t.statusTable.SetFixed(1, 1)
	t.statusTable.SetCellSimple(0, 0, "Task")
	t.statusTable.SetCellSimple(0, 1, "Status")

	t.statistics = newStatistics(t)

	// Grid

	grid := tview.NewGrid()
	grid.SetRows(-3, -1)
	grid.SetColumns(-1, -2)
	grid.SetBorders(true)

	// Grid contents

	grid.AddItem(t.statusTable, 0, 0, 1, 1, 0, 0, true)
	grid.AddItem(t.statistics.table, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(t.LogsView, 0, 1, 2, 1, 0, 0, false)

	t.pages = tview.NewPages()
	t.pages.AddPage(pageMain, grid, true, true)

	t.app.SetRoot(t.pages, true)
	t.app.SetFocus(grid)
	return t
}

// Run blocks until the UI is closed
func (t *TermUI) Run() {
	t.setRunning(true)
	defer t.setRunning(false)
	if err := t.app.Run(); err != nil {
		panic(err)
	}
}

func (t *TermUI) Stop() {
	t.setRunning(false)
	t.app.Stop()
}

func (t *TermUI) setRunning(running bool) {
	t.Lock()
	defer t.Unlock()
	t.running = running
}

func (t *TermUI) isRunning() bool {
	t.Lock()
	defer t.Unlock()
	return t.running
}

// queueDraw only touches the widgets once the app loop is there to pick the update up
func (t *TermUI) queueDraw(f func()) {
	if t.isRunning() {
		t.app.QueueUpdateDraw(f)
	} else {
		f()
	}
}

// Notify shows the message in a modal until acknowledged
func (t *TermUI) Notify(message string) {
	t.queueDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				t.pages.RemovePage(pageAlert)
			})
		t.pages.AddPage(pageAlert, modal, false, true)
	})
}

func (t *TermUI) HasAlert() bool {
	return t.pages.HasPage(pageAlert)
}

func (t *TermUI) Statistics() *Statistics {
	return t.statistics
}
