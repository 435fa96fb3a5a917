package termui

type TaskState struct {
	name       string
	lastStatus string
	parent     *TermUI
	//Row and col of the status cell
	row int
	col int
}

func (t *TaskState) UpdateStatus(state string) {
	t.lastStatus = state
	if t.parent == nil {
		return
	}
	row, col := t.row, t.col
	t.parent.queueDraw(func() {
		t.parent.statusTable.SetCellSimple(row, col, state)
	})
}

func (t *TaskState) Status() string {
	return t.lastStatus
}

// redraw draws title and contents again
func (t *TaskState) redraw() {
	row, col, name, status := t.row, t.col, t.name, t.lastStatus
	t.parent.queueDraw(func() {
		t.parent.statusTable.SetCellSimple(row, col, status)
		t.parent.statusTable.SetCellSimple(row, col-1, name)
	})
}
