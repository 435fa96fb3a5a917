package termui

import "sort"

// RegisterTask adds a row to the status table, a nil TermUI hands out a detached task
func (t *TermUI) RegisterTask(taskName string) *TaskState {
	if t == nil {
		return &TaskState{name: taskName}
	}
	t.Lock()
	index := len(t.tasks) + 1
	state := &TaskState{
		name:   taskName,
		parent: t,
		row:    index,
		col:    1,
	}
	t.tasks = append(t.tasks, state)
	t.Unlock()

	state.UpdateStatus("Loading...")
	t.sortTasks() // Ensure tasks are sorted

	return state
}

func (t *TermUI) sortTasks() {
	t.Lock()
	//Sorts tasks alphabetically and redraws the list
	sort.SliceStable(t.tasks, func(i, j int) bool {
		return t.tasks[i].name < t.tasks[j].name
	})
	tasks := append([]*TaskState(nil), t.tasks...)
	t.Unlock()
	for i, task := range tasks {
		task.row = i + 1
		task.redraw()
	}
}
