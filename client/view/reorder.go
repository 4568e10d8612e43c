package view

import (
	"slices"

	"github.com/example/task-manager/domain/task"
)

// Move returns a copy of tasks with the task identified by fromID placed at
// the position currently held by toID, shifting the tasks in between. The
// input slice is not modified. If either id is absent the copy is returned
// unchanged. Reordering is client-local only; the new order is never sent to
// the server and is lost on the next full fetch.
func Move(tasks []task.Task, fromID, toID string) []task.Task {
	out := slices.Clone(tasks)

	from := indexOf(out, fromID)
	to := indexOf(out, toID)
	if from < 0 || to < 0 || from == to {
		return out
	}

	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out
}

func indexOf(tasks []task.Task, id string) int {
	return slices.IndexFunc(tasks, func(t task.Task) bool { return t.ID == id })
}
