package tasks

import (
	"strings"

	"github.com/google/uuid"

	"github.com/example/skillspace/pkg/models"
)

// List is an immutable snapshot of the study to-do list. Newest tasks come first.
type List struct {
	tasks []models.StudyTask
}

// NewList creates a list from existing tasks, keeping their order
func NewList(tasks ...models.StudyTask) List {
	out := make([]models.StudyTask, len(tasks))
	copy(out, tasks)
	return List{tasks: out}
}

// DefaultList returns the starter tasks of a new dashboard
func DefaultList() List {
	return NewList(
		models.StudyTask{ID: "1", Text: "Review Binary Search O(log n) logic"},
		models.StudyTask{ID: "2", Text: "Complete Python Decorators Module", IsCompleted: true},
		models.StudyTask{ID: "3", Text: "Initiate C++ Pointer Manifest"},
	)
}

// Items returns a copy of the tasks
func (l List) Items() []models.StudyTask {
	out := make([]models.StudyTask, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks
func (l List) Len() int {
	return len(l.tasks)
}

// Add prepends a task. Blank text is ignored.
func (l List) Add(text string) (List, models.StudyTask, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return l, models.StudyTask{}, false
	}
	task := models.StudyTask{ID: uuid.NewString(), Text: text}
	next := make([]models.StudyTask, 0, len(l.tasks)+1)
	next = append(next, task)
	next = append(next, l.tasks...)
	return List{tasks: next}, task, true
}

// Toggle flips a task's completion flag. Unknown ids are ignored.
func (l List) Toggle(id string) (List, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			next := l.Items()
			next[i].IsCompleted = !next[i].IsCompleted
			return List{tasks: next}, true
		}
	}
	return l, false
}

// Delete removes a task. Unknown ids are ignored.
func (l List) Delete(id string) (List, bool) {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			next := make([]models.StudyTask, 0, len(l.tasks)-1)
			next = append(next, l.tasks[:i]...)
			next = append(next, l.tasks[i+1:]...)
			return List{tasks: next}, true
		}
	}
	return l, false
}
