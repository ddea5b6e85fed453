package session

import "github.com/example/skillspace/pkg/models"

// AddTask prepends a study task. Blank text is ignored.
// The task mutators report false once the session is closed.
func (s *Session) AddTask(text string) (models.StudyTask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.StudyTask{}, false
	}
	list, task, ok := s.tasks.Add(text)
	if ok {
		s.tasks = list
	}
	return task, ok
}

// ToggleTask flips a task's completed flag
func (s *Session) ToggleTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	list, ok := s.tasks.Toggle(id)
	s.tasks = list
	return ok
}

// DeleteTask removes a task
func (s *Session) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	list, ok := s.tasks.Delete(id)
	s.tasks = list
	return ok
}

// Tasks returns the study list
func (s *Session) Tasks() []models.StudyTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Items()
}
