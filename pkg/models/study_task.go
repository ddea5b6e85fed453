package models

// StudyTask is an entry of the personal to-do list
type StudyTask struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	IsCompleted bool   `json:"is_completed"`
}
