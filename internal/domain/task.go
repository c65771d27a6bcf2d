package domain

import (
	"strings"
	"time"
)

// Task is one to-do item in the list.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// NewTask validates input and returns a fresh, incomplete task.
func NewTask(id, text string, now time.Time) (Task, error) {
	id = strings.TrimSpace(id)
	text = strings.TrimSpace(text)
	if id == "" {
		return Task{}, ErrInvalidID
	}
	if text == "" {
		return Task{}, ErrInvalidText
	}
	return Task{
		ID:        id,
		Text:      text,
		CreatedAt: now.UTC(),
	}, nil
}

// Rename replaces the task text. Whitespace-only text is rejected and leaves the task unchanged.
func (t *Task) Rename(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrInvalidText
	}
	t.Text = text
	return nil
}

// ToggleCompleted flips the completion flag.
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
}

// IndexOf returns the position of id in tasks, or -1.
func IndexOf(tasks []Task, id string) int {
	for idx := range tasks {
		if tasks[idx].ID == id {
			return idx
		}
	}
	return -1
}
