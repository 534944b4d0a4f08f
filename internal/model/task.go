package model

import "time"

type TaskStatus string

const (
	TaskStatusTodo      TaskStatus = "TODO"
	TaskStatusOngoing   TaskStatus = "ONGOING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// ParseTaskStatus accepts only the exact board column names.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch status := TaskStatus(raw); status {
	case TaskStatusTodo, TaskStatusOngoing, TaskStatusCompleted:
		return status, true
	default:
		return "", false
	}
}

type Task struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
