package model

import "time"

// ProjectStatusActive is the default project status. Project status is free
// text, not an enforced enum.
const ProjectStatusActive = "active"

// Project is a named grouping of tasks.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `gorm:"default:active" json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_date"`
}

// ProjectWithProgress is a Project annotated with task counts computed at
// read time. Neither count is persisted.
type ProjectWithProgress struct {
	Project
	TotalTasks     int64 `json:"total_tasks"`
	CompletedTasks int64 `json:"completed_tasks"`
}
