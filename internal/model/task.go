package model

import "time"

// Task statuses.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Task priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// DueDateLayout is the only accepted due date format.
const DueDateLayout = "2006-01-02"

// Task represents a single unit of work, optionally attached to a project.
// ProjectID is a soft reference: a dangling value is tolerated and the task
// reads back as unassigned.
type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	ProjectID   *uint      `gorm:"index" json:"project_id,omitempty"`
	Status      string     `gorm:"index;default:todo" json:"status"`
	Priority    string     `gorm:"default:medium" json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_date"`
	CompletedAt *time.Time `json:"completed_date,omitempty"`
}

// TaskWithProject is a Task annotated with the resolved project name.
// ProjectName is empty for unassigned tasks and for dangling references.
type TaskWithProject struct {
	Task
	ProjectName string `json:"project_name,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
