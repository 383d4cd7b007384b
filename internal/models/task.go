package models

import "time"

// Status is the closed set of task statuses. Any status may follow any
// other; there is no enforced transition graph.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "InProgress"
	StatusTesting    Status = "Testing"
	StatusCompleted  Status = "Completed"
	StatusClosed     Status = "Closed"
)

// Valid reports whether s is a recognized status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusTesting, StatusCompleted, StatusClosed:
		return true
	}
	return false
}

// Terminal reports whether s marks the task as finished. Moving into a
// terminal status stamps CompletedAt.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusClosed
}

// Priority is the closed set of task priorities.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Valid reports whether p is a recognized priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task is the core work item.
type Task struct {
	ID           uint     `gorm:"primaryKey;autoIncrement"`
	Title        string   `gorm:"size:200;not null"`
	Description  string   `gorm:"size:1000"`
	Status       Status   `gorm:"size:16;default:Open;index"`
	Priority     Priority `gorm:"size:16;default:Medium"`
	CreatedByID  uint     `gorm:"not null"`
	AssignedToID *uint
	GroupID      uint `gorm:"not null;index"`
	CreatedAt    time.Time
	DueDate      *time.Time
	CompletedAt  *time.Time
	LastUpdated  time.Time

	CreatedBy  User  `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	AssignedTo *User `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL"`
	Group      Group `gorm:"foreignKey:GroupID"`

	Comments []Comment      `gorm:"foreignKey:TaskID"`
	History  []HistoryEntry `gorm:"foreignKey:TaskID"`
}
