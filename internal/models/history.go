package models

import "time"

// Field labels recorded in history entries.
const (
	FieldStatus     = "Status"
	FieldAssignedTo = "AssignedTo"
)

// HistoryEntry is one immutable audit record of a field change on a task.
// Entries are append-only; nothing updates or deletes them.
type HistoryEntry struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	TaskID      uint   `gorm:"not null;index"`
	ChangedByID uint   `gorm:"not null"`
	Field       string `gorm:"size:100"`
	OldValue    string `gorm:"size:200"`
	NewValue    string `gorm:"size:200"`
	ChangedAt   time.Time

	Task      Task `gorm:"foreignKey:TaskID"`
	ChangedBy User `gorm:"foreignKey:ChangedByID"`
}
