package models

import "time"

// Comment is a remark on a task. Comments are immutable once created;
// there is no edit or delete path.
type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	TaskID    uint   `gorm:"not null;index"`
	AuthorID  uint   `gorm:"not null"`
	Body      string `gorm:"size:1000;not null"`
	CreatedAt time.Time

	Task   Task `gorm:"foreignKey:TaskID"`
	Author User `gorm:"foreignKey:AuthorID"`
}
