package models

import "time"

// Group is a team that owns tasks. Deleting a group cascades to its tasks;
// deleting its owner is restricted.
type Group struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	OwnerID     uint   `gorm:"not null"`
	CreatedAt   time.Time

	Owner   User          `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
	Members []GroupMember `gorm:"foreignKey:GroupID"`
	Tasks   []Task        `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// GroupMember links a user into a group. A user joins a group at most once.
type GroupMember struct {
	ID       uint `gorm:"primaryKey;autoIncrement"`
	GroupID  uint `gorm:"not null;uniqueIndex:idx_group_user"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_group_user"`
	JoinedAt time.Time

	Group Group `gorm:"foreignKey:GroupID"`
	User  User  `gorm:"foreignKey:UserID"`
}
