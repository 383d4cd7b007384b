package models

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
	RoleUser    Role = "User"
)

// Valid reports whether r is a recognized role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

// User is an account that can own groups and create, hold, or comment on tasks.
type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"size:100;not null"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	Role         Role   `gorm:"size:50"`
	PasswordHash string `gorm:"size:128"`
	CreatedAt    time.Time

	Memberships   []GroupMember `gorm:"foreignKey:UserID"`
	OwnedGroups   []Group       `gorm:"foreignKey:OwnerID"`
	CreatedTasks  []Task        `gorm:"foreignKey:CreatedByID"`
	AssignedTasks []Task        `gorm:"foreignKey:AssignedToID"`
}
