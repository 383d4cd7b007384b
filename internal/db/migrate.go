package db

import (
	"fmt"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns the list of all GORM models for migration.
func AllModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Task{},
		&models.Comment{},
		&models.HistoryEntry{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedDemoData upserts the starter users, groups, and memberships so a
// fresh install has something to look at. Safe to run repeatedly.
func SeedDemoData(db *gorm.DB) error {
	now := time.Now().UTC()

	users := []models.User{
		{ID: 1, Name: "Admin User", Email: "admin@company.com", Role: models.RoleAdmin, CreatedAt: now},
		{ID: 2, Name: "John Manager", Email: "john@company.com", Role: models.RoleManager, CreatedAt: now},
		{ID: 3, Name: "Jane Developer", Email: "jane@company.com", Role: models.RoleUser, CreatedAt: now},
		{ID: 4, Name: "Bob Tester", Email: "bob@company.com", Role: models.RoleUser, CreatedAt: now},
	}
	for _, u := range users {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "email", "role"}),
		}).Create(&u)
		if result.Error != nil {
			return fmt.Errorf("db: seed user %q: %w", u.Email, result.Error)
		}
	}

	groups := []models.Group{
		{ID: 1, Name: "Development Team", Description: "Main development team", OwnerID: 2, CreatedAt: now},
		{ID: 2, Name: "QA Team", Description: "Quality Assurance team", OwnerID: 2, CreatedAt: now},
	}
	for _, g := range groups {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "owner_id"}),
		}).Create(&g)
		if result.Error != nil {
			return fmt.Errorf("db: seed group %q: %w", g.Name, result.Error)
		}
	}

	members := []models.GroupMember{
		{ID: 1, GroupID: 1, UserID: 2, JoinedAt: now},
		{ID: 2, GroupID: 1, UserID: 3, JoinedAt: now},
		{ID: 3, GroupID: 2, UserID: 4, JoinedAt: now},
	}
	for _, m := range members {
		result := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).Create(&m)
		if result.Error != nil {
			return fmt.Errorf("db: seed membership group=%d user=%d: %w", m.GroupID, m.UserID, result.Error)
		}
	}

	return nil
}
