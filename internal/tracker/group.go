package tracker

import (
	"context"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

const maxGroupNameLen = 100

// CreateGroup creates a group owned by an existing user.
func (s *Service) CreateGroup(ctx context.Context, name, description string, ownerID uint) (GroupView, error) {
	if strings.TrimSpace(name) == "" {
		return GroupView{}, validationf("group name is required")
	}
	if len(name) > maxGroupNameLen {
		return GroupView{}, validationf("group name exceeds %d characters", maxGroupNameLen)
	}

	db := s.db.WithContext(ctx)
	var owner models.User
	if err := firstExists(db, &owner, ownerID, "user"); err != nil {
		return GroupView{}, err
	}

	group := models.Group{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
		CreatedAt:   s.now(),
	}
	if err := db.Create(&group).Error; err != nil {
		return GroupView{}, storeErr("create group", err)
	}

	group.Owner = owner
	return groupView(group), nil
}

// ListGroups returns all groups with owner names resolved. Member lists
// are not hydrated on the list read.
func (s *Service) ListGroups(ctx context.Context) ([]GroupView, error) {
	var groups []models.Group
	if err := s.db.WithContext(ctx).Preload("Owner").Find(&groups).Error; err != nil {
		return nil, storeErr("list groups", err)
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		views[i] = groupView(g)
	}
	return views, nil
}

// AddMember adds a user to a group. Each (group, user) pair is unique;
// joining twice fails with a conflict.
func (s *Service) AddMember(ctx context.Context, groupID, userID uint) error {
	db := s.db.WithContext(ctx)
	if err := firstExists(db, &models.Group{}, groupID, "group"); err != nil {
		return err
	}
	if err := firstExists(db, &models.User{}, userID, "user"); err != nil {
		return err
	}

	member := models.GroupMember{
		GroupID:  groupID,
		UserID:   userID,
		JoinedAt: s.now(),
	}
	if err := db.Create(&member).Error; err != nil {
		if isDuplicate(err) {
			return &ValidationError{Msg: "user is already a member of this group", Conflict: true}
		}
		return storeErr("add member", err)
	}
	return nil
}
