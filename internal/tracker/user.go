package tracker

import (
	"context"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const maxNameLen = 100

// CreateUser stores a new user with a bcrypt-hashed password. The hash is
// never returned in any view. A duplicate email fails with a conflict.
func (s *Service) CreateUser(ctx context.Context, name string, role models.Role, email, password string) (UserView, error) {
	if strings.TrimSpace(name) == "" {
		return UserView{}, validationf("name is required")
	}
	if len(name) > maxNameLen {
		return UserView{}, validationf("name exceeds %d characters", maxNameLen)
	}
	if strings.TrimSpace(email) == "" {
		return UserView{}, validationf("email is required")
	}
	if len(email) > maxNameLen {
		return UserView{}, validationf("email exceeds %d characters", maxNameLen)
	}
	if !role.Valid() {
		return UserView{}, validationf("unrecognized role %q", role)
	}
	if password == "" {
		return UserView{}, validationf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, validationf("password: %v", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return UserView{}, &ValidationError{Msg: "email already in use", Conflict: true}
		}
		return UserView{}, storeErr("create user", err)
	}

	return userView(user), nil
}

// ListUsers returns all users. Views never include the password hash.
func (s *Service) ListUsers(ctx context.Context) ([]UserView, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, storeErr("list users", err)
	}

	views := make([]UserView, len(users))
	for i, u := range users {
		views[i] = userView(u)
	}
	return views, nil
}
