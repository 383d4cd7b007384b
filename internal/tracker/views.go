package tracker

import (
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

// TaskView is a task with related display names inlined. Names are
// re-resolved from joins on every read, never stored.
type TaskView struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Status         string        `json:"status"`
	Priority       string        `json:"priority"`
	CreatedByID    uint          `json:"createdById"`
	CreatedByName  string        `json:"createdByName"`
	AssignedToID   *uint         `json:"assignedToId"`
	AssignedToName *string       `json:"assignedToName"`
	GroupID        uint          `json:"groupId"`
	GroupName      string        `json:"groupName"`
	CreatedDate    time.Time     `json:"createdDate"`
	DueDate        *time.Time    `json:"dueDate"`
	CompletedDate  *time.Time    `json:"completedDate"`
	LastUpdated    time.Time     `json:"lastUpdated"`
	Comments       []CommentView `json:"comments,omitempty"`
}

// CommentView is a comment with its author name resolved.
type CommentView struct {
	ID          uint      `json:"id"`
	Comment     string    `json:"comment"`
	UserName    string    `json:"userName"`
	CreatedDate time.Time `json:"createdDate"`
}

// GroupView is a group with its owner name resolved. The member list is
// not hydrated on list reads.
type GroupView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"ownerId"`
	OwnerName   string    `json:"ownerName"`
	CreatedDate time.Time `json:"createdDate"`
}

// UserView is a user shape safe for responses: the password hash is
// never included.
type UserView struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedDate time.Time `json:"createdDate"`
}

// taskView projects a task (with preloaded relations) to its view shape.
func taskView(t models.Task) TaskView {
	v := TaskView{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        string(t.Status),
		Priority:      string(t.Priority),
		CreatedByID:   t.CreatedByID,
		CreatedByName: t.CreatedBy.Name,
		AssignedToID:  t.AssignedToID,
		GroupID:       t.GroupID,
		GroupName:     t.Group.Name,
		CreatedDate:   t.CreatedAt,
		DueDate:       t.DueDate,
		CompletedDate: t.CompletedAt,
		LastUpdated:   t.LastUpdated,
	}
	if t.AssignedTo != nil {
		name := t.AssignedTo.Name
		v.AssignedToName = &name
	}
	return v
}

// commentView projects a comment (with preloaded author) to its view shape.
func commentView(c models.Comment) CommentView {
	return CommentView{
		ID:          c.ID,
		Comment:     c.Body,
		UserName:    c.Author.Name,
		CreatedDate: c.CreatedAt,
	}
}

// groupView projects a group (with preloaded owner) to its view shape.
func groupView(g models.Group) GroupView {
	return GroupView{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		OwnerID:     g.OwnerID,
		OwnerName:   g.Owner.Name,
		CreatedDate: g.CreatedAt,
	}
}

// userView projects a user to its view shape, dropping the password hash.
func userView(u models.User) UserView {
	return UserView{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		CreatedDate: u.CreatedAt,
	}
}
