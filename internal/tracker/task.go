package tracker

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/notify"
	"gorm.io/gorm"
)

const (
	maxTitleLen   = 200
	maxCommentLen = 1000
)

// CreateTaskParams holds input for CreateTask.
type CreateTaskParams struct {
	Title       string
	Description string
	Priority    models.Priority
	CreatedByID uint
	GroupID     uint
	DueDate     *time.Time
}

// UpdateTaskParams holds input for UpdateTask. A nil AssignedToID leaves
// the current assignee untouched; every other field overwrites
// unconditionally.
type UpdateTaskParams struct {
	Title        string
	Description  string
	Priority     models.Priority
	AssignedToID *uint
	DueDate      *time.Time
	UpdatedByID  uint
}

// CreateTask creates a task in Open status and records the implicit
// Open-status transition in history.
func (s *Service) CreateTask(ctx context.Context, p CreateTaskParams) (TaskView, error) {
	if strings.TrimSpace(p.Title) == "" {
		return TaskView{}, validationf("title is required")
	}
	if len(p.Title) > maxTitleLen {
		return TaskView{}, validationf("title exceeds %d characters", maxTitleLen)
	}
	if p.Priority == "" {
		p.Priority = models.PriorityMedium
	}
	if !p.Priority.Valid() {
		return TaskView{}, validationf("unrecognized priority %q", p.Priority)
	}

	db := s.db.WithContext(ctx)
	if err := firstExists(db, &models.User{}, p.CreatedByID, "user"); err != nil {
		return TaskView{}, err
	}
	if err := firstExists(db, &models.Group{}, p.GroupID, "group"); err != nil {
		return TaskView{}, err
	}

	now := s.now()
	task := models.Task{
		Title:       p.Title,
		Description: p.Description,
		Status:      models.StatusOpen,
		Priority:    p.Priority,
		CreatedByID: p.CreatedByID,
		GroupID:     p.GroupID,
		DueDate:     p.DueDate,
		CreatedAt:   now,
		LastUpdated: now,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return appendHistory(tx, task.ID, p.CreatedByID, models.FieldStatus, "", string(models.StatusOpen), now)
	})
	if err != nil {
		return TaskView{}, storeErr("create task", err)
	}

	s.announce(ctx, notify.Event{
		Action:    notify.ActionCreated,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Detail:    fmt.Sprintf("priority %s", task.Priority),
	})

	return s.GetTask(ctx, task.ID)
}

// UpdateTask overwrites a task's editable fields. The assignee changes
// only when AssignedToID is supplied; an assignment change appends one
// history entry.
func (s *Service) UpdateTask(ctx context.Context, id uint, p UpdateTaskParams) error {
	if !p.Priority.Valid() {
		return validationf("unrecognized priority %q", p.Priority)
	}

	db := s.db.WithContext(ctx)
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("task", id)
		}
		return storeErr("load task", err)
	}

	oldAssigned := assigneeString(task.AssignedToID)
	now := s.now()

	task.Title = p.Title
	task.Description = p.Description
	task.Priority = p.Priority
	task.DueDate = p.DueDate
	task.LastUpdated = now
	if p.AssignedToID != nil {
		task.AssignedToID = p.AssignedToID
	}
	newAssigned := assigneeString(task.AssignedToID)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		if oldAssigned != newAssigned {
			return appendHistory(tx, task.ID, p.UpdatedByID, models.FieldAssignedTo, oldAssigned, newAssigned, now)
		}
		return nil
	})
	if err != nil {
		return storeErr("update task", err)
	}

	if oldAssigned != newAssigned {
		s.announce(ctx, notify.Event{
			Action:    notify.ActionAssigned,
			TaskID:    task.ID,
			TaskTitle: task.Title,
			Detail:    fmt.Sprintf("%s -> %s", orUnassigned(oldAssigned), orUnassigned(newAssigned)),
		})
	}
	return nil
}

// UpdateStatus sets a task's status and records the transition in history.
// Any status may follow any other. Moving into Completed or Closed stamps
// CompletedAt; moving back out never clears it.
func (s *Service) UpdateStatus(ctx context.Context, id uint, newStatus models.Status, updatedByID uint) error {
	if !newStatus.Valid() {
		return validationf("unrecognized status %q", newStatus)
	}

	db := s.db.WithContext(ctx)
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("task", id)
		}
		return storeErr("load task", err)
	}

	oldStatus := task.Status
	now := s.now()
	task.Status = newStatus
	task.LastUpdated = now
	if newStatus.Terminal() {
		task.CompletedAt = &now
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&task).Error; err != nil {
			return err
		}
		return appendHistory(tx, task.ID, updatedByID, models.FieldStatus, string(oldStatus), string(newStatus), now)
	})
	if err != nil {
		return storeErr("update status", err)
	}

	s.announce(ctx, notify.Event{
		Action:    notify.ActionStatus,
		TaskID:    task.ID,
		TaskTitle: task.Title,
		Detail:    fmt.Sprintf("%s -> %s", oldStatus, newStatus),
	})
	return nil
}

// AddComment appends an immutable comment to a task and returns it with
// the author name resolved.
func (s *Service) AddComment(ctx context.Context, taskID, userID uint, body string) (CommentView, error) {
	if strings.TrimSpace(body) == "" {
		return CommentView{}, validationf("comment is required")
	}
	if len(body) > maxCommentLen {
		return CommentView{}, validationf("comment exceeds %d characters", maxCommentLen)
	}

	db := s.db.WithContext(ctx)
	if err := firstExists(db, &models.Task{}, taskID, "task"); err != nil {
		return CommentView{}, err
	}
	var author models.User
	if err := db.First(&author, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CommentView{}, notFound("user", userID)
		}
		return CommentView{}, storeErr("load author", err)
	}

	comment := models.Comment{
		TaskID:    taskID,
		AuthorID:  userID,
		Body:      body,
		CreatedAt: s.now(),
	}
	if err := db.Create(&comment).Error; err != nil {
		return CommentView{}, storeErr("create comment", err)
	}

	comment.Author = author
	return commentView(comment), nil
}

// GetTask returns the denormalized view of one task, including its
// comments oldest first.
func (s *Service) GetTask(ctx context.Context, id uint) (TaskView, error) {
	var task models.Task
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Group").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("id ASC")
		}).
		Preload("Comments.Author").
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskView{}, notFound("task", id)
		}
		return TaskView{}, storeErr("load task", err)
	}

	v := taskView(task)
	v.Comments = make([]CommentView, len(task.Comments))
	for i, c := range task.Comments {
		v.Comments[i] = commentView(c)
	}
	return v, nil
}

// ListTasks returns denormalized task views, optionally scoped to one
// group. No ordering is applied.
func (s *Service) ListTasks(ctx context.Context, groupID *uint) ([]TaskView, error) {
	q := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("AssignedTo").
		Preload("Group")
	if groupID != nil {
		q = q.Where("group_id = ?", *groupID)
	}

	var tasks []models.Task
	if err := q.Find(&tasks).Error; err != nil {
		return nil, storeErr("list tasks", err)
	}

	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = taskView(t)
	}
	return views, nil
}

// firstExists checks that an entity with the given id exists.
func firstExists(db *gorm.DB, model interface{}, id uint, resource string) error {
	if err := db.First(model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(resource, id)
		}
		return storeErr("load "+resource, err)
	}
	return nil
}

// assigneeString renders an optional assignee id for history values.
// Unassigned is the empty string.
func assigneeString(id *uint) string {
	if id == nil {
		return ""
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func orUnassigned(s string) string {
	if s == "" {
		return "unassigned"
	}
	return s
}
