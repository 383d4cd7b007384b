// Package tracker implements the task lifecycle service: the operations
// that mutate tasks, groups, and users, and the append-only audit history
// those mutations produce.
package tracker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/notify"
	"gorm.io/gorm"
)

// Service owns all task, group, and user operations.
type Service struct {
	db       *gorm.DB
	now      func() time.Time
	notifier notify.Notifier
}

// Opts holds configuration for creating a Service.
type Opts struct {
	DB       *gorm.DB
	Notifier notify.Notifier // optional; nil disables notifications
	Now      func() time.Time // optional clock override for tests
}

// New creates a Service.
func New(opts Opts) (*Service, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("tracker: db is required")
	}
	s := &Service{
		db:       opts.DB,
		now:      opts.Now,
		notifier: opts.Notifier,
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.notifier == nil {
		s.notifier = notify.Nop{}
	}
	return s, nil
}

// announce sends a notification for a committed change. Delivery failures
// are logged and never surfaced to the caller.
func (s *Service) announce(ctx context.Context, ev notify.Event) {
	if err := s.notifier.Notify(ctx, ev); err != nil {
		log.Printf("tracker: notify task %d: %v", ev.TaskID, err)
	}
}

// appendHistory writes one audit record inside the given transaction.
func appendHistory(tx *gorm.DB, taskID, changedByID uint, field, oldValue, newValue string, at time.Time) error {
	entry := models.HistoryEntry{
		TaskID:      taskID,
		ChangedByID: changedByID,
		Field:       field,
		OldValue:    oldValue,
		NewValue:    newValue,
		ChangedAt:   at,
	}
	return tx.Create(&entry).Error
}
