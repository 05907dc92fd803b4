package service

import (
	"context"
	"time"

	"github.com/tutorbook-app/backend/internal/model"
)

// Store interfaces mirror the repository layer so services can be tested
// against in-memory fakes.

type SlotStore interface {
	Create(ctx context.Context, slot *model.Slot) error
	GetByID(ctx context.Context, id int64) (*model.Slot, error)
	GetByRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error)
	Update(ctx context.Context, slot *model.Slot) error
	Book(ctx context.Context, slotID, studentID int64, topic string) (bool, error)
	ClearBooking(ctx context.Context, slotID int64) error
	SetPaid(ctx context.Context, slotID int64, paid bool) error
	Delete(ctx context.Context, slotID int64) error
	ExistsAt(ctx context.Context, startTime time.Time) (bool, error)
	UnpaidPast(ctx context.Context, studentID int64, now time.Time) ([]*model.Slot, error)
	SettleAll(ctx context.Context, studentID int64, now time.Time) (int64, error)
}

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	DeleteCascade(ctx context.Context, id int64) error
}

type TemplateStore interface {
	Create(ctx context.Context, item *model.WeeklyTemplateItem) error
	GetByID(ctx context.Context, id int64) (*model.WeeklyTemplateItem, error)
	GetAll(ctx context.Context) ([]*model.WeeklyTemplateItem, error)
	Update(ctx context.Context, item *model.WeeklyTemplateItem) error
	Delete(ctx context.Context, id int64) error
}

type WaitlistStore interface {
	Create(ctx context.Context, entry *model.WaitlistEntry) error
	GetAll(ctx context.Context) ([]*model.WaitlistEntry, error)
	Delete(ctx context.Context, id int64) error
}
