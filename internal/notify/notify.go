// Package notify delivers booking events to the tutor. Delivery failures
// are logged by callers and never fail the parent operation.
package notify

import (
	"context"

	"github.com/tutorbook-app/backend/internal/model"
)

// Notifier receives the core's booking events.
type Notifier interface {
	SlotBooked(ctx context.Context, slot *model.Slot, student *model.User)
	SlotCanceled(ctx context.Context, slot *model.Slot, byAdmin bool)
	WaitlistRequest(ctx context.Context, entry *model.WaitlistEntry)
}

// Noop is the notifier used when no delivery channel is configured.
type Noop struct{}

func (Noop) SlotBooked(context.Context, *model.Slot, *model.User)  {}
func (Noop) SlotCanceled(context.Context, *model.Slot, bool)       {}
func (Noop) WaitlistRequest(context.Context, *model.WaitlistEntry) {}
