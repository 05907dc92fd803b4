package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorbook-app/backend/internal/apperr"
	"github.com/tutorbook-app/backend/internal/model"
	"go.uber.org/zap"
)

func newWaitlistServiceFixture() (*WaitlistService, *recordingNotifier) {
	notifier := &recordingNotifier{}
	return NewWaitlistService(newFakeWaitlistStore(), notifier, zap.NewNop()), notifier
}

func TestWaitlistServiceCreate(t *testing.T) {
	svc, notifier := newWaitlistServiceFixture()
	ctx := context.Background()

	entry, err := svc.Create(ctx, &model.WaitlistEntry{Name: "  Olya  "})
	require.NoError(t, err)
	assert.NotZero(t, entry.ID)
	assert.Equal(t, "Olya", entry.Name)
	assert.Equal(t, 1, notifier.waitlist)

	_, err = svc.Create(ctx, &model.WaitlistEntry{Name: "   "})
	assert.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, 1, notifier.waitlist)
}

func TestWaitlistServiceDelete(t *testing.T) {
	svc, _ := newWaitlistServiceFixture()
	ctx := context.Background()

	entry, err := svc.Create(ctx, &model.WaitlistEntry{Name: "Olya"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, entry.ID))

	entries, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, svc.Delete(ctx, entry.ID), apperr.ErrNotFound)
}
