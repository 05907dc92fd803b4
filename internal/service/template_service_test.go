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

func newTemplateServiceFixture() (*TemplateService, *fakeTemplateStore, *fakeUserStore) {
	templates := newFakeTemplateStore()
	users := newFakeUserStore()
	svc := NewTemplateService(templates, users, zap.NewNop())
	return svc, templates, users
}

func TestTemplateServiceCreate(t *testing.T) {
	svc, _, _ := newTemplateServiceFixture()
	ctx := context.Background()

	item, err := svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite, Price: 1200,
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	// Same weekday overlap is rejected, another weekday is fine.
	_, err = svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:30", DurationMinutes: 60,
		LocationType: model.LocationOnsite,
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 2, StartTime: "16:30", DurationMinutes: 60,
		LocationType: model.LocationOnsite,
	})
	assert.NoError(t, err)
}

func TestTemplateServiceCreateValidation(t *testing.T) {
	svc, _, users := newTemplateServiceFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		item model.WeeklyTemplateItem
	}{
		{"sunday", model.WeeklyTemplateItem{DayOfWeek: 7, StartTime: "16:00", DurationMinutes: 60, LocationType: model.LocationOnsite}},
		{"day zero", model.WeeklyTemplateItem{DayOfWeek: 0, StartTime: "16:00", DurationMinutes: 60, LocationType: model.LocationOnsite}},
		{"bad time", model.WeeklyTemplateItem{DayOfWeek: 1, StartTime: "26:00", DurationMinutes: 60, LocationType: model.LocationOnsite}},
		{"zero duration", model.WeeklyTemplateItem{DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 0, LocationType: model.LocationOnsite}},
		{"bad location", model.WeeklyTemplateItem{DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60, LocationType: "hybrid"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := tc.item
			_, err := svc.Create(ctx, &item)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}

	// A fixed student must exist.
	missing := int64(999)
	_, err := svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite, StudentID: &missing,
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	student := users.add(&model.User{Username: "dasha", Role: model.RoleStudent})
	_, err = svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite, StudentID: &student.ID,
	})
	assert.NoError(t, err)
}

func TestTemplateServiceCreateZeroesOnsiteTravel(t *testing.T) {
	svc, _, _ := newTemplateServiceFixture()

	item, err := svc.Create(context.Background(), &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite, TravelMinutes: 45,
	})
	require.NoError(t, err)
	assert.Zero(t, item.TravelMinutes)
}

func TestTemplateServiceUpdate(t *testing.T) {
	svc, _, _ := newTemplateServiceFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "18:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite,
	})
	require.NoError(t, err)

	// Re-saving an item in place never collides with itself.
	duration := 60
	updated, err := svc.Update(ctx, first.ID, TemplateUpdate{DurationMinutes: &duration})
	require.NoError(t, err)
	assert.Equal(t, 60, updated.DurationMinutes)

	// Moving onto the other rule does collide.
	startTime := "18:30"
	_, err = svc.Update(ctx, first.ID, TemplateUpdate{StartTime: &startTime})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = svc.Update(ctx, 999, TemplateUpdate{DurationMinutes: &duration})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTemplateServiceUpdateClearStudent(t *testing.T) {
	svc, _, users := newTemplateServiceFixture()
	ctx := context.Background()
	student := users.add(&model.User{Username: "dasha", Role: model.RoleStudent})

	item, err := svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite, StudentID: &student.ID,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, TemplateUpdate{ClearStudent: true})
	require.NoError(t, err)
	assert.Nil(t, updated.StudentID)
}

func TestTemplateServiceDelete(t *testing.T) {
	svc, _, _ := newTemplateServiceFixture()
	ctx := context.Background()

	item, err := svc.Create(ctx, &model.WeeklyTemplateItem{
		DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60,
		LocationType: model.LocationOnsite,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))
	assert.ErrorIs(t, svc.Delete(ctx, item.ID), apperr.ErrNotFound)
}
