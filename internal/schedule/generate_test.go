package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorbook-app/backend/internal/model"
)

func TestPlanFromTemplate(t *testing.T) {
	items := []*model.WeeklyTemplateItem{
		{ID: 1, DayOfWeek: 1, StartTime: "16:00", DurationMinutes: 60, LocationType: model.LocationOnsite},
	}

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.Local)

	slots := PlanFromTemplate(items, start, end)

	// January 2026 has four Mondays: the 5th, 12th, 19th and 26th.
	require.Len(t, slots, 4)
	for i, dayOfMonth := range []int{5, 12, 19, 26} {
		assert.Equal(t, time.Date(2026, 1, dayOfMonth, 16, 0, 0, 0, time.Local), slots[i].StartTime)
		assert.Equal(t, time.Date(2026, 1, dayOfMonth, 17, 0, 0, 0, time.Local), slots[i].EndTime)
		assert.False(t, slots[i].IsBooked)
	}
}

func TestPlanFromTemplateFixedStudent(t *testing.T) {
	studentID := int64(42)
	items := []*model.WeeklyTemplateItem{
		{
			ID:              1,
			DayOfWeek:       3,
			StartTime:       "10:00",
			DurationMinutes: 90,
			LocationType:    model.LocationCommute,
			TravelMinutes:   40,
			StudentID:       &studentID,
			Price:           1500,
		},
	}

	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 1, 11, 0, 0, 0, 0, time.Local)

	slots := PlanFromTemplate(items, start, end)

	require.Len(t, slots, 1)
	slot := slots[0]
	assert.Equal(t, time.Date(2026, 1, 7, 10, 0, 0, 0, time.Local), slot.StartTime)
	assert.True(t, slot.IsBooked)
	require.NotNil(t, slot.StudentID)
	assert.Equal(t, studentID, *slot.StudentID)
	assert.Equal(t, model.LocationCommute, slot.LocationType)
	assert.Equal(t, 40, slot.TravelMinutes)
	assert.Equal(t, 1500, slot.Price)
}

func TestPlanFromTemplateIgnoresTimeOfDayInBounds(t *testing.T) {
	items := []*model.WeeklyTemplateItem{
		{ID: 1, DayOfWeek: 1, StartTime: "09:00", DurationMinutes: 60, LocationType: model.LocationOnsite},
	}

	// Bounds carry a late time of day; the day itself must still count.
	start := time.Date(2026, 1, 5, 23, 30, 0, 0, time.Local)
	end := time.Date(2026, 1, 5, 23, 45, 0, 0, time.Local)

	slots := PlanFromTemplate(items, start, end)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local), slots[0].StartTime)
}

func TestPlanDaily(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 1, 6, 0, 0, 0, 0, time.Local)

	slots := PlanDaily(start, end, "10:00", "13:00", 60)

	// Two days with three one-hour slots each.
	require.Len(t, slots, 6)
	assert.Equal(t, time.Date(2026, 1, 5, 10, 0, 0, 0, time.Local), slots[0].StartTime)
	assert.Equal(t, time.Date(2026, 1, 5, 12, 0, 0, 0, time.Local), slots[2].StartTime)
	assert.Equal(t, time.Date(2026, 1, 5, 13, 0, 0, 0, time.Local), slots[2].EndTime)
	assert.Equal(t, time.Date(2026, 1, 6, 10, 0, 0, 0, time.Local), slots[3].StartTime)
}

func TestPlanDailyStopsAtWindowEnd(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	// 10:00-12:30 fits one 90-minute slot; a second would cross 12:30.
	slots := PlanDaily(start, start, "10:00", "12:30", 90)
	require.Len(t, slots, 1)
	assert.Equal(t, time.Date(2026, 1, 5, 11, 30, 0, 0, time.Local), slots[0].EndTime)

	slots = PlanDaily(start, start, "10:00", "13:00", 90)
	require.Len(t, slots, 2)
}

func TestPlanDailyRejectsNonPositiveDuration(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local)

	assert.Nil(t, PlanDaily(start, start, "10:00", "13:00", 0))
	assert.Nil(t, PlanDaily(start, start, "10:00", "13:00", -30))
}
