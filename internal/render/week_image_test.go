package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorbook-app/backend/internal/model"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestWeekImage(t *testing.T) {
	studentID := int64(1)
	bookedAt := time.Date(2026, 1, 4, 10, 0, 0, 0, time.Local)
	slots := []*model.Slot{
		{
			ID:           1,
			StartTime:    time.Date(2026, 1, 5, 14, 0, 0, 0, time.Local),
			EndTime:      time.Date(2026, 1, 5, 15, 0, 0, 0, time.Local),
			LocationType: model.LocationOnsite,
		},
		{
			ID:            2,
			StartTime:     time.Date(2026, 1, 6, 16, 0, 0, 0, time.Local),
			EndTime:       time.Date(2026, 1, 6, 17, 0, 0, 0, time.Local),
			IsBooked:      true,
			StudentID:     &studentID,
			BookedAt:      &bookedAt,
			LocationType:  model.LocationCommute,
			TravelMinutes: 45,
		},
		{
			ID:           3,
			StartTime:    time.Date(2026, 1, 7, 7, 0, 0, 0, time.Local),
			EndTime:      time.Date(2026, 1, 7, 8, 0, 0, 0, time.Local),
			IsBooked:     true,
			StudentID:    &studentID,
			BookedAt:     &bookedAt,
			IsPaid:       false,
			LocationType: model.LocationOnsite,
		},
	}

	png, err := WeekImage(time.Date(2026, 1, 7, 12, 0, 0, 0, time.Local), slots, map[int64]string{studentID: "Dasha"})
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, pngSignature, png[:8])
}

func TestWeekImageEmptyWeek(t *testing.T) {
	png, err := WeekImage(time.Date(2026, 1, 7, 0, 0, 0, 0, time.Local), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, pngSignature, png[:8])
}

func TestNormalizeToWeekBounds(t *testing.T) {
	// Wednesday normalizes back to Monday; Sunday belongs to the week
	// that started six days earlier.
	wed := time.Date(2026, 1, 7, 15, 30, 0, 0, time.Local)
	bounds := normalizeToWeekBounds(wed)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local), bounds.start)
	assert.Equal(t, time.Date(2026, 1, 12, 0, 0, 0, 0, time.Local), bounds.end)

	sun := time.Date(2026, 1, 11, 8, 0, 0, 0, time.Local)
	bounds = normalizeToWeekBounds(sun)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.Local), bounds.start)
}

func TestCalculateHourRange(t *testing.T) {
	hours := calculateHourRange(nil)
	assert.Equal(t, defaultMinHour-1, hours.start)
	assert.Equal(t, defaultMaxHour+1, hours.end)

	early := []*model.Slot{
		{
			StartTime:     time.Date(2026, 1, 5, 6, 0, 0, 0, time.Local),
			EndTime:       time.Date(2026, 1, 5, 7, 0, 0, 0, time.Local),
			LocationType:  model.LocationCommute,
			TravelMinutes: 90,
		},
	}
	hours = calculateHourRange(early)
	// Must-leave-by is 04:30, so the axis starts at 03:00.
	assert.Equal(t, 3, hours.start)
}
