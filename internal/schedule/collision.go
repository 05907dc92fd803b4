package schedule

import (
	"time"

	"github.com/tutorbook-app/backend/internal/model"
)

// BusyWindow is the absolute time range during which the tutor is
// unavailable: the lesson itself plus the travel buffer before it for
// commute lessons.
type BusyWindow struct {
	Start time.Time
	End   time.Time
}

// NewBusyWindow derives the busy window for a lesson starting at start and
// ending at lessonEnd. Commute lessons shift the window start back by
// travelMinutes; the end is always the pure lesson end.
func NewBusyWindow(start, lessonEnd time.Time, locationType model.LocationType, travelMinutes int) BusyWindow {
	if locationType == model.LocationCommute {
		start = start.Add(-time.Duration(travelMinutes) * time.Minute)
	}
	return BusyWindow{Start: start, End: lessonEnd}
}

// Overlaps reports open-interval overlap: windows that merely touch at a
// boundary (back-to-back lessons) do not collide.
func (w BusyWindow) Overlaps(other BusyWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// SlotCollides decides whether a candidate lesson interval intersects any of
// the existing slots' busy windows. excludeID skips the slot being edited so
// it never collides with itself; pass 0 when creating.
func SlotCollides(candidateStart time.Time, lessonDuration time.Duration, locationType model.LocationType, travelMinutes int, existing []*model.Slot, excludeID int64) bool {
	candidate := NewBusyWindow(candidateStart, candidateStart.Add(lessonDuration), locationType, travelMinutes)

	for _, slot := range existing {
		if excludeID != 0 && slot.ID == excludeID {
			continue
		}
		window := NewBusyWindow(slot.StartTime, slot.EndTime, slot.LocationType, slot.TravelMinutes)
		if candidate.Overlaps(window) {
			return true
		}
	}
	return false
}

// minuteWindow is the minute-of-day counterpart of BusyWindow for template
// items, which carry no date.
type minuteWindow struct {
	start int
	end   int
}

func templateWindow(item *model.WeeklyTemplateItem) minuteWindow {
	start := TimeToMinutes(item.StartTime)
	w := minuteWindow{start: start, end: start + item.DurationMinutes}
	if item.LocationType == model.LocationCommute {
		w.start -= item.TravelMinutes
	}
	return w
}

func (w minuteWindow) overlaps(other minuteWindow) bool {
	return w.start < other.end && w.end > other.start
}

// TemplateCollides decides whether a candidate weekly rule intersects any
// existing rule on the same day of week, using the same open-interval
// semantics as SlotCollides but in minutes since midnight.
func TemplateCollides(candidate *model.WeeklyTemplateItem, existing []*model.WeeklyTemplateItem, excludeID int64) bool {
	window := templateWindow(candidate)

	for _, item := range existing {
		if item.DayOfWeek != candidate.DayOfWeek {
			continue
		}
		if excludeID != 0 && item.ID == excludeID {
			continue
		}
		if window.overlaps(templateWindow(item)) {
			return true
		}
	}
	return false
}
