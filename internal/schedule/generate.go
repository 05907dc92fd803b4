package schedule

import (
	"time"

	"github.com/tutorbook-app/backend/internal/model"
)

// PlanFromTemplate expands weekly template items over [startDate, endDate]
// into concrete slots, one per matching weekday per day. Items with a fixed
// student produce pre-booked slots. The plan is pure; persistence and
// duplicate skipping happen in the service layer.
func PlanFromTemplate(items []*model.WeeklyTemplateItem, startDate, endDate time.Time) []*model.Slot {
	var slots []*model.Slot

	for day := DayStart(startDate); !day.After(endDate); day = day.AddDate(0, 0, 1) {
		weekday := ISOWeekday(day)
		for _, item := range items {
			if item.DayOfWeek != weekday {
				continue
			}
			start := AtTime(day, item.StartTime)
			slot := &model.Slot{
				StartTime:     start,
				EndTime:       start.Add(time.Duration(item.DurationMinutes) * time.Minute),
				LocationType:  item.LocationType,
				TravelMinutes: item.TravelMinutes,
				Price:         item.Price,
			}
			if item.StudentID != nil {
				id := *item.StudentID
				slot.IsBooked = true
				slot.StudentID = &id
			}
			slots = append(slots, slot)
		}
	}
	return slots
}

// PlanDaily walks each day in [startDate, endDate] and carves the uniform
// window [dailyStart, dailyEnd] into back-to-back slots of duration minutes.
// A day's inner loop stops once the next slot would cross the end boundary.
func PlanDaily(startDate, endDate time.Time, dailyStart, dailyEnd string, durationMinutes int) []*model.Slot {
	if durationMinutes <= 0 {
		return nil
	}

	startMin := TimeToMinutes(dailyStart)
	endMin := TimeToMinutes(dailyEnd)

	var slots []*model.Slot
	for day := DayStart(startDate); !day.After(endDate); day = day.AddDate(0, 0, 1) {
		for m := startMin; m+durationMinutes <= endMin; m += durationMinutes {
			start := AtTime(day, MinutesToTime(m))
			slots = append(slots, &model.Slot{
				StartTime:    start,
				EndTime:      start.Add(time.Duration(durationMinutes) * time.Minute),
				LocationType: model.LocationOnsite,
			})
		}
	}
	return slots
}
