package schedule

import "time"

// Student cancellation policy windows.
const (
	CancelNotice = 24 * time.Hour   // standard notice before the lesson
	CancelGrace  = 30 * time.Minute // grace period after booking
)

// StudentCanCancel reports whether a student may cancel a booking at the
// moment now. Allowed when more than 24h remain before the lesson, or
// within 30 minutes of booking even inside the 24h window. bookedAt may be
// nil for legacy rows; then only the notice rule applies.
func StudentCanCancel(now, slotStart time.Time, bookedAt *time.Time) bool {
	if now.Before(slotStart.Add(-CancelNotice)) {
		return true
	}
	if bookedAt != nil && now.Before(bookedAt.Add(CancelGrace)) {
		return true
	}
	return false
}
