package model

import "time"

type LocationType string

const (
	LocationOnsite  LocationType = "onsite"
	LocationCommute LocationType = "commute"
)

// Slot is one concrete, dated, bookable calendar entry.
// EndTime is the pure lesson end; travel time for commute lessons is a
// separate buffer before StartTime and is never folded into the interval.
type Slot struct {
	ID            int64        `json:"id"`
	StartTime     time.Time    `json:"start_time"`
	EndTime       time.Time    `json:"end_time"`
	IsBooked      bool         `json:"is_booked"`
	StudentID     *int64       `json:"student_id"`
	BookedAt      *time.Time   `json:"booked_at"`
	IsPaid        bool         `json:"is_paid"`
	Topic         string       `json:"topic"`
	LocationType  LocationType `json:"location_type"`
	TravelMinutes int          `json:"travel_minutes"`
	Price         int          `json:"price"`
	CreatedAt     time.Time    `json:"created_at"`
}

// IsFree checks if the slot can still be booked
func (s *Slot) IsFree() bool {
	return !s.IsBooked
}

// MustLeaveBy returns the moment the tutor has to leave for a commute
// lesson. For onsite lessons it equals StartTime.
func (s *Slot) MustLeaveBy() time.Time {
	if s.LocationType == LocationCommute {
		return s.StartTime.Add(-time.Duration(s.TravelMinutes) * time.Minute)
	}
	return s.StartTime
}
