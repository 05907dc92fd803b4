package model

import "time"

// WeeklyTemplateItem is a recurring weekly lesson rule, not a concrete date.
// DayOfWeek is 1-6 (Monday-Saturday), StartTime is a bare "HH:mm" string.
type WeeklyTemplateItem struct {
	ID              int64        `json:"id"`
	DayOfWeek       int          `json:"day_of_week"`
	StartTime       string       `json:"start_time"`
	DurationMinutes int          `json:"duration_minutes"`
	Price           int          `json:"price"`
	LocationType    LocationType `json:"location_type"`
	TravelMinutes   int          `json:"travel_minutes"`
	StudentID       *int64       `json:"student_id"`
	CreatedAt       time.Time    `json:"created_at"`
}
