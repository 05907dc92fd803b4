package model

import "time"

// WaitlistEntry is an unauthenticated prospective-student contact request.
type WaitlistEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Message   *string   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
