package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        *string   `json:"email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	AdminNotes   *string   `json:"admin_notes,omitempty"`
	DefaultPrice *int      `json:"default_price"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin checks if the user is the tutor
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
