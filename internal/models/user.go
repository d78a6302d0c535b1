package models

import "time"

// RoleAdmin is the only role that unlocks the dashboard.
const RoleAdmin = "admin"

// User represents an account stored in the users table.
type User struct {
	ID           string     `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	LastSignIn   *time.Time `db:"last_sign_in" json:"last_sign_in,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// UserRole grants a role to a user.
type UserRole struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
