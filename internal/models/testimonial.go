package models

import "time"

// Testimonial is a parent review. Rating is between 1 and 5.
type Testimonial struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Role           string    `db:"role" json:"role"`
	Content        string    `db:"content" json:"content"`
	Rating         int       `db:"rating" json:"rating"`
	AvatarInitials *string   `db:"avatar_initials" json:"avatar_initials"`
	ColorClass     *string   `db:"color_class" json:"color_class"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
