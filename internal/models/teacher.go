package models

import "time"

// Teacher is a staff member shown in the public teachers section.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Role         string    `db:"role" json:"role"`
	Bio          *string   `db:"bio" json:"bio"`
	ImageURL     *string   `db:"image_url" json:"image_url"`
	ColorClass   *string   `db:"color_class" json:"color_class"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
