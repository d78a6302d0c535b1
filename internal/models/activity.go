package models

import "time"

// Activity is an extracurricular offering.
type Activity struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  *string   `db:"description" json:"description"`
	Emoji        *string   `db:"emoji" json:"emoji"`
	IconName     *string   `db:"icon_name" json:"icon_name"`
	ColorClass   *string   `db:"color_class" json:"color_class"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
