package models

import "time"

// GalleryItem is a published photo.
type GalleryItem struct {
	ID           string    `db:"id" json:"id"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	AltText      *string   `db:"alt_text" json:"alt_text"`
	Category     *string   `db:"category" json:"category"`
	DisplayOrder int       `db:"display_order" json:"display_order"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
