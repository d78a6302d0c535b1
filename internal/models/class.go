package models

import (
	"time"

	"github.com/lib/pq"
)

// ClassProgram is one of the age-banded programs offered by the school.
type ClassProgram struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	AgeRange     string         `db:"age_range" json:"age_range"`
	Description  *string        `db:"description" json:"description"`
	Features     pq.StringArray `db:"features" json:"features"`
	IconName     *string        `db:"icon_name" json:"icon_name"`
	ColorClass   *string        `db:"color_class" json:"color_class"`
	BgColorClass *string        `db:"bg_color_class" json:"bg_color_class"`
	DisplayOrder int            `db:"display_order" json:"display_order"`
	IsActive     bool           `db:"is_active" json:"is_active"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
