package dto

import "github.com/noah-isme/rainbow-kids-api/internal/models"

// Content sources reported with public sections.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

// Section is a rendered public list together with where it came from.
type Section[T any] struct {
	Items  []T    `json:"items"`
	Source string `json:"source"`
}

// PublicTeacher adds the rendered bio to a teacher row.
type PublicTeacher struct {
	models.Teacher
	BioHTML string `json:"bio_html,omitempty"`
}

// PublicSettings is the key/value settings map plus rendered rich text.
type PublicSettings struct {
	Values      map[string]string `json:"values"`
	MissionHTML string            `json:"mission_html,omitempty"`
	Source      string            `json:"source"`
}
