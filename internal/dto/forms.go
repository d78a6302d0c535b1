package dto

// TeacherForm is the editable draft of a teacher.
type TeacherForm struct {
	Name         string `json:"name" validate:"notblank"`
	Role         string `json:"role" validate:"notblank"`
	Bio          string `json:"bio"`
	ImageURL     string `json:"image_url"`
	ColorClass   string `json:"color_class"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     bool   `json:"is_active"`
}

// ClassForm is the editable draft of a class program. Features is the
// comma separated text typed by the admin.
type ClassForm struct {
	Name         string `json:"name" validate:"notblank"`
	AgeRange     string `json:"age_range" validate:"notblank"`
	Description  string `json:"description"`
	Features     string `json:"features"`
	IconName     string `json:"icon_name"`
	ColorClass   string `json:"color_class"`
	BgColorClass string `json:"bg_color_class"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     bool   `json:"is_active"`
}

// ActivityForm is the editable draft of an activity.
type ActivityForm struct {
	Name         string `json:"name" validate:"notblank"`
	Description  string `json:"description"`
	Emoji        string `json:"emoji"`
	IconName     string `json:"icon_name"`
	ColorClass   string `json:"color_class"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     bool   `json:"is_active"`
}

// GalleryForm is the editable draft of a gallery item.
type GalleryForm struct {
	ImageURL     string `json:"image_url" validate:"notblank"`
	AltText      string `json:"alt_text"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     bool   `json:"is_active"`
}

// TestimonialForm is the editable draft of a testimonial.
type TestimonialForm struct {
	Name           string `json:"name" validate:"notblank"`
	Role           string `json:"role" validate:"notblank"`
	Content        string `json:"content" validate:"notblank"`
	Rating         int    `json:"rating" validate:"min=1,max=5"`
	AvatarInitials string `json:"avatar_initials"`
	ColorClass     string `json:"color_class"`
	IsActive       bool   `json:"is_active"`
}

// NoForm is used by editors whose rows are never created or edited as a whole.
type NoForm struct{}

// StatusRequest changes an enrollment status.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
