package dto

// EnrollmentRequest is the visitor enrollment form.
type EnrollmentRequest struct {
	ChildName   string `json:"child_name" validate:"notblank"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	ClassType   string `json:"class_type" validate:"required,oneof=playgroup nursery junior-kg senior-kg primary"`
	ParentName  string `json:"parent_name" validate:"notblank"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"notblank"`
}

// ContactRequest is the visitor contact form.
type ContactRequest struct {
	Name    string `json:"name" validate:"notblank"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"notblank"`
}

// IntakeResult is returned after a visitor submission. On success Form is
// the cleared form; on failure it echoes the submitted values unchanged.
type IntakeResult[F any] struct {
	Submitted    bool   `json:"submitted"`
	Message      string `json:"message"`
	Form         F      `json:"form"`
	CloseAfterMS int64  `json:"close_after_ms,omitempty"`
}
