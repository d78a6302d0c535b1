package models

import "time"

// EnrollmentStatus is the admin decision on an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentRejected:
		return true
	}
	return false
}

// ClassTypes lists the programs a visitor may request.
var ClassTypes = []string{"playgroup", "nursery", "junior-kg", "senior-kg", "primary"}

// Enrollment is an admission request submitted by a visitor.
type Enrollment struct {
	ID          string           `db:"id" json:"id"`
	ChildName   string           `db:"child_name" json:"child_name"`
	DateOfBirth Date             `db:"date_of_birth" json:"date_of_birth"`
	ClassType   string           `db:"class_type" json:"class_type"`
	ParentName  string           `db:"parent_name" json:"parent_name"`
	Email       string           `db:"email" json:"email"`
	Phone       string           `db:"phone" json:"phone"`
	Status      EnrollmentStatus `db:"status" json:"status"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}
