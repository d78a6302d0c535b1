package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// EnrollmentDesk lists visitor enrollments and records admin decisions.
type EnrollmentDesk struct {
	editor *Editor[models.Enrollment, dto.NoForm]
}

// NewEnrollmentDesk constructs a request-scoped desk.
func NewEnrollmentDesk(gateway Gateway, validate *validator.Validate, logger *zap.Logger) *EnrollmentDesk {
	return &EnrollmentDesk{editor: NewEditor(gateway, EnrollmentSchema(), validate, logger)}
}

// Load fetches every enrollment, newest first.
func (d *EnrollmentDesk) Load(ctx context.Context) error { return d.editor.Load(ctx) }

// Items returns the loaded enrollments.
func (d *EnrollmentDesk) Items() []models.Enrollment { return d.editor.Items() }

// Search filters loaded enrollments on child name, parent name and e-mail.
func (d *EnrollmentDesk) Search(query string) []models.Enrollment {
	return Search(d.editor.Items(), query, func(e models.Enrollment) []string {
		return []string{e.ChildName, e.ParentName, e.Email}
	})
}

// SetStatus records status on the enrollment with id. Any status may replace
// any other. The list is reloaded first so an unknown id is reported as not
// found instead of silently updating zero rows.
func (d *EnrollmentDesk) SetStatus(ctx context.Context, id string, status models.EnrollmentStatus) error {
	if !status.Valid() {
		return appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid enrollment status"), map[string]string{"status": "oneof"})
	}
	if err := d.editor.Load(ctx); err != nil {
		return err
	}
	if _, ok := d.editor.Find(id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return d.editor.Patch(ctx, id, models.Row{"status": string(status)}, fmt.Sprintf("Enrollment %s", status), "Failed to update status")
}

// Notices returns the notices raised so far.
func (d *EnrollmentDesk) Notices() []Notice { return d.editor.Notices() }

// Stale reports whether the list may lag the gateway.
func (d *EnrollmentDesk) Stale() bool { return d.editor.Stale() }
