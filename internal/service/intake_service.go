package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// Visitor-facing intake messages.
const (
	EnrollmentSubmittedMessage = "🎉 Enrollment request submitted! We'll contact you soon."
	ContactSubmittedMessage    = "Message sent! We'll get back to you soon. 🌈"
	IntakeRetryMessage         = "Something went wrong. Please try again."
	IntakeInvalidMessage       = "Please fill in all required fields."
)

const (
	intakeEnrollment = "enrollment"
	intakeContact    = "contact"
)

type intakeNotifier interface {
	EnrollmentReceived(notice EnrollmentNotice) error
	ContactReceived(notice ContactNotice) error
}

// IntakeService stores visitor enrollment requests and contact messages.
type IntakeService struct {
	gateway    Gateway
	notifier   intakeNotifier
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	closeDelay time.Duration
}

// NewIntakeService constructs an IntakeService. notifier and metrics may be nil.
func NewIntakeService(gateway Gateway, notifier intakeNotifier, metrics *MetricsService, closeDelay time.Duration, validate *validator.Validate, logger *zap.Logger) *IntakeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if closeDelay <= 0 {
		closeDelay = 1500 * time.Millisecond
	}
	return &IntakeService{gateway: gateway, notifier: notifier, metrics: metrics, validator: validate, logger: logger, closeDelay: closeDelay}
}

// SubmitEnrollment inserts one pending enrollment. On any failure the
// submitted form is returned unchanged so the visitor can retry.
func (s *IntakeService) SubmitEnrollment(ctx context.Context, req dto.EnrollmentRequest) (dto.IntakeResult[dto.EnrollmentRequest], error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordIntake(intakeEnrollment, false)
		return dto.IntakeResult[dto.EnrollmentRequest]{Message: IntakeInvalidMessage, Form: req},
			appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, IntakeInvalidMessage), fieldErrors(err))
	}

	notice := EnrollmentNotice{
		ChildName:   strings.TrimSpace(req.ChildName),
		ParentName:  strings.TrimSpace(req.ParentName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		ClassType:   req.ClassType,
		DateOfBirth: req.DateOfBirth,
	}
	row := models.Row{
		"child_name":    notice.ChildName,
		"date_of_birth": notice.DateOfBirth,
		"class_type":    notice.ClassType,
		"parent_name":   notice.ParentName,
		"email":         notice.Email,
		"phone":         notice.Phone,
		"status":        string(models.EnrollmentPending),
	}
	if err := s.gateway.Insert(ctx, models.TableEnrollments, row); err != nil {
		s.logger.Warn("enrollment intake failed", zap.Error(err))
		s.metrics.RecordIntake(intakeEnrollment, false)
		return dto.IntakeResult[dto.EnrollmentRequest]{Message: IntakeRetryMessage, Form: req},
			appErrors.Gateway(err, IntakeRetryMessage)
	}

	s.metrics.RecordIntake(intakeEnrollment, true)
	if s.notifier != nil {
		if err := s.notifier.EnrollmentReceived(notice); err != nil {
			s.logger.Warn("enrollment notification not queued", zap.Error(err))
		}
	}
	return dto.IntakeResult[dto.EnrollmentRequest]{
		Submitted:    true,
		Message:      EnrollmentSubmittedMessage,
		CloseAfterMS: s.closeDelay.Milliseconds(),
	}, nil
}

// SubmitContact inserts one unread contact message.
func (s *IntakeService) SubmitContact(ctx context.Context, req dto.ContactRequest) (dto.IntakeResult[dto.ContactRequest], error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordIntake(intakeContact, false)
		return dto.IntakeResult[dto.ContactRequest]{Message: IntakeInvalidMessage, Form: req},
			appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, IntakeInvalidMessage), fieldErrors(err))
	}

	notice := ContactNotice{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}
	row := models.Row{
		"name":    notice.Name,
		"email":   notice.Email,
		"phone":   nullable(notice.Phone),
		"message": notice.Message,
		"is_read": false,
	}
	if err := s.gateway.Insert(ctx, models.TableContactMessages, row); err != nil {
		s.logger.Warn("contact intake failed", zap.Error(err))
		s.metrics.RecordIntake(intakeContact, false)
		return dto.IntakeResult[dto.ContactRequest]{Message: IntakeRetryMessage, Form: req},
			appErrors.Gateway(err, IntakeRetryMessage)
	}

	s.metrics.RecordIntake(intakeContact, true)
	if s.notifier != nil {
		if err := s.notifier.ContactReceived(notice); err != nil {
			s.logger.Warn("contact notification not queued", zap.Error(err))
		}
	}
	return dto.IntakeResult[dto.ContactRequest]{
		Submitted: true,
		Message:   ContactSubmittedMessage,
	}, nil
}
