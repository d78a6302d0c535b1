package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/pkg/jobs"
	"github.com/noah-isme/rainbow-kids-api/pkg/mail"
	"github.com/noah-isme/rainbow-kids-api/pkg/messaging"
)

// Notification job types.
const (
	JobEnrollmentReceived = "enrollment.received"
	JobContactReceived    = "contact.received"
)

type mailSender interface {
	Send(ctx context.Context, msg mail.Message) (string, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, evt messaging.Event) error
}

// NotificationConfig tunes the notification worker pool.
type NotificationConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
	Recipients []string
}

// EnrollmentNotice is the payload queued after an enrollment is stored.
type EnrollmentNotice struct {
	ChildName   string `json:"child_name"`
	ParentName  string `json:"parent_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ClassType   string `json:"class_type"`
	DateOfBirth string `json:"date_of_birth"`
}

// ContactNotice is the payload queued after a contact message is stored.
type ContactNotice struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message"`
}

// NotificationService tells staff about new visitor submissions by e-mail
// and publishes an intake event. Delivery is best-effort and never affects
// the visitor's response.
type NotificationService struct {
	queue      *jobs.Queue
	mailer     mailSender
	events     eventPublisher
	recipients []string
	logger     *zap.Logger
}

// NewNotificationService constructs the service. mailer and events may be
// nil or unconfigured; the matching channel is then skipped.
func NewNotificationService(mailer mailSender, events eventPublisher, cfg NotificationConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &NotificationService{mailer: mailer, events: events, recipients: cfg.Recipients, logger: logger}
	svc.queue = jobs.NewQueue("intake-notifications", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the worker pool.
func (s *NotificationService) Start(ctx context.Context) { s.queue.Start(ctx) }

// Stop cancels the workers and waits for the job each one is running.
// Notifications still buffered are dropped, and Enqueue fails afterwards.
func (s *NotificationService) Stop() { s.queue.Stop() }

// EnrollmentReceived queues staff notification of a new enrollment.
func (s *NotificationService) EnrollmentReceived(notice EnrollmentNotice) error {
	return s.queue.Enqueue(jobs.Job{Type: JobEnrollmentReceived, Payload: notice})
}

// ContactReceived queues staff notification of a new contact message.
func (s *NotificationService) ContactReceived(notice ContactNotice) error {
	return s.queue.Enqueue(jobs.Job{Type: JobContactReceived, Payload: notice})
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	msg, err := s.compose(job)
	if err != nil {
		return err
	}

	var errs []error
	if len(msg.To) > 0 && s.mailer != nil {
		if _, err := s.mailer.Send(ctx, msg); err != nil && !errors.Is(err, mail.ErrNotConfigured) {
			errs = append(errs, fmt.Errorf("send mail: %w", err))
		}
	}
	if s.events != nil {
		evt := messaging.Event{Type: job.Type, OccurredAt: job.Enqueued, Payload: job.Payload}
		if err := s.events.Publish(ctx, evt); err != nil && !errors.Is(err, messaging.ErrNotConfigured) {
			errs = append(errs, fmt.Errorf("publish event: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *NotificationService) compose(job jobs.Job) (mail.Message, error) {
	msg := mail.Message{To: s.recipients}
	switch payload := job.Payload.(type) {
	case EnrollmentNotice:
		msg.Subject = "New enrollment request: " + payload.ChildName
		msg.ReplyTo = payload.Email
		msg.HTML = htmlTable(
			[2]string{"Child", payload.ChildName},
			[2]string{"Date of birth", payload.DateOfBirth},
			[2]string{"Program", payload.ClassType},
			[2]string{"Parent", payload.ParentName},
			[2]string{"Email", payload.Email},
			[2]string{"Phone", payload.Phone},
		)
	case ContactNotice:
		msg.Subject = "New message from " + payload.Name
		msg.ReplyTo = payload.Email
		msg.HTML = htmlTable(
			[2]string{"Name", payload.Name},
			[2]string{"Email", payload.Email},
			[2]string{"Phone", payload.Phone},
			[2]string{"Message", payload.Message},
		)
	default:
		return mail.Message{}, fmt.Errorf("unsupported notification job %q", job.Type)
	}
	return msg, nil
}

func htmlTable(rows ...[2]string) string {
	var b strings.Builder
	b.WriteString("<table>")
	for _, row := range rows {
		fmt.Fprintf(&b, "<tr><th align=\"left\">%s</th><td>%s</td></tr>", html.EscapeString(row[0]), html.EscapeString(row[1]))
	}
	b.WriteString("</table>")
	return b.String()
}
