package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Message is a single outbound HTML e-mail.
type Message struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = errors.New("mail sender not configured")

// ResendSender delivers mail through the Resend API behind a circuit breaker.
type ResendSender struct {
	client *resend.Client
	from   string
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewResendSender returns nil when apiKey is empty so callers can treat the
// sender as optional.
func NewResendSender(apiKey, from string, cb *gobreaker.CircuitBreaker, logger *zap.Logger) *ResendSender {
	if apiKey == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
		cb:     cb,
		logger: logger,
	}
}

// Send delivers msg and returns the provider message id.
func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNotConfigured
	}
	if len(msg.To) == 0 {
		return "", fmt.Errorf("mail requires at least one recipient")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	send := func() (interface{}, error) {
		return s.client.Emails.SendWithContext(ctx, params)
	}

	var (
		out interface{}
		err error
	)
	if s.cb != nil {
		out, err = s.cb.Execute(send)
	} else {
		out, err = send()
	}
	if err != nil {
		s.logger.Error("resend send failed", zap.Error(err), zap.Strings("to", msg.To), zap.String("subject", msg.Subject))
		return "", fmt.Errorf("resend send failed: %w", err)
	}

	sent, _ := out.(*resend.SendEmailResponse)
	if sent == nil {
		return "", nil
	}
	s.logger.Info("resend sent", zap.String("message_id", sent.Id), zap.String("subject", msg.Subject))
	return sent.Id, nil
}
