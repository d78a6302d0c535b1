package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/dto"
	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// MessageInbox lists contact messages and marks them read.
type MessageInbox struct {
	editor *Editor[models.ContactMessage, dto.NoForm]
}

// NewMessageInbox constructs a request-scoped inbox.
func NewMessageInbox(gateway Gateway, validate *validator.Validate, logger *zap.Logger) *MessageInbox {
	return &MessageInbox{editor: NewEditor(gateway, MessageSchema(), validate, logger)}
}

// Load fetches every message, newest first.
func (m *MessageInbox) Load(ctx context.Context) error { return m.editor.Load(ctx) }

// Items returns the loaded messages.
func (m *MessageInbox) Items() []models.ContactMessage { return m.editor.Items() }

// Search filters loaded messages on name, e-mail and body.
func (m *MessageInbox) Search(query string) []models.ContactMessage {
	return Search(m.editor.Items(), query, func(msg models.ContactMessage) []string {
		return []string{msg.Name, msg.Email, msg.Message}
	})
}

// MarkRead sets is_read on the message with id. It is a one-way transition.
func (m *MessageInbox) MarkRead(ctx context.Context, id string) error {
	if err := m.editor.Load(ctx); err != nil {
		return err
	}
	if _, ok := m.editor.Find(id); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "message not found")
	}
	return m.editor.Patch(ctx, id, models.Row{"is_read": true}, "", "Failed to update message")
}

// UnreadCount counts loaded messages not yet read.
func (m *MessageInbox) UnreadCount() int {
	count := 0
	for _, msg := range m.editor.Items() {
		if !msg.IsRead {
			count++
		}
	}
	return count
}

// Notices returns the notices raised so far.
func (m *MessageInbox) Notices() []Notice { return m.editor.Notices() }

// Stale reports whether the list may lag the gateway.
func (m *MessageInbox) Stale() bool { return m.editor.Stale() }
