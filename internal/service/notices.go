package service

import "sync"

// NoticeLevel distinguishes success toasts from error toasts.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-visible message.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// Notices collects the notices raised while serving one request.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

// Success records a success notice.
func (n *Notices) Success(message string) {
	n.add(NoticeSuccess, message)
}

// Error records an error notice.
func (n *Notices) Error(message string) {
	n.add(NoticeError, message)
}

// List returns a copy of the recorded notices.
func (n *Notices) List() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}

func (n *Notices) add(level NoticeLevel, message string) {
	if message == "" {
		return
	}
	n.mu.Lock()
	n.items = append(n.items, Notice{Level: level, Message: message})
	n.mu.Unlock()
}
