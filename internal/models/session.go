package models

import "time"

// Session is a persisted sign-in. A session is live while it is neither
// revoked nor expired.
type Session struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	IPAddress string     `db:"ip_address" json:"ip_address"`
	UserAgent string     `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// Live reports whether the session can still authenticate requests.
func (s *Session) Live(now time.Time) bool {
	return s != nil && s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// AuthSession is the resolved session handed to the admin gate.
type AuthSession struct {
	SessionID string    `json:"session_id"`
	User      UserInfo  `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionEvent announces that a session started or ended.
type SessionEvent struct {
	SessionID string `json:"session_id"`
	UserID    string `json:"user_id"`
	Present   bool   `json:"present"`
}
