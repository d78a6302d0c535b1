package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
)

// AuthRepository persists accounts, sign-in sessions and the audit trail.
type AuthRepository struct {
	db *sqlx.DB
}

// NewAuthRepository constructs an AuthRepository.
func NewAuthRepository(db *sqlx.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// FindUserByEmail fetches a user by case-insensitive e-mail.
func (r *AuthRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, last_sign_in, created_at FROM users WHERE LOWER(email) = LOWER($1)`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, strings.TrimSpace(email)); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new account.
func (r *AuthRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO users (id, email, password_hash, created_at) VALUES (:id, :email, :password_hash, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateLastSignIn records the latest successful sign-in.
func (r *AuthRepository) UpdateLastSignIn(ctx context.Context, id string, ts time.Time) error {
	const query = `UPDATE users SET last_sign_in = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, ts, id); err != nil {
		return fmt.Errorf("update last sign in: %w", err)
	}
	return nil
}

// CreateSession persists a sign-in session.
func (r *AuthRepository) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO sessions (id, user_id, expires_at, revoked_at, ip_address, user_agent, created_at) VALUES (:id, :user_id, :expires_at, :revoked_at, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// FindSession returns the session with id joined to its user's e-mail.
func (r *AuthRepository) FindSession(ctx context.Context, id string) (*models.Session, string, error) {
	const query = `SELECT s.id, s.user_id, s.expires_at, s.revoked_at, s.ip_address, s.user_agent, s.created_at, u.email FROM sessions s JOIN users u ON u.id = s.user_id WHERE s.id = $1`
	var row struct {
		models.Session
		Email string `db:"email"`
	}
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, "", err
	}
	session := row.Session
	return &session, row.Email, nil
}

// RevokeSession marks a session as ended. Revoking twice keeps the first timestamp.
func (r *AuthRepository) RevokeSession(ctx context.Context, id string, revokedAt time.Time) error {
	const query = `UPDATE sessions SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, revokedAt, id); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// CreateAuditLog stores a new audit log entry.
func (r *AuthRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, user_id, action, resource, resource_id, new_values, ip_address, user_agent, created_at) VALUES (:id, :user_id, :action, :resource, :resource_id, :new_values, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
