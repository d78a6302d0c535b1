package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// GateState is the Admin Shell lifecycle. A shell starts in GateChecking
// and settles in exactly one of the other two states.
type GateState string

const (
	GateChecking      GateState = "checking"
	GateAuthenticated GateState = "authenticated"
	GateRedirected    GateState = "redirected"
)

// Redirect reasons reported with a GateRedirected decision.
const (
	ReasonNoSession   = "no_session"
	ReasonNotAdmin    = "not_admin"
	ReasonRoleCheck   = "role_check_failed"
	ReasonSignedOut   = "signed_out"
	ReasonSessionGone = "session_ended"
)

// GateDecision is the outcome of an admin gate check.
type GateDecision struct {
	State    GateState           `json:"state"`
	Session  *models.AuthSession `json:"session,omitempty"`
	Redirect string              `json:"redirect,omitempty"`
	Reason   string              `json:"reason,omitempty"`
}

type sessionAuthority interface {
	GetSession(ctx context.Context, token string) (*models.AuthSession, error)
	SignOut(ctx context.Context, token string) error
}

// SessionSubscriber streams change events for one session.
type SessionSubscriber interface {
	Subscribe(ctx context.Context, sessionID string) (<-chan models.SessionEvent, error)
}

// AdminGate decides whether a request may enter the dashboard.
type AdminGate struct {
	auth       sessionAuthority
	gateway    Gateway
	subscriber SessionSubscriber
	loginPath  string
	metrics    *MetricsService
	logger     *zap.Logger
}

// NewAdminGate constructs an AdminGate. subscriber and metrics may be nil.
func NewAdminGate(auth sessionAuthority, gateway Gateway, subscriber SessionSubscriber, loginPath string, metrics *MetricsService, logger *zap.Logger) *AdminGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loginPath == "" {
		loginPath = "/admin/login"
	}
	return &AdminGate{auth: auth, gateway: gateway, subscriber: subscriber, loginPath: loginPath, metrics: metrics, logger: logger}
}

// LoginPath is where redirected admins are sent.
func (g *AdminGate) LoginPath() string { return g.loginPath }

// Check resolves token to an admin session. A signed-in user without the
// admin role is signed out before being redirected.
func (g *AdminGate) Check(ctx context.Context, token string) GateDecision {
	decision := g.check(ctx, token)
	g.metrics.RecordGateDecision(string(decision.State))
	return decision
}

func (g *AdminGate) check(ctx context.Context, token string) GateDecision {
	session, err := g.auth.GetSession(ctx, token)
	if err != nil {
		g.logger.Warn("admin gate session lookup failed", zap.Error(err))
		return g.redirect(ReasonNoSession)
	}
	if session == nil {
		return g.redirect(ReasonNoSession)
	}

	var roles []models.UserRole
	err = g.gateway.Select(ctx, models.TableUserRoles, models.Query{
		Match: models.Match{"user_id": session.User.ID, "role": models.RoleAdmin},
	}, &roles)
	if err != nil {
		g.logger.Warn("admin role lookup failed", zap.String("user_id", session.User.ID), zap.Error(err))
		return g.redirect(ReasonRoleCheck)
	}
	if len(roles) == 0 {
		if err := g.auth.SignOut(ctx, token); err != nil {
			g.logger.Warn("sign out of non-admin failed", zap.String("user_id", session.User.ID), zap.Error(err))
		}
		return g.redirect(ReasonNotAdmin)
	}

	return GateDecision{State: GateAuthenticated, Session: session}
}

// Shell builds the per-request Admin Shell from a decision.
func (g *AdminGate) Shell(token string, decision GateDecision) *AdminShell {
	shell := &AdminShell{
		auth:       g.auth,
		subscriber: g.subscriber,
		loginPath:  g.loginPath,
		logger:     g.logger,
		token:      token,
		state:      decision.State,
		session:    decision.Session,
		reason:     decision.Reason,
		done:       make(chan struct{}),
	}
	if decision.State != GateAuthenticated {
		shell.closeDone()
	}
	return shell
}

func (g *AdminGate) redirect(reason string) GateDecision {
	return GateDecision{State: GateRedirected, Redirect: g.loginPath, Reason: reason}
}

// AdminShell is the request-scoped view of an admin session. It flips to
// GateRedirected when the session ends, after which results of work started
// under it are discarded.
type AdminShell struct {
	auth       sessionAuthority
	subscriber SessionSubscriber
	loginPath  string
	logger     *zap.Logger
	token      string

	mu      sync.RWMutex
	state   GateState
	session *models.AuthSession
	reason  string
	done    chan struct{}
	once    sync.Once
}

// Watch ends the shell when the session is signed out elsewhere or reaches
// its expiry, until ctx ends. It is a no-op when the shell is not
// authenticated; without a subscriber only expiry is observed.
func (s *AdminShell) Watch(ctx context.Context) error {
	if !s.Authenticated() {
		return nil
	}
	s.mu.RLock()
	session := s.session
	s.mu.RUnlock()
	if session == nil {
		return nil
	}
	if !session.ExpiresAt.IsZero() {
		timer := time.AfterFunc(time.Until(session.ExpiresAt), func() { s.end(ReasonSessionGone) })
		context.AfterFunc(ctx, func() { timer.Stop() })
	}
	if s.subscriber == nil {
		return nil
	}
	events, err := s.subscriber.Subscribe(ctx, session.SessionID)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			if !evt.Present {
				s.end(ReasonSessionGone)
				return
			}
		}
	}()
	return nil
}

// Done is closed once the shell leaves the authenticated state.
func (s *AdminShell) Done() <-chan struct{} { return s.done }

// Authenticated reports whether the shell still holds a live admin session.
func (s *AdminShell) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == GateAuthenticated
}

// Decision reports the current shell state.
func (s *AdminShell) Decision() GateDecision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	decision := GateDecision{State: s.state, Session: s.session}
	if s.state == GateRedirected {
		decision.Redirect = s.loginPath
		decision.Reason = s.reason
	}
	return decision
}

// Session returns the admin session the shell was built from.
func (s *AdminShell) Session() *models.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Run executes fn under the shell. If the session ended before or during fn
// its result is dropped and ErrSessionEnded is returned instead.
func (s *AdminShell) Run(fn func() error) error {
	if !s.Authenticated() {
		return appErrors.ErrSessionEnded
	}
	err := fn()
	if !s.Authenticated() {
		return appErrors.ErrSessionEnded
	}
	return err
}

// Logout signs the session out and redirects regardless of the outcome.
func (s *AdminShell) Logout(ctx context.Context) GateDecision {
	if s.token != "" {
		if err := s.auth.SignOut(ctx, s.token); err != nil {
			s.logger.Warn("admin logout sign out failed", zap.Error(err))
		}
	}
	s.end(ReasonSignedOut)
	return s.Decision()
}

func (s *AdminShell) end(reason string) {
	s.mu.Lock()
	if s.state == GateAuthenticated || s.state == GateChecking {
		s.state = GateRedirected
		s.reason = reason
	}
	s.mu.Unlock()
	s.closeDone()
}

func (s *AdminShell) closeDone() {
	s.once.Do(func() { close(s.done) })
}
