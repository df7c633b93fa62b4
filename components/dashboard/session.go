package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cafemenu/menudash/pkg/backend"
)

// DefaultRedirectDelay is how long a session-failure message stays on screen
// before the scheduled navigation fires.
const DefaultRedirectDelay = 4 * time.Second

// Navigator performs page navigation on behalf of the dashboard.
type Navigator interface {
	NavigateTo(path string)
}

type noopNavigator struct{}

func (noopNavigator) NavigateTo(string) {}

type whoamiClient interface {
	Whoami(ctx context.Context) error
}

// SessionGuard decides whether the dashboard may hydrate. It runs the whoami
// check exactly once per mount, classifies failures, and schedules a timed
// redirect for expired or unverified sessions. The timer is cancellable so a
// torn-down guard never navigates late.
type SessionGuard struct {
	backend whoamiClient
	nav     Navigator
	delay   time.Duration
	log     logrus.FieldLogger

	mu      sync.Mutex
	checked bool
	status  SessionStatus
	reason  SessionReason
	message string
	timer   *time.Timer
}

// GuardConfig configures a SessionGuard. Backend is required.
type GuardConfig struct {
	Backend       whoamiClient
	Navigator     Navigator
	RedirectDelay time.Duration
	Logger        logrus.FieldLogger
}

// NewSessionGuard builds a guard in the unknown state.
func NewSessionGuard(cfg GuardConfig) *SessionGuard {
	nav := cfg.Navigator
	if nav == nil {
		nav = noopNavigator{}
	}
	delay := cfg.RedirectDelay
	if delay <= 0 {
		delay = DefaultRedirectDelay
	}
	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}
	return &SessionGuard{
		backend: cfg.Backend,
		nav:     nav,
		delay:   delay,
		log:     log,
		status:  SessionUnknown,
	}
}

// Check runs the whoami probe. Subsequent calls return the settled status
// without hitting the network; there are no automatic retries.
func (g *SessionGuard) Check(ctx context.Context) SessionStatus {
	g.mu.Lock()
	if g.checked {
		status := g.status
		g.mu.Unlock()
		return status
	}
	g.checked = true
	g.mu.Unlock()

	err := g.backend.Whoami(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	if err == nil {
		g.status = SessionAuthenticated
		g.reason = ReasonNone
		return g.status
	}

	g.status = SessionUnauthenticated
	switch {
	case errors.Is(err, backend.ErrAuthExpired):
		g.reason = ReasonExpired
		g.message = "Your session has expired. Please log in again."
		g.scheduleRedirect(PathSignIn)
	case errors.Is(err, backend.ErrAuthUnverified):
		g.reason = ReasonUnverified
		g.message = "Please verify your email before accessing the dashboard."
		g.scheduleRedirect(PathVerifyOTP)
	default:
		g.reason = ReasonAbsent
		if msg := backend.ServerMessage(err); msg != "" {
			g.message = msg
		} else {
			g.message = "You are not logged in. Please log in to access the Dashboard."
		}
	}
	g.log.WithError(err).Warn("session check failed")
	return g.status
}

// scheduleRedirect arms the navigation timer. Caller holds g.mu.
func (g *SessionGuard) scheduleRedirect(path string) {
	g.timer = time.AfterFunc(g.delay, func() {
		g.nav.NavigateTo(path)
	})
}

// Status returns the settled session status.
func (g *SessionGuard) Status() SessionStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Reason classifies an unauthenticated status.
func (g *SessionGuard) Reason() SessionReason {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reason
}

// Message is the user-facing explanation for an unauthenticated status.
func (g *SessionGuard) Message() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.message
}

// Close cancels any pending redirect. Safe to call multiple times.
func (g *SessionGuard) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
