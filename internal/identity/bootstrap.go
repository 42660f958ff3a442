package identity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marquee/internal/backing"
	"marquee/internal/logging"
)

// State names the bootstrap's position in its lifecycle.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateResolving     State = "resolving"
	StateEstablished   State = "established"
	StateUnavailable   State = "unavailable"
)

// Identity is the stable anonymous actor identity for this process.
type Identity struct {
	ID string
}

// SessionClient is the subset of the backing store used by the bootstrap.
type SessionClient interface {
	CurrentSession(ctx context.Context) (*backing.Session, error)
	CreateAnonymousSession(ctx context.Context) (*backing.Session, error)
}

// Options configures a Bootstrap.
type Options struct {
	// SessionTimeout bounds the initial established-session check.
	SessionTimeout time.Duration
	// AttemptTimeout bounds each individual creation attempt.
	AttemptTimeout time.Duration
	// Backoff holds the delay before each creation attempt; its length is
	// the attempt count. Defaults to 0, 500ms, 1500ms.
	Backoff []time.Duration
	// Sleep is the delay primitive, injectable for tests.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Bootstrap resolves the anonymous identity at most once per process.
type Bootstrap struct {
	client         SessionClient
	sessionTimeout time.Duration
	attemptTimeout time.Duration
	backoff        []time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	logger         *slog.Logger

	mu       sync.Mutex
	state    State
	identity Identity
	done     chan struct{}
}

// New creates a Bootstrap around the given session client.
func New(client SessionClient, logger *slog.Logger, opts Options) *Bootstrap {
	if opts.SessionTimeout <= 0 {
		opts.SessionTimeout = 5 * time.Second
	}
	if opts.AttemptTimeout <= 0 {
		opts.AttemptTimeout = 5 * time.Second
	}
	if len(opts.Backoff) == 0 {
		opts.Backoff = []time.Duration{0, 500 * time.Millisecond, 1500 * time.Millisecond}
	}
	if opts.Sleep == nil {
		opts.Sleep = defaultSleep
	}
	return &Bootstrap{
		client:         client,
		sessionTimeout: opts.SessionTimeout,
		attemptTimeout: opts.AttemptTimeout,
		backoff:        opts.Backoff,
		sleep:          opts.Sleep,
		logger:         logging.NewComponentLogger(logger, "identity"),
		state:          StateUninitialized,
	}
}

// Establish returns the anonymous identity, resolving it on first use.
// Concurrent callers await the same resolution. The second return is false
// when no identity could be established; callers must treat that as a
// valid degraded state, not a retryable error.
func (b *Bootstrap) Establish(ctx context.Context) (Identity, bool) {
	b.mu.Lock()
	switch b.state {
	case StateEstablished:
		id := b.identity
		b.mu.Unlock()
		return id, true
	case StateUnavailable:
		b.mu.Unlock()
		return Identity{}, false
	case StateResolving:
		done := b.done
		b.mu.Unlock()
		select {
		case <-done:
			return b.Snapshot()
		case <-ctx.Done():
			// The shared resolution keeps running; this caller just
			// stops waiting for it.
			return Identity{}, false
		}
	}

	done := make(chan struct{})
	b.state = StateResolving
	b.done = done
	b.mu.Unlock()

	identity, ok := b.resolve()

	b.mu.Lock()
	if ok {
		b.state = StateEstablished
		b.identity = identity
	} else {
		b.state = StateUnavailable
	}
	b.mu.Unlock()
	close(done)

	return identity, ok
}

// Snapshot returns the current identity and state without triggering
// resolution, for the read surface exposed to the presentation layer.
func (b *Bootstrap) Snapshot() (Identity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity, b.state == StateEstablished
}

// State returns the bootstrap's current lifecycle state.
func (b *Bootstrap) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset clears the memoized resolution for isolated testing.
func (b *Bootstrap) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateUninitialized
	b.identity = Identity{}
	b.done = nil
}

// resolve runs the full resolution algorithm. It is detached from any one
// caller's context: the result is process-wide, so an impatient caller
// must not cancel the shared work.
func (b *Bootstrap) resolve() (Identity, bool) {
	root := context.Background()

	if id, ok := b.checkSession(root); ok {
		b.logger.Debug("adopted established session", logging.String(logging.FieldActorID, id.ID))
		return id, true
	}

	for attempt, delay := range b.backoff {
		if delay > 0 {
			if err := b.sleep(root, delay); err != nil {
				break
			}
		}

		attemptCtx, cancel := context.WithTimeout(root, b.attemptTimeout)
		session, err := b.client.CreateAnonymousSession(attemptCtx)
		cancel()
		if err == nil && session != nil && session.ActorID != "" {
			b.logger.Debug("anonymous identity created",
				logging.String(logging.FieldActorID, session.ActorID),
				logging.Int(logging.FieldAttempt, attempt+1))
			return Identity{ID: session.ActorID}, true
		}

		b.logger.Warn("identity creation attempt failed",
			logging.String(logging.FieldEventType, "identity_create_failed"),
			logging.Int(logging.FieldAttempt, attempt+1),
			logging.Error(err),
			logging.String(logging.FieldImpact, "will re-check session and retry"))

		// A creation call may have partially succeeded server-side even
		// though the client-visible response failed or timed out.
		if id, ok := b.checkSession(root); ok {
			b.logger.Debug("adopted session after failed creation attempt",
				logging.String(logging.FieldActorID, id.ID))
			return id, true
		}
	}

	b.logger.Warn("anonymous identity unavailable",
		logging.String(logging.FieldEventType, "identity_unavailable"),
		logging.String(logging.FieldImpact, "ratings will be kept locally only"))
	return Identity{}, false
}

func (b *Bootstrap) checkSession(ctx context.Context) (Identity, bool) {
	checkCtx, cancel := context.WithTimeout(ctx, b.sessionTimeout)
	defer cancel()

	session, err := b.client.CurrentSession(checkCtx)
	if err != nil || session == nil || session.ActorID == "" {
		return Identity{}, false
	}
	return Identity{ID: session.ActorID}, true
}

func defaultSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
