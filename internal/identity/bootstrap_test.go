package identity

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"marquee/internal/backing"
)

type fakeSessions struct {
	mu      sync.Mutex
	session *backing.Session
	// sessionAfterCreates, when positive, makes CurrentSession succeed
	// once that many creation calls have been observed, simulating a
	// creation that succeeded server-side but failed client-side.
	sessionAfterCreates int
	created             []*backing.Session
	createErrs          []error
	createCalls         atomic.Int32
	sessionCalls        atomic.Int32
	createBlocker       chan struct{}
}

func (f *fakeSessions) CurrentSession(ctx context.Context) (*backing.Session, error) {
	f.sessionCalls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.session != nil {
		return f.session, nil
	}
	if f.sessionAfterCreates > 0 && int(f.createCalls.Load()) >= f.sessionAfterCreates {
		return &backing.Session{ActorID: "anon-partial"}, nil
	}
	return nil, &backing.Error{ErrKind: backing.KindNotFound, StatusCode: 404}
}

func (f *fakeSessions) CreateAnonymousSession(ctx context.Context) (*backing.Session, error) {
	call := int(f.createCalls.Add(1)) - 1
	if f.createBlocker != nil {
		select {
		case <-f.createBlocker:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if call < len(f.createErrs) && f.createErrs[call] != nil {
		return nil, f.createErrs[call]
	}
	if call < len(f.created) {
		return f.created[call], nil
	}
	return nil, errors.New("no scripted response")
}

func noSleep(context.Context, time.Duration) error { return nil }

func newBootstrap(client SessionClient) *Bootstrap {
	return New(client, nil, Options{Sleep: noSleep})
}

func TestAdoptsExistingSession(t *testing.T) {
	fake := &fakeSessions{session: &backing.Session{ActorID: "anon-1"}}
	b := newBootstrap(fake)

	id, ok := b.Establish(context.Background())
	if !ok || id.ID != "anon-1" {
		t.Fatalf("Establish = (%q, %v), want (anon-1, true)", id.ID, ok)
	}
	if fake.createCalls.Load() != 0 {
		t.Fatalf("creation called %d times despite existing session", fake.createCalls.Load())
	}
	if b.State() != StateEstablished {
		t.Fatalf("state = %q, want established", b.State())
	}
}

func TestConcurrentCallersShareOneCreation(t *testing.T) {
	fake := &fakeSessions{
		created:       []*backing.Session{{ActorID: "anon-9"}},
		createBlocker: make(chan struct{}),
	}
	b := newBootstrap(fake)

	const callers = 12
	var wg sync.WaitGroup
	ids := make([]string, callers)
	oks := make([]bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, ok := b.Establish(context.Background())
			ids[i], oks[i] = id.ID, ok
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(fake.createBlocker)
	wg.Wait()

	if got := fake.createCalls.Load(); got != 1 {
		t.Fatalf("creation called %d times, want 1", got)
	}
	for i := 0; i < callers; i++ {
		if !oks[i] || ids[i] != "anon-9" {
			t.Fatalf("caller %d got (%q, %v)", i, ids[i], oks[i])
		}
	}
}

func TestRetryUsesSecondAttempt(t *testing.T) {
	fake := &fakeSessions{
		createErrs: []error{errors.New("rate limited"), nil},
		created:    []*backing.Session{nil, {ActorID: "anon-2"}},
	}
	b := newBootstrap(fake)

	id, ok := b.Establish(context.Background())
	if !ok || id.ID != "anon-2" {
		t.Fatalf("Establish = (%q, %v), want (anon-2, true)", id.ID, ok)
	}
	if got := fake.createCalls.Load(); got != 2 {
		t.Fatalf("creation called %d times, want 2", got)
	}
}

func TestRecheckAdoptsPartialServerSideSuccess(t *testing.T) {
	// The first creation attempt fails client-side but succeeds
	// server-side: the follow-up session check finds it.
	fake := &fakeSessions{
		createErrs:          []error{errors.New("timeout"), errors.New("unreachable"), errors.New("unreachable")},
		sessionAfterCreates: 1,
	}
	b := newBootstrap(fake)

	id, ok := b.Establish(context.Background())
	if !ok || id.ID != "anon-partial" {
		t.Fatalf("Establish = (%q, %v), want (anon-partial, true)", id.ID, ok)
	}
	if got := fake.createCalls.Load(); got != 1 {
		t.Fatalf("creation called %d times, want 1 (adopted via re-check)", got)
	}
}

func TestExhaustionResolvesUnavailable(t *testing.T) {
	fake := &fakeSessions{
		createErrs: []error{errors.New("down"), errors.New("down"), errors.New("down")},
	}
	b := newBootstrap(fake)

	if _, ok := b.Establish(context.Background()); ok {
		t.Fatal("expected unavailable resolution")
	}
	if b.State() != StateUnavailable {
		t.Fatalf("state = %q, want unavailable", b.State())
	}
	if got := fake.createCalls.Load(); got != 3 {
		t.Fatalf("creation called %d times, want 3", got)
	}

	// Memoized: a later call does not retry.
	if _, ok := b.Establish(context.Background()); ok {
		t.Fatal("unavailable result should be memoized")
	}
	if got := fake.createCalls.Load(); got != 3 {
		t.Fatalf("memoized state retried creation: %d calls", got)
	}
}

func TestResetAllowsFreshResolution(t *testing.T) {
	fake := &fakeSessions{
		createErrs: []error{errors.New("down"), errors.New("down"), errors.New("down"), nil},
		created:    []*backing.Session{nil, nil, nil, {ActorID: "anon-4"}},
	}
	b := newBootstrap(fake)

	if _, ok := b.Establish(context.Background()); ok {
		t.Fatal("first resolution should fail")
	}
	b.Reset()
	if b.State() != StateUninitialized {
		t.Fatalf("state after reset = %q", b.State())
	}

	id, ok := b.Establish(context.Background())
	if !ok || id.ID != "anon-4" {
		t.Fatalf("post-reset Establish = (%q, %v), want (anon-4, true)", id.ID, ok)
	}
}
