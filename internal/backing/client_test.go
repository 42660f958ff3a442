package backing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"marquee/internal/backing"
	"marquee/internal/venues"
)

func newClient(t *testing.T, handler http.Handler) *backing.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := backing.New(server.URL, "token")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client
}

func TestCreateRatingDuplicate(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Fatalf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":{"code":"duplicate_rating","message":"one rating per venue"}}`))
	}))

	_, err := client.CreateRating(context.Background(), venues.Rating{VenueID: "v1", ActorID: "a1"})
	if !errors.Is(err, backing.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestCurrentSessionNotFound(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"no session"}}`))
	}))

	_, err := client.CurrentSession(context.Background())
	if !errors.Is(err, backing.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateAnonymousSession(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/session/anonymous" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"actor_id":"anon-42"}`))
	}))

	session, err := client.CreateAnonymousSession(context.Background())
	if err != nil {
		t.Fatalf("CreateAnonymousSession: %v", err)
	}
	if session.ActorID != "anon-42" {
		t.Fatalf("actor id = %q, want anon-42", session.ActorID)
	}
}

func TestListVenues(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/venues" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"v1","name":"Bowery Ballroom","place":"New York"}]`))
	}))

	got, err := client.ListVenues(context.Background())
	if err != nil {
		t.Fatalf("ListVenues: %v", err)
	}
	if len(got) != 1 || got[0].ID != "v1" {
		t.Fatalf("unexpected venues: %#v", got)
	}
}

func TestUpsertProfilePolicyRejection(t *testing.T) {
	client := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":"policy_rejected","message":"profile writes disabled"}}`))
	}))

	err := client.UpsertProfile(context.Background(), venues.Profile{ActorID: "a1"})
	if !errors.Is(err, backing.ErrPolicy) {
		t.Fatalf("expected ErrPolicy, got %v", err)
	}
}

func TestTransportErrorIsTransient(t *testing.T) {
	client, err := backing.New("http://127.0.0.1:1", "")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	_, err = client.ListVenues(context.Background())
	if !errors.Is(err, backing.ErrTransient) && !errors.Is(err, backing.ErrTimeout) {
		t.Fatalf("expected transient or timeout, got %v", err)
	}
}
