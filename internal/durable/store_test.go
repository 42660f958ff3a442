package durable

import (
	"context"
	"errors"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !store.Available() {
		t.Fatal("store should be available in a fresh temp dir")
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestPutGetRoundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "venues", "v1", []byte(`{"id":"v1"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get(ctx, "venues", "v1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"id":"v1"}` {
		t.Fatalf("Get returned %q", got)
	}

	// Replacement, not append.
	if err := store.Put(ctx, "venues", "v1", []byte(`{"id":"v1","name":"x"}`)); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, err = store.Get(ctx, "venues", "v1")
	if err != nil {
		t.Fatalf("Get after replace: %v", err)
	}
	if string(got) != `{"id":"v1","name":"x"}` {
		t.Fatalf("Get after replace returned %q", got)
	}
}

func TestGetMissingKey(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.Get(context.Background(), "venues", "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBucketsAreIsolated(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "venues", "k", []byte("a")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Put(ctx, "ratings", "k", []byte("b")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.DeleteBucket(ctx, "venues"); err != nil {
		t.Fatalf("DeleteBucket: %v", err)
	}
	if _, err := store.Get(ctx, "venues", "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("venues bucket should be empty, got %v", err)
	}
	if got, err := store.Get(ctx, "ratings", "k"); err != nil || string(got) != "b" {
		t.Fatalf("ratings bucket disturbed: %q %v", got, err)
	}
}

func TestDeleteMissingKeyIsNoError(t *testing.T) {
	store := openTestStore(t)
	if err := store.Delete(context.Background(), "venues", "nope"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestUnavailableStoreReportsSentinel(t *testing.T) {
	var store *Store
	if store.Available() {
		t.Fatal("nil store must be unavailable")
	}

	// A second Open on the same dir loses the flock and degrades.
	dir := t.TempDir()
	first, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer first.Close()

	second, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("second Open should degrade, not fail: %v", err)
	}
	defer second.Close()
	if second.Available() {
		t.Fatal("second store should be unavailable while first holds the lock")
	}
	if _, err := second.Get(context.Background(), "b", "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if err := second.Put(context.Background(), "b", "k", nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestOpenRequiresDirectory(t *testing.T) {
	if _, err := Open("  ", nil); err == nil {
		t.Fatal("expected error for empty directory")
	}
}
