package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/store-assistant-bot/internal/domain/repository"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	session, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.ID == "" {
		t.Fatal("empty session id")
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != session {
		t.Error("Get returned a different session instance")
	}
}

func TestSessionStoreUnknownID(t *testing.T) {
	store := NewMemorySessionStore()

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, repository.ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSweepExpired(t *testing.T) {
	store := NewMemorySessionStoreWithTimeout(10 * time.Millisecond)
	ctx := context.Background()

	expired, _ := store.Create(ctx)
	expired.LastActive = time.Now().Add(-time.Minute)

	fresh, _ := store.Create(ctx)

	if removed := store.SweepExpired(ctx); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	if _, err := store.Get(ctx, expired.ID); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Error("expired session still retrievable")
	}
	if _, err := store.Get(ctx, fresh.ID); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}
