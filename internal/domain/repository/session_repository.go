package repository

import (
	"context"
	"errors"

	"github.com/yourusername/store-assistant-bot/internal/domain/entity"
)

// ErrSessionNotFound signals an unknown or expired session id at the turn
// boundary.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps per-conversation state with idle expiry.
type SessionRepository interface {
	// Create registers a fresh session and returns it.
	Create(ctx context.Context) (*entity.Session, error)

	// Get returns the session or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*entity.Session, error)

	// SweepExpired removes sessions idle longer than the timeout and
	// reports how many were dropped. Called at the start of every turn.
	SweepExpired(ctx context.Context) int
}
