package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind an authenticated request. The
// cookie only carries the id; revoking the record ends the session no matter
// what the client still holds.
type Session struct {
	ID     string
	UserID uuid.UUID
}

type Store interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (Session, error)

	// Get returns ErrNotFound for unknown, expired, and revoked sessions
	// alike.
	Get(ctx context.Context, id string) (Session, error)

	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
