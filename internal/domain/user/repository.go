package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the normalized email already exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Repository is the credential store. Create and Save hash a pending
// plaintext Password before writing; an unchanged password never alters
// the stored hash.
type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error

	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)

	// GetByValidResetToken returns the user holding token only while
	// reset_token_expiry > now. The comparison is strict: a token expiring
	// exactly at now is already expired.
	GetByValidResetToken(ctx context.Context, token string, now time.Time) (User, error)
}
