package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string

	// Password holds a pending plaintext password. It is never persisted;
	// the credential store hashes it into PasswordHash on save and clears it.
	Password     string
	PasswordHash string

	// ResetToken and ResetTokenExpiry are set together by a reset request
	// and cleared together on consumption. An empty token means no reset
	// is pending; absence is the single-use guarantee.
	ResetToken       string
	ResetTokenExpiry *time.Time

	AvatarImage string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims and lowercases an email address. All credential-store
// lookups and uniqueness checks operate on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Sanitize strips credential material before the user leaves the core.
func Sanitize(u User) User {
	u.Password = ""
	u.PasswordHash = ""
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	return u
}
