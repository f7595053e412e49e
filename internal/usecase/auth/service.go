package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"devjobs/internal/domain/user"
	"devjobs/internal/mail"
	"devjobs/internal/pkg/hash"
	"devjobs/internal/pkg/sessiontoken"
	"devjobs/internal/session"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which one happened.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrAccountNotFound       = errors.New("account not found")
	ErrTokenInvalidOrExpired = errors.New("reset token invalid or expired")
	ErrInternal              = errors.New("internal error")
)

// Principal identifies the authenticated user behind a request.
type Principal struct {
	UserID    uuid.UUID
	SessionID string
}

type Usecase interface {
	Login(ctx context.Context, email, password string) (user.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, cookieToken string) (Principal, error)

	RequestReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) (user.User, error)
	ConsumeResetToken(ctx context.Context, token, newPassword string) error
}

type Service struct {
	users    user.Repository
	hasher   hash.Hasher
	sessions session.Store
	tokens   sessiontoken.Service
	sender   mail.Sender
	lg       zerolog.Logger

	sessionTTL time.Duration
	baseURL    string

	now func() time.Time
}

func NewService(
	users user.Repository,
	hasher hash.Hasher,
	sessions session.Store,
	tokens sessiontoken.Service,
	sender mail.Sender,
	lg zerolog.Logger,
	sessionTTL time.Duration,
	baseURL string,
) *Service {
	return &Service{
		users:      users,
		hasher:     hasher,
		sessions:   sessions,
		tokens:     tokens,
		sender:     sender,
		lg:         lg.With().Str("component", "auth").Logger(),
		sessionTTL: sessionTTL,
		baseURL:    baseURL,
		now:        time.Now,
	}
}

// Login verifies the credential pair and establishes a session. It returns
// the sanitized user and the signed cookie token for the new session.
func (s *Service) Login(ctx context.Context, email, password string) (user.User, string, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return user.User{}, "", ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", ErrInternal
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return user.User{}, "", ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, u.ID, s.sessionTTL)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	tok, err := s.tokens.Generate(sess.ID, u.ID, s.sessionTTL)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return user.Sanitize(u), tok, nil
}

// Logout revokes the session record. Logging out an already-revoked session
// is a no-op.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sessionID)
}

// Authenticate resolves a cookie token to a Principal. The signature only
// proves the cookie was issued here; the session record must still exist,
// so logout and expiry both end the session regardless of the cookie.
func (s *Service) Authenticate(ctx context.Context, cookieToken string) (Principal, error) {
	if cookieToken == "" {
		return Principal{}, ErrUnauthenticated
	}

	claims, err := s.tokens.Validate(cookieToken)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, ErrInternal
	}

	if sess.UserID != claims.UserID {
		return Principal{}, ErrUnauthenticated
	}

	return Principal{UserID: sess.UserID, SessionID: sess.ID}, nil
}
