package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"devjobs/internal/domain/user"
)

// Reset token shape: 20 random bytes, hex-encoded to 40 characters, valid
// for one hour from issuance.
const (
	resetTokenBytes = 20
	resetTokenTTL   = time.Hour
)

func newResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RequestReset issues a reset token for the account and dispatches the reset
// URL. A concurrent request for the same email simply overwrites the token;
// only the last-written one is valid. Notification failure is logged but
// does not fail the request: the token is already persisted.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrAccountNotFound
		}
		return ErrInternal
	}

	token, err := newResetToken()
	if err != nil {
		return ErrInternal
	}

	expiry := s.now().Add(resetTokenTTL).UTC()
	u.ResetToken = token
	u.ResetTokenExpiry = &expiry

	if err := s.users.Save(ctx, &u); err != nil {
		return ErrInternal
	}

	resetURL := s.baseURL + "/reestablecer-password/" + token
	if err := s.sender.SendPasswordReset(ctx, u.Email, u.DisplayName, resetURL); err != nil {
		s.lg.Error().Err(err).Str("email", u.Email).Msg("failed to dispatch reset notification")
	}

	return nil
}

// ValidateResetToken returns the account holding token while the token is
// still valid. Expiry is strict: a token expiring exactly now is rejected.
func (s *Service) ValidateResetToken(ctx context.Context, token string) (user.User, error) {
	if token == "" {
		return user.User{}, ErrTokenInvalidOrExpired
	}

	u, err := s.users.GetByValidResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrTokenInvalidOrExpired
		}
		return user.User{}, ErrInternal
	}

	return user.Sanitize(u), nil
}

// ConsumeResetToken replaces the account password and clears the token in
// the same single-row save, so the token can never be redeemed twice.
func (s *Service) ConsumeResetToken(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return ErrTokenInvalidOrExpired
	}

	u, err := s.users.GetByValidResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrTokenInvalidOrExpired
		}
		return ErrInternal
	}

	u.Password = newPassword
	u.ResetToken = ""
	u.ResetTokenExpiry = nil

	if err := s.users.Save(ctx, &u); err != nil {
		return ErrInternal
	}

	return nil
}
