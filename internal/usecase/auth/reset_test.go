package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"devjobs/internal/domain/user"
)

func TestRequestReset_IssuesTokenAndSendsLink(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: id, Email: "ana@example.com", DisplayName: "Ana"},
	}}
	sender := &recordingSender{}
	svc := newTestService(users, nil, sender)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	if err := svc.RequestReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(users.saved) != 1 {
		t.Fatalf("expected 1 save, got %d", len(users.saved))
	}
	saved := users.saved[0]
	if len(saved.ResetToken) != 40 {
		t.Fatalf("expected 40 hex chars, got %d", len(saved.ResetToken))
	}
	if saved.ResetTokenExpiry == nil || !saved.ResetTokenExpiry.Equal(issued.Add(time.Hour)) {
		t.Fatalf("expected expiry one hour after issuance, got %v", saved.ResetTokenExpiry)
	}

	if len(sender.urls) != 1 {
		t.Fatalf("expected 1 reset mail, got %d", len(sender.urls))
	}
	if !strings.HasSuffix(sender.urls[0], "/reestablecer-password/"+saved.ResetToken) {
		t.Fatalf("reset URL does not carry the token: %s", sender.urls[0])
	}
}

func TestRequestReset_UnknownAccount(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, nil, nil)

	if err := svc.RequestReset(context.Background(), "nadie@example.com"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestRequestReset_SendFailureStillPersistsToken(t *testing.T) {
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com"},
	}}
	svc := newTestService(users, nil, &recordingSender{err: errors.New("smtp down")})

	if err := svc.RequestReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("send failure must not fail the request: %v", err)
	}
	if len(users.saved) != 1 || users.saved[0].ResetToken == "" {
		t.Fatalf("token was not persisted")
	}
}

func TestRequestReset_SecondRequestReplacesToken(t *testing.T) {
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com"},
	}}
	svc := newTestService(users, nil, nil)

	if err := svc.RequestReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	first := users.saved[0].ResetToken
	if err := svc.RequestReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("second request: %v", err)
	}
	second := users.saved[1].ResetToken

	if first == second {
		t.Fatalf("second request must mint a fresh token")
	}
	if _, err := svc.ValidateResetToken(context.Background(), first); !errors.Is(err, ErrTokenInvalidOrExpired) {
		t.Fatalf("first token must be dead after the second request, got %v", err)
	}
	if _, err := svc.ValidateResetToken(context.Background(), second); err != nil {
		t.Fatalf("second token must be live: %v", err)
	}
}

func TestValidateResetToken_StrictExpiry(t *testing.T) {
	expiry := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	users := &mockUserRepo{byToken: map[string]user.User{
		"tok": {ID: uuid.New(), Email: "ana@example.com", ResetToken: "tok", ResetTokenExpiry: &expiry},
	}}
	svc := newTestService(users, nil, nil)

	svc.now = func() time.Time { return expiry.Add(-time.Second) }
	if _, err := svc.ValidateResetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("token just before expiry must validate: %v", err)
	}

	// Expiring exactly now is already too late.
	svc.now = func() time.Time { return expiry }
	if _, err := svc.ValidateResetToken(context.Background(), "tok"); !errors.Is(err, ErrTokenInvalidOrExpired) {
		t.Fatalf("expected ErrTokenInvalidOrExpired at the boundary, got %v", err)
	}
}

func TestValidateResetToken_Sanitizes(t *testing.T) {
	expiry := time.Now().Add(time.Hour)
	users := &mockUserRepo{byToken: map[string]user.User{
		"tok": {ID: uuid.New(), Email: "ana@example.com", PasswordHash: "h:x", ResetToken: "tok", ResetTokenExpiry: &expiry},
	}}
	svc := newTestService(users, nil, nil)

	u, err := svc.ValidateResetToken(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" || u.ResetToken != "" || u.ResetTokenExpiry != nil {
		t.Fatalf("credential material leaked out of ValidateResetToken")
	}
}

func TestConsumeResetToken_SingleUse(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: id, Email: "ana@example.com", PasswordHash: "h:vieja"},
	}}
	svc := newTestService(users, nil, nil)

	if err := svc.RequestReset(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	token := users.saved[0].ResetToken

	if err := svc.ConsumeResetToken(context.Background(), token, "nueva-password"); err != nil {
		t.Fatalf("consume: %v", err)
	}

	final := users.saved[len(users.saved)-1]
	if final.Password != "nueva-password" {
		t.Fatalf("pending password not set on save")
	}
	if final.ResetToken != "" || final.ResetTokenExpiry != nil {
		t.Fatalf("token must be cleared in the same save")
	}

	if err := svc.ConsumeResetToken(context.Background(), token, "otra-mas"); !errors.Is(err, ErrTokenInvalidOrExpired) {
		t.Fatalf("second redemption must fail, got %v", err)
	}
}

func TestConsumeResetToken_RejectsEmptyInput(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, nil, nil)

	if err := svc.ConsumeResetToken(context.Background(), "", "x"); !errors.Is(err, ErrTokenInvalidOrExpired) {
		t.Fatalf("empty token: got %v", err)
	}
	if err := svc.ConsumeResetToken(context.Background(), "tok", ""); !errors.Is(err, ErrTokenInvalidOrExpired) {
		t.Fatalf("empty password: got %v", err)
	}
}
