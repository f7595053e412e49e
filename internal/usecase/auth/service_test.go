package auth

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"devjobs/internal/domain/user"
	"devjobs/internal/pkg/sessiontoken"
	"devjobs/internal/session"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	byToken map[string]user.User
	saved   []user.User

	getErr  error
	saveErr error
}

func (m *mockUserRepo) Create(_ context.Context, u *user.User) error { return nil }

func (m *mockUserRepo) Save(_ context.Context, u *user.User) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *u)

	if m.byEmail == nil {
		m.byEmail = map[string]user.User{}
	}
	m.byEmail[user.NormalizeEmail(u.Email)] = *u

	if m.byToken == nil {
		m.byToken = map[string]user.User{}
	}
	for tok, held := range m.byToken {
		if held.ID == u.ID {
			delete(m.byToken, tok)
		}
	}
	if u.ResetToken != "" {
		m.byToken[u.ResetToken] = *u
	}
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	if m.getErr != nil {
		return user.User{}, m.getErr
	}
	u, ok := m.byEmail[user.NormalizeEmail(email)]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByValidResetToken(_ context.Context, token string, now time.Time) (user.User, error) {
	u, ok := m.byToken[token]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if u.ResetTokenExpiry == nil || !u.ResetTokenExpiry.After(now) {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) { return "h:" + plaintext, nil }
func (fakeHasher) Verify(plaintext, hash string) bool    { return hash == "h:"+plaintext }

type memSessionStore struct {
	sessions map[string]session.Session
	next     int
	failing  bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]session.Session{}}
}

func (m *memSessionStore) Create(_ context.Context, userID uuid.UUID, _ time.Duration) (session.Session, error) {
	if m.failing {
		return session.Session{}, errors.New("redis down")
	}
	m.next++
	s := session.Session{ID: "sess-" + strconv.Itoa(m.next), UserID: userID}
	m.sessions[s.ID] = s
	return s, nil
}

func (m *memSessionStore) Get(_ context.Context, id string) (session.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type recordingSender struct {
	urls []string
	err  error
}

func (r *recordingSender) SendPasswordReset(_ context.Context, _, _, resetURL string) error {
	if r.err != nil {
		return r.err
	}
	r.urls = append(r.urls, resetURL)
	return nil
}

func newTestService(users *mockUserRepo, sessions session.Store, sender *recordingSender) *Service {
	if sessions == nil {
		sessions = newMemSessionStore()
	}
	if sender == nil {
		sender = &recordingSender{}
	}
	return NewService(
		users,
		fakeHasher{},
		sessions,
		sessiontoken.NewHMACService("test-secret"),
		sender,
		zerolog.Nop(),
		time.Hour,
		"http://localhost:8080",
	)
}

func TestLogin_Success(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: id, Email: "ana@example.com", PasswordHash: "h:secreto"},
	}}
	store := newMemSessionStore()
	svc := newTestService(users, store, nil)

	u, token, err := svc.Login(context.Background(), "  Ana@Example.COM ", "secreto")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID != id {
		t.Fatalf("unexpected user id")
	}
	if u.PasswordHash != "" || u.Password != "" {
		t.Fatalf("credential material leaked out of Login")
	}
	if len(store.sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(store.sessions))
	}
	if token == "" {
		t.Fatalf("expected a cookie token")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com", PasswordHash: "h:secreto"},
	}}
	svc := newTestService(users, nil, nil)

	_, _, errUnknown := svc.Login(context.Background(), "nadie@example.com", "secreto")
	_, _, errWrongPw := svc.Login(context.Background(), "ana@example.com", "incorrecto")

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrongPw, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPw)
	}
	if errUnknown.Error() != errWrongPw.Error() {
		t.Fatalf("the two failures must be indistinguishable")
	}
}

func TestLogin_EmptyFields(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, nil, nil)

	if _, _, err := svc.Login(context.Background(), "", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "ana@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_SessionStoreFailure(t *testing.T) {
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com", PasswordHash: "h:secreto"},
	}}
	svc := newTestService(users, &memSessionStore{failing: true}, nil)

	if _, _, err := svc.Login(context.Background(), "ana@example.com", "secreto"); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: id, Email: "ana@example.com", PasswordHash: "h:secreto"},
	}}
	store := newMemSessionStore()
	svc := newTestService(users, store, nil)

	_, token, err := svc.Login(context.Background(), "ana@example.com", "secreto")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	p, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.UserID != id {
		t.Fatalf("unexpected principal user id")
	}
}

func TestAuthenticate_RevokedSession(t *testing.T) {
	id := uuid.New()
	users := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: id, Email: "ana@example.com", PasswordHash: "h:secreto"},
	}}
	store := newMemSessionStore()
	svc := newTestService(users, store, nil)

	_, token, err := svc.Login(context.Background(), "ana@example.com", "secreto")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	p, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("authenticate before logout: %v", err)
	}
	if err := svc.Logout(context.Background(), p.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// The cookie is still valid as a signature, but the session is gone.
	if _, err := svc.Authenticate(context.Background(), token); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, nil, nil)

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), ""); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("empty token: expected ErrUnauthenticated, got %v", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, nil, nil)

	if err := svc.Logout(context.Background(), "never-existed"); err != nil {
		t.Fatalf("logout of unknown session must not fail: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty id must not fail: %v", err)
	}
}
