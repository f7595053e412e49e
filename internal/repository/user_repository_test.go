package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"devjobs/internal/database"
	"devjobs/internal/domain/user"
)

type execCall struct {
	query string
	args  []any
}

// recordingDB captures write statements and rejects read paths, so the tests
// can assert exactly what a save would send to postgres.
type recordingDB struct {
	execs    []execCall
	affected int64
	err      error
}

func newRecordingDB() *recordingDB {
	return &recordingDB{affected: 1}
}

func (f *recordingDB) Ping(context.Context) error { return nil }
func (f *recordingDB) Close() error               { return nil }

func (f *recordingDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	f.execs = append(f.execs, execCall{query: query, args: args})
	if f.err != nil {
		return 0, f.err
	}
	return f.affected, nil
}

func (f *recordingDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("unexpected Query")
}

func (f *recordingDB) QueryRow(context.Context, string, ...any) database.Row {
	return failingRow{}
}

type failingRow struct{}

func (failingRow) Scan(...any) error { return errors.New("unexpected QueryRow") }

type countingHasher struct {
	calls int
	err   error
}

func (h *countingHasher) Hash(plaintext string) (string, error) {
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "h:" + plaintext, nil
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	return digest == "h:"+plaintext
}

// password_hash is the fourth column in both the insert and the update.
const passwordHashArg = 3

func TestUserSave_EmptyPasswordKeepsStoredHash(t *testing.T) {
	db := newRecordingDB()
	hasher := &countingHasher{}
	repo := NewPostgresUserRepository(db, hasher)

	u := &user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		DisplayName:  "Ana",
		PasswordHash: "h:original",
	}
	if err := repo.Save(context.Background(), u); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if hasher.calls != 0 {
		t.Fatalf("hasher ran %d times without a pending password", hasher.calls)
	}
	if len(db.execs) != 1 {
		t.Fatalf("expected 1 exec, got %d", len(db.execs))
	}
	if got := db.execs[0].args[passwordHashArg]; got != "h:original" {
		t.Fatalf("stored hash rewritten to %v", got)
	}
}

func TestUserSave_PendingPasswordHashedOnce(t *testing.T) {
	db := newRecordingDB()
	hasher := &countingHasher{}
	repo := NewPostgresUserRepository(db, hasher)

	u := &user.User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		DisplayName:  "Ana",
		Password:     "secreto123",
		PasswordHash: "h:anterior",
	}
	if err := repo.Save(context.Background(), u); err != nil {
		t.Fatalf("first save: %v", err)
	}

	if got := db.execs[0].args[passwordHashArg]; got != "h:secreto123" {
		t.Fatalf("expected the new hash, got %v", got)
	}
	if u.Password != "" {
		t.Fatalf("plaintext must be cleared after hashing")
	}
	if u.PasswordHash != "h:secreto123" {
		t.Fatalf("entity hash not replaced: %q", u.PasswordHash)
	}

	// A second save of the same entity has no pending password anymore, so
	// the hash written must be identical, never a hash of the hash.
	if err := repo.Save(context.Background(), u); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got := db.execs[1].args[passwordHashArg]; got != "h:secreto123" {
		t.Fatalf("second save rewrote the hash to %v", got)
	}
	if hasher.calls != 1 {
		t.Fatalf("expected exactly 1 hash call, got %d", hasher.calls)
	}
}

func TestUserCreate_HashesPendingPassword(t *testing.T) {
	db := newRecordingDB()
	hasher := &countingHasher{}
	repo := NewPostgresUserRepository(db, hasher)

	u := &user.User{Email: "Ana@Example.com", DisplayName: "Ana", Password: "secreto123"}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got := db.execs[0].args[passwordHashArg]; got != "h:secreto123" {
		t.Fatalf("expected hashed password, got %v", got)
	}
	if u.Password != "" {
		t.Fatalf("plaintext must be cleared after hashing")
	}
	if db.execs[0].args[1] != "ana@example.com" {
		t.Fatalf("email not normalized: %v", db.execs[0].args[1])
	}
}

func TestUserSave_HashFailureAborts(t *testing.T) {
	db := newRecordingDB()
	hasher := &countingHasher{err: errors.New("cost out of range")}
	repo := NewPostgresUserRepository(db, hasher)

	u := &user.User{ID: uuid.New(), Email: "ana@example.com", Password: "secreto123"}
	if err := repo.Save(context.Background(), u); err == nil {
		t.Fatalf("expected error from hasher")
	}
	if len(db.execs) != 0 {
		t.Fatalf("nothing must be written when hashing fails")
	}
}

func TestUserSave_UnknownUser(t *testing.T) {
	db := newRecordingDB()
	db.affected = 0
	repo := NewPostgresUserRepository(db, &countingHasher{})

	u := &user.User{ID: uuid.New(), Email: "ana@example.com"}
	if err := repo.Save(context.Background(), u); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
