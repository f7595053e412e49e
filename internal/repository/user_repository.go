package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"devjobs/internal/database"
	"devjobs/internal/domain/user"
	"devjobs/internal/pkg/hash"
)

// PostgresUserRepository is the credential store. Writes go through
// hashIfChanged so a plaintext password set on the entity is hashed exactly
// once, and a save without a password change never touches the stored hash.
type PostgresUserRepository struct {
	db     database.DB
	hasher hash.Hasher
}

func NewPostgresUserRepository(db database.DB, hasher hash.Hasher) *PostgresUserRepository {
	return &PostgresUserRepository{db: db, hasher: hasher}
}

func (r *PostgresUserRepository) hashIfChanged(u *user.User) error {
	if u.Password == "" {
		return nil
	}
	h, err := r.hasher.Hash(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = h
	u.Password = ""
	return nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	if err := r.hashIfChanged(u); err != nil {
		return err
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = user.NormalizeEmail(u.Email)

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, email, display_name, password_hash, avatar_image)
		 VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash, nullableString(u.AvatarImage),
	)
	return mapUserError(err)
}

func (r *PostgresUserRepository) Save(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("nil user")
	}
	if err := r.hashIfChanged(u); err != nil {
		return err
	}
	u.Email = user.NormalizeEmail(u.Email)

	n, err := r.db.Exec(ctx,
		`UPDATE users
		 SET email = $2,
		     display_name = $3,
		     password_hash = $4,
		     reset_token = $5,
		     reset_token_expiry = $6,
		     avatar_image = $7,
		     updated_at = now()
		 WHERE id = $1`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash,
		nullableString(u.ResetToken), u.ResetTokenExpiry, nullableString(u.AvatarImage),
	)
	if err != nil {
		return mapUserError(err)
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx, selectUser+` WHERE lower(email) = $1`, user.NormalizeEmail(email))
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByValidResetToken(ctx context.Context, token string, now time.Time) (user.User, error) {
	if token == "" {
		return user.User{}, user.ErrNotFound
	}
	row := r.db.QueryRow(ctx,
		selectUser+` WHERE reset_token = $1 AND reset_token_expiry > $2`,
		token, now,
	)
	return scanUser(row)
}

const selectUser = `SELECT id, email, display_name, password_hash, reset_token, reset_token_expiry, avatar_image, created_at, updated_at FROM users`

func scanUser(row database.Row) (user.User, error) {
	var (
		u      user.User
		token  *string
		expiry *time.Time
		avatar *string
	)
	if err := row.Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash,
		&token, &expiry, &avatar, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	if token != nil {
		u.ResetToken = *token
	}
	u.ResetTokenExpiry = expiry
	if avatar != nil {
		u.AvatarImage = *avatar
	}
	return u, nil
}

func mapUserError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return user.ErrDuplicateEmail
	}
	return err
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
