package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"devjobs/internal/config"
)

// NewRedisClient connects to Redis and verifies the connection. Sessions
// fail closed: an unreachable Redis is a startup error, not a bypass.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%s", strings.TrimSpace(cfg.Host), strings.TrimSpace(cfg.Port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
	}
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return client, nil
}

type RedisStore struct {
	rdb    *goredis.Client
	prefix string
}

func NewRedisStore(rdb *goredis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "sess:"}
}

func (s *RedisStore) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (Session, error) {
	if userID == uuid.Nil {
		return Session{}, errors.New("session: missing user id")
	}
	if s == nil || s.rdb == nil {
		return Session{}, errors.New("session: redis store not configured")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	id, err := newSessionID()
	if err != nil {
		return Session{}, err
	}

	if err := s.rdb.Set(ctx, s.prefix+id, userID.String(), ttl).Err(); err != nil {
		return Session{}, err
	}

	return Session{ID: id, UserID: userID}, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}
	if s == nil || s.rdb == nil {
		return Session{}, errors.New("session: redis store not configured")
	}

	val, err := s.rdb.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}

	userID, err := uuid.Parse(strings.TrimSpace(val))
	if err != nil {
		return Session{}, ErrNotFound
	}

	return Session{ID: id, UserID: userID}, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if s == nil || s.rdb == nil {
		return errors.New("session: redis store not configured")
	}
	return s.rdb.Del(ctx, s.prefix+id).Err()
}
