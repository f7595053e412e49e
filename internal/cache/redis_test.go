package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, zerolog.Nop()), mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", payload{Name: "go", Count: 3}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatalf("expected a hit")
	}
	if out.Name != "go" || out.Count != 3 {
		t.Fatalf("unexpected payload %+v", out)
	}
}

func TestGetJSON_MissIsNotAnError(t *testing.T) {
	c, _ := newTestCache(t)

	var out payload
	hit, err := c.GetJSON(context.Background(), "missing", &out)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if hit {
		t.Fatalf("expected a miss")
	}
}

func TestSetJSON_HonorsTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", payload{Name: "go"}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("expected an expired miss, hit=%v err=%v", hit, err)
	}
}

func TestDeleteByPattern(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"vacantes:buscar:a", "vacantes:buscar:b", "otra:clave"} {
		if err := c.SetJSON(ctx, k, payload{Name: k}, time.Minute); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	if err := c.DeleteByPattern(ctx, "vacantes:buscar:*"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var out payload
	if hit, _ := c.GetJSON(ctx, "vacantes:buscar:a", &out); hit {
		t.Fatalf("matching key survived the pattern delete")
	}
	if hit, _ := c.GetJSON(ctx, "otra:clave", &out); !hit {
		t.Fatalf("non-matching key must survive")
	}
}

func TestNilClientIsFailOpen(t *testing.T) {
	c := NewRedis(nil, zerolog.Nop())
	ctx := context.Background()

	if err := c.SetJSON(ctx, "k", payload{}, time.Minute); err != nil {
		t.Fatalf("set on nil client must be a no-op: %v", err)
	}
	var out payload
	hit, err := c.GetJSON(ctx, "k", &out)
	if err != nil || hit {
		t.Fatalf("get on nil client must miss quietly, hit=%v err=%v", hit, err)
	}
	if err := c.DeleteByPattern(ctx, "*"); err != nil {
		t.Fatalf("delete on nil client must be a no-op: %v", err)
	}
}
