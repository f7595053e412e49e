package handler

import (
	"context"
	"time"

	"devjobs/internal/database"
	"devjobs/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	db    database.DB
	redis *goredis.Client
}

func NewHealthHandler(db database.DB, redis *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"postgres": "ok",
		"redis":    "ok",
	}
	healthy := true

	if h.db == nil {
		checks["postgres"] = "not configured"
		healthy = false
	} else if err := h.db.Ping(ctx); err != nil {
		checks["postgres"] = err.Error()
		healthy = false
	}

	if h.redis == nil {
		checks["redis"] = "not configured"
		healthy = false
	} else if err := h.redis.Ping(ctx).Err(); err != nil {
		checks["redis"] = err.Error()
		healthy = false
	}

	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", checks)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, checks)
}
