package ws

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

type Handler struct {
	hub *Hub
	lg  zerolog.Logger
}

func NewHandler(hub *Hub, lg zerolog.Logger) *Handler {
	return &Handler{hub: hub, lg: lg.With().Str("component", "ws_handler").Logger()}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleNotifications upgrades the connection and registers it for the
// authenticated user. The session guard runs before this handler, so userID
// is always present.
func (h *Handler) HandleNotifications(c fiber.Ctx, userID uuid.UUID) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	if userID == uuid.Nil {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.lg.Warn().Err(err).Msg("ws upgrade failed")
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
