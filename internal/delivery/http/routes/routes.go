package routes

import (
	"devjobs/internal/delivery/http/handler"
	"devjobs/internal/delivery/http/middleware"
	"devjobs/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Registry wires every handler onto the application. Paths mirror the
// public site: Spanish segments, no API prefix.
type Registry struct {
	health   *handler.HealthHandler
	auth     *handler.AuthHandler
	users    *handler.UserHandler
	vacantes *handler.VacancyHandler

	sessions *middleware.SessionMiddleware
	wsh      *ws.Handler
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	vacantes *handler.VacancyHandler,
	sessions *middleware.SessionMiddleware,
	wsh *ws.Handler,
) *Registry {
	return &Registry{
		health:   health,
		auth:     auth,
		users:    users,
		vacantes: vacantes,
		sessions: sessions,
		wsh:      wsh,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	r.auth.RegisterRoutes(app)
	r.users.RegisterRoutes(app)
	r.vacantes.RegisterRoutes(app)

	app.Get("/ws/notificaciones", func(c fiber.Ctx) error {
		principal, ok := middleware.PrincipalFrom(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return r.wsh.HandleNotifications(c, principal.UserID)
	}, r.sessions.Require())
}
