package app

import (
	"fmt"
	"strings"

	"devjobs/internal/config"
	"devjobs/internal/delivery/http/handler"
	"devjobs/internal/delivery/http/middleware"
	"devjobs/internal/delivery/http/routes"
	"devjobs/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, the fiber application and the route
// surface. The returned cleanup releases every external connection.
func Bootstrap(cfg config.Config, lg zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, lg)
	if err != nil {
		return nil, nil, err
	}

	errMW := middleware.NewErrorMiddleware(c.Logger)

	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		BodyLimit:    int(c.Config.Upload.MaxBytes) + 64*1024,
		ErrorHandler: errMW.Handle,
	})

	registerGlobalMiddleware(f, c, errMW)
	registerRoutes(f, c)

	go c.Hub.Run()

	cleanup := func() error { return c.Close() }
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container, errMW *middleware.ErrorMiddleware) {
	if app == nil {
		return
	}

	app.Use(errMW.Middleware())
	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	sessions := middleware.NewSessionMiddleware(c.AuthUC)
	uploads := middleware.NewUploadMiddleware(c.Uploads, c.Config.Upload.MaxBytes, c.Logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Redis),
		handler.NewAuthHandler(c.AuthUC, sessions, c.Config.Session.TTL),
		handler.NewUserHandler(c.UserUC, sessions, uploads),
		handler.NewVacancyHandler(c.VacancyUC, sessions, uploads),
		sessions,
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
