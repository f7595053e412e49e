package middleware

import (
	"devjobs/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const (
	// SessionCookie carries the signed session token.
	SessionCookie = "devjobs_session"

	CtxPrincipalKey = "principal"
)

type SessionMiddleware struct {
	auth auth.Usecase
}

func NewSessionMiddleware(authUC auth.Usecase) *SessionMiddleware {
	return &SessionMiddleware{auth: authUC}
}

// Require rejects requests without a live session. Browsers are sent to the
// login page; API clients get a 401 either way via the error middleware.
func (m *SessionMiddleware) Require() fiber.Handler {
	return func(c fiber.Ctx) error {
		principal, ok := m.resolve(c)
		if !ok {
			return c.Redirect().Status(fiber.StatusSeeOther).To("/iniciar-sesion")
		}
		c.Locals(CtxPrincipalKey, principal)
		return c.Next()
	}
}

// Optional loads the principal when a valid session cookie is present and
// continues anonymously otherwise.
func (m *SessionMiddleware) Optional() fiber.Handler {
	return func(c fiber.Ctx) error {
		if principal, ok := m.resolve(c); ok {
			c.Locals(CtxPrincipalKey, principal)
		}
		return c.Next()
	}
}

func (m *SessionMiddleware) resolve(c fiber.Ctx) (auth.Principal, bool) {
	token := c.Cookies(SessionCookie)
	if token == "" {
		return auth.Principal{}, false
	}

	principal, err := m.auth.Authenticate(c.Context(), token)
	if err != nil {
		return auth.Principal{}, false
	}
	return principal, true
}

// PrincipalFrom returns the authenticated principal stored by Require.
func PrincipalFrom(c fiber.Ctx) (auth.Principal, bool) {
	principal, ok := c.Locals(CtxPrincipalKey).(auth.Principal)
	return principal, ok
}
