package handler

import (
	"errors"
	"time"

	"devjobs/internal/delivery/http/middleware"
	"devjobs/internal/pkg/response"
	ucauth "devjobs/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc         ucauth.Usecase
	sessions   *middleware.SessionMiddleware
	sessionTTL time.Duration
}

type loginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type resetRequestBody struct {
	Email string `form:"email" json:"email"`
}

type newPasswordRequest struct {
	Password string `form:"password" json:"password"`
}

func NewAuthHandler(uc ucauth.Usecase, sessions *middleware.SessionMiddleware, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{uc: uc, sessions: sessions, sessionTTL: sessionTTL}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/iniciar-sesion", h.ShowLogin)
	r.Post("/iniciar-sesion", h.Login)
	r.Get("/cerrar-sesion", h.Logout, h.sessions.Require())

	r.Get("/reestablecer-password", h.ShowForgotPassword)
	r.Post("/reestablecer-password", h.RequestReset)
	r.Get("/reestablecer-password/:token", h.ShowResetForm)
	r.Post("/reestablecer-password/:token", h.ResetPassword)
}

func (h *AuthHandler) ShowLogin(c fiber.Ctx) error {
	data := map[string]any{
		"pagina": "Iniciar Sesión devJobs",
		"flash":  response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, token, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ucauth.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Ambos campos son obligatorios o las credenciales no son válidas", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	data := map[string]any{
		"usuario":  usr,
		"redirect": "/administracion",
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	if principal, ok := middleware.PrincipalFrom(c); ok {
		// Revocation failures do not keep the user logged in; the
		// cookie is cleared regardless.
		_ = h.uc.Logout(c.Context(), principal.SessionID)
	}
	c.ClearCookie(middleware.SessionCookie)

	return response.Redirect(c, "/iniciar-sesion", "correcto", "Cerraste Sesión Correctamente")
}

func (h *AuthHandler) ShowForgotPassword(c fiber.Ctx) error {
	data := map[string]any{
		"pagina": "Reestablece tu Password",
		"flash":  response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) RequestReset(c fiber.Ctx) error {
	var req resetRequestBody
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.RequestReset(c.Context(), req.Email); err != nil {
		if errors.Is(err, ucauth.ErrAccountNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "No existe esa cuenta", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Redirect(c, "/iniciar-sesion", "correcto", "Revisa tu email para las indicaciones")
}

func (h *AuthHandler) ShowResetForm(c fiber.Ctx) error {
	token := c.Params("token")

	if _, err := h.uc.ValidateResetToken(c.Context(), token); err != nil {
		if errors.Is(err, ucauth.ErrTokenInvalidOrExpired) {
			return response.Redirect(c, "/reestablecer-password", "error", "Token no válido, intenta de nuevo")
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	data := map[string]any{
		"pagina": "Reestablecer Password",
		"flash":  response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *AuthHandler) ResetPassword(c fiber.Ctx) error {
	token := c.Params("token")

	var req newPasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.ConsumeResetToken(c.Context(), token, req.Password); err != nil {
		if errors.Is(err, ucauth.ErrTokenInvalidOrExpired) {
			return response.Redirect(c, "/reestablecer-password", "error", "Token no válido, intenta de nuevo")
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Redirect(c, "/iniciar-sesion", "correcto", "Password Modificado Correctamente")
}
