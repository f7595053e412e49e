package handler

import (
	"errors"

	"devjobs/internal/delivery/http/middleware"
	"devjobs/internal/pkg/response"
	ucuser "devjobs/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc       ucuser.Usecase
	sessions *middleware.SessionMiddleware
	uploads  *middleware.UploadMiddleware
}

func NewUserHandler(uc ucuser.Usecase, sessions *middleware.SessionMiddleware, uploads *middleware.UploadMiddleware) *UserHandler {
	return &UserHandler{uc: uc, sessions: sessions, uploads: uploads}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/crear-cuenta", h.ShowRegister)
	r.Post("/crear-cuenta", h.Register)

	avatarUpload := h.uploads.Single("imagen", "perfiles", middleware.ImageTypes, false)
	r.Get("/editar-perfil", h.ShowProfile, h.sessions.Require())
	r.Post("/editar-perfil", h.UpdateProfile, h.sessions.Require(), avatarUpload)
}

func (h *UserHandler) ShowRegister(c fiber.Ctx) error {
	data := map[string]any{
		"pagina": "Crea tu cuenta en devJobs",
		"tagline": "Comienza a publicar tus vacantes gratis, " +
			"solo debes crear una cuenta",
		"flash": response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *UserHandler) Register(c fiber.Ctx) error {
	var in ucuser.RegisterInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if _, err := h.uc.Register(c.Context(), in); err != nil {
		if errors.Is(err, ucuser.ErrDuplicateAccount) {
			return middleware.NewAppError(fiber.StatusConflict, "El usuario ya está registrado", nil, err)
		}
		return mapUserUsecaseError(err)
	}

	return response.Redirect(c, "/iniciar-sesion", "correcto", "Cuenta creada, inicia sesión")
}

func (h *UserHandler) ShowProfile(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	usr, err := h.uc.Get(c.Context(), principal.UserID)
	if err != nil {
		return mapUserUsecaseError(err)
	}

	data := map[string]any{
		"pagina":  "Edita tu perfil en devJobs",
		"usuario": usr,
		"flash":   response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *UserHandler) UpdateProfile(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var in ucuser.UpdateProfileInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in.AvatarImage = middleware.UploadedFile(c)

	if _, err := h.uc.UpdateProfile(c.Context(), principal.UserID, in); err != nil {
		if errors.Is(err, ucuser.ErrDuplicateAccount) {
			return middleware.NewAppError(fiber.StatusConflict, "Ese email ya pertenece a otra cuenta", nil, err)
		}
		return mapUserUsecaseError(err)
	}

	return response.Redirect(c, "/administracion", "correcto", "Perfil actualizado correctamente")
}

func mapUserUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucuser.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	default:
		if isValidation(err) {
			return err
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
