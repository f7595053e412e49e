package handler

import (
	"errors"

	"devjobs/internal/delivery/http/middleware"
	"devjobs/internal/pkg/response"
	ucvacancy "devjobs/internal/usecase/vacancy"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type VacancyHandler struct {
	uc       ucvacancy.Usecase
	sessions *middleware.SessionMiddleware
	uploads  *middleware.UploadMiddleware
}

func NewVacancyHandler(uc ucvacancy.Usecase, sessions *middleware.SessionMiddleware, uploads *middleware.UploadMiddleware) *VacancyHandler {
	return &VacancyHandler{uc: uc, sessions: sessions, uploads: uploads}
}

func (h *VacancyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	auth := h.sessions.Require()
	cvUpload := h.uploads.Single("cv", "cv", middleware.PDFTypes, true)

	r.Get("/", h.Home)

	r.Get("/administracion", h.AdminPanel, auth)

	r.Get("/vacantes/nueva", h.ShowNewForm, auth)
	r.Post("/vacantes/nueva", h.Create, auth)
	r.Get("/vacantes/editar/:url", h.ShowEditForm, auth)
	r.Post("/vacantes/editar/:url", h.Update, auth)
	r.Delete("/vacantes/eliminar/:id", h.Delete, auth)

	r.Get("/vacantes/:url", h.Show)
	r.Post("/vacantes/:url", h.Apply, cvUpload)

	r.Get("/candidatos/:id", h.Candidates, auth)

	r.Post("/buscador", h.Search)
}

// Home is the public front door: every vacancy, newest first.
func (h *VacancyHandler) Home(c fiber.Ctx) error {
	vacancies, err := h.uc.ListAll(c.Context())
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	data := map[string]any{
		"pagina":   "devJobs",
		"tagline":  "Encuentra y publica trabajos para desarrolladores web",
		"vacantes": vacancies,
		"flash":    response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) AdminPanel(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	vacancies, err := h.uc.ListByAuthor(c.Context(), principal.UserID)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	data := map[string]any{
		"pagina":   "Panel de Administración",
		"tagline":  "Crea y Administra tus vacantes desde aquí",
		"vacantes": vacancies,
		"flash":    response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) ShowNewForm(c fiber.Ctx) error {
	data := map[string]any{
		"pagina":  "Nueva Vacante",
		"tagline": "Llena el formulario y publica tu vacante",
		"flash":   response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) Create(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var in ucvacancy.Input
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	v, err := h.uc.Create(c.Context(), principal.UserID, in)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	return response.Redirect(c, "/vacantes/"+v.Slug, "correcto", "Vacante Creada Correctamente")
}

func (h *VacancyHandler) Show(c fiber.Ctx) error {
	v, err := h.uc.GetBySlug(c.Context(), c.Params("url"))
	if err != nil {
		if errors.Is(err, ucvacancy.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Vacante no encontrada", nil, err)
		}
		return mapVacancyUsecaseError(err)
	}

	data := map[string]any{
		"pagina":  v.Title,
		"vacante": v,
		"flash":   response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) ShowEditForm(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	v, err := h.uc.GetBySlug(c.Context(), c.Params("url"))
	if err != nil {
		if errors.Is(err, ucvacancy.ErrNotFound) {
			// A missing vacancy and someone else's vacancy look the same.
			return response.Redirect(c, "/administracion", "error", "No eres el autor de esa vacante")
		}
		return mapVacancyUsecaseError(err)
	}
	if !v.OwnedBy(principal.UserID) {
		return response.Redirect(c, "/administracion", "error", "No eres el autor de esa vacante")
	}

	data := map[string]any{
		"pagina":  "Editar - " + v.Title,
		"vacante": v,
		"flash":   response.PopFlash(c),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) Update(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var in ucvacancy.Input
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	v, err := h.uc.Update(c.Context(), c.Params("url"), principal.UserID, in)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	return response.Redirect(c, "/vacantes/"+v.Slug, "correcto", "Vacante actualizada correctamente")
}

func (h *VacancyHandler) Delete(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.Delete(c.Context(), id, principal.UserID); err != nil {
		return mapVacancyUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, "Vacante Eliminada Correctamente", nil)
}

func (h *VacancyHandler) Apply(c fiber.Ctx) error {
	var in ucvacancy.CandidateInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	in.ResumeFile = middleware.UploadedFile(c)

	slug := c.Params("url")
	if err := h.uc.Apply(c.Context(), slug, in); err != nil {
		if errors.Is(err, ucvacancy.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Vacante no encontrada", nil, err)
		}
		return mapVacancyUsecaseError(err)
	}

	return response.Redirect(c, "/vacantes/"+slug, "correcto", "Tu curriculum se envió correctamente")
}

func (h *VacancyHandler) Candidates(c fiber.Ctx) error {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	v, candidates, err := h.uc.Candidates(c.Context(), id, principal.UserID)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	data := map[string]any{
		"pagina":     "Candidatos Vacante - " + v.Title,
		"candidatos": candidates,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func (h *VacancyHandler) Search(c fiber.Ctx) error {
	var req struct {
		Q string `form:"q" json:"q"`
	}
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	vacancies, err := h.uc.Search(c.Context(), req.Q)
	if err != nil {
		return mapVacancyUsecaseError(err)
	}

	data := map[string]any{
		"pagina":   "Resultados para la búsqueda: " + req.Q,
		"vacantes": vacancies,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

func mapVacancyUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ucvacancy.ErrNotOwner):
		return middleware.NewAppError(fiber.StatusForbidden, "No eres el autor de esa vacante", nil, err)
	case errors.Is(err, ucvacancy.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Vacante no encontrada", nil, err)
	default:
		if isValidation(err) {
			return err
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
