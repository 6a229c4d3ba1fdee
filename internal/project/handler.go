// AngelaMos | 2026
// handler.go

package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/projects", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)

		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Post("/archive", h.Archive)
			r.Post("/unarchive", h.Unarchive)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	project, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, project)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	params := ListProjectsParams{
		OrganizationID: r.URL.Query().Get("organization_id"),
		Status:         r.URL.Query().Get("status"),
		Page:           parseIntQuery(r, "page", 1),
		PageSize:       parseIntQuery(r, "page_size", 50),
	}
	params.Normalize()

	projects, total, err := h.service.List(r.Context(), identity, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Paginated(w, projects, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	project, err := h.service.Get(
		r.Context(),
		identity,
		chi.URLParam(r, "projectID"),
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, project)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	project, err := h.service.Update(
		r.Context(),
		identity,
		chi.URLParam(r, "projectID"),
		req,
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, project)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	project, err := h.service.Archive(
		r.Context(),
		identity,
		chi.URLParam(r, "projectID"),
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, project)
}

func (h *Handler) Unarchive(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	project, err := h.service.Unarchive(
		r.Context(),
		identity,
		chi.URLParam(r, "projectID"),
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, project)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProjectArchived):
		core.JSONError(w, core.NewAppError(
			core.ErrInvalidInput,
			"project is archived",
			http.StatusConflict,
			core.CodeConflict,
		))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "project")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
