// AngelaMos | 2026
// handler.go

package ticket

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
	"github.com/opsboard/opsboard/internal/project"
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
	r.Route("/projects/{projectID}/tickets", func(r chi.Router) {
		r.Use(authenticator)
		r.Post("/", h.Create)
		r.Get("/", h.List)
	})

	r.Route("/tickets/{ticketID}", func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	var req CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.Create(
		r.Context(),
		identity,
		chi.URLParam(r, "projectID"),
		req,
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Created(w, ticket)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	params := ListTicketsParams{
		ProjectID:  chi.URLParam(r, "projectID"),
		Status:     r.URL.Query().Get("status"),
		Priority:   r.URL.Query().Get("priority"),
		AssigneeID: r.URL.Query().Get("assignee_id"),
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "page_size", 50),
	}
	params.Normalize()

	tickets, total, err := h.service.List(r.Context(), identity, params)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.Paginated(w, tickets, params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	ticket, err := h.service.Get(
		r.Context(),
		identity,
		chi.URLParam(r, "ticketID"),
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ticket)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	var req UpdateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ticket, err := h.service.Update(
		r.Context(),
		identity,
		chi.URLParam(r, "ticketID"),
		req,
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.OK(w, ticket)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	err := h.service.Delete(
		r.Context(),
		identity,
		chi.URLParam(r, "ticketID"),
	)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, project.ErrProjectArchived):
		core.JSONError(w, core.NewAppError(
			core.ErrInvalidInput,
			"project is archived",
			http.StatusConflict,
			core.CodeConflict,
		))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "ticket")
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
