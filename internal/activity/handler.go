// AngelaMos | 2026
// handler.go

package activity

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/opsboard/opsboard/internal/authz"
	"github.com/opsboard/opsboard/internal/core"
	"github.com/opsboard/opsboard/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/activity", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireRole(
			authz.RoleSuperAdmin,
			authz.RoleAdmin,
			authz.RoleProjectManager,
		))

		r.Get("/", h.List)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		core.Unauthorized(w, "")
		return
	}

	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 50)

	entries, total, err := h.service.List(
		r.Context(),
		identity.Role,
		identity.OrganizationID,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, entries, page, pageSize, total)
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
