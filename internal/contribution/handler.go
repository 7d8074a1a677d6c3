package contribution

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// Handler exposes the contribution endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	keepers := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleTreasurer), string(auth.RoleChairperson))

	r.With(keepers).Post("/contributions", h.record)
	r.Get("/contributions", h.list)
	r.Get("/contributions/summary", h.summary)
}

func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	c, err := h.service.Record(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		MemberID:         r.URL.Query().Get("member_id"),
		ContributionType: r.URL.Query().Get("contribution_type"),
	}
	contributions, err := h.service.List(r.Context(), f)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, contributions)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, summary)
}
