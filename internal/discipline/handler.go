package discipline

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// Handler exposes the disciplinary case endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	committee := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleDisciplinary), string(auth.RoleChairperson))

	r.With(committee).Post("/disciplinary", h.create)
	r.Get("/disciplinary", h.list)
	r.With(committee).Put("/disciplinary/{caseID}", h.update)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, cases)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	c, err := h.service.Update(r.Context(), chi.URLParam(r, "caseID"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, c)
}
