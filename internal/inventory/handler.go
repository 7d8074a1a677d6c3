package inventory

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// Handler exposes the inventory endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	officers := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleInventoryOfficer))

	r.With(officers).Post("/inventory", h.create)
	r.Get("/inventory", h.list)
	r.With(officers).Put("/inventory/{itemID}", h.update)
	r.With(officers).Delete("/inventory/{itemID}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Category:  r.URL.Query().Get("category"),
		Condition: r.URL.Query().Get("condition"),
	}
	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	item, err := h.service.Update(r.Context(), chi.URLParam(r, "itemID"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}
