package notice

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// Handler exposes the notice board endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	posters := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleSecretary),
		string(auth.RoleChairperson), string(auth.RoleDepartmentHead))
	editors := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleSecretary), string(auth.RoleChairperson))

	r.With(posters).Post("/notices", h.create)
	r.Get("/notices", h.list)
	r.Get("/notices/{noticeID}", h.get)
	r.Get("/notices/{noticeID}/attachment", h.attachment)
	r.With(editors).Put("/notices/{noticeID}", h.update)
	r.With(editors).Delete("/notices/{noticeID}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	n, err := h.service.Create(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, n)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	notices, err := h.service.List(r.Context(), r.URL.Query().Get("department"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, notices)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Get(r.Context(), chi.URLParam(r, "noticeID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, n)
}

func (h *Handler) attachment(w http.ResponseWriter, r *http.Request) {
	att, err := h.service.GetAttachment(r.Context(), chi.URLParam(r, "noticeID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, att)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	n, err := h.service.Update(r.Context(), chi.URLParam(r, "noticeID"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, n)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "noticeID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notice deleted"})
}
