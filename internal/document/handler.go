package document

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// Handler exposes the office document endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	custodians := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleSecretary), string(auth.RoleChairperson))

	r.With(custodians).Post("/documents", h.upload)
	r.Get("/documents", h.list)
	r.Get("/documents/{documentID}/download", h.download)
	r.With(custodians).Delete("/documents/{documentID}", h.delete)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	d, err := h.service.Upload(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, d)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Office:   r.URL.Query().Get("office"),
		Category: r.URL.Query().Get("category"),
	}
	docs, err := h.service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.Download(r.Context(), chi.URLParam(r, "documentID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, payload)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "documentID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Document deleted"})
}
