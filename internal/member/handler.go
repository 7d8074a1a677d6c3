package member

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
	dErrors "bfcms/pkg/domain-errors"
)

// CardRenderer turns card fields into an opaque document. Implementations are
// black boxes; the handler only forwards their bytes and content type.
type CardRenderer interface {
	RenderCard(fields CardFields) (data []byte, contentType string, err error)
}

// Handler exposes the member directory endpoints.
type Handler struct {
	service *Service
	cards   CardRenderer
	orgName string
}

func NewHandler(service *Service, cards CardRenderer, orgName string) *Handler {
	return &Handler{service: service, cards: cards, orgName: orgName}
}

// Register mounts the member routes. The listing and mutation routes are
// limited to the administrative roles, matching the office workflow: any
// signed-in officer can register a member, but only the secretary's office
// manages the roll.
func (h *Handler) Register(r chi.Router) {
	registrars := middleware.RequireRoles(
		string(auth.RoleSuperAdmin), string(auth.RoleSecretary), string(auth.RoleChairperson))

	r.Post("/members", h.create)
	r.With(registrars).Get("/members", h.list)
	r.Get("/members/{memberID}", h.get)
	r.With(registrars).Put("/members/{memberID}", h.update)
	r.With(middleware.RequireRoles(string(auth.RoleSuperAdmin))).
		Delete("/members/{memberID}", h.delete)
	r.Get("/members/{memberID}/idcard", h.idCard)
	r.Get("/members/{memberID}/qr", h.qrPayload)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	m, err := h.service.Create(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := Filter{
		Department: r.URL.Query().Get("department"),
		Status:     r.URL.Query().Get("status"),
		Search:     r.URL.Query().Get("search"),
	}
	members, err := h.service.List(r.Context(), filter)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	m, err := h.service.Update(r.Context(), chi.URLParam(r, "memberID"), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "memberID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Member deleted"})
}

func (h *Handler) idCard(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	data, contentType, err := h.cards.RenderCard(BuildCardFields(m, h.orgName))
	if err != nil {
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeDependencyFailed, "card rendering failed"))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=idcard_%s", m.MembershipNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) qrPayload(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.Get(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"membership_number": m.MembershipNumber,
		"payload":           QRPayload(m),
	})
}
