package warning

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/transport/http/shared"
)

// Handler exposes the warning ledger and notice delivery endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/attendance/warnings", h.list)
	r.Get("/attendance/warnings/{warningID}/letter", h.letter)
	r.Post("/attendance/warnings/{warningID}/send-email", h.sendEmail)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	warnings, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, warnings)
}

func (h *Handler) letter(w http.ResponseWriter, r *http.Request) {
	data, warning, err := h.service.GenerateLetter(r.Context(), chi.URLParam(r, "warningID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=warning_letter_%s.pdf", warning.MembershipNumber))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) sendEmail(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := h.service.SendEmail(r.Context(), chi.URLParam(r, "warningID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{
		"message":  "Email sent successfully",
		"email_id": deliveryID,
	})
}
