package attendance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/transport/http/shared"
)

// Handler exposes the attendance endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/attendance/events", h.createEvent)
	r.Get("/attendance/events", h.listEvents)
	r.Post("/attendance/mark", h.mark)
	r.Get("/attendance/records/{eventID}", h.eventRecords)
	r.Get("/attendance/member/{memberID}", h.memberSummary)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	var req EventCreateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	event, err := h.service.CreateEvent(r.Context(), req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context(), r.URL.Query().Get("event_type"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) mark(w http.ResponseWriter, r *http.Request) {
	var marks []Mark
	if err := shared.DecodeJSON(r, &marks); err != nil {
		shared.WriteError(w, err)
		return
	}
	outcomes, err := h.service.Mark(r.Context(), marks)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Attendance marked",
		"results": outcomes,
	})
}

func (h *Handler) eventRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.EventRecords(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) memberSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.MemberSummary(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, summary)
}
