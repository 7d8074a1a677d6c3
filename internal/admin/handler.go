package admin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bfcms/internal/audit"
	"bfcms/internal/auth"
	"bfcms/internal/platform/middleware"
	"bfcms/internal/transport/http/shared"
)

// AuditLog reads back the audit trail.
type AuditLog interface {
	List(ctx context.Context, limit int) ([]*audit.Event, error)
}

// Handler exposes the admin panel. Every route is super-admin only; the
// finer primary-admin rules live in the service.
type Handler struct {
	service  *Service
	auditLog AuditLog
}

func NewHandler(service *Service, auditLog AuditLog) *Handler {
	return &Handler{service: service, auditLog: auditLog}
}

func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRoles(string(auth.RoleSuperAdmin)))

		r.Get("/admin/system-info", h.systemInfo)
		r.Post("/admin/reset-user-password", h.resetPassword)
		r.Post("/admin/promote-to-admin", h.promote)
		r.Delete("/admin/remove-user/{userID}", h.removeUser)
		r.Get("/admin/audit-log", h.listAudit)

		r.Get("/users", h.listUsers)
		r.Put("/users/{userID}/role", h.updateRole)
	})
}

func (h *Handler) systemInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.SystemInfo(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserEmail   string `json:"user_email"`
		NewPassword string `json:"new_password"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.ResetPassword(r.Context(), req.UserEmail, req.NewPassword); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password reset for " + req.UserEmail})
}

func (h *Handler) promote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserEmail string `json:"user_email"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.PromoteToAdmin(r.Context(), req.UserEmail); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": req.UserEmail + " promoted to super admin"})
}

func (h *Handler) removeUser(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "User removed"})
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	limit := 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
			limit = n
		}
	}
	events, err := h.auditLog.List(r.Context(), limit)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if events == nil {
		events = []*audit.Event{}
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role auth.Role `json:"role"`
	}
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.UpdateRole(r.Context(), chi.URLParam(r, "userID"), req.Role); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, map[string]string{"message": "Role updated successfully"})
}
