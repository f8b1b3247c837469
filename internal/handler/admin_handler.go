package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/internal/service"
)

// AdminHandler handles the admin endpoints: user management, the donation
// review queue and the dashboard summary. Routes are mounted behind
// RequireAdmin; the handlers themselves do not re-check the role.
type AdminHandler struct {
	adminSvc    service.AdminService
	donationSvc service.DonationService
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(adminSvc service.AdminService, donationSvc service.DonationService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc, donationSvc: donationSvc}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := parseListParams(r)

	users, err := h.adminSvc.ListUsers(r.Context(), limit, offset)
	if err != nil {
		slog.Error("admin user list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if users == nil {
		users = []*model.Profile{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"users": users})
}

type suspendRequest struct {
	Suspend bool `json:"suspend"`
}

// Suspend handles PATCH /api/admin/users/{id}/suspend.
func (h *AdminHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := r.PathValue("id")

	var req suspendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	if err := h.adminSvc.Suspend(r.Context(), id, req.Suspend); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("admin suspend failed", "error", err, "user_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "suspend_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// ListPendingDonations handles GET /api/admin/donations/pending. Oldest
// first, so the queue drains in submission order.
func (h *AdminHandler) ListPendingDonations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit, offset := parseListParams(r)

	donations, err := h.donationSvc.ListPending(r.Context(), limit, offset)
	if err != nil {
		slog.Error("pending donations list failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if donations == nil {
		donations = []*model.Donation{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"donations": donations})
}

// ValidateDonation handles PATCH /api/admin/donations/{id}/validate. A
// donation that is already validated answers 404, so double validation is
// visible to the caller.
func (h *AdminHandler) ValidateDonation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := r.PathValue("id")

	if err := h.donationSvc.Validate(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("donation validate failed", "error", err, "donation_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "validate_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		slog.Error("admin stats failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "stats_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"stats": stats})
}
