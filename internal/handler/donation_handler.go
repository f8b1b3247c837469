package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/internal/service"
	"github.com/xXAMIRAYA/PSynthese/pkg/auth"
)

// DonationHandler handles donation endpoints.
type DonationHandler struct {
	svc service.DonationService
}

// NewDonationHandler creates a DonationHandler.
func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

// parseListParams reads limit/offset query params with defaults.
func parseListParams(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// Create handles POST /api/campaigns/{id}/donations (auth required). The
// donation lands in the pending state; it stays invisible to the public
// until an admin validates it.
func (h *DonationHandler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	campaignID := r.PathValue("id")

	var payload model.DonationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	donation, err := h.svc.Create(r.Context(), campaignID, userID, payload)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "campaign_not_found"})
			return
		}
		slog.Error("donation create failed", "error", err, "campaign_id", campaignID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "create_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"donation": donation})
}

// ListByCampaign handles GET /api/campaigns/{id}/donations. Only validated
// donations are returned; anonymous donors appear as "Anonyme".
func (h *DonationHandler) ListByCampaign(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	campaignID := r.PathValue("id")
	limit, offset := parseListParams(r)

	donations, err := h.svc.ListByCampaign(r.Context(), campaignID, limit, offset)
	if err != nil {
		slog.Error("donation list failed", "error", err, "campaign_id", campaignID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if donations == nil {
		donations = []*model.Donation{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"donations": donations})
}

// MyDonations handles GET /api/me/donations (auth required). Pending
// donations are included; the owner always sees their own history.
func (h *DonationHandler) MyDonations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	limit, offset := parseListParams(r)

	donations, err := h.svc.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		slog.Error("my donations failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "list_failed"})
		return
	}
	if donations == nil {
		donations = []*model.Donation{}
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"donations": donations})
}

// MyStats handles GET /api/me/donations/stats (auth required).
func (h *DonationHandler) MyStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	stats, err := h.svc.StatsByUser(r.Context(), userID)
	if err != nil {
		slog.Error("donation stats failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "stats_failed"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"stats": stats})
}
