package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/pkg/auth"
)

// MeHandler serves the current user's profile.
type MeHandler struct {
	profiles repository.ProfileRepository
	messages repository.MessageRepository
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(profiles repository.ProfileRepository, messages repository.MessageRepository) *MeHandler {
	return &MeHandler{profiles: profiles, messages: messages}
}

// Me handles GET /api/me. The unread count feeds the chat badge in the
// header, so it rides along with the profile.
func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	profile, err := h.profiles.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
			return
		}
		slog.Error("me lookup failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	unread, err := h.messages.UnreadCount(r.Context(), userID)
	if err != nil {
		slog.Error("unread count failed", "error", err, "user_id", userID)
		unread = 0
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"profile": profile,
		"unread":  unread,
	})
}

type meUpdateRequest struct {
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateMe handles PATCH /api/me.
func (h *MeHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	var req meUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if req.Name != nil && *req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "name_required"})
		return
	}

	patch := model.ProfilePatch{Name: req.Name, AvatarURL: req.AvatarURL}
	if err := h.profiles.Patch(r.Context(), userID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "user_not_found"})
			return
		}
		slog.Error("profile patch failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	profile, err := h.profiles.FindByID(r.Context(), userID)
	if err != nil {
		slog.Error("profile reload failed", "error", err, "user_id", userID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal_error"})
		return
	}

	_ = json.NewEncoder(w).Encode(map[string]any{"profile": profile})
}
