package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/internal/service"
	"github.com/xXAMIRAYA/PSynthese/internal/storage"
	"github.com/xXAMIRAYA/PSynthese/pkg/auth"
)

const maxImageSize = 2 << 20 // 2 MB

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ImageHandler handles campaign image upload and deletion. Authorization is
// delegated to CampaignService.SetImageURL, which knows who may touch the
// campaign.
type ImageHandler struct {
	storage     storage.Storage
	campaignSvc service.CampaignService
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(store storage.Storage, campaignSvc service.CampaignService) *ImageHandler {
	return &ImageHandler{storage: store, campaignSvc: campaignSvc}
}

// Upload handles POST /api/campaigns/{id}/image.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	campaignID := r.PathValue("id")
	if campaignID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "id_required"})
		return
	}

	campaign, err := h.campaignSvc.GetByID(r.Context(), campaignID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "image_required"})
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "file_too_large"})
		return
	}

	ct := header.Header.Get("Content-Type")
	ext, ok := allowedContentTypes[ct]
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_content_type"})
		return
	}

	key := path.Join("campaigns", campaignID, uuid.NewString()+ext)
	imageURL, err := h.storage.Save(r.Context(), key, file, ct)
	if err != nil {
		slog.Error("image upload failed", "error", err, "campaign_id", campaignID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "upload_failed"})
		return
	}

	if err := h.campaignSvc.SetImageURL(r.Context(), campaignID, imageURL, userID, actorRole(r)); err != nil {
		_ = h.storage.Delete(r.Context(), key)
		if errors.Is(err, service.ErrForbidden) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
			return
		}
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
			return
		}
		slog.Error("image url update failed", "error", err, "campaign_id", campaignID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	// Remove the replaced image once the new URL is committed.
	if campaign.ImageURL != "" && strings.HasPrefix(campaign.ImageURL, "/uploads/") {
		_ = h.storage.Delete(r.Context(), strings.TrimPrefix(campaign.ImageURL, "/uploads/"))
	}

	_ = json.NewEncoder(w).Encode(map[string]string{"image_url": imageURL})
}

// Delete handles DELETE /api/campaigns/{id}/image.
func (h *ImageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	campaignID := r.PathValue("id")
	campaign, err := h.campaignSvc.GetByID(r.Context(), campaignID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
		return
	}

	if err := h.campaignSvc.SetImageURL(r.Context(), campaignID, "", userID, actorRole(r)); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "forbidden"})
			return
		}
		slog.Error("image url clear failed", "error", err, "campaign_id", campaignID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "update_failed"})
		return
	}

	if campaign.ImageURL != "" && strings.HasPrefix(campaign.ImageURL, "/uploads/") {
		_ = h.storage.Delete(r.Context(), strings.TrimPrefix(campaign.ImageURL, "/uploads/"))
	}

	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
