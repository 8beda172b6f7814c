package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	pkghttp "github.com/bugrabasbostanci/funny-yellow-sub001/pkg/http"
	"github.com/go-chi/chi/v5"
)

// CatalogInterface defines the catalog store operations the admin panel
// uses once a request clears the gate.
type CatalogInterface interface {
	GetStats(ctx context.Context) (*models.CatalogStats, error)
	ListStickers(ctx context.Context, limit, offset int) ([]*models.Sticker, error)
	UpdateTags(ctx context.Context, id string, tags []string) (*models.Sticker, error)
	DeleteSticker(ctx context.Context, id string) error
	IncrementDownloads(ctx context.Context, id string) error
	ListPacks(ctx context.Context) ([]*models.StickerPack, error)
}

// AdminHandler handles admin catalog HTTP requests.
type AdminHandler struct {
	catalog CatalogInterface
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog CatalogInterface) *AdminHandler {
	return &AdminHandler{catalog: catalog}
}

// UpdateTagsRequest represents the request body for tag replacement.
type UpdateTagsRequest struct {
	Tags []string `json:"tags" validate:"required"`
}

// GetStats handles GET /api/admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.GetStats(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to retrieve catalog stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ListStickers handles GET /api/admin/stickers
// Accepts optional query params ?limit=N (1–100, default 50) and ?offset=N.
func (h *AdminHandler) ListStickers(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	offset := 0
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}

	stickers, err := h.catalog.ListStickers(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to list stickers")
		return
	}

	writeJSON(w, http.StatusOK, stickers)
}

// ListPacks handles GET /api/admin/packs
func (h *AdminHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.catalog.ListPacks(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Failed to list packs")
		return
	}

	writeJSON(w, http.StatusOK, packs)
}

// UpdateStickerTags handles PATCH /api/admin/stickers/{id}/tags
func (h *AdminHandler) UpdateStickerTags(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}
	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	sticker, err := h.catalog.UpdateTags(r.Context(), id, req.Tags)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Sticker not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to update tags")
		return
	}

	writeJSON(w, http.StatusOK, sticker)
}

// DeleteSticker handles DELETE /api/admin/stickers/{id}
func (h *AdminHandler) DeleteSticker(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.DeleteSticker(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Sticker not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to delete sticker")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordDownload handles POST /api/stickers/{id}/download. Public: the
// catalog site calls it when a visitor downloads a sticker.
func (h *AdminHandler) RecordDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.catalog.IncrementDownloads(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "Sticker not found")
			return
		}
		pkghttp.WriteInternalError(w, "Failed to record download")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
