package models

import "time"

// Sticker is a single catalog entry.
type Sticker struct {
	ID        string    `json:"id" db:"id"`
	PackID    *string   `json:"pack_id,omitempty" db:"pack_id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	FileURL   string    `json:"file_url" db:"file_url"`
	Tags      []string  `json:"tags" db:"tags"`
	Downloads int64     `json:"downloads" db:"downloads"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// StickerPack groups stickers for WhatsApp export.
type StickerPack struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	StickerCount int       `json:"sticker_count" db:"sticker_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CatalogStats aggregates dashboard totals for the admin panel.
type CatalogStats struct {
	TotalStickers  int64 `json:"total_stickers"`
	TotalPacks     int64 `json:"total_packs"`
	TotalDownloads int64 `json:"total_downloads"`
}
