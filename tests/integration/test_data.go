package integration

import (
	"context"
	"fmt"
	"time"
)

// SeedPack inserts a sticker pack and returns its id.
func (db *TestDB) SeedPack(ctx context.Context, name string) (string, error) {
	slug := fmt.Sprintf("%s-%d", name, time.Now().UnixNano())

	var id string
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO sticker_packs (name, slug) VALUES ($1, $2) RETURNING id`,
		name, slug,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to seed pack: %w", err)
	}
	return id, nil
}

// SeedSticker inserts a sticker (optionally in a pack) and returns its
// id. Bumps the pack's sticker_count the way the importer does.
func (db *TestDB) SeedSticker(ctx context.Context, name string, packID *string, tags []string) (string, error) {
	slug := fmt.Sprintf("%s-%d", name, time.Now().UnixNano())

	var id string
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO stickers (pack_id, name, slug, file_url, tags)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		packID, name, slug, "https://cdn.example.com/stickers/"+slug+".webp", tags,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to seed sticker: %w", err)
	}

	if packID != nil {
		_, err = db.Pool.Exec(ctx,
			`UPDATE sticker_packs SET sticker_count = sticker_count + 1 WHERE id = $1`, *packID)
		if err != nil {
			return "", fmt.Errorf("failed to bump pack count: %w", err)
		}
	}

	return id, nil
}
