package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/database"
	"github.com/bugrabasbostanci/funny-yellow-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StickerRepository is the catalog data store the admin panel queries
// after authentication. The auth subsystem never touches it directly.
type StickerRepository struct {
	db   *database.DB
	pool *pgxpool.Pool
}

func NewStickerRepository(db *database.DB) *StickerRepository {
	return &StickerRepository{db: db, pool: db.Pool}
}

// rowScanner lets single-row and multi-row scans share one code path.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStickerRow(scanner rowScanner) (*models.Sticker, error) {
	var sticker models.Sticker
	var packID *string
	var updatedAt *time.Time

	err := scanner.Scan(
		&sticker.ID, &packID, &sticker.Name, &sticker.Slug,
		&sticker.FileURL, &sticker.Tags, &sticker.Downloads,
		&sticker.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	sticker.PackID = packID
	if updatedAt != nil {
		sticker.UpdatedAt = *updatedAt
	}

	return &sticker, nil
}

const stickerColumns = `id, pack_id, name, slug, file_url, tags, downloads, created_at, updated_at`

func (r *StickerRepository) GetStats(ctx context.Context) (*models.CatalogStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM stickers),
			(SELECT COUNT(*) FROM sticker_packs),
			(SELECT COALESCE(SUM(downloads), 0) FROM stickers)
	`

	var stats models.CatalogStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalStickers, &stats.TotalPacks, &stats.TotalDownloads,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog stats: %w", database.MapPostgresError(err))
	}

	return &stats, nil
}

func (r *StickerRepository) ListStickers(ctx context.Context, limit, offset int) ([]*models.Sticker, error) {
	query := `
		SELECT ` + stickerColumns + `
		FROM stickers
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	stickers := make([]*models.Sticker, 0)
	for rows.Next() {
		sticker, err := scanStickerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sticker: %w", err)
		}
		stickers = append(stickers, sticker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stickers, nil
}

func (r *StickerRepository) GetStickerByID(ctx context.Context, id string) (*models.Sticker, error) {
	query := `SELECT ` + stickerColumns + ` FROM stickers WHERE id = $1`
	return scanStickerRow(r.pool.QueryRow(ctx, query, id))
}

func (r *StickerRepository) UpdateTags(ctx context.Context, id string, tags []string) (*models.Sticker, error) {
	query := `
		UPDATE stickers
		SET tags = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + stickerColumns

	return scanStickerRow(r.pool.QueryRow(ctx, query, id, tags))
}

// DeleteSticker removes a sticker and keeps its pack's sticker_count in
// step inside one transaction.
func (r *StickerRepository) DeleteSticker(ctx context.Context, id string) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var packID *string
		err := tx.QueryRow(ctx, `DELETE FROM stickers WHERE id = $1 RETURNING pack_id`, id).Scan(&packID)
		if err != nil {
			return database.MapPostgresError(err)
		}

		if packID != nil {
			_, err = tx.Exec(ctx,
				`UPDATE sticker_packs SET sticker_count = sticker_count - 1 WHERE id = $1`, *packID)
			if err != nil {
				return database.MapPostgresError(err)
			}
		}
		return nil
	})
}

func (r *StickerRepository) IncrementDownloads(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE stickers SET downloads = downloads + 1 WHERE id = $1`, id)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *StickerRepository) ListPacks(ctx context.Context) ([]*models.StickerPack, error) {
	query := `
		SELECT id, name, slug, sticker_count, created_at
		FROM sticker_packs
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	defer rows.Close()

	packs := make([]*models.StickerPack, 0)
	for rows.Next() {
		var pack models.StickerPack
		if err := rows.Scan(&pack.ID, &pack.Name, &pack.Slug, &pack.StickerCount, &pack.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pack: %w", err)
		}
		packs = append(packs, &pack)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return packs, nil
}
