package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

type pgCampaignUpdateRepository struct {
	pool *pgxpool.Pool
}

// NewPgCampaignUpdateRepository returns a PostgreSQL-backed CampaignUpdateRepository.
func NewPgCampaignUpdateRepository(pool *pgxpool.Pool) CampaignUpdateRepository {
	return &pgCampaignUpdateRepository{pool: pool}
}

func (r *pgCampaignUpdateRepository) ListByCampaign(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, campaign_id, content, COALESCE(image_url, ''), created_at
		 FROM campaign_updates WHERE campaign_id = $1 ORDER BY created_at DESC`,
		campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*model.CampaignUpdate
	for rows.Next() {
		u := &model.CampaignUpdate{}
		if err := rows.Scan(&u.ID, &u.CampaignID, &u.Content, &u.ImageURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, rows.Err()
}

func (r *pgCampaignUpdateRepository) Create(ctx context.Context, u *model.CampaignUpdate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO campaign_updates (campaign_id, content, image_url)
		 VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at`,
		u.CampaignID, u.Content, u.ImageURL,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *pgCampaignUpdateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaign_updates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
