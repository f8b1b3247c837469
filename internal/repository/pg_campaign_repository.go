package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// PgCampaignRepository is the PostgreSQL implementation of CampaignRepository.
type PgCampaignRepository struct {
	pool *pgxpool.Pool
}

// NewPgCampaignRepository creates a PgCampaignRepository backed by the given pool.
func NewPgCampaignRepository(pool *pgxpool.Pool) *PgCampaignRepository {
	return &PgCampaignRepository{pool: pool}
}

var _ CampaignRepository = (*PgCampaignRepository)(nil)

// campaignSelect joins the organizer summary and derives raised/donors_count
// from validated donations. Only money donations contribute to raised; every
// validated donation's donor counts toward donors_count.
const campaignSelect = `SELECT c.id, c.title, c.description, c.category, c.location,
	c.organizer_id, c.target, COALESCE(c.image_url, ''), c.end_date, c.status, c.created_at,
	COALESCE(agg.raised, 0), COALESCE(agg.donors_count, 0),
	o.name, COALESCE(o.avatar_url, '')
	FROM campaigns c
	JOIN profiles o ON o.id = c.organizer_id
	LEFT JOIN LATERAL (
	  SELECT SUM(d.amount) FILTER (WHERE d.type = 'money') AS raised,
	         COUNT(DISTINCT d.user_id) AS donors_count
	  FROM donations d
	  WHERE d.campaign_id = c.id AND d.status = 'validated'
	) agg ON TRUE`

func scanCampaign(scan func(...any) error) (*model.Campaign, error) {
	c := &model.Campaign{}
	return c, scan(
		&c.ID, &c.Title, &c.Description, &c.Category, &c.Location,
		&c.OrganizerID, &c.Target, &c.ImageURL, &c.EndDate, &c.Status, &c.CreatedAt,
		&c.Raised, &c.DonorsCount,
		&c.OrganizerName, &c.OrganizerAvatar,
	)
}

// List returns campaigns newest-first with conjunctive filters applied.
func (r *PgCampaignRepository) List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error) {
	var conditions []string
	var args []any

	if filters.Category != "" && filters.Category != "all" {
		args = append(args, filters.Category)
		conditions = append(conditions, fmt.Sprintf("c.category = $%d", len(args)))
	}
	if filters.Status != "" && filters.Status != "all" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, filters.Search)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			`(c.title ILIKE '%%' || $%d || '%%' OR c.description ILIKE '%%' || $%d || '%%' OR c.location ILIKE '%%' || $%d || '%%')`,
			n, n, n))
	}

	query := campaignSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// GetByID returns a campaign joined with its organizer and update entries.
func (r *PgCampaignRepository) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	row := r.pool.QueryRow(ctx, campaignSelect+` WHERE c.id = $1`, id)
	c, err := scanCampaign(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, campaign_id, content, COALESCE(image_url, ''), created_at
		 FROM campaign_updates WHERE campaign_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		u := &model.CampaignUpdate{}
		if err := rows.Scan(&u.ID, &u.CampaignID, &u.Content, &u.ImageURL, &u.CreatedAt); err != nil {
			return nil, err
		}
		c.Updates = append(c.Updates, u)
	}
	return c, rows.Err()
}

func (r *PgCampaignRepository) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error) {
	rows, err := r.pool.Query(ctx,
		campaignSelect+` WHERE c.organizer_id = $1 ORDER BY c.created_at DESC`,
		organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []*model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows.Scan)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *PgCampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO campaigns (title, description, category, location, organizer_id, target, image_url, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)
		 RETURNING id, created_at`,
		c.Title, c.Description, c.Category, c.Location, c.OrganizerID,
		c.Target, c.ImageURL, c.EndDate, c.Status,
	).Scan(&c.ID, &c.CreatedAt)
}

func (r *PgCampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns
		 SET title = $1, description = $2, category = $3, location = $4,
		     target = $5, image_url = NULLIF($6, ''), end_date = $7
		 WHERE id = $8`,
		c.Title, c.Description, c.Category, c.Location, c.Target, c.ImageURL, c.EndDate, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCampaignRepository) UpdateStatus(ctx context.Context, id string, status model.CampaignStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCampaignRepository) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaigns SET image_url = NULLIF($1, '') WHERE id = $2`, imageURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCampaignRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByLifecycle counts campaigns still open for donations versus finished
// ones. A campaign is finished once its status is completed or its end date
// has passed.
func (r *PgCampaignRepository) CountByLifecycle(ctx context.Context) (active, completed int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
		   COUNT(*) FILTER (WHERE status <> 'completed' AND end_date > NOW()),
		   COUNT(*) FILTER (WHERE status = 'completed' OR end_date <= NOW())
		 FROM campaigns`,
	).Scan(&active, &completed)
	return active, completed, err
}
