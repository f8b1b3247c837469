package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

type pgDonationRepository struct {
	pool *pgxpool.Pool
}

// NewPgDonationRepository returns a PostgreSQL-backed DonationRepository.
func NewPgDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &pgDonationRepository{pool: pool}
}

const donationSelectCols = `d.id, d.campaign_id, d.user_id, d.type,
	COALESCE(d.amount, 0), COALESCE(d.description, ''), COALESCE(d.quantity, 0),
	COALESCE(d.skills, ''), COALESCE(d.availability, ''), COALESCE(d.message, ''),
	d.anonymous, d.status, d.created_at`

func scanDonation(scan func(...any) error) (*model.Donation, error) {
	d := &model.Donation{}
	return d, scan(
		&d.ID, &d.CampaignID, &d.UserID, &d.Type,
		&d.Amount, &d.Description, &d.Quantity,
		&d.Skills, &d.Availability, &d.Message,
		&d.Anonymous, &d.Status, &d.CreatedAt,
	)
}

func (r *pgDonationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO donations
		 (campaign_id, user_id, type, amount, description, quantity, skills, availability, message, anonymous, status)
		 VALUES ($1, $2, $3, NULLIF($4, 0), NULLIF($5, ''), NULLIF($6, 0), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, $11)
		 RETURNING id, created_at`,
		d.CampaignID, d.UserID, d.Type, d.Amount, d.Description, d.Quantity,
		d.Skills, d.Availability, d.Message, d.Anonymous, d.Status,
	).Scan(&d.ID, &d.CreatedAt)
}

func (r *pgDonationRepository) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+donationSelectCols+` FROM donations d WHERE d.id = $1`, id)
	d, err := scanDonation(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ListByCampaign returns only validated donations: pending donations stay
// out of public campaign pages until an admin reviews them.
func (r *pgDonationRepository) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`,
		        CASE WHEN d.anonymous THEN 'Anonyme' ELSE p.name END,
		        CASE WHEN d.anonymous THEN '' ELSE COALESCE(p.avatar_url, '') END
		 FROM donations d
		 JOIN profiles p ON p.id = d.user_id
		 WHERE d.campaign_id = $1 AND d.status = 'validated'
		 ORDER BY d.created_at DESC
		 LIMIT $2 OFFSET $3`,
		campaignID, limit, offset)
	if err != nil {
		return nil, err
	}
	return r.scanWithDonor(rows)
}

func (r *pgDonationRepository) scanWithDonor(rows pgx.Rows) ([]*model.Donation, error) {
	defer rows.Close()
	var list []*model.Donation
	for rows.Next() {
		d := &model.Donation{}
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.UserID, &d.Type,
			&d.Amount, &d.Description, &d.Quantity,
			&d.Skills, &d.Availability, &d.Message,
			&d.Anonymous, &d.Status, &d.CreatedAt,
			&d.DonorName, &d.DonorAvatar,
		); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *pgDonationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`, c.title, COALESCE(c.image_url, ''), c.status
		 FROM donations d
		 JOIN campaigns c ON c.id = d.campaign_id
		 WHERE d.user_id = $1
		 ORDER BY d.created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Donation
	for rows.Next() {
		d := &model.Donation{}
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.UserID, &d.Type,
			&d.Amount, &d.Description, &d.Quantity,
			&d.Skills, &d.Availability, &d.Message,
			&d.Anonymous, &d.Status, &d.CreatedAt,
			&d.CampaignTitle, &d.CampaignImage, &d.CampaignStatus,
		); err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// StatsByUser counts every donation but sums amounts over money donations
// only, so material and volunteering rows can never skew the total.
func (r *pgDonationRepository) StatsByUser(ctx context.Context, userID string) (*model.DonationStats, error) {
	s := &model.DonationStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(amount) FILTER (WHERE type = 'money'), 0)
		 FROM donations WHERE user_id = $1`,
		userID,
	).Scan(&s.Count, &s.TotalAmount)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *pgDonationRepository) ListPending(ctx context.Context, limit, offset int) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`, p.name, COALESCE(p.avatar_url, '')
		 FROM donations d
		 JOIN profiles p ON p.id = d.user_id
		 WHERE d.status = 'pending'
		 ORDER BY d.created_at ASC
		 LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	return r.scanWithDonor(rows)
}

func (r *pgDonationRepository) Validate(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE donations SET status = 'validated' WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GlobalStats feeds the admin dashboard: total donation count, distinct
// validated donors and the validated money sum.
func (r *pgDonationRepository) GlobalStats(ctx context.Context) (total, donors int, raised float64, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(DISTINCT user_id) FILTER (WHERE status = 'validated'),
		        COALESCE(SUM(amount) FILTER (WHERE type = 'money' AND status = 'validated'), 0)
		 FROM donations`,
	).Scan(&total, &donors, &raised)
	return total, donors, raised, err
}

func (r *pgDonationRepository) ListRecent(ctx context.Context, limit int) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`,
		        CASE WHEN d.anonymous THEN 'Anonyme' ELSE p.name END,
		        CASE WHEN d.anonymous THEN '' ELSE COALESCE(p.avatar_url, '') END
		 FROM donations d
		 JOIN profiles p ON p.id = d.user_id
		 ORDER BY d.created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, err
	}
	return r.scanWithDonor(rows)
}
