package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// PgProfileRepository is the PostgreSQL implementation of ProfileRepository.
type PgProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPgProfileRepository creates a PgProfileRepository backed by the given pool.
func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

var _ ProfileRepository = (*PgProfileRepository)(nil)

// Ping verifies database connectivity (DB interface).
func (r *PgProfileRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

const profileSelectCols = `id, name, email, COALESCE(password_hash, ''), COALESCE(google_id, ''),
	COALESCE(avatar_url, ''), role, suspended_at, created_at, updated_at`

func scanProfile(scan func(...any) error) (*model.Profile, error) {
	p := &model.Profile{}
	return p, scan(
		&p.ID, &p.Name, &p.Email, &p.PasswordHash, &p.GoogleID,
		&p.AvatarURL, &p.Role, &p.SuspendedAt, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *PgProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileSelectCols+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgProfileRepository) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileSelectCols+` FROM profiles WHERE email = $1`, email)
	p, err := scanProfile(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgProfileRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.Profile, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+profileSelectCols+` FROM profiles WHERE google_id = $1`, googleID)
	p, err := scanProfile(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PgProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (name, email, password_hash, google_id, avatar_url, role)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
		 RETURNING id, created_at, updated_at`,
		p.Name, p.Email, p.PasswordHash, p.GoogleID, p.AvatarURL, p.Role,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return ErrDuplicate
	}
	return err
}

func (r *PgProfileRepository) Patch(ctx context.Context, id string, patch model.ProfilePatch) error {
	if patch.Name == nil && patch.AvatarURL == nil {
		return nil
	}

	setClauses := []string{}
	args := []any{}
	argIdx := 1

	if patch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *patch.Name)
		argIdx++
	}
	if patch.AvatarURL != nil {
		setClauses = append(setClauses, fmt.Sprintf("avatar_url = NULLIF($%d, '')", argIdx))
		args = append(args, *patch.AvatarURL)
		argIdx++
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE profiles SET %s WHERE id = $%d",
		strings.Join(setClauses, ", "), argIdx)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProfileRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProfileRepository) UpdateGoogleID(ctx context.Context, id, googleID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE profiles SET google_id = $1, updated_at = NOW() WHERE id = $2`,
		googleID, id)
	return err
}

// List returns profiles ordered by created_at desc.
func (r *PgProfileRepository) List(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+profileSelectCols+` FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*model.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Suspend sets or clears suspended_at for a profile.
func (r *PgProfileRepository) Suspend(ctx context.Context, id string, suspend bool) error {
	var suspendedAt *time.Time
	if suspend {
		now := time.Now()
		suspendedAt = &now
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE profiles SET suspended_at = $1, updated_at = NOW() WHERE id = $2`,
		suspendedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// contactSelect joins the unread message count for the requesting profile.
const contactSelect = `SELECT p.id, p.name, p.role, COALESCE(p.avatar_url, ''),
	(SELECT COUNT(*) FROM messages m
	  WHERE m.receiver_id = $1 AND m.sender_id = p.id AND m.read = FALSE) AS unread`

func (r *PgProfileRepository) scanContacts(rows pgx.Rows) ([]*model.Contact, error) {
	defer rows.Close()
	var contacts []*model.Contact
	for rows.Next() {
		c := &model.Contact{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Role, &c.AvatarURL, &c.Unread); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *PgProfileRepository) OrganizerContacts(ctx context.Context, donorID string) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		contactSelect+`
		 FROM profiles p
		 WHERE p.id IN (
		   SELECT DISTINCT c.organizer_id
		   FROM donations d
		   JOIN campaigns c ON c.id = d.campaign_id
		   WHERE d.user_id = $1
		 )
		 ORDER BY p.name`,
		donorID)
	if err != nil {
		return nil, err
	}
	return r.scanContacts(rows)
}

func (r *PgProfileRepository) DonorContacts(ctx context.Context, organizerID string) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		contactSelect+`
		 FROM profiles p
		 WHERE p.id IN (
		   SELECT DISTINCT d.user_id
		   FROM donations d
		   JOIN campaigns c ON c.id = d.campaign_id
		   WHERE c.organizer_id = $1
		 )
		 ORDER BY p.name`,
		organizerID)
	if err != nil {
		return nil, err
	}
	return r.scanContacts(rows)
}

func (r *PgProfileRepository) NonAdminContacts(ctx context.Context, selfID string) ([]*model.Contact, error) {
	rows, err := r.pool.Query(ctx,
		contactSelect+`
		 FROM profiles p
		 WHERE p.role <> 'admin' AND p.id <> $1
		 ORDER BY p.name`,
		selfID)
	if err != nil {
		return nil, err
	}
	return r.scanContacts(rows)
}
