package repository

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// DonationRepository handles persistence for donations. Donations are
// insert-only except for the pending to validated status transition.
type DonationRepository interface {
	Create(ctx context.Context, d *model.Donation) error
	GetByID(ctx context.Context, id string) (*model.Donation, error)
	// ListByCampaign returns validated donations for a campaign, newest
	// first, joined with the donor profile.
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error)
	// ListByUser returns all of a user's donations (pending included),
	// joined with a campaign summary.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error)
	// StatsByUser counts all of the user's donations; the total sums money
	// donations only.
	StatsByUser(ctx context.Context, userID string) (*model.DonationStats, error)

	ListPending(ctx context.Context, limit, offset int) ([]*model.Donation, error)
	// Validate transitions a pending donation to validated. Returns
	// ErrNotFound when the donation does not exist or is already validated.
	Validate(ctx context.Context, id string) error

	GlobalStats(ctx context.Context) (total, donors int, raised float64, err error)
	ListRecent(ctx context.Context, limit int) ([]*model.Donation, error)
}
