package repository

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// CampaignRepository handles persistence for campaigns. Raised amounts and
// donor counts are aggregated from validated donations inside every read
// query; no query ever reads a stored counter.
type CampaignRepository interface {
	List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error)
	Create(ctx context.Context, c *model.Campaign) error
	Update(ctx context.Context, c *model.Campaign) error
	UpdateStatus(ctx context.Context, id string, status model.CampaignStatus) error
	UpdateImageURL(ctx context.Context, id, imageURL string) error
	// Delete hard-deletes a campaign; dependent donations and updates are
	// removed by the ON DELETE CASCADE constraints.
	Delete(ctx context.Context, id string) error

	CountByLifecycle(ctx context.Context) (active, completed int, err error)
}
