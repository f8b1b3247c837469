package repository

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// CampaignUpdateRepository handles persistence for campaign update entries.
type CampaignUpdateRepository interface {
	ListByCampaign(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error)
	Create(ctx context.Context, u *model.CampaignUpdate) error
	Delete(ctx context.Context, id string) error
}
