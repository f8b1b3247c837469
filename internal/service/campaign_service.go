package service

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// CampaignService provides business logic for campaign management. The
// actor's role decides what is allowed: creation requires a campaign
// manager, edits require the organizer or an admin.
type CampaignService interface {
	// List applies the conjunctive filters. When no status filter is given,
	// expired and fully funded campaigns are hidden from the result, the
	// "graduation" out of discovery feeds. They remain reachable by ID.
	List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error)
	GetByID(ctx context.Context, id string) (*model.Campaign, error)
	ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error)
	Create(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error)
	Update(ctx context.Context, id string, form model.CampaignForm, actorID string, actorRole model.Role) (*model.Campaign, error)
	UpdateStatus(ctx context.Context, id, status, actorID string, actorRole model.Role) error
	Delete(ctx context.Context, id, actorID string, actorRole model.Role) error

	ListUpdates(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error)
	CreateUpdate(ctx context.Context, campaignID, content, imageURL, actorID string, actorRole model.Role) (*model.CampaignUpdate, error)

	SetImageURL(ctx context.Context, id, imageURL, actorID string, actorRole model.Role) error
}
