package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xXAMIRAYA/PSynthese/internal/metrics"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
)

// descriptionPolicy keeps basic formatting in organizer-authored text while
// stripping anything executable.
var descriptionPolicy = bluemonday.UGCPolicy()

type campaignServiceImpl struct {
	campaigns repository.CampaignRepository
	updates   repository.CampaignUpdateRepository
	now       func() time.Time
}

// NewCampaignService creates a CampaignService backed by the given repositories.
func NewCampaignService(campaigns repository.CampaignRepository, updates repository.CampaignUpdateRepository) CampaignService {
	return &campaignServiceImpl{campaigns: campaigns, updates: updates, now: time.Now}
}

func canManage(c *model.Campaign, actorID string, actorRole model.Role) bool {
	return c.OrganizerID == actorID || actorRole == model.RoleAdmin
}

// List hides expired and fully funded campaigns unless the caller filtered
// by status explicitly. The visibility decision is recomputed per request
// from the derived aggregates, never persisted.
func (s *campaignServiceImpl) List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error) {
	campaigns, err := s.campaigns.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	if filters.Status != "" && filters.Status != "all" {
		return campaigns, nil
	}

	now := s.now()
	visible := campaigns[:0]
	for _, c := range campaigns {
		if c.IsExpired(now) || c.IsFullyFunded() {
			continue
		}
		visible = append(visible, c)
	}
	return visible, nil
}

func (s *campaignServiceImpl) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

func (s *campaignServiceImpl) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error) {
	return s.campaigns.ListByOrganizer(ctx, organizerID)
}

func (s *campaignServiceImpl) validateForm(form model.CampaignForm) (*model.Campaign, error) {
	if strings.TrimSpace(form.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(form.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if strings.TrimSpace(form.Location) == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	}
	category, ok := model.ParseCampaignCategory(form.Category)
	if !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, form.Category)
	}
	if form.Target <= 0 {
		return nil, fmt.Errorf("%w: target must be positive", ErrValidation)
	}
	endDate, err := time.Parse(time.RFC3339, form.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be RFC 3339", ErrValidation)
	}
	if !endDate.After(s.now()) {
		return nil, fmt.Errorf("%w: end_date must be in the future", ErrValidation)
	}

	return &model.Campaign{
		Title:       strings.TrimSpace(form.Title),
		Description: descriptionPolicy.Sanitize(form.Description),
		Category:    category,
		Location:    strings.TrimSpace(form.Location),
		Target:      form.Target,
		ImageURL:    form.ImageURL,
		EndDate:     endDate,
	}, nil
}

func (s *campaignServiceImpl) Create(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error) {
	if organizerRole != model.RoleCampaignManager && organizerRole != model.RoleAdmin {
		return nil, ErrForbidden
	}
	c, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}
	c.OrganizerID = organizerID
	c.Status = model.StatusActive
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.CampaignsCreated.Inc()
	return c, nil
}

func (s *campaignServiceImpl) Update(ctx context.Context, id string, form model.CampaignForm, actorID string, actorRole model.Role) (*model.Campaign, error) {
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(existing, actorID, actorRole) {
		return nil, ErrForbidden
	}

	c, err := s.validateForm(form)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	if c.ImageURL == "" {
		c.ImageURL = existing.ImageURL
	}
	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.campaigns.GetByID(ctx, id)
}

func (s *campaignServiceImpl) UpdateStatus(ctx context.Context, id, status, actorID string, actorRole model.Role) error {
	parsed, ok := model.ParseCampaignStatus(status)
	if !ok {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(existing, actorID, actorRole) {
		return ErrForbidden
	}
	return s.campaigns.UpdateStatus(ctx, id, parsed)
}

func (s *campaignServiceImpl) Delete(ctx context.Context, id, actorID string, actorRole model.Role) error {
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(existing, actorID, actorRole) {
		return ErrForbidden
	}
	// Dependent donations and updates go with the campaign (ON DELETE CASCADE).
	return s.campaigns.Delete(ctx, id)
}

func (s *campaignServiceImpl) ListUpdates(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error) {
	return s.updates.ListByCampaign(ctx, campaignID)
}

func (s *campaignServiceImpl) CreateUpdate(ctx context.Context, campaignID, content, imageURL, actorID string, actorRole model.Role) (*model.CampaignUpdate, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !canManage(campaign, actorID, actorRole) {
		return nil, ErrForbidden
	}

	u := &model.CampaignUpdate{
		CampaignID: campaignID,
		Content:    descriptionPolicy.Sanitize(content),
		ImageURL:   imageURL,
	}
	if err := s.updates.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *campaignServiceImpl) SetImageURL(ctx context.Context, id, imageURL, actorID string, actorRole model.Role) error {
	existing, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(existing, actorID, actorRole) {
		return ErrForbidden
	}
	return s.campaigns.UpdateImageURL(ctx, id, imageURL)
}
