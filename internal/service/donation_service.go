package service

import (
	"context"
	"errors"

	"github.com/microcosm-cc/bluemonday"
	"github.com/xXAMIRAYA/PSynthese/internal/metrics"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
)

// messagePolicy strips all markup from donor-authored free text.
var messagePolicy = bluemonday.StrictPolicy()

// DonationService provides business logic for donations. Creating a donation
// never touches campaign counters: raised amounts and donor counts are
// derived from the donation set when campaigns are read.
type DonationService interface {
	Create(ctx context.Context, campaignID, userID string, payload model.DonationPayload) (*model.Donation, error)
	ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error)
	StatsByUser(ctx context.Context, userID string) (*model.DonationStats, error)

	// ListPending and Validate implement the admin review queue. Only
	// validated donations appear publicly and count toward aggregates.
	ListPending(ctx context.Context, limit, offset int) ([]*model.Donation, error)
	Validate(ctx context.Context, id string) error
}

type donationService struct {
	donations repository.DonationRepository
	campaigns repository.CampaignRepository
}

// NewDonationService creates a DonationService.
func NewDonationService(donations repository.DonationRepository, campaigns repository.CampaignRepository) DonationService {
	return &donationService{donations: donations, campaigns: campaigns}
}

func (s *donationService) Create(ctx context.Context, campaignID, userID string, payload model.DonationPayload) (*model.Donation, error) {
	typ, err := payload.Validate()
	if err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	// The campaign must exist; a dangling reference would be caught by the
	// FK anyway, but this gives a 404 instead of a 500.
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}

	d := &model.Donation{
		CampaignID: campaignID,
		UserID:     userID,
		Type:       typ,
		Message:    messagePolicy.Sanitize(payload.Message),
		Anonymous:  payload.Anonymous,
		Status:     model.DonationPending,
	}
	switch typ {
	case model.DonationMoney:
		d.Amount = payload.Amount
	case model.DonationMaterial:
		d.Description = messagePolicy.Sanitize(payload.Description)
		d.Quantity = payload.Quantity
	case model.DonationVolunteering:
		d.Skills = messagePolicy.Sanitize(payload.Skills)
		d.Availability = messagePolicy.Sanitize(payload.Availability)
	}

	if err := s.donations.Create(ctx, d); err != nil {
		return nil, err
	}
	metrics.DonationsCreated.WithLabelValues(string(typ)).Inc()
	return d, nil
}

func (s *donationService) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error) {
	return s.donations.ListByCampaign(ctx, campaignID, limit, offset)
}

func (s *donationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error) {
	return s.donations.ListByUser(ctx, userID, limit, offset)
}

func (s *donationService) StatsByUser(ctx context.Context, userID string) (*model.DonationStats, error) {
	return s.donations.StatsByUser(ctx, userID)
}

func (s *donationService) ListPending(ctx context.Context, limit, offset int) ([]*model.Donation, error) {
	return s.donations.ListPending(ctx, limit, offset)
}

func (s *donationService) Validate(ctx context.Context, id string) error {
	return s.donations.Validate(ctx, id)
}
