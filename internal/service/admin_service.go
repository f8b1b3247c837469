package service

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
)

const recentDonationsLimit = 10

// AdminService provides user administration and the dashboard summary.
// Handlers gate every call behind the admin role.
type AdminService interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*model.Profile, error)
	Suspend(ctx context.Context, id string, suspend bool) error
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

type adminService struct {
	profiles  repository.ProfileRepository
	campaigns repository.CampaignRepository
	donations repository.DonationRepository
}

// NewAdminService creates an AdminService.
func NewAdminService(profiles repository.ProfileRepository, campaigns repository.CampaignRepository, donations repository.DonationRepository) AdminService {
	return &adminService{profiles: profiles, campaigns: campaigns, donations: donations}
}

func (s *adminService) ListUsers(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	return s.profiles.List(ctx, limit, offset)
}

func (s *adminService) Suspend(ctx context.Context, id string, suspend bool) error {
	return s.profiles.Suspend(ctx, id, suspend)
}

// Stats assembles the dashboard summary from derived queries; none of these
// figures is maintained as a counter anywhere.
func (s *adminService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	total, donors, raised, err := s.donations.GlobalStats(ctx)
	if err != nil {
		return nil, err
	}
	active, completed, err := s.campaigns.CountByLifecycle(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.donations.ListRecent(ctx, recentDonationsLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*model.Donation{}
	}

	return &model.DashboardStats{
		TotalDonations:     total,
		ActiveCampaigns:    active,
		CompletedCampaigns: completed,
		TotalRaised:        raised,
		DonorsCount:        donors,
		RecentDonations:    recent,
	}, nil
}
