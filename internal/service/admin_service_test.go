package service

import (
	"context"
	"testing"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

func TestAdminStats_AssemblesDerivedFigures(t *testing.T) {
	donations := &mockDonationRepo{
		globalStatsFunc: func(ctx context.Context) (int, int, float64, error) {
			return 42, 17, 1234.5, nil
		},
		listRecentFunc: func(ctx context.Context, limit int) ([]*model.Donation, error) {
			if limit != recentDonationsLimit {
				t.Errorf("recent limit = %d, want %d", limit, recentDonationsLimit)
			}
			return []*model.Donation{{ID: "d1"}}, nil
		},
	}
	campaigns := &mockCampaignRepo{
		countByLifecycleFunc: func(ctx context.Context) (int, int, error) {
			return 5, 3, nil
		},
	}
	svc := NewAdminService(&mockProfileRepo{}, campaigns, donations)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalDonations != 42 || stats.DonorsCount != 17 || stats.TotalRaised != 1234.5 {
		t.Errorf("donation figures wrong: %+v", stats)
	}
	if stats.ActiveCampaigns != 5 || stats.CompletedCampaigns != 3 {
		t.Errorf("campaign figures wrong: %+v", stats)
	}
	if len(stats.RecentDonations) != 1 {
		t.Errorf("recent donations missing: %+v", stats.RecentDonations)
	}
}

func TestAdminStats_EmptyRecentIsNotNil(t *testing.T) {
	svc := NewAdminService(&mockProfileRepo{}, &mockCampaignRepo{}, &mockDonationRepo{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.RecentDonations == nil {
		t.Error("RecentDonations must encode as [], not null")
	}
}

func TestAdminSuspend_PassesFlag(t *testing.T) {
	var gotID string
	var gotSuspend bool
	profiles := &mockProfileRepo{
		suspendFunc: func(ctx context.Context, id string, suspend bool) error {
			gotID, gotSuspend = id, suspend
			return nil
		},
	}
	svc := NewAdminService(profiles, &mockCampaignRepo{}, &mockDonationRepo{})

	if err := svc.Suspend(context.Background(), "u1", true); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if gotID != "u1" || !gotSuspend {
		t.Errorf("Suspend(%q, %v), want (u1, true)", gotID, gotSuspend)
	}
}
