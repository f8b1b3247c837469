package service

import (
	"context"
	"errors"
	"testing"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
)

func donationTestService(donations *mockDonationRepo, campaigns *mockCampaignRepo) DonationService {
	if campaigns.getByIDFunc == nil {
		campaigns.getByIDFunc = func(ctx context.Context, id string) (*model.Campaign, error) {
			return &model.Campaign{ID: id}, nil
		}
	}
	return NewDonationService(donations, campaigns)
}

func TestDonationCreate_MoneySucceedsPending(t *testing.T) {
	var created *model.Donation
	donations := &mockDonationRepo{
		createFunc: func(ctx context.Context, d *model.Donation) error {
			d.ID = "d1"
			created = d
			return nil
		},
	}
	svc := donationTestService(donations, &mockCampaignRepo{})

	d, err := svc.Create(context.Background(), "c1", "u1", model.DonationPayload{
		Type: "money", Amount: 50, Message: "bon courage",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil {
		t.Fatal("donation was not persisted")
	}
	if d.Status != model.DonationPending {
		t.Errorf("Status = %q, want pending", d.Status)
	}
	if d.Amount != 50 {
		t.Errorf("Amount = %v, want 50", d.Amount)
	}
}

func TestDonationCreate_RejectsLegacyFrenchTags(t *testing.T) {
	svc := donationTestService(&mockDonationRepo{}, &mockCampaignRepo{})

	for _, tag := range []string{"argent", "materiel", "benevolat", ""} {
		_, err := svc.Create(context.Background(), "c1", "u1", model.DonationPayload{Type: tag, Amount: 10})
		if !errors.Is(err, ErrValidation) {
			t.Errorf("type %q: expected ErrValidation, got %v", tag, err)
		}
	}
}

func TestDonationCreate_VariantConstraints(t *testing.T) {
	svc := donationTestService(&mockDonationRepo{}, &mockCampaignRepo{})

	cases := []struct {
		name    string
		payload model.DonationPayload
	}{
		{"money without amount", model.DonationPayload{Type: "money"}},
		{"material without description", model.DonationPayload{Type: "material", Quantity: 3}},
		{"material without quantity", model.DonationPayload{Type: "material", Description: "couvertures"}},
		{"volunteering without availability", model.DonationPayload{Type: "volunteering", Skills: "logistique"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "c1", "u1", tc.payload)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDonationCreate_OnlyVariantFieldsKept(t *testing.T) {
	var created *model.Donation
	donations := &mockDonationRepo{
		createFunc: func(ctx context.Context, d *model.Donation) error {
			created = d
			return nil
		},
	}
	svc := donationTestService(donations, &mockCampaignRepo{})

	// A money donation carrying stray material fields must not persist them.
	_, err := svc.Create(context.Background(), "c1", "u1", model.DonationPayload{
		Type: "money", Amount: 25, Description: "vieux canape", Quantity: 1,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Description != "" || created.Quantity != 0 {
		t.Errorf("non-variant fields leaked: description=%q quantity=%d", created.Description, created.Quantity)
	}
}

func TestDonationCreate_UnknownCampaign(t *testing.T) {
	campaigns := &mockCampaignRepo{
		getByIDFunc: func(ctx context.Context, id string) (*model.Campaign, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewDonationService(&mockDonationRepo{}, campaigns)

	_, err := svc.Create(context.Background(), "missing", "u1", model.DonationPayload{Type: "money", Amount: 10})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDonationCreate_SanitizesFreeText(t *testing.T) {
	var created *model.Donation
	donations := &mockDonationRepo{
		createFunc: func(ctx context.Context, d *model.Donation) error {
			created = d
			return nil
		},
	}
	svc := donationTestService(donations, &mockCampaignRepo{})

	_, err := svc.Create(context.Background(), "c1", "u1", model.DonationPayload{
		Type: "money", Amount: 10, Message: `<img src=x onerror=alert(1)>merci`,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Message != "merci" {
		t.Errorf("Message = %q, markup should be stripped", created.Message)
	}
}

func TestDonationValidate_PassesThroughNotFound(t *testing.T) {
	donations := &mockDonationRepo{
		validateFunc: func(ctx context.Context, id string) error { return repository.ErrNotFound },
	}
	svc := donationTestService(donations, &mockCampaignRepo{})

	if err := svc.Validate(context.Background(), "already-validated"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
