package model

import (
	"errors"
	"testing"
)

func TestDonationPayload_Validate_Money(t *testing.T) {
	p := &DonationPayload{Type: "money", Amount: 250}
	typ, err := p.Validate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if typ != DonationMoney {
		t.Errorf("expected type money, got %q", typ)
	}

	for _, amount := range []float64{0, -50} {
		p := &DonationPayload{Type: "money", Amount: amount}
		if _, err := p.Validate(); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount=%v: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestDonationPayload_Validate_Material(t *testing.T) {
	p := &DonationPayload{Type: "material", Description: "blankets", Quantity: 10}
	if _, err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []DonationPayload{
		{Type: "material", Description: "", Quantity: 10},
		{Type: "material", Description: "   ", Quantity: 10},
		{Type: "material", Description: "blankets", Quantity: 0},
		{Type: "material", Description: "blankets", Quantity: -1},
	}
	for i, p := range cases {
		if _, err := p.Validate(); !errors.Is(err, ErrInvalidMaterial) {
			t.Errorf("case %d: expected ErrInvalidMaterial, got %v", i, err)
		}
	}
}

func TestDonationPayload_Validate_Volunteering(t *testing.T) {
	p := &DonationPayload{Type: "volunteering", Availability: "weekends", Skills: "nursing"}
	if _, err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p = &DonationPayload{Type: "volunteering", Availability: "  "}
	if _, err := p.Validate(); !errors.Is(err, ErrInvalidAvailability) {
		t.Errorf("expected ErrInvalidAvailability, got %v", err)
	}
}

func TestDonationPayload_Validate_RejectsUnknownTags(t *testing.T) {
	// Legacy French vocabulary from earlier frontend revisions must not pass.
	for _, typ := range []string{"argent", "materiel", "benevolat", "", "goods"} {
		p := &DonationPayload{Type: typ, Amount: 100, Description: "x", Quantity: 1, Availability: "y"}
		if _, err := p.Validate(); !errors.Is(err, ErrUnknownDonationType) {
			t.Errorf("type=%q: expected ErrUnknownDonationType, got %v", typ, err)
		}
	}
}
