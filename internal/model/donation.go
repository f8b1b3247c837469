package model

import (
	"errors"
	"strings"
	"time"
)

// DonationType is the canonical donation vocabulary. Earlier revisions of the
// frontend mixed French and English tags; only the English vocabulary is
// accepted here and unknown tags are rejected at the boundary.
type DonationType string

const (
	DonationMoney        DonationType = "money"
	DonationMaterial     DonationType = "material"
	DonationVolunteering DonationType = "volunteering"
)

// ParseDonationType validates a donation type tag.
func ParseDonationType(s string) (DonationType, bool) {
	switch DonationType(s) {
	case DonationMoney, DonationMaterial, DonationVolunteering:
		return DonationType(s), true
	}
	return "", false
}

// DonationStatus gates a donation's inclusion in public lists and campaign
// aggregates: only validated donations count.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationValidated DonationStatus = "validated"
)

// Donation is a contribution made by a donor against a campaign. A donation
// is immutable after insert except for the pending to validated transition.
type Donation struct {
	ID           string         `json:"id"`
	CampaignID   string         `json:"campaign_id"`
	UserID       string         `json:"user_id"`
	Type         DonationType   `json:"type"`
	Amount       float64        `json:"amount,omitempty"`
	Description  string         `json:"description,omitempty"`
	Quantity     int            `json:"quantity,omitempty"`
	Skills       string         `json:"skills,omitempty"`
	Availability string         `json:"availability,omitempty"`
	Message      string         `json:"message,omitempty"`
	Anonymous    bool           `json:"anonymous"`
	Status       DonationStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`

	// Joined donor summary; "Anonyme" when the donation is anonymous.
	DonorName   string `json:"donor_name,omitempty"`
	DonorAvatar string `json:"donor_avatar,omitempty"`

	// Joined campaign summary for per-user listings.
	CampaignTitle  string `json:"campaign_title,omitempty"`
	CampaignImage  string `json:"campaign_image,omitempty"`
	CampaignStatus string `json:"campaign_status,omitempty"`
}

// DonationPayload is the tagged union submitted when donating. Exactly the
// fields of the tagged variant are honored; the rest are ignored.
type DonationPayload struct {
	Type         string  `json:"type"`
	Amount       float64 `json:"amount"`
	Description  string  `json:"description"`
	Quantity     int     `json:"quantity"`
	Skills       string  `json:"skills"`
	Availability string  `json:"availability"`
	Message      string  `json:"message"`
	Anonymous    bool    `json:"anonymous"`
}

// Payload validation errors.
var (
	ErrUnknownDonationType = errors.New("unknown donation type")
	ErrInvalidAmount       = errors.New("money donation requires amount > 0")
	ErrInvalidMaterial     = errors.New("material donation requires a description and quantity > 0")
	ErrInvalidAvailability = errors.New("volunteering donation requires availability")
)

// Validate checks the variant-specific constraints and returns the parsed type.
func (p *DonationPayload) Validate() (DonationType, error) {
	typ, ok := ParseDonationType(p.Type)
	if !ok {
		return "", ErrUnknownDonationType
	}
	switch typ {
	case DonationMoney:
		if p.Amount <= 0 {
			return "", ErrInvalidAmount
		}
	case DonationMaterial:
		if strings.TrimSpace(p.Description) == "" || p.Quantity <= 0 {
			return "", ErrInvalidMaterial
		}
	case DonationVolunteering:
		if strings.TrimSpace(p.Availability) == "" {
			return "", ErrInvalidAvailability
		}
	}
	return typ, nil
}

// DonationStats aggregates a user's giving history. TotalAmount sums money
// donations only; material and volunteering contribute to Count alone.
type DonationStats struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
}
