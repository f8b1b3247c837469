package model

import (
	"math"
	"time"
)

// CampaignCategory is the fixed category vocabulary for campaigns.
type CampaignCategory string

const (
	CategoryEmergency CampaignCategory = "emergency"
	CategoryResearch  CampaignCategory = "research"
	CategoryEquipment CampaignCategory = "equipment"
	CategoryCare      CampaignCategory = "care"
	CategoryAwareness CampaignCategory = "awareness"
)

// ParseCampaignCategory validates a category string.
func ParseCampaignCategory(s string) (CampaignCategory, bool) {
	switch CampaignCategory(s) {
	case CategoryEmergency, CategoryResearch, CategoryEquipment, CategoryCare, CategoryAwareness:
		return CampaignCategory(s), true
	}
	return "", false
}

// CampaignStatus is the declared status of a campaign. Expiry and full
// funding are derived at read time, not persisted.
type CampaignStatus string

const (
	StatusActive    CampaignStatus = "active"
	StatusUrgent    CampaignStatus = "urgent"
	StatusCompleted CampaignStatus = "completed"
)

// ParseCampaignStatus validates a status string.
func ParseCampaignStatus(s string) (CampaignStatus, bool) {
	switch CampaignStatus(s) {
	case StatusActive, StatusUrgent, StatusCompleted:
		return CampaignStatus(s), true
	}
	return "", false
}

// Campaign is a fundraising initiative owned by a campaign manager.
//
// Raised and DonorsCount are never stored: both are recomputed from the
// validated donation set on every read, so the displayed progress can not
// drift from the actual donation history.
type Campaign struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    CampaignCategory `json:"category"`
	Location    string           `json:"location"`
	OrganizerID string           `json:"organizer_id"`
	Target      float64          `json:"target"`
	ImageURL    string           `json:"image_url,omitempty"`
	EndDate     time.Time        `json:"end_date"`
	Status      CampaignStatus   `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`

	// Derived from the donation set at query time.
	Raised      float64 `json:"raised"`
	DonorsCount int     `json:"donors_count"`

	// Joined organizer summary.
	OrganizerName   string `json:"organizer_name,omitempty"`
	OrganizerAvatar string `json:"organizer_avatar,omitempty"`

	Updates []*CampaignUpdate `json:"updates,omitempty"`
}

// IsExpired reports whether the campaign's end date has passed.
func (c *Campaign) IsExpired(now time.Time) bool {
	return now.After(c.EndDate)
}

// IsFullyFunded reports whether the derived raised amount has reached the target.
func (c *Campaign) IsFullyFunded() bool {
	return c.Raised >= c.Target
}

// Progress returns the funding percentage clamped to [0, 100]. Raised can
// exceed Target (late donations against an already-funded campaign), so the
// clamp keeps the displayed value bounded.
func (c *Campaign) Progress() int {
	return ProgressPercent(c.Raised, c.Target)
}

// ProgressPercent computes round(raised/target*100) clamped to [0, 100].
// target <= 0 yields 0.
func ProgressPercent(raised, target float64) int {
	if target <= 0 || raised <= 0 {
		return 0
	}
	pct := int(math.Round(raised / target * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// CampaignFilters are the conjunctive listing filters. Empty fields do not
// filter. Search matches title, description or location case-insensitively.
type CampaignFilters struct {
	Category string
	Status   string
	Search   string
}

// CampaignForm carries the fields for creating or editing a campaign.
type CampaignForm struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Location    string  `json:"location"`
	Target      float64 `json:"target"`
	EndDate     string  `json:"end_date"` // RFC 3339
	ImageURL    string  `json:"image_url"`
}
