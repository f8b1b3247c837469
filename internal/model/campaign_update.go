package model

import "time"

// CampaignUpdate is a news entry posted by the organizer on a campaign page.
type CampaignUpdate struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	Content    string    `json:"content"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
