package model

// DashboardStats is the admin dashboard summary. All monetary figures are
// derived from validated money donations.
type DashboardStats struct {
	TotalDonations     int         `json:"total_donations"`
	ActiveCampaigns    int         `json:"active_campaigns"`
	CompletedCampaigns int         `json:"completed_campaigns"`
	TotalRaised        float64     `json:"total_raised"`
	DonorsCount        int         `json:"donors_count"`
	RecentDonations    []*Donation `json:"recent_donations"`
}
