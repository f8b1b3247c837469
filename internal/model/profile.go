package model

import "time"

// Role is the authorization role attached to a profile.
type Role string

const (
	RoleDonator         Role = "donator"
	RoleCampaignManager Role = "campaign_manager"
	RoleAdmin           Role = "admin"
)

// ParseRole validates a role string. Unknown values are rejected; RoleAdmin
// is never assignable through registration and must be granted in the DB.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDonator, RoleCampaignManager, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Profile represents a registered user. Exactly one profile exists per
// authenticated identity; profiles are suspended, never hard-deleted.
type Profile struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	GoogleID     string     `json:"-"`
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Role         Role       `json:"role"`
	SuspendedAt  *time.Time `json:"suspended_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsSuspended returns true if the profile is currently suspended.
func (p *Profile) IsSuspended() bool {
	return p.SuspendedAt != nil
}

// ProfilePatch holds the fields a user may change on their own profile.
type ProfilePatch struct {
	Name      *string
	AvatarURL *string
}
