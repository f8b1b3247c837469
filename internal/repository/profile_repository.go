package repository

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// DB is the liveness-check interface used by the health endpoint.
type DB interface {
	Ping(ctx context.Context) error
}

// ProfileRepository handles persistence for user profiles, including the
// derived chat-contact queries (contacts are recomputed, never stored).
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.Profile, error)
	Create(ctx context.Context, p *model.Profile) error
	Patch(ctx context.Context, id string, patch model.ProfilePatch) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdateGoogleID(ctx context.Context, id, googleID string) error
	List(ctx context.Context, limit, offset int) ([]*model.Profile, error)
	Suspend(ctx context.Context, id string, suspend bool) error

	// OrganizerContacts returns the distinct organizers of campaigns the
	// given donor has donated to.
	OrganizerContacts(ctx context.Context, donorID string) ([]*model.Contact, error)
	// DonorContacts returns the distinct donors across the given organizer's
	// campaigns.
	DonorContacts(ctx context.Context, organizerID string) ([]*model.Contact, error)
	// NonAdminContacts returns every profile that is not an admin, excluding
	// the given profile itself.
	NonAdminContacts(ctx context.Context, selfID string) ([]*model.Contact, error)
}
