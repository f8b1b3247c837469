package service

import (
	"context"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// ---------------------------------------------------------------------------
// Mock repositories (func-field style, shared across the service tests)
// ---------------------------------------------------------------------------

type mockProfileRepo struct {
	findByIDFunc           func(ctx context.Context, id string) (*model.Profile, error)
	findByEmailFunc        func(ctx context.Context, email string) (*model.Profile, error)
	findByGoogleIDFunc     func(ctx context.Context, googleID string) (*model.Profile, error)
	createFunc             func(ctx context.Context, p *model.Profile) error
	patchFunc              func(ctx context.Context, id string, patch model.ProfilePatch) error
	updatePasswordFunc     func(ctx context.Context, id, hash string) error
	updateGoogleIDFunc     func(ctx context.Context, id, googleID string) error
	listFunc               func(ctx context.Context, limit, offset int) ([]*model.Profile, error)
	suspendFunc            func(ctx context.Context, id string, suspend bool) error
	organizerContactsFunc  func(ctx context.Context, donorID string) ([]*model.Contact, error)
	donorContactsFunc      func(ctx context.Context, organizerID string) ([]*model.Contact, error)
	nonAdminContactsFunc   func(ctx context.Context, selfID string) ([]*model.Contact, error)
}

func (m *mockProfileRepo) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockProfileRepo) FindByEmail(ctx context.Context, email string) (*model.Profile, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}
func (m *mockProfileRepo) FindByGoogleID(ctx context.Context, googleID string) (*model.Profile, error) {
	if m.findByGoogleIDFunc != nil {
		return m.findByGoogleIDFunc(ctx, googleID)
	}
	return nil, nil
}
func (m *mockProfileRepo) Create(ctx context.Context, p *model.Profile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return nil
}
func (m *mockProfileRepo) Patch(ctx context.Context, id string, patch model.ProfilePatch) error {
	if m.patchFunc != nil {
		return m.patchFunc(ctx, id, patch)
	}
	return nil
}
func (m *mockProfileRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, id, hash)
	}
	return nil
}
func (m *mockProfileRepo) UpdateGoogleID(ctx context.Context, id, googleID string) error {
	if m.updateGoogleIDFunc != nil {
		return m.updateGoogleIDFunc(ctx, id, googleID)
	}
	return nil
}
func (m *mockProfileRepo) List(ctx context.Context, limit, offset int) ([]*model.Profile, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockProfileRepo) Suspend(ctx context.Context, id string, suspend bool) error {
	if m.suspendFunc != nil {
		return m.suspendFunc(ctx, id, suspend)
	}
	return nil
}
func (m *mockProfileRepo) OrganizerContacts(ctx context.Context, donorID string) ([]*model.Contact, error) {
	if m.organizerContactsFunc != nil {
		return m.organizerContactsFunc(ctx, donorID)
	}
	return nil, nil
}
func (m *mockProfileRepo) DonorContacts(ctx context.Context, organizerID string) ([]*model.Contact, error) {
	if m.donorContactsFunc != nil {
		return m.donorContactsFunc(ctx, organizerID)
	}
	return nil, nil
}
func (m *mockProfileRepo) NonAdminContacts(ctx context.Context, selfID string) ([]*model.Contact, error) {
	if m.nonAdminContactsFunc != nil {
		return m.nonAdminContactsFunc(ctx, selfID)
	}
	return nil, nil
}

type mockCampaignRepo struct {
	listFunc             func(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error)
	getByIDFunc          func(ctx context.Context, id string) (*model.Campaign, error)
	listByOrganizerFunc  func(ctx context.Context, organizerID string) ([]*model.Campaign, error)
	createFunc           func(ctx context.Context, c *model.Campaign) error
	updateFunc           func(ctx context.Context, c *model.Campaign) error
	updateStatusFunc     func(ctx context.Context, id string, status model.CampaignStatus) error
	updateImageURLFunc   func(ctx context.Context, id, imageURL string) error
	deleteFunc           func(ctx context.Context, id string) error
	countByLifecycleFunc func(ctx context.Context) (int, int, error)
}

func (m *mockCampaignRepo) List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filters)
	}
	return nil, nil
}
func (m *mockCampaignRepo) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockCampaignRepo) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error) {
	if m.listByOrganizerFunc != nil {
		return m.listByOrganizerFunc(ctx, organizerID)
	}
	return nil, nil
}
func (m *mockCampaignRepo) Create(ctx context.Context, c *model.Campaign) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}
func (m *mockCampaignRepo) Update(ctx context.Context, c *model.Campaign) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, c)
	}
	return nil
}
func (m *mockCampaignRepo) UpdateStatus(ctx context.Context, id string, status model.CampaignStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}
func (m *mockCampaignRepo) UpdateImageURL(ctx context.Context, id, imageURL string) error {
	if m.updateImageURLFunc != nil {
		return m.updateImageURLFunc(ctx, id, imageURL)
	}
	return nil
}
func (m *mockCampaignRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}
func (m *mockCampaignRepo) CountByLifecycle(ctx context.Context) (int, int, error) {
	if m.countByLifecycleFunc != nil {
		return m.countByLifecycleFunc(ctx)
	}
	return 0, 0, nil
}

type mockDonationRepo struct {
	createFunc         func(ctx context.Context, d *model.Donation) error
	getByIDFunc        func(ctx context.Context, id string) (*model.Donation, error)
	listByCampaignFunc func(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error)
	listByUserFunc     func(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error)
	statsByUserFunc    func(ctx context.Context, userID string) (*model.DonationStats, error)
	listPendingFunc    func(ctx context.Context, limit, offset int) ([]*model.Donation, error)
	validateFunc       func(ctx context.Context, id string) error
	globalStatsFunc    func(ctx context.Context) (int, int, float64, error)
	listRecentFunc     func(ctx context.Context, limit int) ([]*model.Donation, error)
}

func (m *mockDonationRepo) Create(ctx context.Context, d *model.Donation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, d)
	}
	return nil
}
func (m *mockDonationRepo) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}
func (m *mockDonationRepo) ListByCampaign(ctx context.Context, campaignID string, limit, offset int) ([]*model.Donation, error) {
	if m.listByCampaignFunc != nil {
		return m.listByCampaignFunc(ctx, campaignID, limit, offset)
	}
	return nil, nil
}
func (m *mockDonationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*model.Donation, error) {
	if m.listByUserFunc != nil {
		return m.listByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}
func (m *mockDonationRepo) StatsByUser(ctx context.Context, userID string) (*model.DonationStats, error) {
	if m.statsByUserFunc != nil {
		return m.statsByUserFunc(ctx, userID)
	}
	return &model.DonationStats{}, nil
}
func (m *mockDonationRepo) ListPending(ctx context.Context, limit, offset int) ([]*model.Donation, error) {
	if m.listPendingFunc != nil {
		return m.listPendingFunc(ctx, limit, offset)
	}
	return nil, nil
}
func (m *mockDonationRepo) Validate(ctx context.Context, id string) error {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, id)
	}
	return nil
}
func (m *mockDonationRepo) GlobalStats(ctx context.Context) (int, int, float64, error) {
	if m.globalStatsFunc != nil {
		return m.globalStatsFunc(ctx)
	}
	return 0, 0, 0, nil
}
func (m *mockDonationRepo) ListRecent(ctx context.Context, limit int) ([]*model.Donation, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit)
	}
	return nil, nil
}

type mockMessageRepo struct {
	createFunc              func(ctx context.Context, m *model.Message) error
	conversationBetweenFunc func(ctx context.Context, userID, contactID string) ([]*model.Message, error)
	markReadFromFunc        func(ctx context.Context, receiverID, senderID string) error
	markAllReadFunc         func(ctx context.Context, receiverID string) error
	unreadCountFunc         func(ctx context.Context, receiverID string) (int, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, msg)
	}
	return nil
}
func (m *mockMessageRepo) ConversationBetween(ctx context.Context, userID, contactID string) ([]*model.Message, error) {
	if m.conversationBetweenFunc != nil {
		return m.conversationBetweenFunc(ctx, userID, contactID)
	}
	return nil, nil
}
func (m *mockMessageRepo) MarkReadFrom(ctx context.Context, receiverID, senderID string) error {
	if m.markReadFromFunc != nil {
		return m.markReadFromFunc(ctx, receiverID, senderID)
	}
	return nil
}
func (m *mockMessageRepo) MarkAllRead(ctx context.Context, receiverID string) error {
	if m.markAllReadFunc != nil {
		return m.markAllReadFunc(ctx, receiverID)
	}
	return nil
}
func (m *mockMessageRepo) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	if m.unreadCountFunc != nil {
		return m.unreadCountFunc(ctx, receiverID)
	}
	return 0, nil
}

type mockUpdateRepo struct {
	listByCampaignFunc func(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error)
	createFunc         func(ctx context.Context, u *model.CampaignUpdate) error
	deleteFunc         func(ctx context.Context, id string) error
}

func (m *mockUpdateRepo) ListByCampaign(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error) {
	if m.listByCampaignFunc != nil {
		return m.listByCampaignFunc(ctx, campaignID)
	}
	return nil, nil
}
func (m *mockUpdateRepo) Create(ctx context.Context, u *model.CampaignUpdate) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return nil
}
func (m *mockUpdateRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockMailer records sent mail.
type mockMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: htmlBody})
	return nil
}
