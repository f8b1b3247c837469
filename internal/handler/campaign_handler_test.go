package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"github.com/xXAMIRAYA/PSynthese/internal/service"
)

// ---------------------------------------------------------------------------
// Mock CampaignService
// ---------------------------------------------------------------------------

type mockCampaignService struct {
	listFunc            func(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error)
	getByIDFunc         func(ctx context.Context, id string) (*model.Campaign, error)
	listByOrganizerFunc func(ctx context.Context, organizerID string) ([]*model.Campaign, error)
	createFunc          func(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error)
	updateFunc          func(ctx context.Context, id string, form model.CampaignForm, actorID string, actorRole model.Role) (*model.Campaign, error)
	updateStatusFunc    func(ctx context.Context, id, status, actorID string, actorRole model.Role) error
	deleteFunc          func(ctx context.Context, id, actorID string, actorRole model.Role) error
	listUpdatesFunc     func(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error)
	createUpdateFunc    func(ctx context.Context, campaignID, content, imageURL, actorID string, actorRole model.Role) (*model.CampaignUpdate, error)
	setImageURLFunc     func(ctx context.Context, id, imageURL, actorID string, actorRole model.Role) error
}

func (m *mockCampaignService) List(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, filters)
	}
	return nil, nil
}
func (m *mockCampaignService) GetByID(ctx context.Context, id string) (*model.Campaign, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}
func (m *mockCampaignService) ListByOrganizer(ctx context.Context, organizerID string) ([]*model.Campaign, error) {
	if m.listByOrganizerFunc != nil {
		return m.listByOrganizerFunc(ctx, organizerID)
	}
	return nil, nil
}
func (m *mockCampaignService) Create(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, form, organizerID, organizerRole)
	}
	return nil, nil
}
func (m *mockCampaignService) Update(ctx context.Context, id string, form model.CampaignForm, actorID string, actorRole model.Role) (*model.Campaign, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, form, actorID, actorRole)
	}
	return nil, nil
}
func (m *mockCampaignService) UpdateStatus(ctx context.Context, id, status, actorID string, actorRole model.Role) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status, actorID, actorRole)
	}
	return nil
}
func (m *mockCampaignService) Delete(ctx context.Context, id, actorID string, actorRole model.Role) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id, actorID, actorRole)
	}
	return nil
}
func (m *mockCampaignService) ListUpdates(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error) {
	if m.listUpdatesFunc != nil {
		return m.listUpdatesFunc(ctx, campaignID)
	}
	return nil, nil
}
func (m *mockCampaignService) CreateUpdate(ctx context.Context, campaignID, content, imageURL, actorID string, actorRole model.Role) (*model.CampaignUpdate, error) {
	if m.createUpdateFunc != nil {
		return m.createUpdateFunc(ctx, campaignID, content, imageURL, actorID, actorRole)
	}
	return nil, nil
}
func (m *mockCampaignService) SetImageURL(ctx context.Context, id, imageURL, actorID string, actorRole model.Role) error {
	if m.setImageURLFunc != nil {
		return m.setImageURLFunc(ctx, id, imageURL, actorID, actorRole)
	}
	return nil
}

// ---------------------------------------------------------------------------
// List / Get tests
// ---------------------------------------------------------------------------

func TestCampaignList_PassesQueryFilters(t *testing.T) {
	var got model.CampaignFilters
	mock := &mockCampaignService{
		listFunc: func(ctx context.Context, filters model.CampaignFilters) ([]*model.Campaign, error) {
			got = filters
			return []*model.Campaign{{ID: "c1", Title: "Aide d'urgence"}}, nil
		},
	}
	h := NewCampaignHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns?category=emergency&status=urgent&search=flood", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := model.CampaignFilters{Category: "emergency", Status: "urgent", Search: "flood"}
	if got != want {
		t.Errorf("filters = %+v, want %+v", got, want)
	}
}

func TestCampaignList_NilBecomesEmptyArray(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var resp struct {
		Campaigns []*model.Campaign `json:"campaigns"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Campaigns == nil {
		t.Error("expected [] in response, got null")
	}
}

func TestCampaignGet_NotFound(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestCampaignGet_IncludesDerivedFigures(t *testing.T) {
	mock := &mockCampaignService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Campaign, error) {
			return &model.Campaign{ID: id, Title: "Recherche", Target: 1000,
				Raised: 250.5, DonorsCount: 4,
				EndDate: time.Now().Add(24 * time.Hour)}, nil
		},
	}
	h := NewCampaignHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/c1", nil)
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	var resp struct {
		Campaign *model.Campaign `json:"campaign"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Campaign.Raised != 250.5 || resp.Campaign.DonorsCount != 4 {
		t.Errorf("raised/donors = %v/%d, want 250.5/4", resp.Campaign.Raised, resp.Campaign.DonorsCount)
	}
}

// ---------------------------------------------------------------------------
// Create / Update / Delete tests
// ---------------------------------------------------------------------------

func TestCampaignCreate_RequiresAuth(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignService{})

	req := httptest.NewRequest(http.MethodPost, "/api/campaigns", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestCampaignCreate_DonatorForbidden(t *testing.T) {
	mock := &mockCampaignService{
		createFunc: func(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error) {
			return nil, service.ErrForbidden
		},
	}
	h := NewCampaignHandler(mock)

	req := authRequest(http.MethodPost, "/api/campaigns", `{"title":"x"}`, "donator")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestCampaignCreate_Success(t *testing.T) {
	mock := &mockCampaignService{
		createFunc: func(ctx context.Context, form model.CampaignForm, organizerID string, organizerRole model.Role) (*model.Campaign, error) {
			if organizerID != "user-1" || organizerRole != model.RoleCampaignManager {
				t.Errorf("Create actor = %q/%q", organizerID, organizerRole)
			}
			return &model.Campaign{ID: "c1", Title: form.Title, OrganizerID: organizerID,
				Status: model.StatusActive}, nil
		},
	}
	h := NewCampaignHandler(mock)

	body := `{"title":"Du matériel pour l'école","category":"equipment","target":500,"end_date":"2027-01-01T00:00:00Z"}`
	req := authRequest(http.MethodPost, "/api/campaigns", body, "campaign_manager")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCampaignCreate_InvalidJSON(t *testing.T) {
	h := NewCampaignHandler(&mockCampaignService{})

	req := authRequest(http.MethodPost, "/api/campaigns", `{broken`, "campaign_manager")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCampaignPatchStatus_ValidationRejected(t *testing.T) {
	mock := &mockCampaignService{
		updateStatusFunc: func(ctx context.Context, id, status, actorID string, actorRole model.Role) error {
			return fmt.Errorf("%w: unknown status %q", service.ErrValidation, status)
		},
	}
	h := NewCampaignHandler(mock)

	req := authRequest(http.MethodPatch, "/api/campaigns/c1/status", `{"status":"paused"}`, "campaign_manager")
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.PatchStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCampaignDelete_Forbidden(t *testing.T) {
	mock := &mockCampaignService{
		deleteFunc: func(ctx context.Context, id, actorID string, actorRole model.Role) error {
			return service.ErrForbidden
		},
	}
	h := NewCampaignHandler(mock)

	req := authRequest(http.MethodDelete, "/api/campaigns/c1", "", "campaign_manager")
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestCampaignDelete_Success(t *testing.T) {
	var deletedID string
	mock := &mockCampaignService{
		deleteFunc: func(ctx context.Context, id, actorID string, actorRole model.Role) error {
			deletedID = id
			return nil
		},
	}
	h := NewCampaignHandler(mock)

	req := authRequest(http.MethodDelete, "/api/campaigns/c1", "", "admin")
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if deletedID != "c1" {
		t.Errorf("deleted id = %q, want c1", deletedID)
	}
}

// ---------------------------------------------------------------------------
// Campaign update tests
// ---------------------------------------------------------------------------

func TestCampaignCreateUpdate_Success(t *testing.T) {
	mock := &mockCampaignService{
		createUpdateFunc: func(ctx context.Context, campaignID, content, imageURL, actorID string, actorRole model.Role) (*model.CampaignUpdate, error) {
			return &model.CampaignUpdate{ID: "u1", CampaignID: campaignID, Content: content}, nil
		},
	}
	h := NewCampaignHandler(mock)

	req := authRequest(http.MethodPost, "/api/campaigns/c1/updates", `{"content":"Merci à tous !"}`, "campaign_manager")
	req.SetPathValue("id", "c1")
	rec := httptest.NewRecorder()
	h.CreateUpdate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp struct {
		Update *model.CampaignUpdate `json:"update"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Update.Content != "Merci à tous !" {
		t.Errorf("content = %q", resp.Update.Content)
	}
}

func TestCampaignListUpdates_UnknownCampaign(t *testing.T) {
	mock := &mockCampaignService{
		listUpdatesFunc: func(ctx context.Context, campaignID string) ([]*model.CampaignUpdate, error) {
			return nil, repository.ErrNotFound
		},
	}
	h := NewCampaignHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/campaigns/missing/updates", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.ListUpdates(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
