package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

var testResetSecret = []byte("test-secret-test-secret-test-sec")

func newTestAuthService(profiles *mockProfileRepo, m *mockMailer) AuthService {
	return NewAuthService(profiles, m, testResetSecret, "http://localhost:5173")
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister_Succeeds(t *testing.T) {
	var created *model.Profile
	profiles := &mockProfileRepo{
		createFunc: func(ctx context.Context, p *model.Profile) error {
			p.ID = "u1"
			created = p
			return nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	p, err := svc.Register(context.Background(), RegisterInput{
		Name: " Marie ", Email: "Marie@Example.COM", Password: "longenough", Role: "donator",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if created == nil {
		t.Fatal("profile was not persisted")
	}
	if p.Name != "Marie" || p.Email != "marie@example.com" {
		t.Errorf("normalization failed: name=%q email=%q", p.Name, p.Email)
	}
	if p.PasswordHash == "" || p.PasswordHash == "longenough" {
		t.Error("password must be stored hashed")
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestAuthService(&mockProfileRepo{}, &mockMailer{})

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"blank name", RegisterInput{Name: " ", Email: "a@b.c", Password: "longenough", Role: "donator"}},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "longenough", Role: "donator"}},
		{"short password", RegisterInput{Name: "A", Email: "a@b.c", Password: "short", Role: "donator"}},
		{"unknown role", RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Role: "donateur"}},
		{"admin role", RegisterInput{Name: "A", Email: "a@b.c", Password: "longenough", Role: "admin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(context.Background(), tc.in); !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	profiles := &mockProfileRepo{
		createFunc: func(ctx context.Context, p *model.Profile) error { return repository.ErrDuplicate },
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Name: "A", Email: "a@b.c", Password: "longenough", Role: "donator",
	})
	if !errors.Is(err, ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func loginProfile(t *testing.T, password string) *model.Profile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &model.Profile{ID: "u1", Email: "a@b.c", PasswordHash: string(hash), Role: model.RoleDonator}
}

func TestLogin_Succeeds(t *testing.T) {
	stored := loginProfile(t, "correct-password")
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	p, err := svc.Login(context.Background(), "A@B.c", "correct-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if p.ID != "u1" {
		t.Errorf("ID = %q, want u1", p.ID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	stored := loginProfile(t, "correct-password")
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	if _, err := svc.Login(context.Background(), "a@b.c", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	if _, err := svc.Login(context.Background(), "ghost@b.c", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestLogin_Suspended(t *testing.T) {
	suspendedAt := time.Now()
	stored := loginProfile(t, "correct-password")
	stored.SuspendedAt = &suspendedAt
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	if _, err := svc.Login(context.Background(), "a@b.c", "correct-password"); !errors.Is(err, ErrSuspended) {
		t.Errorf("expected ErrSuspended, got %v", err)
	}
}

func TestLogin_OAuthOnlyAccount(t *testing.T) {
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return &model.Profile{ID: "u1", Email: email, GoogleID: "g1"}, nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	if _, err := svc.Login(context.Background(), "a@b.c", "anything"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("OAuth-only account must reject password login, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Google sign-in
// ---------------------------------------------------------------------------

func TestGoogle_LinksExistingEmailAccount(t *testing.T) {
	linked := false
	profiles := &mockProfileRepo{
		findByGoogleIDFunc: func(ctx context.Context, googleID string) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return &model.Profile{ID: "u1", Email: email, Role: model.RoleCampaignManager}, nil
		},
		updateGoogleIDFunc: func(ctx context.Context, id, googleID string) error {
			linked = true
			return nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	p, err := svc.GetOrCreateFromGoogle(context.Background(), &GoogleUserInfo{Sub: "g1", Email: "a@b.c", Name: "A"})
	if err != nil {
		t.Fatalf("GetOrCreateFromGoogle: %v", err)
	}
	if !linked {
		t.Error("existing account should have been linked to the Google ID")
	}
	if p.Role != model.RoleCampaignManager {
		t.Errorf("linking must not change the role, got %q", p.Role)
	}
}

func TestGoogle_CreatesDonatorForNewUser(t *testing.T) {
	var created *model.Profile
	profiles := &mockProfileRepo{
		findByGoogleIDFunc: func(ctx context.Context, googleID string) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(ctx context.Context, p *model.Profile) error {
			p.ID = "u-new"
			created = p
			return nil
		},
	}
	svc := newTestAuthService(profiles, &mockMailer{})

	p, err := svc.GetOrCreateFromGoogle(context.Background(), &GoogleUserInfo{Sub: "g1", Email: "New@B.c", Name: "New"})
	if err != nil {
		t.Fatalf("GetOrCreateFromGoogle: %v", err)
	}
	if created == nil || p.ID != "u-new" {
		t.Fatal("profile was not created")
	}
	if p.Role != model.RoleDonator {
		t.Errorf("new Google users default to donator, got %q", p.Role)
	}
	if p.Email != "new@b.c" {
		t.Errorf("email should be lowercased, got %q", p.Email)
	}
}

// ---------------------------------------------------------------------------
// Password reset
// ---------------------------------------------------------------------------

func TestPasswordReset_RoundTrip(t *testing.T) {
	mail := &mockMailer{}
	var newHash string
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return &model.Profile{ID: "u1", Email: email, Name: "Marie"}, nil
		},
		updatePasswordFunc: func(ctx context.Context, id, hash string) error {
			newHash = hash
			return nil
		},
	}
	svc := newTestAuthService(profiles, mail)

	if err := svc.RequestPasswordReset(context.Background(), "a@b.c"); err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(mail.sent))
	}

	// Pull the token out of the mailed link.
	body := mail.sent[0].body
	idx := strings.Index(body, "token=")
	if idx < 0 {
		t.Fatalf("no token in mail body: %s", body)
	}
	token := body[idx+len("token="):]
	token = token[:strings.IndexAny(token, `"`)]

	if err := svc.ResetPassword(context.Background(), token, "brand-new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if newHash == "" {
		t.Fatal("password hash was not updated")
	}
	if bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brand-new-password")) != nil {
		t.Error("stored hash does not match the new password")
	}
}

func TestPasswordReset_UnknownEmailSilent(t *testing.T) {
	mail := &mockMailer{}
	profiles := &mockProfileRepo{
		findByEmailFunc: func(ctx context.Context, email string) (*model.Profile, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := newTestAuthService(profiles, mail)

	if err := svc.RequestPasswordReset(context.Background(), "ghost@b.c"); err != nil {
		t.Errorf("unknown email must not error, got %v", err)
	}
	if len(mail.sent) != 0 {
		t.Errorf("no mail should be sent for unknown email")
	}
}

func TestResetPassword_BadToken(t *testing.T) {
	svc := newTestAuthService(&mockProfileRepo{}, &mockMailer{})

	if err := svc.ResetPassword(context.Background(), "not-a-jwt", "longenough"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if err := svc.ResetPassword(context.Background(), "", "short"); !errors.Is(err, ErrValidation) {
		t.Errorf("short password: expected ErrValidation, got %v", err)
	}
}
