package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xXAMIRAYA/PSynthese/internal/mailer"
	"github.com/xXAMIRAYA/PSynthese/internal/model"
	"github.com/xXAMIRAYA/PSynthese/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// authServiceImpl is the production implementation of AuthService.
type authServiceImpl struct {
	profiles    repository.ProfileRepository
	mailer      mailer.Mailer
	resetSecret []byte
	frontendURL string
}

// NewAuthService creates an AuthService. The reset secret signs password
// reset tokens; mailer may be a no-op in development.
func NewAuthService(profiles repository.ProfileRepository, m mailer.Mailer, resetSecret []byte, frontendURL string) AuthService {
	return &authServiceImpl{
		profiles:    profiles,
		mailer:      m,
		resetSecret: resetSecret,
		frontendURL: frontendURL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, in RegisterInput) (*model.Profile, error) {
	role, err := validateRegister(in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &model.Profile{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return p, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	p, err := s.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if p.IsSuspended() {
		return nil, ErrSuspended
	}
	// OAuth-only accounts have no password hash.
	if p.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

func (s *authServiceImpl) GetOrCreateFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.Profile, error) {
	p, err := s.profiles.FindByGoogleID(ctx, info.Sub)
	if err == nil {
		if p.IsSuspended() {
			return nil, ErrSuspended
		}
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// Link by email if the user registered with a password first.
	p, err = s.profiles.FindByEmail(ctx, strings.ToLower(info.Email))
	if err == nil {
		if p.IsSuspended() {
			return nil, ErrSuspended
		}
		if err := s.profiles.UpdateGoogleID(ctx, p.ID, info.Sub); err != nil {
			return nil, err
		}
		p.GoogleID = info.Sub
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	p = &model.Profile{
		Name:     info.Name,
		Email:    strings.ToLower(info.Email),
		GoogleID: info.Sub,
		Role:     model.RoleDonator,
	}
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

const resetTokenPurpose = "password_reset"

func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	p, err := s.profiles.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Do not reveal whether the address exists.
			return nil
		}
		return err
	}

	claims := jwt.MapClaims{
		"sub":     p.ID,
		"purpose": resetTokenPurpose,
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.resetSecret)
	if err != nil {
		return fmt.Errorf("sign reset token: %w", err)
	}

	link := s.frontendURL + "/reset-password?token=" + token
	body := fmt.Sprintf(
		`<p>Bonjour %s,</p><p>Pour réinitialiser votre mot de passe, cliquez sur le lien ci-dessous (valable 1 heure) :</p><p><a href="%s">Réinitialiser mon mot de passe</a></p>`,
		p.Name, link)

	if err := s.mailer.Send(ctx, p.Email, "Réinitialisation de votre mot de passe", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	slog.Info("password reset requested", "user_id", p.ID)
	return nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.resetSecret, nil
	})
	if err != nil || !parsed.Valid {
		return fmt.Errorf("%w: invalid or expired reset token", ErrValidation)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != resetTokenPurpose {
		return fmt.Errorf("%w: invalid reset token", ErrValidation)
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return fmt.Errorf("%w: invalid reset token", ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.profiles.UpdatePasswordHash(ctx, userID, string(hash))
}
