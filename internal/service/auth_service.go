package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xXAMIRAYA/PSynthese/internal/model"
)

// RegisterInput carries the sign-up form fields. Role may be donator or
// campaign_manager; admin is never self-assignable.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// GoogleUserInfo is the subset of the Google userinfo response we consume.
type GoogleUserInfo struct {
	Sub   string
	Email string
	Name  string
}

// AuthService provides registration, login and password-reset flows.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Profile, error)
	Login(ctx context.Context, email, password string) (*model.Profile, error)
	GetOrCreateFromGoogle(ctx context.Context, info *GoogleUserInfo) (*model.Profile, error)
	// RequestPasswordReset issues a reset token and mails it to the user.
	// It succeeds silently for unknown addresses to avoid account probing.
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

func validateRegister(in RegisterInput) (model.Role, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return "", fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(in.Password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	role, ok := model.ParseRole(in.Role)
	if !ok || role == model.RoleAdmin {
		return "", fmt.Errorf("%w: role must be donator or campaign_manager", ErrValidation)
	}
	return role, nil
}
