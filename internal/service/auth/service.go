package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/auth"
	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	organization.OrganizationRepository
	jwtService jwt.Service
}

func NewAuthService(orgRepo organization.OrganizationRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		OrganizationRepository: orgRepo,
		jwtService:             jwtService,
	}
}

// Login implements auth.AuthService. A wrong email and a wrong password
// produce the same error.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	org, err := a.OrganizationRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, organization.ErrOrganizationNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to look up organization: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(org.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(org.ID, org.Email)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
