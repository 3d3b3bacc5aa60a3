package organization

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
)

type OrganizationServiceImpl struct {
	organization.OrganizationRepository
}

func NewOrganizationService(orgRepo organization.OrganizationRepository) organization.OrganizationService {
	return &OrganizationServiceImpl{OrganizationRepository: orgRepo}
}

func organizationIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", fmt.Errorf("organization_id claim is missing or invalid")
	}
	return organizationID, nil
}

// Register implements organization.OrganizationService. Registration is the
// unauthenticated entry point that creates the tenant and its admin
// credential in one step.
func (o *OrganizationServiceImpl) Register(ctx context.Context, req organization.RegisterRequest) (organization.OrganizationResponse, error) {
	if err := req.Validate(); err != nil {
		return organization.OrganizationResponse{}, err
	}

	if _, err := o.OrganizationRepository.GetByEmail(ctx, req.Email); err == nil {
		return organization.OrganizationResponse{}, organization.ErrEmailExists
	} else if !errors.Is(err, organization.ErrOrganizationNotFound) {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := o.OrganizationRepository.Create(ctx, organization.Organization{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
	})
	if err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to create organization: %w", err)
	}

	return mapOrganizationToResponse(created), nil
}

// Get implements organization.OrganizationService.
func (o *OrganizationServiceImpl) Get(ctx context.Context) (organization.OrganizationResponse, error) {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := o.OrganizationRepository.GetByID(ctx, organizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	return mapOrganizationToResponse(org), nil
}

// Update implements organization.OrganizationService.
func (o *OrganizationServiceImpl) Update(ctx context.Context, req organization.UpdateRequest) (organization.OrganizationResponse, error) {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	org, err := o.OrganizationRepository.GetByID(ctx, organizationID)
	if err != nil {
		return organization.OrganizationResponse{}, err
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.Phone != nil {
		org.Phone = req.Phone
	}
	if req.Address != nil {
		org.Address = req.Address
	}

	if err := o.OrganizationRepository.Update(ctx, org); err != nil {
		return organization.OrganizationResponse{}, fmt.Errorf("failed to update organization: %w", err)
	}

	return mapOrganizationToResponse(org), nil
}

// Delete implements organization.OrganizationService. Employees, shifts and
// attendance rows cascade.
func (o *OrganizationServiceImpl) Delete(ctx context.Context) error {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return err
	}
	return o.OrganizationRepository.Delete(ctx, organizationID)
}

func mapOrganizationToResponse(org organization.Organization) organization.OrganizationResponse {
	return organization.OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Email:     org.Email,
		Phone:     org.Phone,
		Address:   org.Address,
		CreatedAt: org.CreatedAt.Format(time.RFC3339),
	}
}
