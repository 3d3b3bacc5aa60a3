package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/shift"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
}

func NewShiftService(shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{ShiftRepository: shiftRepo}
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

// Create implements shift.ShiftService. Time fields are validated strictly
// here; only already-stored values get the lenient parse.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	created, err := s.ShiftRepository.Create(ctx, shift.Shift{
		OrganizationID:        organizationID,
		Name:                  req.Name,
		Category:              category,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		GraceBeforeMinutes:    req.GraceBeforeMinutes,
		GraceAfterMinutes:     req.GraceAfterMinutes,
		PresenceTimeSeconds:   req.PresenceTimeSeconds,
		PresenceCount:         req.PresenceCount,
		PresenceWindowSeconds: req.PresenceWindowSeconds,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return mapShiftToResponse(created), nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.ShiftResponse, error) {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	found, err := s.ShiftRepository.GetByID(ctx, id, organizationID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	return mapShiftToResponse(found), nil
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context) ([]shift.ShiftResponse, error) {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.ShiftRepository.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}
	return responses, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	sh, err := s.ShiftRepository.GetByID(ctx, req.ID, organizationID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if req.Name != nil {
		sh.Name = *req.Name
	}
	if req.Category != nil {
		sh.Category = *req.Category
	}
	if req.StartTime != nil {
		sh.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		sh.EndTime = *req.EndTime
	}
	if req.GraceBeforeMinutes != nil {
		sh.GraceBeforeMinutes = *req.GraceBeforeMinutes
	}
	if req.GraceAfterMinutes != nil {
		sh.GraceAfterMinutes = *req.GraceAfterMinutes
	}
	if req.PresenceTimeSeconds != nil {
		sh.PresenceTimeSeconds = *req.PresenceTimeSeconds
	}
	if req.PresenceCount != nil {
		sh.PresenceCount = *req.PresenceCount
	}
	if req.PresenceWindowSeconds != nil {
		sh.PresenceWindowSeconds = *req.PresenceWindowSeconds
	}

	if err := s.ShiftRepository.Update(ctx, sh); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return mapShiftToResponse(sh), nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	organizationID, err := organizationIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.ShiftRepository.Delete(ctx, id, organizationID)
}

func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                    sh.ID,
		Name:                  sh.Name,
		Category:              sh.Category,
		StartTime:             sh.StartTime,
		EndTime:               sh.EndTime,
		GraceBeforeMinutes:    sh.GraceBeforeMinutes,
		GraceAfterMinutes:     sh.GraceAfterMinutes,
		PresenceTimeSeconds:   sh.PresenceTimeSeconds,
		PresenceCount:         sh.PresenceCount,
		PresenceWindowSeconds: sh.PresenceWindowSeconds,
		CreatedAt:             sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:             sh.UpdatedAt.Format(time.RFC3339),
	}
}
