package shift

import (
	"context"

	"github.com/ashishu703/facial-attendence-backend/internal/pkg/timeparse"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name                  string `json:"name"`
	Category              string `json:"category"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	GraceBeforeMinutes    int    `json:"grace_before_minutes"`
	GraceAfterMinutes     int    `json:"grace_after_minutes"`
	PresenceTimeSeconds   int    `json:"presence_time_seconds"`
	PresenceCount         int    `json:"presence_count"`
	PresenceWindowSeconds int    `json:"presence_window_seconds"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if _, err := timeparse.Parse(r.StartTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a valid time of day",
		})
	}

	if _, err := timeparse.Parse(r.EndTime); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a valid time of day",
		})
	}

	if r.GraceBeforeMinutes < 0 || r.GraceAfterMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace periods must not be negative",
		})
	}

	if r.PresenceTimeSeconds < 0 || r.PresenceCount < 0 || r.PresenceWindowSeconds < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "presence_thresholds",
			Message: "presence thresholds must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateShiftRequest struct {
	ID                    string  `json:"-"`
	Name                  *string `json:"name"`
	Category              *string `json:"category"`
	StartTime             *string `json:"start_time"`
	EndTime               *string `json:"end_time"`
	GraceBeforeMinutes    *int    `json:"grace_before_minutes"`
	GraceAfterMinutes     *int    `json:"grace_after_minutes"`
	PresenceTimeSeconds   *int    `json:"presence_time_seconds"`
	PresenceCount         *int    `json:"presence_count"`
	PresenceWindowSeconds *int    `json:"presence_window_seconds"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil {
		if _, err := timeparse.Parse(*r.StartTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be a valid time of day",
			})
		}
	}
	if r.EndTime != nil {
		if _, err := timeparse.Parse(*r.EndTime); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be a valid time of day",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID                    string `json:"id"`
	Name                  string `json:"name"`
	Category              string `json:"category"`
	StartTime             string `json:"start_time"`
	EndTime               string `json:"end_time"`
	GraceBeforeMinutes    int    `json:"grace_before_minutes"`
	GraceAfterMinutes     int    `json:"grace_after_minutes"`
	PresenceTimeSeconds   int    `json:"presence_time_seconds"`
	PresenceCount         int    `json:"presence_count"`
	PresenceWindowSeconds int    `json:"presence_window_seconds"`
	CreatedAt             string `json:"created_at"`
	UpdatedAt             string `json:"updated_at"`
}

// ShiftService is the administrative CRUD surface for shifts.
type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	Get(ctx context.Context, id string) (ShiftResponse, error)
	List(ctx context.Context) ([]ShiftResponse, error)
	Update(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}
