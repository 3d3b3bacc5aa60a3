package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/presence"
	"github.com/ashishu703/facial-attendence-backend/internal/handler/http/response"
	"github.com/ashishu703/facial-attendence-backend/internal/pkg/validator"
)

type PresenceHandler interface {
	RecordDetection(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	presenceService presence.Service
}

func NewPresenceHandler(presenceService presence.Service) PresenceHandler {
	return &presenceHandlerImpl{presenceService: presenceService}
}

type recordDetectionRequest struct {
	EmployeeID string `json:"employee_id"`
	// DetectedAt is RFC3339; empty means "now".
	DetectedAt string `json:"detected_at"`
}

// RecordDetection implements PresenceHandler. The recognition capability
// streams one of these per matched frame while an employee is in front of
// the camera.
func (h *presenceHandlerImpl) RecordDetection(w http.ResponseWriter, r *http.Request) {
	var req recordDetectionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if validator.IsEmpty(req.EmployeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	at := time.Now().UTC()
	if req.DetectedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.DetectedAt)
		if err != nil {
			response.BadRequest(w, "detected_at must be RFC3339", nil)
			return
		}
		at = parsed.UTC()
	}

	if err := h.presenceService.RecordDetection(r.Context(), req.EmployeeID, at); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Detection recorded", nil)
}
