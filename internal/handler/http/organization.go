package http

import (
	"encoding/json"
	"net/http"

	"github.com/ashishu703/facial-attendence-backend/internal/domain/organization"
	"github.com/ashishu703/facial-attendence-backend/internal/handler/http/response"
)

type OrganizationHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type organizationHandlerImpl struct {
	organizationService organization.OrganizationService
}

func NewOrganizationHandler(organizationService organization.OrganizationService) OrganizationHandler {
	return &organizationHandlerImpl{organizationService: organizationService}
}

// Register implements OrganizationHandler.
func (h *organizationHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req organization.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Organization registered", result)
}

// Get implements OrganizationHandler.
func (h *organizationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.organizationService.Get(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements OrganizationHandler.
func (h *organizationHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req organization.UpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.organizationService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization updated", result)
}

// Delete implements OrganizationHandler.
func (h *organizationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.organizationService.Delete(r.Context()); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Organization deleted", nil)
}
