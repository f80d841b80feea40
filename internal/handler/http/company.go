package http

import (
	"encoding/json"
	"net/http"

	"github.com/zenithhr/hrms-backend-go/internal/domain/company"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/response"
	companyservice "github.com/zenithhr/hrms-backend-go/internal/service/company"
)

type CompanyHandler struct {
	companyService *companyservice.Service
}

func NewCompanyHandler(companyService *companyservice.Service) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

func (h *CompanyHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.companyService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

func (h *CompanyHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.companyService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

func (h *CompanyHandler) GetSMTPSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.companyService.GetSMTPSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}

func (h *CompanyHandler) UpdateSMTPSettings(w http.ResponseWriter, r *http.Request) {
	var req company.UpdateSMTPSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.companyService.UpdateSMTPSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, settings)
}
