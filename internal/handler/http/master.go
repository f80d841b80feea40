package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/department"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/designation"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/holiday"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/payrollperiod"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/shift"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/workweek"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/response"
	masterservice "github.com/zenithhr/hrms-backend-go/internal/service/master"
)

type MasterHandler struct {
	masterService *masterservice.Service
}

func NewMasterHandler(masterService *masterservice.Service) *MasterHandler {
	return &MasterHandler{masterService: masterService}
}

// Departments

func (h *MasterHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateDepartment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *MasterHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.masterService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, departments)
}

func (h *MasterHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	var req department.UpdateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.masterService.UpdateDepartment(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department updated", nil)
}

func (h *MasterHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDepartment(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Department deleted", nil)
}

// Designations

func (h *MasterHandler) CreateDesignation(w http.ResponseWriter, r *http.Request) {
	var req designation.CreateDesignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateDesignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *MasterHandler) ListDesignations(w http.ResponseWriter, r *http.Request) {
	designations, err := h.masterService.ListDesignations(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, designations)
}

func (h *MasterHandler) UpdateDesignation(w http.ResponseWriter, r *http.Request) {
	var req designation.UpdateDesignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.masterService.UpdateDesignation(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Designation updated", nil)
}

func (h *MasterHandler) DeleteDesignation(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteDesignation(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Designation deleted", nil)
}

// Shifts

func (h *MasterHandler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *MasterHandler) ListShifts(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.masterService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, shifts)
}

func (h *MasterHandler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.masterService.UpdateShift(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift updated", nil)
}

func (h *MasterHandler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteShift(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// Payroll periods

func (h *MasterHandler) CreatePayrollPeriod(w http.ResponseWriter, r *http.Request) {
	var req payrollperiod.CreatePayrollPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreatePayrollPeriod(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *MasterHandler) ListPayrollPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.masterService.ListPayrollPeriods(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, periods)
}

func (h *MasterHandler) UpdatePayrollPeriodStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	err := h.masterService.UpdatePayrollPeriodStatus(r.Context(), chi.URLParam(r, "id"), payrollperiod.Status(req.Status))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll period status updated", nil)
}

func (h *MasterHandler) DeletePayrollPeriod(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePayrollPeriod(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll period deleted", nil)
}

// Holidays

func (h *MasterHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

// ListHolidays returns the calendar for a year, defaulting to the current one.
func (h *MasterHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.masterService.ListHolidays(r.Context(), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, holidays)
}

func (h *MasterHandler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.UpdateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.masterService.UpdateHoliday(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday updated", nil)
}

func (h *MasterHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteHoliday(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Holiday deleted", nil)
}

// Work weeks

func (h *MasterHandler) CreateWorkWeek(w http.ResponseWriter, r *http.Request) {
	var req workweek.CreateWorkWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.masterService.CreateWorkWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *MasterHandler) ListWorkWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.masterService.ListWorkWeeks(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, weeks)
}

func (h *MasterHandler) UpdateWorkWeek(w http.ResponseWriter, r *http.Request) {
	var req workweek.UpdateWorkWeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.masterService.UpdateWorkWeek(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Work week updated", nil)
}

func (h *MasterHandler) DeleteWorkWeek(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteWorkWeek(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Work week deleted", nil)
}
