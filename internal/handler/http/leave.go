package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/auth"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/response"
	leaveservice "github.com/zenithhr/hrms-backend-go/internal/service/leave"
)

type LeaveHandler struct {
	leaveService   *leaveservice.Service
	requestService *leaveservice.RequestService
	accrualService *leaveservice.AccrualService
}

func NewLeaveHandler(
	leaveService *leaveservice.Service,
	requestService *leaveservice.RequestService,
	accrualService *leaveservice.AccrualService,
) *LeaveHandler {
	return &LeaveHandler{
		leaveService:   leaveService,
		requestService: requestService,
		accrualService: accrualService,
	}
}

// Leave types

func (h *LeaveHandler) CreateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *LeaveHandler) GetLeaveType(w http.ResponseWriter, r *http.Request) {
	leaveType, err := h.leaveService.GetLeaveType(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leaveType)
}

func (h *LeaveHandler) ListLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListLeaveTypes(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, types)
}

func (h *LeaveHandler) UpdateLeaveType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := h.leaveService.UpdateLeaveType(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated", nil)
}

func (h *LeaveHandler) DeleteLeaveType(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeleteLeaveType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

// Accrual rules

func (h *LeaveHandler) SetAccrualRule(w http.ResponseWriter, r *http.Request) {
	var req leave.SetAccrualRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LeaveTypeID = chi.URLParam(r, "id")

	rule, err := h.leaveService.SetAccrualRule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rule)
}

func (h *LeaveHandler) GetAccrualRule(w http.ResponseWriter, r *http.Request) {
	rule, err := h.leaveService.GetAccrualRule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rule)
}

func (h *LeaveHandler) DeleteAccrualRule(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DeleteAccrualRule(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Accrual rule deleted", nil)
}

// Balances

func (h *LeaveHandler) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	balances, err := h.leaveService.GetBalances(r.Context(), *identity.EmployeeID, yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

func (h *LeaveHandler) GetEmployeeBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.leaveService.GetBalances(r.Context(), chi.URLParam(r, "id"), yearParam(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// Requests

func (h *LeaveHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = *identity.EmployeeID

	created, err := h.requestService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, created)
}

func (h *LeaveHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	request, steps, err := h.requestService.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"request":  request,
		"workflow": steps,
	})
}

func (h *LeaveHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	requests, err := h.requestService.ListByEmployee(r.Context(), *identity.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *LeaveHandler) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *LeaveHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	if err := h.requestService.Approve(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved", nil)
}

func (h *LeaveHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeDecision(w, r)
	if !ok {
		return
	}

	if err := h.requestService.Reject(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", nil)
}

func (h *LeaveHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return
	}

	if err := h.requestService.Cancel(r.Context(), chi.URLParam(r, "id"), *identity.EmployeeID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// Accrual runs

func (h *LeaveHandler) RunAccrual(w http.ResponseWriter, r *http.Request) {
	var req leave.RunAccrualRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	periodStart, _ := time.Parse("2006-01-02", req.PeriodStart)
	periodEnd, _ := time.Parse("2006-01-02", req.PeriodEnd)

	report, err := h.accrualService.RunAccrualForPeriod(r.Context(), periodStart, periodEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"employees_credited": report.EmployeesCredited,
		"days_credited":      report.DaysCredited,
		"skipped":            report.Skipped,
		"errors":             report.Errors,
	})
}

func (h *LeaveHandler) decodeDecision(w http.ResponseWriter, r *http.Request) (leave.DecideRequestRequest, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return leave.DecideRequestRequest{}, false
	}

	var req leave.DecideRequestRequest
	// Decision body is optional; comments only.
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = identity.UserID
	return req, true
}

func yearParam(r *http.Request) int {
	if raw := r.URL.Query().Get("year"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil {
			return year
		}
	}
	return time.Now().Year()
}
