package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/auth"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/zenithhr/hrms-backend-go/internal/handler/http/response"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/validator"
	attendanceservice "github.com/zenithhr/hrms-backend-go/internal/service/attendance"
)

type AttendanceHandler struct {
	attendanceService *attendanceservice.Service
}

func NewAttendanceHandler(attendanceService *attendanceservice.Service) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark records attendance for an employee on a date. HR use; self-service
// goes through ClockIn and ClockOut.
func (h *AttendanceHandler) Mark(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeID string  `json:"employee_id"`
		Date       string  `json:"date"`
		Status     string  `json:"status"`
		Notes      *string `json:"notes,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}
	switch attendance.Status(req.Status) {
	case attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusHalfDay,
		attendance.StatusHoliday, attendance.StatusLeave:
	default:
		response.BadRequest(w, "status is invalid", nil)
		return
	}

	marked, err := h.attendanceService.Mark(r.Context(), attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
		Notes:      req.Notes,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, marked)
}

func (h *AttendanceHandler) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}

	marked, err := h.attendanceService.ClockIn(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, marked)
}

func (h *AttendanceHandler) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}

	marked, err := h.attendanceService.ClockOut(r.Context(), employeeID, time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, marked)
}

func (h *AttendanceHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := h.callerEmployeeID(w, r)
	if !ok {
		return
	}
	h.list(w, r, employeeID)
}

func (h *AttendanceHandler) ListByEmployee(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, chi.URLParam(r, "id"))
}

func (h *AttendanceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}

	stats, err := h.attendanceService.Stats(r.Context(), chi.URLParam(r, "id"), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

func (h *AttendanceHandler) list(w http.ResponseWriter, r *http.Request, employeeID string) {
	from, to, ok := rangeParams(w, r)
	if !ok {
		return
	}

	records, err := h.attendanceService.ListByEmployee(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, records)
}

func (h *AttendanceHandler) callerEmployeeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return "", false
	}
	if identity.EmployeeID == nil {
		response.HandleError(w, employee.ErrEmployeeNotFound)
		return "", false
	}
	return *identity.EmployeeID, true
}

// rangeParams parses from/to query dates, defaulting to the current month.
func rangeParams(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
			return time.Time{}, time.Time{}, false
		}
		to = parsed
	}
	return from, to, true
}
