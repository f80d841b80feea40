package master

import (
	"context"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/domain/master/department"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/designation"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/holiday"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/payrollperiod"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/shift"
	"github.com/zenithhr/hrms-backend-go/internal/domain/master/workweek"
)

// Service bundles the master data catalogs: departments, designations,
// shifts, payroll periods, holidays, and work weeks.
type Service struct {
	departmentRepo    department.DepartmentRepository
	designationRepo   designation.DesignationRepository
	shiftRepo         shift.ShiftRepository
	payrollPeriodRepo payrollperiod.PayrollPeriodRepository
	holidayRepo       holiday.HolidayRepository
	workWeekRepo      workweek.WorkWeekRepository
}

func NewService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
	shiftRepo shift.ShiftRepository,
	payrollPeriodRepo payrollperiod.PayrollPeriodRepository,
	holidayRepo holiday.HolidayRepository,
	workWeekRepo workweek.WorkWeekRepository,
) *Service {
	return &Service{
		departmentRepo:    departmentRepo,
		designationRepo:   designationRepo,
		shiftRepo:         shiftRepo,
		payrollPeriodRepo: payrollPeriodRepo,
		holidayRepo:       holidayRepo,
		workWeekRepo:      workWeekRepo,
	}
}

// Departments

func (s *Service) CreateDepartment(ctx context.Context, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}
	return s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
}

func (s *Service) GetDepartment(ctx context.Context, id string) (department.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]department.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *Service) UpdateDepartment(ctx context.Context, req department.UpdateDepartmentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.departmentRepo.Update(ctx, req)
}

func (s *Service) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.SoftDelete(ctx, id)
}

// Designations

func (s *Service) CreateDesignation(ctx context.Context, req designation.CreateDesignationRequest) (designation.Designation, error) {
	if err := req.Validate(); err != nil {
		return designation.Designation{}, err
	}
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return designation.Designation{}, err
		}
	}
	return s.designationRepo.Create(ctx, designation.Designation{
		DepartmentID: req.DepartmentID,
		Title:        req.Title,
	})
}

func (s *Service) GetDesignation(ctx context.Context, id string) (designation.Designation, error) {
	return s.designationRepo.GetByID(ctx, id)
}

func (s *Service) ListDesignations(ctx context.Context) ([]designation.Designation, error) {
	return s.designationRepo.List(ctx)
}

func (s *Service) UpdateDesignation(ctx context.Context, req designation.UpdateDesignationRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.designationRepo.Update(ctx, req)
}

func (s *Service) DeleteDesignation(ctx context.Context, id string) error {
	return s.designationRepo.SoftDelete(ctx, id)
}

// Shifts

func (s *Service) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}
	return s.shiftRepo.Create(ctx, shift.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		IsNight:   req.IsNight,
	})
}

func (s *Service) GetShift(ctx context.Context, id string) (shift.Shift, error) {
	return s.shiftRepo.GetByID(ctx, id)
}

func (s *Service) ListShifts(ctx context.Context) ([]shift.Shift, error) {
	return s.shiftRepo.List(ctx)
}

func (s *Service) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.shiftRepo.Update(ctx, req)
}

func (s *Service) DeleteShift(ctx context.Context, id string) error {
	return s.shiftRepo.SoftDelete(ctx, id)
}

// Payroll periods

func (s *Service) CreatePayrollPeriod(ctx context.Context, req payrollperiod.CreatePayrollPeriodRequest) (payrollperiod.PayrollPeriod, error) {
	if err := req.Validate(); err != nil {
		return payrollperiod.PayrollPeriod{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	period := payrollperiod.PayrollPeriod{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    payrollperiod.StatusDraft,
	}
	if req.PayDate != nil {
		payDate, _ := time.Parse("2006-01-02", *req.PayDate)
		period.PayDate = &payDate
	}
	return s.payrollPeriodRepo.Create(ctx, period)
}

func (s *Service) GetPayrollPeriod(ctx context.Context, id string) (payrollperiod.PayrollPeriod, error) {
	return s.payrollPeriodRepo.GetByID(ctx, id)
}

func (s *Service) ListPayrollPeriods(ctx context.Context) ([]payrollperiod.PayrollPeriod, error) {
	return s.payrollPeriodRepo.List(ctx)
}

// UpdatePayrollPeriodStatus moves a period along draft, processed, confirmed.
// Illegal transitions surface as ErrInvalidStatusChange from the repository.
func (s *Service) UpdatePayrollPeriodStatus(ctx context.Context, id string, status payrollperiod.Status) error {
	switch status {
	case payrollperiod.StatusDraft, payrollperiod.StatusProcessed, payrollperiod.StatusConfirmed:
	default:
		return payrollperiod.ErrInvalidStatusChange
	}
	return s.payrollPeriodRepo.UpdateStatus(ctx, id, status)
}

func (s *Service) DeletePayrollPeriod(ctx context.Context, id string) error {
	return s.payrollPeriodRepo.SoftDelete(ctx, id)
}

// Holidays

// CreateHoliday stores a calendar entry. Year is derived from the start date,
// and an omitted type defaults to a company holiday.
func (s *Service) CreateHoliday(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	holidayType := holiday.Type(req.Type)
	if req.Type == "" {
		holidayType = holiday.TypeCompany
	}

	return s.holidayRepo.Create(ctx, holiday.Holiday{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		Type:        holidayType,
		Year:        startDate.Year(),
		IsActive:    true,
	})
}

func (s *Service) GetHoliday(ctx context.Context, id string) (holiday.Holiday, error) {
	return s.holidayRepo.GetByID(ctx, id)
}

func (s *Service) ListHolidays(ctx context.Context, year int) ([]holiday.Holiday, error) {
	return s.holidayRepo.ListByYear(ctx, year)
}

func (s *Service) UpdateHoliday(ctx context.Context, req holiday.UpdateHolidayRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.holidayRepo.Update(ctx, req)
}

func (s *Service) DeleteHoliday(ctx context.Context, id string) error {
	return s.holidayRepo.SoftDelete(ctx, id)
}

// Work weeks

func (s *Service) CreateWorkWeek(ctx context.Context, req workweek.CreateWorkWeekRequest) (workweek.WorkWeek, error) {
	if err := req.Validate(); err != nil {
		return workweek.WorkWeek{}, err
	}
	return s.workWeekRepo.Create(ctx, workweek.WorkWeek{
		Name:      req.Name,
		Monday:    req.Monday,
		Tuesday:   req.Tuesday,
		Wednesday: req.Wednesday,
		Thursday:  req.Thursday,
		Friday:    req.Friday,
		Saturday:  req.Saturday,
		Sunday:    req.Sunday,
		IsActive:  req.IsActive,
	})
}

func (s *Service) GetWorkWeek(ctx context.Context, id string) (workweek.WorkWeek, error) {
	return s.workWeekRepo.GetByID(ctx, id)
}

func (s *Service) ListWorkWeeks(ctx context.Context) ([]workweek.WorkWeek, error) {
	return s.workWeekRepo.List(ctx)
}

func (s *Service) UpdateWorkWeek(ctx context.Context, req workweek.UpdateWorkWeekRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.workWeekRepo.Update(ctx, req)
}

func (s *Service) DeleteWorkWeek(ctx context.Context, id string) error {
	return s.workWeekRepo.SoftDelete(ctx, id)
}
