package leave

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
	"github.com/zenithhr/hrms-backend-go/internal/repository/postgresql"
)

// Service handles leave type and accrual rule administration plus balance
// reads. Balance writes live in BalanceReconciler only.
type Service struct {
	typeRepo    leave.LeaveTypeRepository
	ruleRepo    leave.AccrualRuleRepository
	balanceRepo leave.LeaveBalanceRepository
	tx          transactionFunc
}

func NewService(
	typeRepo leave.LeaveTypeRepository,
	ruleRepo leave.AccrualRuleRepository,
	balanceRepo leave.LeaveBalanceRepository,
	db *database.DB,
) *Service {
	return &Service{
		typeRepo:    typeRepo,
		ruleRepo:    ruleRepo,
		balanceRepo: balanceRepo,
		tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
	}
}

// CreateLeaveType registers a new leave type, active by default.
func (s *Service) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	return s.typeRepo.Create(ctx, leave.LeaveType{
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		DaysAllowed:   decimal.NewFromFloat(req.DaysAllowed),
		CarryForward:  req.CarryForward,
		SalaryPayable: req.SalaryPayable,
		IsActive:      true,
	})
}

func (s *Service) GetLeaveType(ctx context.Context, id string) (leave.LeaveType, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *Service) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.typeRepo.List(ctx)
}

func (s *Service) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.typeRepo.Update(ctx, req)
}

// DeleteLeaveType soft-deletes the type along with its accrual rule. Existing
// balances and request history stay untouched.
func (s *Service) DeleteLeaveType(ctx context.Context, id string) error {
	return s.tx(ctx, func(txCtx context.Context) error {
		rule, err := s.ruleRepo.GetActiveByLeaveType(txCtx, id)
		if err == nil {
			if err := s.ruleRepo.SoftDelete(txCtx, rule.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, leave.ErrRuleNotFound) {
			return err
		}
		return s.typeRepo.SoftDelete(txCtx, id)
	})
}

// SetAccrualRule replaces the leave type's accrual rule. The old rule is
// soft-deleted and a fresh row inserted in one transaction, keeping at most
// one active rule per type and a full history of past rules.
func (s *Service) SetAccrualRule(ctx context.Context, req leave.SetAccrualRuleRequest) (leave.AccrualRule, error) {
	if err := req.Validate(); err != nil {
		return leave.AccrualRule{}, err
	}

	if _, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.AccrualRule{}, err
	}

	newRule := leave.AccrualRule{
		LeaveTypeID:         req.LeaveTypeID,
		RuleType:            leave.RuleType(req.RuleType),
		AccrualValue:        decimal.NewFromFloat(req.AccrualValue),
		FrequencyDays:       req.FrequencyDays,
		FrequencyMonths:     req.FrequencyMonths,
		ApplicableAfterDays: req.ApplicableAfterDays,
		ApplyToProbation:    req.ApplyToProbation,
		MinWorkingDays:      req.MinWorkingDays,
		CustomConditions:    req.CustomConditions,
		Notes:               req.Notes,
	}
	if req.MaxDaysPerYear != nil {
		v := decimal.NewFromFloat(*req.MaxDaysPerYear)
		newRule.MaxDaysPerYear = &v
	}
	if req.MinAttendanceRequired != nil {
		v := decimal.NewFromFloat(*req.MinAttendanceRequired)
		newRule.MinAttendanceRequired = &v
	}

	err := s.tx(ctx, func(txCtx context.Context) error {
		existing, err := s.ruleRepo.GetActiveByLeaveType(txCtx, req.LeaveTypeID)
		if err == nil {
			if err := s.ruleRepo.SoftDelete(txCtx, existing.ID); err != nil {
				return err
			}
		} else if !errors.Is(err, leave.ErrRuleNotFound) {
			return err
		}

		newRule, err = s.ruleRepo.Create(txCtx, newRule)
		return err
	})
	if err != nil {
		return leave.AccrualRule{}, err
	}
	return newRule, nil
}

// GetAccrualRule resolves the active rule for a leave type.
func (s *Service) GetAccrualRule(ctx context.Context, leaveTypeID string) (leave.AccrualRule, error) {
	return s.ruleRepo.GetActiveByLeaveType(ctx, leaveTypeID)
}

// DeleteAccrualRule removes the active rule, stopping accrual for the type.
func (s *Service) DeleteAccrualRule(ctx context.Context, leaveTypeID string) error {
	rule, err := s.ruleRepo.GetActiveByLeaveType(ctx, leaveTypeID)
	if err != nil {
		return err
	}
	return s.ruleRepo.SoftDelete(ctx, rule.ID)
}

// GetBalances returns an employee's balances for a year.
func (s *Service) GetBalances(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	return s.balanceRepo.GetByEmployeeYear(ctx, employeeID, year)
}
