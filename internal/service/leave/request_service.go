package leave

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/database"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/email"
	"github.com/zenithhr/hrms-backend-go/internal/repository/postgresql"
)

// RequestService owns the leave request lifecycle: submission, the multi-level
// approval workflow, cancellation. The balance is debited exactly once, inside
// the transaction that records the final approval.
type RequestService struct {
	requestRepo  leave.LeaveRequestRepository
	workflowRepo leave.ApprovalWorkflowRepository
	typeRepo     leave.LeaveTypeRepository
	balanceRepo  leave.LeaveBalanceRepository
	employeeRepo employee.EmployeeRepository
	userRepo     user.UserRepository

	reconciler *BalanceReconciler
	tx         transactionFunc
	emailSvc   email.EmailService
}

// transactionFunc runs fn atomically. Production wiring backs it with a
// database transaction; tests substitute a pass-through.
type transactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error

func NewRequestService(
	requestRepo leave.LeaveRequestRepository,
	workflowRepo leave.ApprovalWorkflowRepository,
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	reconciler *BalanceReconciler,
	db *database.DB,
	emailSvc email.EmailService,
) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		workflowRepo: workflowRepo,
		typeRepo:     typeRepo,
		balanceRepo:  balanceRepo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		reconciler:   reconciler,
		tx: func(ctx context.Context, fn func(ctx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		emailSvc: emailSvc,
	}
}

// CreateRequest validates and submits a leave request, opening its approval
// workflow. The balance check here is advisory only; nothing is debited until
// final approval, where the guarded update re-checks atomically.
func (s *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	leaveType, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !leaveType.IsActive {
		return leave.LeaveRequest{}, leave.ErrLeaveTypeInactive
	}

	overlapping, err := s.requestRepo.HasOverlapping(ctx, req.EmployeeID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if overlapping {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	var halfDay *leave.HalfDayType
	if req.HalfDayType != nil {
		h := leave.HalfDayType(*req.HalfDayType)
		halfDay = &h
	}
	totalDays := leave.TotalDaysFor(startDate, endDate, halfDay)

	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, startDate.Year())
	if err != nil {
		if errors.Is(err, leave.ErrBalanceNotFound) {
			return leave.LeaveRequest{}, leave.ErrInsufficientBalance
		}
		return leave.LeaveRequest{}, err
	}
	if balance.RemainingDays.LessThan(totalDays) {
		return leave.LeaveRequest{}, leave.ErrInsufficientBalance
	}

	approvers, err := s.workflowRepo.GetApproverChain(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var created leave.LeaveRequest
	err = s.tx(ctx, func(txCtx context.Context) error {
		created, err = s.requestRepo.Create(txCtx, leave.LeaveRequest{
			EmployeeID:       req.EmployeeID,
			LeaveTypeID:      req.LeaveTypeID,
			StartDate:        startDate,
			EndDate:          endDate,
			HalfDayType:      halfDay,
			TotalDays:        totalDays,
			Reason:           req.Reason,
			EmergencyContact: req.EmergencyContact,
			Status:           leave.LeaveStatusPending,
		})
		if err != nil {
			return err
		}

		steps := make([]leave.ApprovalStep, 0, len(approvers))
		for i, approverID := range approvers {
			steps = append(steps, leave.ApprovalStep{
				LeaveRequestID: created.ID,
				Level:          i + 1,
				ApproverID:     approverID,
				Status:         leave.ApprovalStatusPending,
			})
		}
		return s.workflowRepo.CreateSteps(txCtx, steps)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notifyFirstApprover(ctx, created, leaveType, approvers)

	return created, nil
}

// Approve records one approver's sign-off. Intermediate approvals only
// advance the workflow; the final level's approval debits the balance and
// moves the request to approved, both inside one transaction.
func (s *RequestService) Approve(ctx context.Context, req leave.DecideRequestRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	request, step, err := s.pendingStepFor(ctx, req.RequestID, req.ApproverID)
	if err != nil {
		return err
	}

	steps, err := s.workflowRepo.GetByRequest(ctx, req.RequestID)
	if err != nil {
		return err
	}
	finalLevel := step.Level == len(steps)

	now := time.Now()
	err = s.tx(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.UpdateStep(txCtx, step.ID, leave.ApprovalStatusApproved, now, req.Comments); err != nil {
			return err
		}
		if !finalLevel {
			return nil
		}

		if err := s.reconciler.ApplyDebit(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(txCtx, leave.UpdateLeaveRequestStatusRequest{
			ID:         request.ID,
			Status:     leave.LeaveStatusApproved,
			ApprovedBy: &req.ApproverID,
			ApprovedAt: &now,
		})
	})
	if err != nil {
		return err
	}

	if finalLevel {
		s.notifyDecision(ctx, request, "approved", req.Comments)
	}
	return nil
}

// Reject declines the request at the approver's level. Any level may reject;
// a rejection is final for the whole request. Nothing was debited yet, so
// there is nothing to reverse.
func (s *RequestService) Reject(ctx context.Context, req leave.DecideRequestRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	request, step, err := s.pendingStepFor(ctx, req.RequestID, req.ApproverID)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.tx(ctx, func(txCtx context.Context) error {
		if err := s.workflowRepo.UpdateStep(txCtx, step.ID, leave.ApprovalStatusRejected, now, req.Comments); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(txCtx, leave.UpdateLeaveRequestStatusRequest{
			ID:              request.ID,
			Status:          leave.LeaveStatusRejected,
			RejectionReason: req.Reason,
		})
	})
	if err != nil {
		return err
	}

	s.notifyDecision(ctx, request, "rejected", req.Reason)
	return nil
}

// Cancel withdraws the employee's own request. Cancelling an approved request
// returns its days to the balance; a pending one just closes.
func (s *RequestService) Cancel(ctx context.Context, requestID, employeeID string) error {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.EmployeeID != employeeID {
		return leave.ErrLeaveRequestNotFound
	}
	if request.Status.IsTerminal() {
		return leave.ErrLeaveAlreadyProcessed
	}

	return s.tx(ctx, func(txCtx context.Context) error {
		if request.Status == leave.LeaveStatusApproved {
			if err := s.reconciler.ReverseDebit(txCtx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year(), request.TotalDays); err != nil {
				return err
			}
		}
		return s.requestRepo.UpdateStatus(txCtx, leave.UpdateLeaveRequestStatusRequest{
			ID:     request.ID,
			Status: leave.LeaveStatusCancelled,
		})
	})
}

// GetRequest returns one request with its workflow steps.
func (s *RequestService) GetRequest(ctx context.Context, id string) (leave.LeaveRequest, []leave.ApprovalStep, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	steps, err := s.workflowRepo.GetByRequest(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, nil, err
	}
	return request, steps, nil
}

// ListByEmployee returns the employee's request history.
func (s *RequestService) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	return s.requestRepo.ListByEmployee(ctx, employeeID)
}

// ListPending returns all requests awaiting a decision.
func (s *RequestService) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	return s.requestRepo.ListByStatus(ctx, leave.LeaveStatusPending)
}

// pendingStepFor loads the request and resolves the workflow step the given
// approver must decide: the lowest pending level. Deciding out of order or
// on someone else's level fails with ErrNotAnApprover.
func (s *RequestService) pendingStepFor(ctx context.Context, requestID, approverID string) (leave.LeaveRequest, leave.ApprovalStep, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, leave.ApprovalStep{}, err
	}
	if request.Status != leave.LeaveStatusPending {
		return leave.LeaveRequest{}, leave.ApprovalStep{}, leave.ErrLeaveAlreadyProcessed
	}

	steps, err := s.workflowRepo.GetByRequest(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, leave.ApprovalStep{}, err
	}

	for _, step := range steps {
		if step.Status != leave.ApprovalStatusPending {
			continue
		}
		if step.ApproverID != approverID {
			return leave.LeaveRequest{}, leave.ApprovalStep{}, leave.ErrNotAnApprover
		}
		return request, step, nil
	}

	return leave.LeaveRequest{}, leave.ApprovalStep{}, leave.ErrLeaveAlreadyProcessed
}

func (s *RequestService) notifyFirstApprover(ctx context.Context, request leave.LeaveRequest, leaveType leave.LeaveType, approvers []string) {
	if s.emailSvc == nil || len(approvers) == 0 {
		return
	}

	approver, err := s.userRepo.GetByID(ctx, approvers[0])
	if err != nil {
		slog.Error("failed to load approver for notification", "approver_id", approvers[0], "error", err)
		return
	}
	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Error("failed to load employee for notification", "employee_id", request.EmployeeID, "error", err)
		return
	}

	if err := s.emailSvc.SendLeaveRequestSubmitted(
		approver.Email, approver.FullName, emp.FullName, leaveType.Name,
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"),
		request.TotalDays.String(),
	); err != nil {
		slog.Error("failed to send approval notification", "request_id", request.ID, "error", err)
	}
}

func (s *RequestService) notifyDecision(ctx context.Context, request leave.LeaveRequest, decision string, remarks *string) {
	if s.emailSvc == nil {
		return
	}

	emp, err := s.employeeRepo.GetByID(ctx, request.EmployeeID)
	if err != nil {
		slog.Error("failed to load employee for notification", "employee_id", request.EmployeeID, "error", err)
		return
	}

	typeName := ""
	if request.LeaveTypeName != nil {
		typeName = *request.LeaveTypeName
	}

	if err := s.emailSvc.SendLeaveDecision(
		emp.Email, emp.FullName, typeName,
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"),
		decision, remarks,
	); err != nil {
		slog.Error("failed to send decision notification", "request_id", request.ID, "error", err)
	}
}
