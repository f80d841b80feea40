package leave

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/domain/user"
)

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func days(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// fakeBalanceRepo mimics the guarded SQL updates of the real repository:
// version CAS on credits, remaining/used guards on debits and reversals.
type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[string]*leave.LeaveBalance // by id

	// injectConflicts makes the next n CreditAllocated calls fail with a
	// version conflict while still bumping the stored version.
	injectConflicts int
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.LeaveBalance)}
}

func (f *fakeBalanceRepo) seed(b leave.LeaveBalance) *leave.LeaveBalance {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Version == 0 {
		b.Version = 1
	}
	b.RemainingDays = b.AllocatedDays.Add(b.CarriedForward).Sub(b.UsedDays).Sub(b.EncashedDays)
	f.balances[b.ID] = &b
	return &b
}

func (f *fakeBalanceRepo) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	balance.ID = uuid.NewString()
	balance.Version = 1
	balance.RemainingDays = balance.AllocatedDays.Add(balance.CarriedForward).Sub(balance.UsedDays).Sub(balance.EncashedDays)
	balance.CreatedAt = time.Now()
	balance.UpdatedAt = balance.CreatedAt
	copied := balance
	f.balances[balance.ID] = &copied
	return balance, nil
}

func (f *fakeBalanceRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.LeaveTypeID == leaveTypeID && b.Year == year {
			return *b, nil
		}
	}
	return leave.LeaveBalance{}, leave.ErrBalanceNotFound
}

func (f *fakeBalanceRepo) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.LeaveBalance, 0)
	for _, b := range f.balances {
		if b.EmployeeID == employeeID && b.Year == year {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBalanceRepo) CreditAllocated(ctx context.Context, balanceID string, amount decimal.Decimal, expectedVersion int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if f.injectConflicts > 0 {
		f.injectConflicts--
		b.Version++
		return leave.ErrConcurrencyConflict
	}
	if b.Version != expectedVersion {
		return leave.ErrConcurrencyConflict
	}
	b.AllocatedDays = b.AllocatedDays.Add(amount)
	b.RemainingDays = b.RemainingDays.Add(amount)
	b.Version++
	return nil
}

func (f *fakeBalanceRepo) Debit(ctx context.Context, balanceID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.balances[balanceID]
	if !ok || b.RemainingDays.LessThan(amount) {
		return leave.ErrInsufficientBalance
	}
	b.UsedDays = b.UsedDays.Add(amount)
	b.RemainingDays = b.RemainingDays.Sub(amount)
	b.Version++
	return nil
}

func (f *fakeBalanceRepo) ReverseDebit(ctx context.Context, balanceID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.balances[balanceID]
	if !ok || b.UsedDays.LessThan(amount) {
		return leave.ErrInvariantViolation
	}
	b.UsedDays = b.UsedDays.Sub(amount)
	b.RemainingDays = b.RemainingDays.Add(amount)
	b.Version++
	return nil
}

func (f *fakeBalanceRepo) Encash(ctx context.Context, balanceID string, amount decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.balances[balanceID]
	if !ok || b.RemainingDays.LessThan(amount) {
		return leave.ErrInsufficientBalance
	}
	b.EncashedDays = b.EncashedDays.Add(amount)
	b.RemainingDays = b.RemainingDays.Sub(amount)
	b.Version++
	return nil
}

func (f *fakeBalanceRepo) get(id string) leave.LeaveBalance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.balances[id]
}

// fakeAttendanceRepo serves canned stats per employee.
type fakeAttendanceRepo struct {
	stats map[string]attendance.Stats
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{stats: make(map[string]attendance.Stats)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	return att, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetStats(ctx context.Context, employeeID string, from, to time.Time) (attendance.Stats, error) {
	return f.stats[employeeID], nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	return nil
}

type fakeRuleRepo struct {
	mu    sync.Mutex
	rules map[string]*leave.AccrualRule // by id
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*leave.AccrualRule)}
}

func (f *fakeRuleRepo) Create(ctx context.Context, rule leave.AccrualRule) (leave.AccrualRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rule.ID = uuid.NewString()
	copied := rule
	f.rules[rule.ID] = &copied
	return rule, nil
}

func (f *fakeRuleRepo) GetActiveByLeaveType(ctx context.Context, leaveTypeID string) (leave.AccrualRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rules {
		if r.LeaveTypeID == leaveTypeID && r.DeletedAt == nil {
			return *r, nil
		}
	}
	return leave.AccrualRule{}, leave.ErrRuleNotFound
}

func (f *fakeRuleRepo) ListActive(ctx context.Context) ([]leave.AccrualRule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.AccrualRule, 0)
	for _, r := range f.rules {
		if r.DeletedAt == nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) SoftDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rules[id]
	if !ok || r.DeletedAt != nil {
		return leave.ErrRuleNotFound
	}
	now := time.Now()
	r.DeletedAt = &now
	return nil
}

type fakeTypeRepo struct {
	mu    sync.Mutex
	types map[string]*leave.LeaveType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[string]*leave.LeaveType)}
}

func (f *fakeTypeRepo) Create(ctx context.Context, lt leave.LeaveType) (leave.LeaveType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lt.ID = uuid.NewString()
	copied := lt
	f.types[lt.ID] = &copied
	return lt, nil
}

func (f *fakeTypeRepo) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lt, ok := f.types[id]
	if !ok || lt.DeletedAt != nil {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return *lt, nil
}

func (f *fakeTypeRepo) List(ctx context.Context) ([]leave.LeaveType, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.LeaveType, 0)
	for _, lt := range f.types {
		if lt.DeletedAt == nil {
			out = append(out, *lt)
		}
	}
	return out, nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, req leave.UpdateLeaveTypeRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lt, ok := f.types[req.ID]
	if !ok || lt.DeletedAt != nil {
		return leave.ErrLeaveTypeNotFound
	}
	if req.Name != nil {
		lt.Name = *req.Name
	}
	if req.IsActive != nil {
		lt.IsActive = *req.IsActive
	}
	return nil
}

func (f *fakeTypeRepo) SoftDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lt, ok := f.types[id]
	if !ok || lt.DeletedAt != nil {
		return leave.ErrLeaveTypeNotFound
	}
	now := time.Now()
	lt.DeletedAt = &now
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	emp.ID = uuid.NewString()
	f.employees = append(f.employees, emp)
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.ID == id {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	out := make([]employee.Employee, 0)
	for _, emp := range f.employees {
		if emp.EmploymentStatus == employee.EmploymentStatusActive {
			out = append(out, emp)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(ctx context.Context, id string) error {
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*leave.LeaveRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request.ID = uuid.NewString()
	request.AppliedAt = time.Now()
	copied := request
	f.requests[request.ID] = &copied
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return *req, nil
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.LeaveRequest, 0)
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatus(ctx context.Context, status leave.LeaveStatus) ([]leave.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.LeaveRequest, 0)
	for _, req := range f.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.requests {
		if req.EmployeeID != employeeID {
			continue
		}
		if req.Status != leave.LeaveStatusPending && req.Status != leave.LeaveStatusApproved {
			continue
		}
		if !req.StartDate.After(end) && !req.EndDate.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, upd leave.UpdateLeaveRequestStatusRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[upd.ID]
	if !ok || req.Status.IsTerminal() {
		return leave.ErrLeaveAlreadyProcessed
	}
	req.Status = upd.Status
	req.ApprovedBy = upd.ApprovedBy
	req.ApprovedAt = upd.ApprovedAt
	req.RejectionReason = upd.RejectionReason
	return nil
}

type fakeWorkflowRepo struct {
	mu    sync.Mutex
	steps map[string][]*leave.ApprovalStep // by request id
	chain []string
}

func newFakeWorkflowRepo(chain ...string) *fakeWorkflowRepo {
	return &fakeWorkflowRepo{
		steps: make(map[string][]*leave.ApprovalStep),
		chain: chain,
	}
}

func (f *fakeWorkflowRepo) CreateSteps(ctx context.Context, steps []leave.ApprovalStep) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range steps {
		step := steps[i]
		step.ID = uuid.NewString()
		f.steps[step.LeaveRequestID] = append(f.steps[step.LeaveRequestID], &step)
	}
	return nil
}

func (f *fakeWorkflowRepo) GetByRequest(ctx context.Context, leaveRequestID string) ([]leave.ApprovalStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]leave.ApprovalStep, 0)
	for _, step := range f.steps[leaveRequestID] {
		out = append(out, *step)
	}
	return out, nil
}

func (f *fakeWorkflowRepo) UpdateStep(ctx context.Context, stepID string, status leave.ApprovalStatus, actionDate time.Time, comments *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, steps := range f.steps {
		for _, step := range steps {
			if step.ID != stepID {
				continue
			}
			if step.Status != leave.ApprovalStatusPending {
				return leave.ErrLeaveAlreadyProcessed
			}
			step.Status = status
			step.ActionDate = &actionDate
			step.Comments = comments
			return nil
		}
	}
	return leave.ErrLeaveAlreadyProcessed
}

func (f *fakeWorkflowRepo) GetApproverChain(ctx context.Context) ([]string, error) {
	return f.chain, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id string, role user.Role) error { return nil }

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id string) error { return nil }
