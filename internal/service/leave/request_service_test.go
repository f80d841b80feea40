package leave

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

type requestFixture struct {
	svc      *RequestService
	balances *fakeBalanceRepo
	requests *fakeRequestRepo
	workflow *fakeWorkflowRepo
	types    *fakeTypeRepo

	typeID    string
	balanceID string
}

// newRequestFixture wires a RequestService against in-memory repositories with
// one active leave type, a 10 day balance for emp-1 in 2024, and a two-level
// approval chain of mgr-1 then adm-1.
func newRequestFixture(t *testing.T) *requestFixture {
	t.Helper()

	types := newFakeTypeRepo()
	lt, err := types.Create(context.Background(), leave.LeaveType{
		Code: "AL", Name: "Annual Leave", DaysAllowed: days(20), IsActive: true,
	})
	require.NoError(t, err)

	balances := newFakeBalanceRepo()
	seeded := balances.seed(leave.LeaveBalance{
		EmployeeID: "emp-1", LeaveTypeID: lt.ID, Year: 2024,
		AllocatedDays: days(10),
	})

	requests := newFakeRequestRepo()
	workflow := newFakeWorkflowRepo("mgr-1", "adm-1")

	svc := &RequestService{
		requestRepo:  requests,
		workflowRepo: workflow,
		typeRepo:     types,
		balanceRepo:  balances,
		employeeRepo: &fakeEmployeeRepo{},
		userRepo:     &fakeUserRepo{},
		reconciler:   NewBalanceReconciler(balances),
		tx:           passthroughTx,
	}

	return &requestFixture{
		svc:       svc,
		balances:  balances,
		requests:  requests,
		workflow:  workflow,
		types:     types,
		typeID:    lt.ID,
		balanceID: seeded.ID,
	}
}

func (f *requestFixture) submit(t *testing.T, start, end string) leave.LeaveRequest {
	t.Helper()
	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.typeID,
		StartDate:   start,
		EndDate:     end,
		Reason:      "family trip",
	})
	require.NoError(t, err)
	return created
}

func TestCreateRequest_OpensWorkflow(t *testing.T) {
	f := newRequestFixture(t)

	created := f.submit(t, "2024-03-04", "2024-03-06")

	assert.Equal(t, leave.LeaveStatusPending, created.Status)
	assert.True(t, created.TotalDays.Equal(days(3)))

	steps, err := f.workflow.GetByRequest(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, 1, steps[0].Level)
	assert.Equal(t, "mgr-1", steps[0].ApproverID)
	assert.Equal(t, "adm-1", steps[1].ApproverID)

	// Submission must not touch the balance.
	assert.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(10)))
}

func TestCreateRequest_HalfDay(t *testing.T) {
	f := newRequestFixture(t)

	half := string(leave.HalfDayFirstHalf)
	created, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.typeID,
		StartDate:   "2024-03-04",
		EndDate:     "2024-03-04",
		HalfDayType: &half,
		Reason:      "appointment",
	})

	require.NoError(t, err)
	assert.True(t, created.TotalDays.Equal(days(0.5)))
}

func TestCreateRequest_RejectsOverlap(t *testing.T) {
	f := newRequestFixture(t)
	f.submit(t, "2024-03-04", "2024-03-08")

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.typeID,
		StartDate:   "2024-03-08",
		EndDate:     "2024-03-10",
		Reason:      "extension",
	})

	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestCreateRequest_InsufficientBalance(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.typeID,
		StartDate:   "2024-03-04",
		EndDate:     "2024-03-15",
		Reason:      "long trip", // 12 days against a balance of 10
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestCreateRequest_NoBalanceRow(t *testing.T) {
	f := newRequestFixture(t)

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-2",
		LeaveTypeID: f.typeID,
		StartDate:   "2024-03-04",
		EndDate:     "2024-03-05",
		Reason:      "trip",
	})

	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestCreateRequest_InactiveType(t *testing.T) {
	f := newRequestFixture(t)
	inactive := false
	require.NoError(t, f.types.Update(context.Background(), leave.UpdateLeaveTypeRequest{ID: f.typeID, IsActive: &inactive}))

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.typeID,
		StartDate:   "2024-03-04",
		EndDate:     "2024-03-05",
		Reason:      "trip",
	})

	assert.ErrorIs(t, err, leave.ErrLeaveTypeInactive)
}

func TestApprove_IntermediateLevelDoesNotDebit(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")

	err := f.svc.Approve(context.Background(), leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"})
	require.NoError(t, err)

	got, err := f.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusPending, got.Status)
	assert.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(10)))
}

func TestApprove_FinalLevelDebitsAndApproves(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"}))
	require.NoError(t, f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "adm-1"}))

	got, err := f.requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusApproved, got.Status)

	balance := f.balances.get(f.balanceID)
	assert.True(t, balance.UsedDays.Equal(days(3)))
	assert.True(t, balance.RemainingDays.Equal(days(7)))
}

func TestApprove_OutOfOrderApproverRejected(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")

	// adm-1 holds the final level; mgr-1 has not decided yet.
	err := f.svc.Approve(context.Background(), leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "adm-1"})

	assert.ErrorIs(t, err, leave.ErrNotAnApprover)
}

func TestApprove_StrangerRejected(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")

	err := f.svc.Approve(context.Background(), leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "intruder"})

	assert.ErrorIs(t, err, leave.ErrNotAnApprover)
}

func TestApprove_AlreadyDecidedRequest(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Reject(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"}))

	err := f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestReject_AnyLevelIsFinal(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	reason := "headcount freeze"
	require.NoError(t, f.svc.Reject(ctx, leave.DecideRequestRequest{
		RequestID: created.ID, ApproverID: "mgr-1", Reason: &reason,
	}))

	got, err := f.requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusRejected, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, reason, *got.RejectionReason)

	// Nothing was ever debited.
	assert.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(10)))
}

func TestReject_AtFinalLevel(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"}))
	require.NoError(t, f.svc.Reject(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "adm-1"}))

	got, err := f.requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusRejected, got.Status)
	assert.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(10)))
}

func TestCancel_PendingRequest(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Cancel(ctx, created.ID, "emp-1"))

	got, err := f.requests.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveStatusCancelled, got.Status)
	assert.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(10)))
}

func TestCancel_ApprovedRequestRestoresBalance(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"}))
	require.NoError(t, f.svc.Approve(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "adm-1"}))
	require.True(t, f.balances.get(f.balanceID).RemainingDays.Equal(days(7)))

	require.NoError(t, f.svc.Cancel(ctx, created.ID, "emp-1"))

	balance := f.balances.get(f.balanceID)
	assert.True(t, balance.RemainingDays.Equal(days(10)))
	assert.True(t, balance.UsedDays.IsZero())
}

func TestCancel_OnlyOwnerMayCancel(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")

	err := f.svc.Cancel(context.Background(), created.ID, "emp-2")

	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestCancel_TerminalRequest(t *testing.T) {
	f := newRequestFixture(t)
	created := f.submit(t, "2024-03-04", "2024-03-06")
	ctx := context.Background()

	require.NoError(t, f.svc.Reject(ctx, leave.DecideRequestRequest{RequestID: created.ID, ApproverID: "mgr-1"}))

	err := f.svc.Cancel(ctx, created.ID, "emp-1")
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}
