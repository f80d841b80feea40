package leave

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

func testEmployee(hireDate time.Time) employee.Employee {
	return employee.Employee{
		ID:               "emp-1",
		FullName:         "Alice Example",
		HireDate:         hireDate,
		EmploymentType:   employee.EmploymentTypePermanent,
		EmploymentStatus: employee.EmploymentStatusActive,
	}
}

func TestEligibility_TenureGate(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	rule := leave.AccrualRule{ApplicableAfterDays: 90}
	emp := testEmployee(asOf.AddDate(0, 0, -30)) // 30 days of tenure

	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)

	require.NoError(t, err)
	assert.False(t, got.Eligible)
	assert.Equal(t, ReasonTenure, got.Reason)
}

func TestEligibility_TenureGatePassesAtBoundary(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	rule := leave.AccrualRule{ApplicableAfterDays: 90}
	emp := testEmployee(asOf.AddDate(0, 0, -90))

	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)

	require.NoError(t, err)
	assert.True(t, got.Eligible)
}

func TestEligibility_ProbationGate(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	probationEnd := asOf.AddDate(0, 1, 0)
	emp := testEmployee(asOf.AddDate(0, -2, 0))
	emp.ProbationEndDate = &probationEnd

	rule := leave.AccrualRule{ApplyToProbation: false}
	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.False(t, got.Eligible)
	assert.Equal(t, ReasonProbation, got.Reason)

	rule.ApplyToProbation = true
	got, err = evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.True(t, got.Eligible)
}

func TestEligibility_AttendanceGate(t *testing.T) {
	asOf := date(2024, time.June, 1)
	attRepo := newFakeAttendanceRepo()
	attRepo.stats["emp-1"] = attendance.Stats{PresentDays: 80, AbsentDays: 20, CountedDays: 100}
	evaluator := NewEligibilityEvaluator(attRepo, 90)

	minAttendance := days(90)
	rule := leave.AccrualRule{MinAttendanceRequired: &minAttendance}
	emp := testEmployee(asOf.AddDate(-1, 0, 0))

	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.False(t, got.Eligible)
	assert.Equal(t, ReasonAttendance, got.Reason)

	lower := days(75)
	rule.MinAttendanceRequired = &lower
	got, err = evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.True(t, got.Eligible)
}

func TestEligibility_AttendanceGateHalfDaysWeighted(t *testing.T) {
	asOf := date(2024, time.June, 1)
	attRepo := newFakeAttendanceRepo()
	// 8 present + 4 half days out of 12 counted: (800+200)/12 = 83.33%
	attRepo.stats["emp-1"] = attendance.Stats{PresentDays: 8, HalfDays: 4, CountedDays: 12}
	evaluator := NewEligibilityEvaluator(attRepo, 90)

	minAttendance := days(80)
	rule := leave.AccrualRule{MinAttendanceRequired: &minAttendance}
	emp := testEmployee(asOf.AddDate(-1, 0, 0))

	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.True(t, got.Eligible)
}

func TestEligibility_NoAttendanceRecordsPasses(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	minAttendance := days(90)
	rule := leave.AccrualRule{MinAttendanceRequired: &minAttendance}
	emp := testEmployee(asOf.AddDate(-1, 0, 0))

	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)

	require.NoError(t, err)
	assert.True(t, got.Eligible)
}

func TestEligibility_CustomConditions(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	rule := leave.AccrualRule{
		CustomConditions: &leave.ConditionNode{
			Field:    leave.FieldEmploymentType,
			Op:       leave.OpEq,
			RawValue: json.RawMessage(`"permanent"`),
		},
	}

	emp := testEmployee(asOf.AddDate(-1, 0, 0))
	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.True(t, got.Eligible)

	emp.EmploymentType = employee.EmploymentTypeContract
	got, err = evaluator.Evaluate(context.Background(), rule, emp, asOf)
	require.NoError(t, err)
	assert.False(t, got.Eligible)
	assert.Equal(t, ReasonCustom, got.Reason)
}

func TestEligibility_CustomConditionUnknownFieldErrors(t *testing.T) {
	asOf := date(2024, time.June, 1)
	evaluator := NewEligibilityEvaluator(newFakeAttendanceRepo(), 90)

	rule := leave.AccrualRule{
		CustomConditions: &leave.ConditionNode{
			Field:    "shoe_size",
			Op:       leave.OpGt,
			RawValue: json.RawMessage(`42`),
		},
	}
	emp := testEmployee(asOf.AddDate(-1, 0, 0))

	_, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)

	assert.Error(t, err)
}

func TestEligibility_GateOrderTenureFirst(t *testing.T) {
	asOf := date(2024, time.June, 1)
	attRepo := newFakeAttendanceRepo()
	attRepo.stats["emp-1"] = attendance.Stats{PresentDays: 1, AbsentDays: 99, CountedDays: 100}
	evaluator := NewEligibilityEvaluator(attRepo, 90)

	minAttendance := days(90)
	probationEnd := asOf.AddDate(0, 1, 0)
	rule := leave.AccrualRule{
		ApplicableAfterDays:   180,
		MinAttendanceRequired: &minAttendance,
	}
	emp := testEmployee(asOf.AddDate(0, 0, -10))
	emp.ProbationEndDate = &probationEnd

	// Everything fails, but tenure is checked first and names the reason.
	got, err := evaluator.Evaluate(context.Background(), rule, emp, asOf)

	require.NoError(t, err)
	assert.Equal(t, ReasonTenure, got.Reason)
}
