package leave

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/attendance"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
)

// IneligibilityReason identifies which gate an employee failed. Reasons are
// stable codes used in run reports and metrics labels.
type IneligibilityReason string

const (
	ReasonNone       IneligibilityReason = ""
	ReasonTenure     IneligibilityReason = "tenure"
	ReasonProbation  IneligibilityReason = "probation"
	ReasonAttendance IneligibilityReason = "attendance"
	ReasonCustom     IneligibilityReason = "custom"
)

// Eligibility is the outcome of evaluating one employee against one rule.
type Eligibility struct {
	Eligible bool
	Reason   IneligibilityReason
}

// EligibilityEvaluator checks whether an employee may accrue under a rule.
// Gates run in a fixed order (tenure, probation, attendance, custom) and the
// first failing gate decides the reason.
type EligibilityEvaluator struct {
	attendanceRepo attendance.AttendanceRepository

	// Trailing window in days for the attendance gate when the rule does not
	// set min_working_days.
	defaultWindowDays int
}

func NewEligibilityEvaluator(attendanceRepo attendance.AttendanceRepository, defaultWindowDays int) *EligibilityEvaluator {
	return &EligibilityEvaluator{
		attendanceRepo:    attendanceRepo,
		defaultWindowDays: defaultWindowDays,
	}
}

// Evaluate runs the gates for emp against rule as of the given date.
func (e *EligibilityEvaluator) Evaluate(ctx context.Context, rule leave.AccrualRule, emp employee.Employee, asOf time.Time) (Eligibility, error) {
	tenureDays := emp.TenureDays(asOf)
	if tenureDays < rule.ApplicableAfterDays {
		return Eligibility{Reason: ReasonTenure}, nil
	}

	onProbation := emp.OnProbation(asOf)
	if onProbation && !rule.ApplyToProbation {
		return Eligibility{Reason: ReasonProbation}, nil
	}

	attendancePercent := decimal.NewFromInt(100)
	if rule.MinAttendanceRequired != nil {
		percent, counted, err := e.attendancePercent(ctx, rule, emp.ID, asOf)
		if err != nil {
			return Eligibility{}, err
		}
		// No marked attendance in the window means nothing to hold against
		// the employee; the gate passes.
		if counted > 0 {
			attendancePercent = percent
			if percent.LessThan(*rule.MinAttendanceRequired) {
				return Eligibility{Reason: ReasonAttendance}, nil
			}
		}
	}

	if rule.CustomConditions != nil {
		facts := leave.Facts{
			TenureDays:        tenureDays,
			AttendancePercent: attendancePercent,
			OnProbation:       onProbation,
			EmploymentType:    string(emp.EmploymentType),
		}
		ok, err := rule.CustomConditions.Evaluate(facts)
		if err != nil {
			return Eligibility{}, err
		}
		if !ok {
			return Eligibility{Reason: ReasonCustom}, nil
		}
	}

	return Eligibility{Eligible: true}, nil
}

func (e *EligibilityEvaluator) attendancePercent(ctx context.Context, rule leave.AccrualRule, employeeID string, asOf time.Time) (decimal.Decimal, int, error) {
	window := e.defaultWindowDays
	if rule.MinWorkingDays != nil && *rule.MinWorkingDays > 0 {
		window = *rule.MinWorkingDays
	}

	from := asOf.AddDate(0, 0, -window)
	stats, err := e.attendanceRepo.GetStats(ctx, employeeID, from, asOf)
	if err != nil {
		return decimal.Zero, 0, err
	}
	if stats.CountedDays == 0 {
		return decimal.Zero, 0, nil
	}

	percent := decimal.NewFromInt(int64(stats.PresentEquivalentHundredths())).
		Div(decimal.NewFromInt(int64(stats.CountedDays)))
	return percent, stats.CountedDays, nil
}
