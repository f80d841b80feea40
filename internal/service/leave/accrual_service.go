package leave

import (
	"context"
	"errors"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenithhr/hrms-backend-go/internal/domain/employee"
	"github.com/zenithhr/hrms-backend-go/internal/domain/leave"
	"github.com/zenithhr/hrms-backend-go/internal/pkg/metrics"
)

// RunReport summarizes one accrual run.
type RunReport struct {
	EmployeesCredited int
	DaysCredited      decimal.Decimal
	Skipped           map[IneligibilityReason]int
	Errors            int
}

// AccrualService drives accrual runs across all active rules and employees.
// Work is sharded across a bounded set of workers by employee ID, so updates
// for one employee are always applied sequentially while distinct employees
// proceed in parallel.
type AccrualService struct {
	ruleRepo     leave.AccrualRuleRepository
	balanceRepo  leave.LeaveBalanceRepository
	leaveTypes   leave.LeaveTypeRepository
	employeeRepo employee.EmployeeRepository

	evaluator  *EligibilityEvaluator
	calculator *AccrualCalculator
	reconciler *BalanceReconciler

	maxWorkers int
}

func NewAccrualService(
	ruleRepo leave.AccrualRuleRepository,
	balanceRepo leave.LeaveBalanceRepository,
	leaveTypes leave.LeaveTypeRepository,
	employeeRepo employee.EmployeeRepository,
	evaluator *EligibilityEvaluator,
	calculator *AccrualCalculator,
	reconciler *BalanceReconciler,
	maxWorkers int,
) *AccrualService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &AccrualService{
		ruleRepo:     ruleRepo,
		balanceRepo:  balanceRepo,
		leaveTypes:   leaveTypes,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
		calculator:   calculator,
		reconciler:   reconciler,
		maxWorkers:   maxWorkers,
	}
}

// RunAccrualForPeriod credits every eligible employee for the cycles that
// completed inside [periodStart, periodEnd]. Operators trigger this for an
// explicit period; the caller owns not running the same period twice.
func (s *AccrualService) RunAccrualForPeriod(ctx context.Context, periodStart, periodEnd time.Time) (RunReport, error) {
	return s.run(ctx, func(rule leave.AccrualRule, emp employee.Employee, ytdAllocated decimal.Decimal) decimal.Decimal {
		cycles := s.calculator.CompletedCycles(rule, periodStart, periodEnd)
		return s.calculator.ComputeAccrual(rule, cycles, ytdAllocated)
	}, periodEnd)
}

// ReconcileYearToDate brings every balance up to what the rules say should
// have accrued since the start of the year (or hire, if later). Crediting the
// difference between expected and allocated makes the scheduled run
// idempotent: repeating it credits nothing new.
func (s *AccrualService) ReconcileYearToDate(ctx context.Context, asOf time.Time) (RunReport, error) {
	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())

	return s.run(ctx, func(rule leave.AccrualRule, emp employee.Employee, ytdAllocated decimal.Decimal) decimal.Decimal {
		anchor := yearStart
		if emp.HireDate.After(anchor) {
			anchor = emp.HireDate
		}
		cycles := s.calculator.CompletedCycles(rule, anchor, asOf)
		expected := s.calculator.ComputeAccrual(rule, cycles, decimal.Zero)

		due := expected.Sub(ytdAllocated)
		if due.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return due
	}, asOf)
}

type creditFunc func(rule leave.AccrualRule, emp employee.Employee, ytdAllocated decimal.Decimal) decimal.Decimal

func (s *AccrualService) run(ctx context.Context, credit creditFunc, asOf time.Time) (RunReport, error) {
	start := time.Now()

	report := RunReport{
		DaysCredited: decimal.Zero,
		Skipped:      make(map[IneligibilityReason]int),
	}

	rules, err := s.ruleRepo.ListActive(ctx)
	if err != nil {
		metrics.AccrualRunsTotal.WithLabelValues("failure").Inc()
		return report, err
	}
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		metrics.AccrualRunsTotal.WithLabelValues("failure").Inc()
		return report, err
	}

	// One channel per worker, sharded by employee ID. A given employee's
	// credits all land on the same worker and apply in order.
	channels := make([]chan employee.Employee, s.maxWorkers)
	for i := range channels {
		channels[i] = make(chan employee.Employee)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := 0; i < s.maxWorkers; i++ {
		wg.Add(1)
		go func(in <-chan employee.Employee) {
			defer wg.Done()
			for emp := range in {
				credited := decimal.Zero
				for _, rule := range rules {
					days, reason, err := s.processOne(ctx, credit, rule, emp, asOf)

					mu.Lock()
					switch {
					case err != nil:
						report.Errors++
					case reason != ReasonNone:
						report.Skipped[reason]++
					case days.GreaterThan(decimal.Zero):
						report.DaysCredited = report.DaysCredited.Add(days)
						credited = credited.Add(days)
					}
					mu.Unlock()
				}
				if credited.GreaterThan(decimal.Zero) {
					mu.Lock()
					report.EmployeesCredited++
					mu.Unlock()
				}
			}
		}(channels[i])
	}

	for _, emp := range employees {
		channels[shard(emp.ID, s.maxWorkers)] <- emp
	}
	for _, ch := range channels {
		close(ch)
	}
	wg.Wait()

	outcome := "success"
	if report.Errors > 0 {
		outcome = "partial"
	}
	metrics.AccrualRunsTotal.WithLabelValues(outcome).Inc()
	metrics.AccrualRunDuration.Observe(time.Since(start).Seconds())

	slog.Info("accrual run finished",
		"employees_credited", report.EmployeesCredited,
		"days_credited", report.DaysCredited,
		"errors", report.Errors,
		"duration", time.Since(start),
	)
	return report, nil
}

func (s *AccrualService) processOne(ctx context.Context, credit creditFunc, rule leave.AccrualRule, emp employee.Employee, asOf time.Time) (decimal.Decimal, IneligibilityReason, error) {
	elig, err := s.evaluator.Evaluate(ctx, rule, emp, asOf)
	if err != nil {
		slog.Error("eligibility evaluation failed",
			"employee_id", emp.ID,
			"leave_type_id", rule.LeaveTypeID,
			"error", err,
		)
		return decimal.Zero, ReasonNone, err
	}
	if !elig.Eligible {
		metrics.AccrualSkipsTotal.WithLabelValues(string(elig.Reason)).Inc()
		return decimal.Zero, elig.Reason, nil
	}

	year := asOf.Year()
	ytdAllocated := decimal.Zero
	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, emp.ID, rule.LeaveTypeID, year)
	if err == nil {
		ytdAllocated = balance.AllocatedDays
	} else if !errors.Is(err, leave.ErrBalanceNotFound) {
		return decimal.Zero, ReasonNone, err
	}

	days := credit(rule, emp, ytdAllocated)
	if days.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ReasonNone, nil
	}

	if _, err := s.reconciler.ApplyAccrual(ctx, emp.ID, rule.LeaveTypeID, year, days); err != nil {
		slog.Error("accrual credit failed",
			"employee_id", emp.ID,
			"leave_type_id", rule.LeaveTypeID,
			"days", days,
			"error", err,
		)
		return decimal.Zero, ReasonNone, err
	}
	return days, ReasonNone, nil
}

// RunYearEndCarryForward opens next-year balance rows for every employee,
// carrying over remaining days where the leave type allows it.
func (s *AccrualService) RunYearEndCarryForward(ctx context.Context, fromYear int) error {
	types, err := s.leaveTypes.List(ctx)
	if err != nil {
		return err
	}
	typesByID := make(map[string]leave.LeaveType, len(types))
	for _, lt := range types {
		typesByID[lt.ID] = lt
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		balances, err := s.balanceRepo.GetByEmployeeYear(ctx, emp.ID, fromYear)
		if err != nil {
			return err
		}
		for _, balance := range balances {
			lt, ok := typesByID[balance.LeaveTypeID]
			if !ok {
				continue
			}
			if _, err := s.reconciler.CarryForward(ctx, balance, lt, fromYear+1); err != nil {
				slog.Error("carry forward failed",
					"employee_id", emp.ID,
					"leave_type_id", balance.LeaveTypeID,
					"from_year", fromYear,
					"error", err,
				)
				return err
			}
		}
	}

	slog.Info("year-end carry forward finished", "from_year", fromYear, "to_year", fromYear+1)
	return nil
}

func shard(key string, buckets int) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(buckets))
}
