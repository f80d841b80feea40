package cron

import (
	"context"
	"log/slog"
	"time"

	leaveservice "github.com/zenithhr/hrms-backend-go/internal/service/leave"
)

// RegisterAccrualJobs wires the scheduled leave accrual work into the
// scheduler: a periodic year-to-date reconcile, and a year-end carry forward
// that fires on the first day of the year. Both jobs are idempotent, so an
// overlapping or repeated run credits nothing twice.
func RegisterAccrualJobs(s *Scheduler, svc *leaveservice.AccrualService, interval time.Duration) {
	s.AddJob("leave-accrual-reconcile", interval, func(ctx context.Context) error {
		report, err := svc.ReconcileYearToDate(ctx, time.Now())
		if err != nil {
			return err
		}
		slog.Info("scheduled accrual reconcile completed",
			"employees_credited", report.EmployeesCredited,
			"days_credited", report.DaysCredited,
			"skipped", len(report.Skipped),
			"errors", report.Errors,
		)
		return nil
	})

	s.AddJob("leave-year-end-carry-forward", interval, func(ctx context.Context) error {
		now := time.Now()
		if now.YearDay() != 1 {
			return nil
		}
		return svc.RunYearEndCarryForward(ctx, now.Year()-1)
	})
}
