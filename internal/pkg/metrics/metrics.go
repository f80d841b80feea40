package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Accrual engine metrics. Registered on the default registry and exposed
// through the /metrics endpoint.
var (
	AccrualRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_accrual_runs_total",
		Help: "Total accrual runs, labelled by outcome.",
	}, []string{"outcome"})

	AccrualDaysCredited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hrms_accrual_days_credited_total",
		Help: "Total leave days credited by the accrual engine.",
	})

	AccrualSkipsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_accrual_skips_total",
		Help: "Employees skipped during accrual, labelled by reason.",
	}, []string{"reason"})

	BalanceConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hrms_balance_version_conflicts_total",
		Help: "Optimistic concurrency conflicts observed while crediting balances.",
	})

	DebitFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hrms_balance_debit_failures_total",
		Help: "Failed balance debits, labelled by reason.",
	}, []string{"reason"})

	AccrualRunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hrms_accrual_run_duration_seconds",
		Help:    "Duration of full accrual runs.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})
)
