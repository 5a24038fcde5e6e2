// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ListingMatches = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_matched_records",
			Help:    "Records left after filtering, per listing apply",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250, 500, 1000},
		},
		[]string{"listing"},
	)

	CatalogCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Catalog snapshot lookups by result (hit, miss, error)",
		},
		[]string{"collection", "result"},
	)

	WizardTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wizard_transitions_total",
			Help: "Wizard events applied, by flow, action and outcome",
		},
		[]string{"flow", "action", "outcome"},
	)

	VerificationEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "verification_emails_total",
			Help: "Verification email attempts by result",
		},
		[]string{"result"},
	)
)
