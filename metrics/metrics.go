package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cleanup_registrations_total", Help: "Total successful event registrations"},
	)
	RegistrationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "cleanup_registration_rejections_total", Help: "Registrations rejected, by reason"},
		[]string{"reason"},
	)
	ReconcileRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cleanup_reconcile_runs_total", Help: "Total derived-cache reconciliation runs"},
	)
	BeachSyncErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cleanup_beach_sync_errors_total", Help: "Total beach status sync failures"},
	)
)

func Register() {
	prometheus.MustRegister(RegistrationsTotal, RegistrationRejections, ReconcileRuns, BeachSyncErrors)
}
