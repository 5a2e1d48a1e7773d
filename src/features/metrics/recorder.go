package metrics

import (
	"github.com/contre95/soulsync/src/features/planning"
	"github.com/contre95/soulsync/src/infra/destination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the sync telemetry counters on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	plansTotal    prometheus.Counter
	planOps       *prometheus.CounterVec
	syncsTotal    prometheus.Counter
	syncFailures  prometheus.Counter
	bytesCopied   prometheus.Counter
	filesCopied   prometheus.Counter
	filesDeleted  prometheus.Counter
	tracksPlanned prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		plansTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_plans_total",
			Help: "Planning passes run.",
		}),
		planOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "soulsync_plan_operations_total",
			Help: "Planned operations by type.",
		}, []string{"type"}),
		syncsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_syncs_total",
			Help: "Sync executions completed.",
		}),
		syncFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_sync_failures_total",
			Help: "Sync executions that failed.",
		}),
		bytesCopied: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_bytes_copied_total",
			Help: "Bytes copied onto destinations.",
		}),
		filesCopied: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_files_copied_total",
			Help: "Files copied onto destinations.",
		}),
		filesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "soulsync_files_deleted_total",
			Help: "Stale files removed from destinations.",
		}),
		tracksPlanned: factory.NewGauge(prometheus.GaugeOpts{
			Name: "soulsync_tracks_planned",
			Help: "Track count of the most recent plan.",
		}),
	}
}

// Registry exposes the recorder's registry for the HTTP handler.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObservePlan records the outcome of one planning pass.
func (r *Recorder) ObservePlan(plan *planning.Plan) {
	r.plansTotal.Inc()
	for _, op := range plan.Ops {
		r.planOps.WithLabelValues(string(op.Type)).Inc()
	}
	r.tracksPlanned.Set(float64(len(plan.Copies()) + len(plan.Keeps())))
}

// RecordExecution records the outcome of one applied plan.
func (r *Recorder) RecordExecution(stats destination.Stats) {
	r.syncsTotal.Inc()
	r.filesCopied.Add(float64(stats.Copied))
	r.filesDeleted.Add(float64(stats.Deleted))
	r.bytesCopied.Add(float64(stats.BytesCopied))
}

// RecordSyncFailure records a failed sync execution.
func (r *Recorder) RecordSyncFailure() {
	r.syncFailures.Inc()
}
