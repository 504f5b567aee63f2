package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion outcomes
const (
	OutcomeTranscribed      = "transcribed"
	OutcomeAnalyzed         = "analyzed"
	OutcomeTranscribeFailed = "transcription_failed"
	OutcomeExtractFailed    = "extraction_failed"
	OutcomeAbandoned        = "abandoned" // meeting deleted mid-run
	OutcomePanicked         = "panicked"
)

// PipelineMetrics holds the Prometheus metrics for meeting ingestion
type PipelineMetrics struct {
	IngestionsTotal      *prometheus.CounterVec
	InFlight             prometheus.Gauge
	StageSeconds         *prometheus.HistogramVec
	ActionItemsExtracted prometheus.Counter
	CleanupFailures      prometheus.Counter
}

// NewPipelineMetrics registers the metrics on reg
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		IngestionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meeting_ingestions_total",
				Help: "Finished ingestions by outcome",
			},
			[]string{"outcome"},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "meeting_ingestions_in_flight",
				Help: "Ingestions currently running",
			},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "meeting_ingestion_stage_seconds",
				Help:    "Time spent per pipeline stage",
				Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"stage"},
		),
		ActionItemsExtracted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "meeting_action_items_extracted_total",
				Help: "Action items created from transcripts",
			},
		),
		CleanupFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "meeting_audio_cleanup_failures_total",
				Help: "Uploaded audio files that could not be removed",
			},
		),
	}
}

// ObserveStage records how long a stage took. A nil receiver is a no-op.
func (m *PipelineMetrics) ObserveStage(stage string, started time.Time) {
	if m == nil {
		return
	}
	m.StageSeconds.WithLabelValues(stage).Observe(time.Since(started).Seconds())
}

// RecordOutcome counts a finished ingestion
func (m *PipelineMetrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.IngestionsTotal.WithLabelValues(outcome).Inc()
}

// TrackInFlight bumps the in-flight gauge and returns the matching decrement
func (m *PipelineMetrics) TrackInFlight() func() {
	if m == nil {
		return func() {}
	}
	m.InFlight.Inc()
	return m.InFlight.Dec
}

// AddActionItems counts action items created by extraction
func (m *PipelineMetrics) AddActionItems(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ActionItemsExtracted.Add(float64(n))
}

// CleanupFailed counts an audio file that could not be removed
func (m *PipelineMetrics) CleanupFailed() {
	if m == nil {
		return
	}
	m.CleanupFailures.Inc()
}
