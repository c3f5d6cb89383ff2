package metrics

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"vehicletax/internal/domain/ports"
)

// Recorder реализует ports.Metrics на prometheus.
type Recorder struct {
	submissionsStarted prometheus.Counter
	submissionsTotal   *prometheus.CounterVec
	submissionDuration prometheus.Histogram
	rejectedTotal      *prometheus.CounterVec
	validationFailures *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// ErrNotGatherable реестр не позволяет прочитать собранные метрики.
var ErrNotGatherable = errors.New("metrics: registerer does not support gathering")

// NewRecorder создает метрики и регистрирует их в reg.
// Если reg == nil, используется новый приватный реестр.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	gatherer, _ := reg.(prometheus.Gatherer)

	r := &Recorder{
		gatherer: gatherer,
		submissionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vehicletax",
			Name:      "submissions_started_total",
			Help:      "Total number of accepted form submissions",
		}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicletax",
			Name:      "submissions_total",
			Help:      "Total number of finished form submissions by outcome",
		}, []string{"outcome"}),
		submissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vehicletax",
			Name:      "submission_duration_seconds",
			Help:      "Duration of calculation requests in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicletax",
			Name:      "submissions_rejected_total",
			Help:      "Submissions rejected before reaching the server",
		}, []string{"reason"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vehicletax",
			Name:      "validation_failures_total",
			Help:      "Client-side validation failures by field",
		}, []string{"field"}),
	}

	reg.MustRegister(
		r.submissionsStarted,
		r.submissionsTotal,
		r.submissionDuration,
		r.rejectedTotal,
		r.validationFailures,
	)
	return r
}

var _ ports.Metrics = (*Recorder)(nil)

// WriteText пишет собранные метрики в текстовом формате Prometheus.
func (r *Recorder) WriteText(w io.Writer) error {
	if r.gatherer == nil {
		return ErrNotGatherable
	}
	families, err := r.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func (r *Recorder) SubmissionStarted() {
	r.submissionsStarted.Inc()
}

func (r *Recorder) SubmissionFinished(outcome string, elapsed time.Duration) {
	r.submissionsTotal.WithLabelValues(outcome).Inc()
	r.submissionDuration.Observe(elapsed.Seconds())
}

func (r *Recorder) SubmissionRejected(reason string) {
	r.rejectedTotal.WithLabelValues(reason).Inc()
}

func (r *Recorder) ValidationFailed(field string) {
	r.validationFailures.WithLabelValues(field).Inc()
}

// Nop метрики-заглушка.
type Nop struct{}

func (Nop) SubmissionStarted()                        {}
func (Nop) SubmissionFinished(string, time.Duration) {}
func (Nop) SubmissionRejected(string)                 {}
func (Nop) ValidationFailed(string)                   {}
