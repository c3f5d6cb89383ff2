package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.SubmissionStarted()
	r.SubmissionStarted()
	r.SubmissionFinished("succeeded", 120*time.Millisecond)
	r.SubmissionFinished("transport_error", time.Second)
	r.SubmissionRejected("in_progress")
	r.ValidationFailed("cc_power")
	r.ValidationFailed("cc_power")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.submissionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissionsTotal.WithLabelValues("succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.submissionsTotal.WithLabelValues("transport_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejectedTotal.WithLabelValues("in_progress")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.validationFailures.WithLabelValues("cc_power")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.submissionDuration))
}

func TestWriteTextFromPrivateRegistry(t *testing.T) {
	r := NewRecorder(nil)
	r.SubmissionStarted()
	r.SubmissionFinished("success", 50*time.Millisecond)
	r.ValidationFailed("category")

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	out := buf.String()
	assert.Contains(t, out, "vehicletax_submissions_started_total 1")
	assert.Contains(t, out, `vehicletax_submissions_total{outcome="success"} 1`)
	assert.Contains(t, out, `vehicletax_validation_failures_total{field="category"} 1`)
	assert.Contains(t, out, "vehicletax_submission_duration_seconds_count 1")
}

// registererOnly регистрирует, но не отдаёт метрики.
type registererOnly struct {
	prometheus.Registerer
}

func TestWriteTextWithoutGatherer(t *testing.T) {
	r := NewRecorder(registererOnly{prometheus.NewRegistry()})
	assert.ErrorIs(t, r.WriteText(&bytes.Buffer{}), ErrNotGatherable)
}
