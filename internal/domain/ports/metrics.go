package ports

import "time"

// Metrics сбор метрик работы формы.
type Metrics interface {
	SubmissionStarted()
	SubmissionFinished(outcome string, elapsed time.Duration)
	SubmissionRejected(reason string)
	ValidationFailed(field string)
}
