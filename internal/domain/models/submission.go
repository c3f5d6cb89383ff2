package models

// SubmissionPhase фаза жизненного цикла отправки формы.
type SubmissionPhase int

const (
	PhaseIdle SubmissionPhase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

func (p SubmissionPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal сообщает, является ли фаза конечной (успех или ошибка).
func (p SubmissionPhase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// SubmissionState состояние отправки. Result заполнен только в PhaseSucceeded,
// Message только в PhaseFailed.
type SubmissionState struct {
	Phase   SubmissionPhase
	Result  *CalculationResult
	Message string
}

// IdleState начальное состояние отправки.
func IdleState() SubmissionState {
	return SubmissionState{Phase: PhaseIdle}
}
