// Package submission управляет жизненным циклом отправки формы на расчёт.
package submission

import (
	"context"
	"errors"
	"sync"
	"time"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
)

// Исходы отправки для метрик.
const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeTransport = "transport_error"
	OutcomeStale     = "stale"
)

// Service конечный автомат отправки: Idle -> Submitting -> Succeeded|Failed.
// Единственный владелец SubmissionState.
type Service struct {
	calc    ports.Calculator
	metrics ports.Metrics
	log     ports.Logger

	mu         sync.Mutex
	state      models.SubmissionState
	generation uint64
	onChange   func(models.SubmissionState)
}

// NewService создает сервис отправки.
func NewService(calc ports.Calculator, metrics ports.Metrics, log ports.Logger) *Service {
	return &Service{
		calc:    calc,
		metrics: metrics,
		log:     log,
		state:   models.IdleState(),
	}
}

// SetOnChange устанавливает callback на каждый переход состояния.
// Submitting означает "идёт загрузка", любое другое состояние снимает индикатор.
func (s *Service) SetOnChange(callback func(models.SubmissionState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}

// State возвращает текущее состояние.
func (s *Service) State() models.SubmissionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Ticket разрешение на одну отправку, выданное Begin.
type Ticket struct {
	generation uint64
	form       models.FormState
}

// Begin переводит автомат в Submitting без вызова onChange и без запроса.
// Вызывающий сам отражает загрузку в UI и затем вызывает Await.
// Во время активной отправки возвращает ErrInProgress.
func (s *Service) Begin(form models.FormState) (Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Phase == models.PhaseSubmitting {
		s.metrics.SubmissionRejected("in_progress")
		s.log.Debug("[SUBMIT] Rejected: submission already in progress")
		return Ticket{}, ErrInProgress
	}
	s.state = models.SubmissionState{Phase: models.PhaseSubmitting}
	return Ticket{generation: s.generation, form: form.Clone()}, nil
}

// Await отправляет форму по билету и ждёт ответа. Если после Begin был вызван
// Reset, запрос не отправляется (или его ответ отбрасывается) и возвращается ErrStale.
func (s *Service) Await(ctx context.Context, t Ticket) (models.SubmissionState, error) {
	s.mu.Lock()
	if s.generation != t.generation {
		current := s.state
		s.mu.Unlock()
		s.log.Debug("[SUBMIT] Skipping request: form was reset")
		return current, ErrStale
	}
	s.mu.Unlock()

	s.metrics.SubmissionStarted()
	s.log.Info("[SUBMIT] Sending calculation request")

	started := time.Now()
	resp, err := s.calc.Calculate(ctx, BuildPayload(t.form))
	next, outcome := s.interpret(resp, err)

	s.mu.Lock()
	if s.generation != t.generation {
		s.mu.Unlock()
		s.metrics.SubmissionFinished(OutcomeStale, time.Since(started))
		s.log.Debug("[SUBMIT] Discarding response received after reset")
		return next, ErrStale
	}
	s.state = next
	cb := s.onChange
	s.mu.Unlock()

	s.metrics.SubmissionFinished(outcome, time.Since(started))
	s.notify(cb, next)
	return next, nil
}

// Submit отправляет проверенную форму и ждёт ответа: Begin, уведомление
// о Submitting и Await. Во время активной отправки сразу возвращает ErrInProgress.
func (s *Service) Submit(ctx context.Context, form models.FormState) (models.SubmissionState, error) {
	t, err := s.Begin(form)
	if err != nil {
		return s.State(), err
	}

	s.mu.Lock()
	cb := s.onChange
	s.mu.Unlock()
	s.notify(cb, models.SubmissionState{Phase: models.PhaseSubmitting})

	return s.Await(ctx, t)
}

// Reset возвращает автомат в Idle из любого состояния. Ответ на запрос,
// отправленный до сброса, будет отброшен.
func (s *Service) Reset() {
	s.mu.Lock()
	s.generation++
	changed := s.state.Phase != models.PhaseIdle
	s.state = models.IdleState()
	cb := s.onChange
	s.mu.Unlock()

	if changed {
		s.notify(cb, models.IdleState())
	}
}

func (s *Service) interpret(resp *models.CalculationResponse, err error) (models.SubmissionState, string) {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			s.log.Warn("[SUBMIT] Request cancelled: %v", err)
		} else {
			s.log.Error("[SUBMIT] Transport failure: %v", err)
		}
		return models.SubmissionState{Phase: models.PhaseFailed, Message: MsgNetworkError}, OutcomeTransport
	}
	if resp == nil {
		s.log.Error("[SUBMIT] Empty response from calculator")
		return models.SubmissionState{Phase: models.PhaseFailed, Message: MsgNetworkError}, OutcomeTransport
	}
	if !resp.Success || resp.Result == nil {
		msg := resp.Error
		if msg == "" {
			msg = MsgCalculationFailed
		}
		s.log.Warn("[SUBMIT] Server rejected calculation: %s", msg)
		return models.SubmissionState{Phase: models.PhaseFailed, Message: msg}, OutcomeRejected
	}

	s.log.Info("[SUBMIT] Calculation succeeded: %d fiscal years", len(resp.Result.FiscalYears))
	return models.SubmissionState{Phase: models.PhaseSucceeded, Result: resp.Result}, OutcomeSuccess
}

func (s *Service) notify(cb func(models.SubmissionState), state models.SubmissionState) {
	if cb != nil {
		cb(state)
	}
}
