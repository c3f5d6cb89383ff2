package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
	"vehicletax/internal/service/notification"
	"vehicletax/internal/service/persistence"
	"vehicletax/internal/service/submission"
	"vehicletax/internal/service/validation"
	"vehicletax/internal/ui/report"
	"vehicletax/internal/ui/viewmodel"
	"vehicletax/pkg/bsdate"
)

// DefaultDebounce задержка проверки поля после последнего ввода.
const DefaultDebounce = 400 * time.Millisecond

// Dependencies зависимости контроллера формы.
type Dependencies struct {
	Engine    *validation.Engine
	Rules     *validation.RuleSet
	Cache     *persistence.Cache
	Submitter *submission.Service
	Notifier  *notification.Center
	Presenter *report.Presenter
	Catalog   models.Catalog
	Scheduler ports.Scheduler
	Metrics   ports.Metrics
	Logger    ports.Logger

	// Debounce задержка проверки при вводе; 0 означает DefaultDebounce
	Debounce time.Duration

	// Now источник времени для печатной формы; nil означает time.Now
	Now func() time.Time
}

// FormController управляет формой расчёта налога: ввод, проверка, автосохранение,
// отправка, сброс и печать. Методы безопасны для вызова из UI-горутины
// параллельно с таймерами и сетевой горутиной.
type FormController struct {
	deps  Dependencies
	rules *validation.RuleSet

	mu         sync.Mutex
	vm         *viewmodel.FormViewModel
	state      models.FormState
	result     *models.CalculationResult
	timers     map[string]debounceTimer
	timerSeq   uint64
	generation uint64
	inFlight   bool
	onUpdate   func()

	wg sync.WaitGroup
}

// NewFormController создает контроллер и подписывается на сервисы отправки и уведомлений.
func NewFormController(vm *viewmodel.FormViewModel, deps Dependencies) *FormController {
	if deps.Debounce <= 0 {
		deps.Debounce = DefaultDebounce
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	rules := deps.Rules
	if rules == nil {
		rules = validation.DefaultRuleSet()
	}

	c := &FormController{
		deps:   deps,
		rules:  rules.Clone(),
		vm:     vm,
		state:  models.NewFormState(),
		timers: make(map[string]debounceTimer),
	}

	deps.Submitter.SetOnChange(c.onSubmissionChange)
	deps.Notifier.SetOnChange(c.onNotificationChange)
	return c
}

// ViewModel возвращает снимок модели данных для UI.
func (c *FormController) ViewModel() viewmodel.FormViewModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vm.Clone()
}

// State возвращает копию состояния формы.
func (c *FormController) State() models.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetOnUpdate устанавливает callback для обновления пользовательского интерфейса.
func (c *FormController) SetOnUpdate(callback func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUpdate = callback
}

// OnFieldChange обрабатывает ввод в поле: форматирует даты, переключает поле
// объёма/мощности при смене категории, сразу сохраняет снимок и откладывает проверку поля.
func (c *FormController) OnFieldChange(name, raw string) {
	c.mu.Lock()
	if _, ok := c.rules.Lookup(name); !ok {
		c.mu.Unlock()
		c.deps.Logger.Debug("[FORM] Ignoring change of unknown field %q", name)
		return
	}

	value := raw
	if c.isDateField(name) {
		value = bsdate.Format(raw)
	}
	c.setValueLocked(name, value)
	c.state.Dirty[name] = true

	if name == models.FieldCategory {
		c.applyCategoryLocked(value)
	}

	c.scheduleValidationLocked(name)
	snapshot := c.state.Clone()
	c.mu.Unlock()

	c.deps.Cache.Save(snapshot)
	c.notifyUpdate()
}

// OnFieldBlur проверяет поле сразу, отменяя отложенную проверку.
func (c *FormController) OnFieldBlur(name string) {
	c.mu.Lock()
	if _, ok := c.rules.Lookup(name); !ok {
		c.mu.Unlock()
		return
	}
	c.stopTimerLocked(name)
	c.validateFieldLocked(name)
	c.mu.Unlock()

	c.notifyUpdate()
}

// OnSubmit проверяет форму и, если она корректна, запускает отправку в отдельной горутине.
// Некорректная форма отмечает поля и показывает предупреждение; возвращается *ValidationError.
// Пока предыдущая отправка не завершена, возвращает submission.ErrInProgress без запроса.
func (c *FormController) OnSubmit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.deps.Metrics.SubmissionRejected("in_progress")
		c.deps.Logger.Debug("[FORM] Submit ignored: calculation in progress")
		return submission.ErrInProgress
	}

	errs := c.deps.Engine.ValidateForm(c.state, c.rules)
	c.stopAllTimersLocked()
	c.applyMarkersLocked(errs)

	if len(errs) > 0 {
		c.mu.Unlock()
		for _, e := range errs {
			c.deps.Metrics.ValidationFailed(e.Field)
		}
		c.deps.Metrics.SubmissionRejected("invalid")
		c.deps.Logger.Info("[FORM] Submit rejected: %d invalid fields", len(errs))
		c.deps.Notifier.Notify(models.NotifyWarning, MsgInvalidForm)
		c.notifyUpdate()
		return &ValidationError{Message: MsgInvalidForm, Fields: errs}
	}

	ticket, err := c.deps.Submitter.Begin(c.state)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.inFlight = true
	c.vm.Loading = true
	generation := c.generation
	c.wg.Add(1)
	c.mu.Unlock()

	c.notifyUpdate()

	go func() {
		defer c.wg.Done()
		state, err := c.deps.Submitter.Await(ctx, ticket)
		c.finishSubmission(generation, state, err)
	}()
	return nil
}

// OnReset очищает форму, скрывает поле объёма/мощности, удаляет снимок,
// снимает маркеры ошибок, результат и уведомление, возвращает отправку в Idle.
func (c *FormController) OnReset() {
	c.mu.Lock()
	c.stopAllTimersLocked()
	c.generation++
	c.inFlight = false
	c.state = models.NewFormState()
	c.result = nil
	c.vm.Values = make(map[string]string)
	c.vm.Errors = make(map[string]string)
	c.vm.Result = nil
	c.vm.Loading = false
	c.applyCategoryLocked("")
	c.mu.Unlock()

	c.deps.Cache.Clear()
	c.deps.Submitter.Reset()
	c.deps.Notifier.Clear()
	c.deps.Logger.Info("[FORM] Form reset")
	c.notifyUpdate()
}

// OnPrint формирует печатную форму последнего успешного результата.
func (c *FormController) OnPrint() ([]byte, error) {
	c.mu.Lock()
	if c.vm.Result == nil {
		c.mu.Unlock()
		return nil, ErrNoResult
	}
	model := *c.vm.Result
	c.mu.Unlock()

	return report.PrintView(model, c.deps.Now())
}

// OnKey обрабатывает горячие клавиши: Ctrl+Enter отправляет форму, Escape сбрасывает.
// Возвращает true, если клавиша обработана.
func (c *FormController) OnKey(ev KeyEvent) bool {
	switch {
	case ev.Key == KeyEnter && ev.Ctrl:
		if err := c.OnSubmit(context.Background()); err != nil {
			c.deps.Logger.Debug("[FORM] Ctrl+Enter submit: %v", err)
		}
		return true
	case ev.Key == KeyEscape:
		c.OnReset()
		return true
	}
	return false
}

// Restore заполняет форму из сохранённого снимка. Снимок не перезаписывается,
// проверка не запускается; видимость поля объёма/мощности пересчитывается по категории.
func (c *FormController) Restore() bool {
	saved, ok := c.deps.Cache.Load()
	if !ok {
		return false
	}

	c.mu.Lock()
	for _, name := range models.FormFields {
		if value := saved.Get(name); value != "" {
			c.setValueLocked(name, value)
		}
	}
	c.applyCategoryLocked(c.state.Get(models.FieldCategory))
	c.mu.Unlock()

	c.deps.Logger.Info("[FORM] Restored saved form %s", c.deps.Cache.FormID())
	c.notifyUpdate()
	return true
}

// Wait ждёт завершения запущенных отправок.
func (c *FormController) Wait() {
	c.wg.Wait()
}

func (c *FormController) finishSubmission(generation uint64, state models.SubmissionState, err error) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		c.deps.Logger.Debug("[FORM] Dropping submission outcome after reset")
		return
	}
	c.inFlight = false

	if err != nil {
		c.mu.Unlock()
		if !errors.Is(err, submission.ErrStale) {
			c.deps.Logger.Warn("[FORM] Submission error: %v", err)
		}
		c.notifyUpdate()
		return
	}

	var kind models.NotificationKind
	var msg string
	switch state.Phase {
	case models.PhaseSucceeded:
		c.result = state.Result
		model := c.deps.Presenter.Present(state.Result)
		c.vm.Result = &model
		kind, msg = models.NotifySuccess, MsgCalculated
	default:
		c.result = nil
		c.vm.Result = nil
		kind, msg = models.NotifyError, state.Message
	}
	c.mu.Unlock()

	h := c.deps.Notifier.Notify(kind, msg)

	// сброс между проверкой поколения и показом уведомления
	c.mu.Lock()
	reset := generation != c.generation
	c.mu.Unlock()
	if reset {
		c.deps.Notifier.Dismiss(h)
	}
	c.notifyUpdate()
}

func (c *FormController) onSubmissionChange(s models.SubmissionState) {
	c.mu.Lock()
	c.vm.Loading = s.Phase == models.PhaseSubmitting
	c.mu.Unlock()
	c.notifyUpdate()
}

func (c *FormController) onNotificationChange(n *models.Notification) {
	c.mu.Lock()
	c.vm.Notification = n
	c.mu.Unlock()
	c.notifyUpdate()
}

// applyCategoryLocked показывает поле объёма/мощности и делает его обязательным
// только для категорий с признаком в справочнике. Скрытое поле очищается.
func (c *FormController) applyCategoryLocked(categoryID string) {
	visible := false
	if cat, ok := c.deps.Catalog.FindCategory(categoryID); ok {
		visible = cat.HasDisplacementField
	}

	c.vm.CCPowerVisible = visible
	c.rules.SetRequired(models.FieldCCPower, visible)

	if !visible {
		c.stopTimerLocked(models.FieldCCPower)
		c.setValueLocked(models.FieldCCPower, "")
		delete(c.state.Dirty, models.FieldCCPower)
		delete(c.state.Valid, models.FieldCCPower)
		delete(c.vm.Errors, models.FieldCCPower)
	}
}

// debounceTimer отложенная проверка поля; seq отличает её от перезапущенной.
type debounceTimer struct {
	timer ports.Timer
	seq   uint64
}

func (c *FormController) scheduleValidationLocked(name string) {
	c.stopTimerLocked(name)
	c.timerSeq++
	seq := c.timerSeq
	t := c.deps.Scheduler.AfterFunc(c.deps.Debounce, func() {
		c.mu.Lock()
		// таймер уже сработал, когда его останавливали: проверку ведёт новый таймер
		if current, ok := c.timers[name]; !ok || current.seq != seq {
			c.mu.Unlock()
			return
		}
		delete(c.timers, name)
		c.validateFieldLocked(name)
		c.mu.Unlock()
		c.notifyUpdate()
	})
	c.timers[name] = debounceTimer{timer: t, seq: seq}
}

// validateFieldLocked обновляет маркер поля. Изменение одной из дат
// также пересчитывает правило порядка дат на next_payment_date.
func (c *FormController) validateFieldLocked(name string) {
	c.setMarkerLocked(name, c.deps.Engine.ValidateFieldInForm(c.state, c.rules, name))

	if name == models.FieldLastPaidDate && c.state.Get(models.FieldNextPaymentDate) != "" {
		next := models.FieldNextPaymentDate
		c.setMarkerLocked(next, c.deps.Engine.ValidateFieldInForm(c.state, c.rules, next))
	}
}

// applyMarkersLocked выставляет маркеры по результату проверки всей формы.
func (c *FormController) applyMarkersLocked(errs []models.ValidationError) {
	c.vm.Errors = make(map[string]string)
	for _, rule := range c.rules.Rules() {
		c.state.Valid[rule.Field] = true
	}
	for _, e := range errs {
		if _, exists := c.vm.Errors[e.Field]; !exists {
			c.vm.Errors[e.Field] = e.Message
		}
		c.state.Valid[e.Field] = false
	}
}

func (c *FormController) setMarkerLocked(name string, verr *models.ValidationError) {
	if verr != nil {
		c.vm.Errors[name] = verr.Message
		c.state.Valid[name] = false
		return
	}
	delete(c.vm.Errors, name)
	c.state.Valid[name] = true
}

func (c *FormController) setValueLocked(name, value string) {
	if value == "" {
		delete(c.state.Values, name)
		delete(c.vm.Values, name)
		return
	}
	c.state.Values[name] = value
	c.vm.Values[name] = value
}

func (c *FormController) isDateField(name string) bool {
	rule, ok := c.rules.Lookup(name)
	return ok && rule.Kind == validation.KindDate
}

func (c *FormController) stopTimerLocked(name string) {
	if t, ok := c.timers[name]; ok {
		t.timer.Stop()
		delete(c.timers, name)
	}
}

func (c *FormController) stopAllTimersLocked() {
	for name, t := range c.timers {
		t.timer.Stop()
		delete(c.timers, name)
	}
}

// notifyUpdate вызывает callback для обновления UI, если он установлен.
func (c *FormController) notifyUpdate() {
	c.mu.Lock()
	cb := c.onUpdate
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
}
