// Package app собирает зависимости формы расчёта из конфигурации.
package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"vehicletax/internal/config"
	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
	"vehicletax/internal/infrastructure/calcapi"
	"vehicletax/internal/infrastructure/clock"
	"vehicletax/internal/infrastructure/metrics"
	"vehicletax/internal/infrastructure/storage"
	"vehicletax/internal/service/notification"
	"vehicletax/internal/service/persistence"
	"vehicletax/internal/service/submission"
	"vehicletax/internal/service/validation"
	"vehicletax/internal/ui/controller"
	"vehicletax/internal/ui/report"
	"vehicletax/internal/ui/viewmodel"
)

// App корень композиции: конфигурация, справочник и контроллер формы.
type App struct {
	Config     *config.Config
	Catalog    models.Catalog
	Controller *controller.FormController
	Metrics    *metrics.Recorder
}

// Options необязательные зависимости для подмены в тестах.
type Options struct {
	Calculator ports.Calculator
	Store      ports.SnapshotStore
	Scheduler  ports.Scheduler
	Registerer prometheus.Registerer
}

// New создает приложение. Незаданные в opts зависимости строятся по конфигурации.
func New(cfg *config.Config, log ports.Logger, opts Options) (*App, error) {
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	calc := opts.Calculator
	if calc == nil {
		client, err := calcapi.New(calcapi.Config{
			Endpoint:  cfg.Endpoint,
			CSRFToken: cfg.CSRFToken,
			Timeout:   cfg.HTTPTimeout,
			Logger: func(msg string) {
				log.Debug("[HTTP] %s", msg)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create calculation client: %w", err)
		}
		calc = client
	}

	store := opts.Store
	if store == nil {
		store = storage.NewFileSnapshotStore(cfg.StateFile)
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = clock.NewRealScheduler()
	}

	recorder := metrics.NewRecorder(opts.Registerer)

	ctrl := controller.NewFormController(viewmodel.NewFormViewModel(catalog), controller.Dependencies{
		Engine:    validation.NewEngine(cfg.DateRange),
		Rules:     validation.DefaultRuleSet(),
		Cache:     persistence.NewCache(store, cfg.FormID, log),
		Submitter: submission.NewService(calc, recorder, log),
		Notifier:  notification.NewCenter(sched, cfg.SuccessDismiss),
		Presenter: report.NewPresenter(report.NewMoneyFormatter(cfg.Locale)),
		Catalog:   catalog,
		Scheduler: sched,
		Metrics:   recorder,
		Logger:    log,
		Debounce:  cfg.Debounce,
	})

	return &App{
		Config:     cfg,
		Catalog:    catalog,
		Controller: ctrl,
		Metrics:    recorder,
	}, nil
}
