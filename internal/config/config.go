// Package config загружает настройки приложения из окружения и файла .env.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"vehicletax/pkg/bsdate"
)

// Config настройки формы расчёта.
type Config struct {
	// Endpoint адрес расчётного эндпоинта
	Endpoint string
	// CSRFToken токен, если сервер не выдаёт его в cookie
	CSRFToken string
	// StateFile файл снимков формы
	StateFile string
	// FormID ключ снимка формы
	FormID string

	DateRange      bsdate.Range
	Debounce       time.Duration
	SuccessDismiss time.Duration
	HTTPTimeout    time.Duration

	Locale      language.Tag
	LogLevel    string
	LogEncoding string

	// CatalogPath YAML-справочник; пусто означает встроенный
	CatalogPath string
}

// LoadEnvFile подгружает переменные из .env файлов (по умолчанию ./.env).
// Уже заданные переменные окружения не перезаписываются.
func LoadEnvFile(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// Load читает настройки из переменных окружения VTAX_*.
func Load() (*Config, error) {
	cfg := &Config{
		Endpoint:    getEnv("VTAX_ENDPOINT", "http://127.0.0.1:8080/calculate/"),
		CSRFToken:   getEnv("VTAX_CSRF_TOKEN", ""),
		StateFile:   getEnv("VTAX_STATE_FILE", defaultStateFile()),
		FormID:      getEnv("VTAX_FORM_ID", "vehicle_tax_form"),
		LogLevel:    getEnv("VTAX_LOG_LEVEL", "info"),
		LogEncoding: getEnv("VTAX_LOG_FORMAT", "console"),
		CatalogPath: getEnv("VTAX_CATALOG", ""),
		DateRange: bsdate.Range{
			MinYear: parseInt(getEnv("VTAX_MIN_YEAR", ""), bsdate.DefaultRange.MinYear),
			MaxYear: parseInt(getEnv("VTAX_MAX_YEAR", ""), bsdate.DefaultRange.MaxYear),
		},
		Debounce:       parseDuration(getEnv("VTAX_DEBOUNCE", ""), 400*time.Millisecond),
		SuccessDismiss: parseDuration(getEnv("VTAX_SUCCESS_DISMISS", ""), 5*time.Second),
		HTTPTimeout:    parseDuration(getEnv("VTAX_HTTP_TIMEOUT", ""), 30*time.Second),
	}

	locale, err := language.Parse(getEnv("VTAX_LOCALE", "en-IN"))
	if err != nil {
		return nil, fmt.Errorf("invalid VTAX_LOCALE: %w", err)
	}
	cfg.Locale = locale

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Endpoint) == "" {
		errs = append(errs, errors.New("VTAX_ENDPOINT must be set"))
	}
	if c.DateRange.MinYear > c.DateRange.MaxYear {
		errs = append(errs, fmt.Errorf("year range %d-%d is empty", c.DateRange.MinYear, c.DateRange.MaxYear))
	}
	if c.Debounce <= 0 {
		errs = append(errs, errors.New("VTAX_DEBOUNCE must be positive"))
	}
	if c.SuccessDismiss <= 0 {
		errs = append(errs, errors.New("VTAX_SUCCESS_DISMISS must be positive"))
	}
	return errors.Join(errs...)
}

func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vehicletax_state.json"
	}
	return filepath.Join(dir, "vehicletax", "state.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, defaultValue int) int {
	if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return i
	}
	return defaultValue
}

// parseDuration понимает "400ms", "5s" и число миллисекунд.
func parseDuration(s string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	if i, err := strconv.Atoi(s); err == nil {
		return time.Duration(i) * time.Millisecond
	}
	return defaultValue
}
