//go:build windows

package main

import (
	"vehicletax/internal/app"
	"vehicletax/internal/config"
	"vehicletax/internal/infrastructure/logger"
	"vehicletax/internal/ui"
)

func main() {
	// 1. Load .env (optional) and configuration
	envErr := config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// 2. Initialize logger (infrastructure)
	log, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		panic(err)
	}
	log.Info("Application starting")
	if envErr != nil {
		log.Debug("No .env file loaded: %v", envErr)
	}

	// 3. Build services, view model and controller
	a, err := app.New(cfg, log, app.Options{})
	if err != nil {
		log.Fatal("Failed to initialize application: %v", err)
	}

	// 4. Run the GUI application
	log.Info("Initialization complete, starting GUI")
	if err := ui.Run(a.Controller); err != nil {
		log.Fatal("GUI error: %v", err)
	}
}
