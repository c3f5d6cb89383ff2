package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"vehicletax/internal/config"
	"vehicletax/internal/infrastructure/logger"
	"vehicletax/internal/stubcalc"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	token := flag.String("csrf", "", "require this anti-forgery token")
	flag.Parse()

	// .env необязателен
	_ = config.LoadEnvFile()

	log, err := logger.NewZapLogger(os.Getenv("VTAX_LOG_LEVEL"), "console")
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := stubcalc.NewRouter(stubcalc.Config{
		CSRFToken: *token,
		DateRange: cfg.DateRange,
		Registry:  prometheus.NewRegistry(),
	})

	server := &http.Server{
		Addr:              *addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Stub calculation server listening on %s%s", *addr, stubcalc.CalculatePath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		log.Fatal("Server error: %v", err)
	case sig := <-quit:
		log.Info("Received signal: %v", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
}
