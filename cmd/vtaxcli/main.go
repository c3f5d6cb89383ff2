package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"vehicletax/internal/app"
	"vehicletax/internal/config"
	"vehicletax/internal/domain/models"
	"vehicletax/internal/infrastructure/logger"
	"vehicletax/internal/ui/controller"
	"vehicletax/internal/ui/report"
)

const appVersion = "0.3.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile   string
		printFile   string
		metricsFile string
		reset       bool
		noRestore bool
	)
	fields := map[string]*string{}

	cmd := &cobra.Command{
		Use:           "vtaxcli",
		Short:         "Vehicle tax calculator client",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				if err := config.LoadEnvFile(envFile); err != nil {
					return err
				}
			} else {
				// .env необязателен
				_ = config.LoadEnvFile()
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.NewZapLogger(cfg.LogLevel, cfg.LogEncoding)
			if err != nil {
				return err
			}
			if s, ok := log.(interface{ Sync() error }); ok {
				defer s.Sync()
			}

			a, err := app.New(cfg, log, app.Options{})
			if err != nil {
				return err
			}
			ctrl := a.Controller

			if reset {
				ctrl.OnReset()
				fmt.Fprintln(cmd.OutOrStdout(), "Saved form cleared.")
				return nil
			}

			if !noRestore && ctrl.Restore() {
				log.Info("Restored saved form values")
			}
			for _, name := range models.FormFields {
				if cmd.Flags().Changed(flagName(name)) {
					ctrl.OnFieldChange(name, *fields[name])
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err = submit(ctx, cmd, ctrl, printFile, a.Config)
			if metricsFile != "" {
				if werr := writeMetrics(cmd, a, metricsFile); werr != nil {
					return errors.Join(err, werr)
				}
			}
			return err
		},
	}

	cmd.SetVersionTemplate("vtaxcli v{{.Version}}\n")
	cmd.Flags().StringVar(&envFile, "env", "", "Path to .env file (default ./.env if present)")
	cmd.Flags().StringVar(&printFile, "print", "", "Write printable HTML result to FILE")
	cmd.Flags().StringVar(&metricsFile, "metrics", "", "Write submission metrics in Prometheus text format to FILE (- for stdout)")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the saved form and exit")
	cmd.Flags().BoolVar(&noRestore, "no-restore", false, "Do not load previously saved values")

	usage := map[string]string{
		models.FieldRegType:         "Registration type id (e.g. private)",
		models.FieldCategory:        "Vehicle category id (e.g. motorcycle)",
		models.FieldCCPower:         "Engine displacement or power (categories with CC range only)",
		models.FieldLastPaidDate:    "Last paid date, BS YYYY-MM-DD",
		models.FieldNextPaymentDate: "Next payment date, BS YYYY-MM-DD",
	}
	for _, name := range models.FormFields {
		v := new(string)
		fields[name] = v
		cmd.Flags().StringVar(v, flagName(name), "", usage[name])
	}

	return cmd
}

func submit(ctx context.Context, cmd *cobra.Command, ctrl *controller.FormController, printFile string, cfg *config.Config) error {
	out := cmd.OutOrStdout()

	err := ctrl.OnSubmit(ctx)
	var verr *controller.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintln(cmd.ErrOrStderr(), verr.Message)
		for _, f := range verr.Fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f.Field, f.Message)
		}
		return verr
	}
	if err != nil {
		return err
	}
	ctrl.Wait()

	vm := ctrl.ViewModel()
	if vm.Result == nil {
		if vm.Notification != nil {
			return errors.New(vm.Notification.Message)
		}
		return errors.New("calculation produced no result")
	}

	fmt.Fprint(out, report.FormatText(*vm.Result))

	if printFile != "" {
		html, err := ctrl.OnPrint()
		if err != nil {
			return err
		}
		if err := os.WriteFile(printFile, html, 0644); err != nil {
			return fmt.Errorf("failed to write print view: %w", err)
		}
		fmt.Fprintf(out, "\nPrintable view written to %s\n", printFile)
	}
	return nil
}

// writeMetrics выгружает метрики сессии в файл или в stdout.
func writeMetrics(cmd *cobra.Command, a *app.App, path string) error {
	if path == "-" {
		return a.Metrics.WriteText(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create metrics file: %w", err)
	}
	if err := a.Metrics.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// flagName переводит имя поля формы в имя флага: last_paid_date -> last-paid-date.
func flagName(field string) string {
	b := []byte(field)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}
