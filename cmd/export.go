package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/teemow/hebcal/internal/config"
	"github.com/teemow/hebcal/internal/hebcal"
	"github.com/teemow/hebcal/internal/ics"
	"github.com/teemow/hebcal/internal/instrumentation"
	"github.com/teemow/hebcal/internal/logging"
	"github.com/teemow/hebcal/internal/server"
)

// exporter writes one week of items to an .ics file.
type exporter struct {
	client       *hebcal.Client
	profile      *config.Config
	flagSet      *pflag.FlagSet
	flags        *requestFlags
	path         string
	calendarName string
	metrics      *instrumentation.Metrics
	logger       *slog.Logger
}

// export fetches the week and replaces the file at e.path.
func (e *exporter) export(ctx context.Context, trigger string) (n int, err error) {
	defer func() {
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		if e.metrics != nil {
			e.metrics.RecordExport(ctx, trigger, status)
		}
	}()

	h, err := buildRequest(e.flagSet, e.client, e.profile, e.flags)
	if err != nil {
		return 0, err
	}

	result, err := h.Send(ctx)
	if err != nil {
		return 0, requestError(err)
	}

	data, err := ics.Encode(result, ics.Options{CalendarName: e.calendarName})
	if err != nil {
		return 0, err
	}

	if err := writeFileAtomic(e.path, []byte(data), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", e.path, err)
	}

	e.logger.Info("exported calendar",
		logging.Operation("export"),
		slog.String("trigger", trigger),
		slog.String("path", e.path),
		slog.Int("items", len(result.Items)))
	return len(result.Items), nil
}

func newExportCmd() *cobra.Command {
	var (
		flags        requestFlags
		path         string
		schedule     string
		calendarName string
		metricsAddr  string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export this week's Shabbat times as an iCalendar file",
		Long: `Write candle-lighting, parashat and havdalah times to an .ics file that
calendar applications can import or subscribe to.

With --schedule the file is exported once immediately and then again on
every tick of the cron expression until interrupted. The path, calendar
name and schedule default to the export section of the profile.

Examples:
  hebcal export --zip 90210 --path ~/calendars/shabbat.ics
  hebcal export --geonameid 281184 --schedule "0 6 * * 5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := loadProfile()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("path") {
				path = profile.Export.Path
			}
			if !cmd.Flags().Changed("schedule") {
				schedule = profile.Export.Schedule
			}
			if !cmd.Flags().Changed("calendar-name") {
				calendarName = profile.Export.CalendarName
			}
			if path == "" {
				path = config.DefaultExportPath
			}

			return runExport(cmd, profile, &flags, path, schedule, calendarName, metricsAddr)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&path, "path", config.DefaultExportPath, "Output .ics file")
	cmd.Flags().StringVar(&schedule, "schedule", "", `Cron expression to re-export on, e.g. "0 6 * * 5"`)
	cmd.Flags().StringVar(&calendarName, "calendar-name", "", "Calendar name (default: the result title)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while scheduled")

	return cmd
}

func runExport(cmd *cobra.Command, profile *config.Config, flags *requestFlags, path, schedule, calendarName, metricsAddr string) error {
	logger := slog.Default()

	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	instrConfig, err := instrumentation.ConfigFromEnv(instrumentation.ComponentExport, version)
	if err != nil {
		return err
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("error during instrumentation shutdown", "error", err)
		}
	}()

	if schedule != "" && metricsAddr != "" && !provider.HasPrometheus() {
		return fmt.Errorf("--metrics-addr needs the prometheus metrics exporter (INSTRUMENTATION_ENABLED=true, METRICS_EXPORTER=prometheus)")
	}

	var metrics *instrumentation.Metrics
	var recorder hebcal.MetricsRecorder
	if provider.Enabled() {
		metrics = provider.Metrics()
		recorder = metrics
	}

	client, err := newClient(logger, recorder)
	if err != nil {
		return err
	}

	e := &exporter{
		client:       client,
		profile:      profile,
		flagSet:      cmd.Flags(),
		flags:        flags,
		path:         path,
		calendarName: calendarName,
		metrics:      metrics,
		logger:       logger,
	}

	if schedule == "" {
		n, err := e.export(ctx, instrumentation.TriggerManual)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", n, path)
		return nil
	}

	if metricsAddr != "" {
		metricsServer, err := server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	return runScheduledExport(ctx, e, schedule)
}

// runScheduledExport exports once, then on every tick of schedule until
// ctx is done. Failed runs are logged and retried on the next tick.
func runScheduledExport(ctx context.Context, e *exporter, schedule string) error {
	if _, err := e.export(ctx, instrumentation.TriggerManual); err != nil {
		e.logger.Error("initial export failed", logging.Err(err))
	}

	c := cron.New(cron.WithLogger(logging.NewSlogAdapter(e.logger)))
	if _, err := c.AddFunc(schedule, func() {
		if _, err := e.export(ctx, instrumentation.TriggerSchedule); err != nil {
			e.logger.Error("scheduled export failed", logging.Err(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	c.Start()
	e.logger.Info("export scheduled", slog.String("schedule", schedule), slog.String("path", e.path))

	<-ctx.Done()
	e.logger.Info("shutdown signal received, waiting for running exports")
	<-c.Stop().Done()
	return nil
}

// writeFileAtomic replaces path with data so that readers never see a
// partial calendar.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".hebcal-export-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
