package app

import (
	"context"
	"log/slog"
	"time"

	"stopwatch/internal/adapter/clock"
	msql "stopwatch/internal/adapter/mysql"
	tg "stopwatch/internal/adapter/toggl"
	"stopwatch/internal/config"
	"stopwatch/internal/domain"
	"stopwatch/internal/migrate"
	"stopwatch/internal/ports"
	"stopwatch/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log     *slog.Logger
	uc      *usecase.StopwatchUseCase
	closers []func() error
}

func New(ctx context.Context, log *slog.Logger, cfg config.Config) (*App, error) {
	a := &App{log: log}
	var sinks []ports.Sink

	if cfg.MySQL.DSN != "" {
		// Run migrations before opening the sink for use
		if err := migrate.Run(ctx, cfg.MySQL.DSN, log); err != nil {
			return nil, err
		}
		sink, err := msql.NewClient(ctx, cfg.MySQL.DSN, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
		a.closers = append(a.closers, sink.Close)
		log.Info("mysql archive enabled")
	}
	if cfg.Toggl.APIToken != "" {
		sinks = append(sinks, tg.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Toggl.WorkspaceID, log))
		log.Info("toggl archive enabled", slog.Int64("workspace", cfg.Toggl.WorkspaceID))
	}

	a.uc = &usecase.StopwatchUseCase{
		Log:   log,
		Clock: clock.NewMonotonic(),
		Sinks: sinks,
	}
	return a, nil
}

// Stopwatch exposes the live stopwatch.
func (a *App) Stopwatch() *usecase.StopwatchUseCase { return a.uc }

// Refresh re-reads the stopwatch every interval and logs the readout while it
// runs, until ctx is done. It never changes the stopwatch. A non-positive
// interval falls back to one second.
func (a *App) Refresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := a.uc.Snapshot()
			if snap.Status != domain.StatusRunning {
				continue
			}
			a.log.Info("stopwatch",
				slog.String("display", snap.Readout.String()),
				slog.Int64("elapsed_ms", snap.ElapsedMs),
			)
		}
	}
}

// Close releases archive connections.
func (a *App) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
