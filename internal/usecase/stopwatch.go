package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"stopwatch/internal/domain"
	"stopwatch/internal/ports"
)

// archiveTimeout bounds how long a reset waits on its sinks.
const archiveTimeout = 30 * time.Second

// Snapshot is what a display needs to redraw.
type Snapshot struct {
	Status    domain.Status
	ElapsedMs int64
	Readout   domain.Readout
	Intervals int
	At        int64
}

// Control returns the affordance the display should offer: pause while
// running, start otherwise.
func (s Snapshot) Control() string {
	if s.Status == domain.StatusRunning {
		return "pause"
	}
	return "start"
}

// StopwatchUseCase owns the single live stopwatch. It reads the clock for
// every command and serializes all access to the state.
type StopwatchUseCase struct {
	Log   *slog.Logger
	Clock ports.Clock
	Sinks []ports.Sink
	// NewID names archived sessions; defaults to random UUIDs.
	NewID func() string

	mu    sync.Mutex
	state domain.State
}

// Start starts the stopwatch unless it is already running.
func (uc *StopwatchUseCase) Start() Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := uc.Clock.NowMs()
	uc.state = domain.Start(uc.state, now)
	uc.Log.Debug("stopwatch start", slog.Int64("at", now), slog.Int("intervals", len(uc.state.Entries)))
	return uc.snapshotLocked(now)
}

// Pause pauses the stopwatch if it is running.
func (uc *StopwatchUseCase) Pause() Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := uc.Clock.NowMs()
	uc.state = domain.Pause(uc.state, now)
	uc.Log.Debug("stopwatch pause", slog.Int64("at", now), slog.Int("intervals", len(uc.state.Entries)))
	return uc.snapshotLocked(now)
}

// Toggle pauses a running stopwatch and starts it otherwise, the behavior of
// a single start/pause control.
func (uc *StopwatchUseCase) Toggle() Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	now := uc.Clock.NowMs()
	if domain.StatusOf(uc.state) == domain.StatusRunning {
		uc.state = domain.Pause(uc.state, now)
	} else {
		uc.state = domain.Start(uc.state, now)
	}
	uc.Log.Debug("stopwatch toggle", slog.Int64("at", now), slog.String("status", string(domain.StatusOf(uc.state))))
	return uc.snapshotLocked(now)
}

// Reset clears the stopwatch and archives the finished session to every sink.
// The stopwatch is cleared even when archiving fails; the returned error only
// reports sink failures. Archiving outlives cancellation of ctx, since the
// cleared session cannot be archived again.
func (uc *StopwatchUseCase) Reset(ctx context.Context) (Snapshot, error) {
	uc.mu.Lock()
	now := uc.Clock.NowMs()
	session, ok := domain.CloseSession(uc.state, uc.newID(), now)
	uc.state = domain.Reset(uc.state)
	snap := uc.snapshotLocked(now)
	uc.mu.Unlock()

	if !ok {
		uc.Log.Debug("stopwatch reset with nothing to archive")
		return snap, nil
	}
	uc.Log.Info("stopwatch reset",
		slog.String("session", session.ID),
		slog.Int64("elapsed_ms", session.TotalElapsedMs),
		slog.Int("intervals", len(session.Intervals)),
	)
	archiveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()
	return snap, uc.archive(archiveCtx, session)
}

// Snapshot reports the current status and elapsed time without changing state.
func (uc *StopwatchUseCase) Snapshot() Snapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked(uc.Clock.NowMs())
}

func (uc *StopwatchUseCase) snapshotLocked(now int64) Snapshot {
	elapsed := domain.TotalElapsedMs(uc.state, now)
	return Snapshot{
		Status:    domain.StatusOf(uc.state),
		ElapsedMs: elapsed,
		Readout:   domain.NewReadout(elapsed),
		Intervals: len(uc.state.Entries),
		At:        now,
	}
}

func (uc *StopwatchUseCase) archive(ctx context.Context, session domain.Session) error {
	var errs []error
	for _, sink := range uc.Sinks {
		if err := sink.ArchiveSession(ctx, session); err != nil {
			uc.Log.Error("archive session failed", slog.String("session", session.ID), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("archive session %s: %w", session.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (uc *StopwatchUseCase) newID() string {
	if uc.NewID != nil {
		return uc.NewID()
	}
	return uuid.NewString()
}
