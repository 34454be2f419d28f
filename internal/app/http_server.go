package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"stopwatch/internal/usecase"
)

// HTTPServer returns a configured http.Server that exposes the stopwatch controls.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeSnapshot(w, a.uc.Snapshot(), nil)
	})

	mux.HandleFunc("/start", command(a.uc.Start))
	mux.HandleFunc("/pause", command(a.uc.Pause))
	mux.HandleFunc("/toggle", command(a.uc.Toggle))

	// A failed archive does not undo the reset, so the response is still 200.
	mux.HandleFunc("/reset", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		snap, err := a.uc.Reset(r.Context())
		writeSnapshot(w, snap, err)
	})

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http control server configured", slog.String("addr", addr))
	return srv
}

func command(run func() usecase.Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeSnapshot(w, run(), nil)
	}
}

type snapshotResponse struct {
	Status       string `json:"status"`
	ElapsedMs    int64  `json:"elapsed_ms"`
	Display      string `json:"display"`
	Minutes      int64  `json:"minutes"`
	Seconds      int64  `json:"seconds"`
	Milliseconds int64  `json:"milliseconds"`
	Control      string `json:"control"`
	Intervals    int    `json:"intervals"`
	AtMs         int64  `json:"at_ms"`
	ArchiveError string `json:"archive_error,omitempty"`
}

func writeSnapshot(w http.ResponseWriter, snap usecase.Snapshot, archiveErr error) {
	resp := snapshotResponse{
		Status:       string(snap.Status),
		ElapsedMs:    snap.ElapsedMs,
		Display:      snap.Readout.String(),
		Minutes:      snap.Readout.Minutes,
		Seconds:      snap.Readout.Seconds,
		Milliseconds: snap.Readout.Milliseconds,
		Control:      snap.Control(),
		Intervals:    snap.Intervals,
		AtMs:         snap.At,
	}
	if archiveErr != nil {
		resp.ArchiveError = archiveErr.Error()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}
