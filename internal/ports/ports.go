package ports

import (
	"context"

	"stopwatch/internal/domain"
)

// Clock supplies the timestamps fed into the stopwatch, in milliseconds.
// Implementations must not go backwards; the stopwatch does not check.
type Clock interface {
	NowMs() int64
}

// Sink receives finished sessions and persists them to a target system.
type Sink interface {
	ArchiveSession(ctx context.Context, session domain.Session) error
}
