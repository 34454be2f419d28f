package domain

// TimeEntry is one contiguous running interval of the stopwatch.
type TimeEntry struct {
	StartedAt int64  // milliseconds since the host clock's epoch
	ElapsedMs *int64 // nil while the interval is still running
}

// Open reports whether the interval is still running.
func (e TimeEntry) Open() bool { return e.ElapsedMs == nil }

func openEntry(t int64) TimeEntry {
	return TimeEntry{StartedAt: t}
}

// closeEntry returns a replacement of e closed at t. t earlier than StartedAt
// yields a negative duration; it is not clamped.
func closeEntry(e TimeEntry, t int64) TimeEntry {
	elapsed := t - e.StartedAt
	return TimeEntry{StartedAt: e.StartedAt, ElapsedMs: &elapsed}
}
