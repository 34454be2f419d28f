package domain

// Status is derived from the entries of a State.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// State is the full stopwatch history since the last reset. The zero value is
// a stopped stopwatch.
type State struct {
	Entries []TimeEntry
}

// Start opens a new interval at t. Starting a running stopwatch is a no-op.
func Start(s State, t int64) State {
	if StatusOf(s) == StatusRunning {
		return s
	}
	entries := make([]TimeEntry, len(s.Entries), len(s.Entries)+1)
	copy(entries, s.Entries)
	return State{Entries: append(entries, openEntry(t))}
}

// Pause closes the running interval at t. Pausing a stopped or paused
// stopwatch is a no-op.
func Pause(s State, t int64) State {
	if StatusOf(s) != StatusRunning {
		return s
	}
	last := len(s.Entries) - 1
	entries := make([]TimeEntry, len(s.Entries))
	copy(entries, s.Entries[:last])
	entries[last] = closeEntry(s.Entries[last], t)
	return State{Entries: entries}
}

// Reset discards all intervals.
func Reset(State) State {
	return State{}
}

// StatusOf derives the status from the last entry.
func StatusOf(s State) Status {
	if len(s.Entries) == 0 {
		return StatusStopped
	}
	if s.Entries[len(s.Entries)-1].Open() {
		return StatusRunning
	}
	return StatusPaused
}

// TotalElapsedMs folds the history into the elapsed running time as seen at t.
// Closed intervals contribute their recorded duration, the open one t-StartedAt.
func TotalElapsedMs(s State, t int64) int64 {
	var total int64
	for _, e := range s.Entries {
		if e.Open() {
			total += t - e.StartedAt
			continue
		}
		total += *e.ElapsedMs
	}
	return total
}
