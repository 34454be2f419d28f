package domain

// Session is a finished stopwatch run, captured when the stopwatch is reset.
type Session struct {
	ID             string
	StartedAt      int64
	EndedAt        int64
	TotalElapsedMs int64
	Intervals      []TimeEntry // all closed
}

// CloseSession captures s as a session ending at t. An interval still running
// is closed at t in the record; s itself is left untouched. It returns false
// for a stopped stopwatch, which has nothing to record.
func CloseSession(s State, id string, t int64) (Session, bool) {
	if StatusOf(s) == StatusStopped {
		return Session{}, false
	}
	closed := Pause(s, t)
	return Session{
		ID:             id,
		StartedAt:      closed.Entries[0].StartedAt,
		EndedAt:        t,
		TotalElapsedMs: TotalElapsedMs(closed, t),
		Intervals:      closed.Entries,
	}, true
}
