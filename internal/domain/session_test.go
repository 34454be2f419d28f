package domain

import "testing"

func TestCloseSessionStopped(t *testing.T) {
	if _, ok := CloseSession(State{}, "id", 10); ok {
		t.Fatalf("expected no session for a stopped stopwatch")
	}
}

func TestCloseSessionClosesRunningInterval(t *testing.T) {
	s := Start(Pause(Start(State{}, 0), 1000), 1500)
	sess, ok := CloseSession(s, "abc", 2000)
	if !ok {
		t.Fatalf("expected a session")
	}
	if sess.ID != "abc" || sess.StartedAt != 0 || sess.EndedAt != 2000 {
		t.Fatalf("unexpected session bounds: %+v", sess)
	}
	if sess.TotalElapsedMs != 1500 {
		t.Fatalf("expected 1500ms total, got %d", sess.TotalElapsedMs)
	}
	if len(sess.Intervals) != 2 || sess.Intervals[1].Open() {
		t.Fatalf("expected two closed intervals, got %+v", sess.Intervals)
	}
	if !s.Entries[1].Open() {
		t.Fatalf("closing a session must not close the live interval")
	}
}

func TestCloseSessionPaused(t *testing.T) {
	s := Pause(Start(State{}, 100), 400)
	sess, ok := CloseSession(s, "p", 9000)
	if !ok {
		t.Fatalf("expected a session")
	}
	if sess.TotalElapsedMs != 300 || sess.EndedAt != 9000 {
		t.Fatalf("unexpected session: %+v", sess)
	}
}
