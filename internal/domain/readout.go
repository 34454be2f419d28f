package domain

import "fmt"

// Readout splits an elapsed duration into the clock face the display shows.
type Readout struct {
	TotalMs      int64
	Negative     bool
	Minutes      int64 // (ms / 60000) mod 60
	Seconds      int64 // (ms / 1000) mod 60
	Milliseconds int64 // ms mod 1000
}

// NewReadout builds the readout for ms. A negative total, which only a skewed
// host clock can produce, is split on its magnitude and flagged.
func NewReadout(ms int64) Readout {
	r := Readout{TotalMs: ms}
	if ms < 0 {
		r.Negative = true
		ms = -ms
	}
	r.Minutes = (ms / 60000) % 60
	r.Seconds = (ms / 1000) % 60
	r.Milliseconds = ms % 1000
	return r
}

// String renders the readout as m:ss.mmm.
func (r Readout) String() string {
	sign := ""
	if r.Negative {
		sign = "-"
	}
	return fmt.Sprintf("%s%d:%02d.%03d", sign, r.Minutes, r.Seconds, r.Milliseconds)
}
