package clock

import "time"

// Monotonic implements ports.Clock. Readings are Unix milliseconds anchored at
// construction and advanced by the process monotonic clock, so wall clock
// adjustments after startup do not leak into elapsed times.
type Monotonic struct {
	base time.Time
}

func NewMonotonic() *Monotonic {
	return &Monotonic{base: time.Now()}
}

// NowMs returns the current reading.
func (c *Monotonic) NowMs() int64 {
	return c.base.UnixMilli() + time.Since(c.base).Milliseconds()
}
