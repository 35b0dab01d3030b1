package ratelimit

import "time"

// SetNow replaces the clock for tests.
func (l *Limiter) SetNow(now func() time.Time) { l.now = now }
