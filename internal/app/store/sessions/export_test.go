package sessionstore

import "time"

// SetNow replaces the clock for tests.
func (s *Store) SetNow(now func() time.Time) { s.now = now }
