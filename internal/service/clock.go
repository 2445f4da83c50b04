package service

import "time"

// Clock abstracts the current time so date-sensitive calculations are
// deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by the platform time.
func SystemClock() Clock { return systemClock{} }
