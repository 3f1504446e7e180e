package services

import "time"

// Clock supplies the current instant to workflow code. Injecting it keeps
// decision and audit timestamps deterministic under test.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// SystemClock returns a Clock backed by time.Now in UTC.
func SystemClock() Clock {
	return systemClock{}
}
