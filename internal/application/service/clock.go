package service

import "time"

// Clock supplies the current time to services. Scheduling and ledger dates
// must come from here so tests can pin a fixed instant.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns a wall-clock backed Clock
func NewClock() Clock { return realClock{} }

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }
