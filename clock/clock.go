// Package clock supplies the time source the launchpad gates its epochs on.
//
// The engine never calls time.Now directly. Production code uses System;
// tests and replays use Mock to step through the staking, sale and vesting
// windows deterministically. Any github.com/benbjohnson/clock Clock also
// satisfies Clock.
package clock

import (
	"time"

	bclock "github.com/benbjohnson/clock"
)

// Clock reports the current time. Successive readings must be monotonic or
// equal; equal readings are valid and common in tests.
type Clock interface {
	Now() time.Time
}

var wall = bclock.New()

// System reads the wall clock in UTC.
type System struct{}

// Now implements Clock.
func (System) Now() time.Time { return wall.Now().UTC() }

// Mock is a settable Clock. It is safe for concurrent use.
type Mock struct {
	m *bclock.Mock
}

// NewMock returns a Mock frozen at t.
func NewMock(t time.Time) *Mock {
	m := bclock.NewMock()
	m.Set(t.UTC())
	return &Mock{m: m}
}

// Now implements Clock.
func (m *Mock) Now() time.Time { return m.m.Now() }

// Set moves the clock to t. Moving backwards is allowed so tests can revisit
// earlier phases, but the engine itself only expects forward motion.
func (m *Mock) Set(t time.Time) { m.m.Set(t.UTC()) }

// Advance moves the clock forward by d.
func (m *Mock) Advance(d time.Duration) { m.m.Add(d) }

