// Package clock abstracts the wall clock so seeding and other
// time-dependent code can be tested.
package clock

import "time"

// Clock reports the current time
type Clock interface {
	Now() time.Time
}

// Func adapts a plain function to Clock. Results are normalised to UTC.
type Func func() time.Time

// Now implements Clock
func (f Func) Now() time.Time {
	return f().UTC()
}

// System reads the process clock
var System Clock = Func(time.Now)

// New returns the system clock
func New() Clock {
	return System
}
