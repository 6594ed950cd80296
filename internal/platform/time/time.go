// Package time holds the clock seam used wherever "today" is needed
package time

import "time"

// Clock yields the current instant
type Clock func() time.Time

// System is the wall clock
func System() time.Time { return time.Now() }

// Fixed returns a Clock stuck at t
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// In returns a Clock reporting c's instant in loc; nil loc keeps c
func In(c Clock, loc *time.Location) Clock {
	if loc == nil {
		return c
	}
	return func() time.Time { return c().In(loc) }
}

// LoadLocation resolves name, falling back to Local when name is empty or unknown
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
