package guard

import "time"

// Clock supplies the current time. It is consulted on every call that does
// not take an explicit timestamp.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// OffsetClock shifts base by offset, typically the difference between the
// platform's server time and the local clock.
func OffsetClock(base Clock, offset time.Duration) Clock {
	if base == nil {
		base = SystemClock{}
	}
	return ClockFunc(func() time.Time { return base.Now().Add(offset) })
}
