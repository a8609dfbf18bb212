package sim

import "fmt"

// VTimeInNano defines a point in the simulated timeline, counted in
// nanoseconds since the beginning of the run.
type VTimeInNano int64

// Nanoseconds converts an integer nanosecond count to virtual time.
func Nanoseconds(n int64) VTimeInNano {
	return VTimeInNano(n)
}

// Microseconds converts a microsecond count to virtual time.
func Microseconds(us float64) VTimeInNano {
	return VTimeInNano(us * 1e3)
}

// Milliseconds converts a millisecond count to virtual time.
func Milliseconds(ms float64) VTimeInNano {
	return VTimeInNano(ms * 1e6)
}

// Seconds converts a second count to virtual time.
func Seconds(s float64) VTimeInNano {
	return VTimeInNano(s * 1e9)
}

// ToSeconds returns the time as a floating-point second count.
func (t VTimeInNano) ToSeconds() float64 {
	return float64(t) / 1e9
}

func (t VTimeInNano) String() string {
	return fmt.Sprintf("%.9fs", t.ToSeconds())
}
