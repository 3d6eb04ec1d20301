package domain

import (
	"runtime"
	"time"
)

// Clock returns a timestamp as an offset from an arbitrary fixed point.
// Only differences between two readings of the same clock are meaningful.
type Clock func() time.Duration

// coarseMonotonic lists platforms whose monotonic source is deliberately
// coarsened by the host (browsers clamp performance.now).
var coarseMonotonic = map[string]bool{
	"js":     true,
	"wasip1": true,
}

// MonotonicClock reads the process monotonic clock.
func MonotonicClock() Clock {
	epoch := time.Now()

	return func() time.Duration {
		return time.Since(epoch)
	}
}

// WallClock reads the wall clock.
func WallClock() Clock {
	return func() time.Duration {
		return time.Duration(time.Now().UnixNano())
	}
}

// SelectClock returns the most precise clock for the given GOOS.
func SelectClock(goos string) Clock {
	if coarseMonotonic[goos] {
		return WallClock()
	}

	return MonotonicClock()
}

// DefaultClock is bound once for the running platform.
var DefaultClock = SelectClock(runtime.GOOS)

// Measure calls fn and reports how long it took on clock. The result and
// error of fn are returned untouched; a panic in fn is not recovered.
func Measure[T any](clock Clock, fn func() (T, error)) (T, time.Duration, error) {
	if clock == nil {
		clock = DefaultClock
	}

	start := clock()
	result, err := fn()
	elapsed := clock() - start

	// A wall clock may step backwards.
	if elapsed < 0 {
		elapsed = 0
	}

	return result, elapsed, err
}
