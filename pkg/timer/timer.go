// Package timer provides a scoped timer that writes how long a block of code
// took to an io.Writer.
package timer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

var (
	// ErrInvalidClock is returned by New when the clock option is nil.
	ErrInvalidClock = errors.New("timer clock must be a non-nil function")
	// ErrInvalidSink is returned by New when the sink option is nil.
	ErrInvalidSink = errors.New("timer sink must be a non-nil writer")
	// ErrNotStarted is returned by Stop when there is no running scope.
	ErrNotStarted = errors.New("timer not started")
)

// Timer measures a scope and writes its duration, in decimal seconds, to a sink.
type Timer struct {
	clock func() time.Time
	sink  io.Writer

	mu      sync.Mutex
	start   time.Time
	end     time.Time
	running bool
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the function used to read the current time.
func WithClock(clock func() time.Time) Option {
	return func(t *Timer) {
		t.clock = clock
	}
}

// WithSink sets where durations are written.
func WithSink(sink io.Writer) Option {
	return func(t *Timer) {
		t.sink = sink
	}
}

// New creates a Timer reading time.Now and writing to os.Stdout unless
// configured otherwise.
func New(options ...Option) (*Timer, error) {
	t := &Timer{
		clock: time.Now,
		sink:  os.Stdout,
	}

	for _, opt := range options {
		opt(t)
	}

	if t.clock == nil {
		return nil, ErrInvalidClock
	}

	if t.sink == nil {
		return nil, ErrInvalidSink
	}

	return t, nil
}

// Start opens a scope. Starting a running timer restarts it.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.start = t.clock()
	t.running = true
}

// Stop closes the scope and writes its duration once.
func (t *Timer) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return ErrNotStarted
	}

	t.end = t.clock()
	t.running = false

	if _, err := io.WriteString(t.sink, format(t.elapsed())); err != nil {
		slog.Error("Failed to write duration", "error", err)
		return fmt.Errorf("write duration: %w", err)
	}

	return nil
}

// Elapsed returns the duration of the last closed scope.
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.elapsed()
}

// Time runs fn inside a scope. The duration is written however fn leaves:
// by returning, by returning an error, or by panicking. Errors and panics
// from fn are passed on unchanged.
func (t *Timer) Time(fn func() error) (err error) {
	t.Start()

	defer func() {
		if stopErr := t.Stop(); stopErr != nil {
			err = errors.Join(err, stopErr)
		}
	}()

	return fn()
}

func (t *Timer) elapsed() time.Duration {
	d := t.end.Sub(t.start)
	if d < 0 {
		return 0
	}

	return d
}

func format(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
