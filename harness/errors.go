package harness

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrSessionUsed       = errors.New("session has already been run")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidDuration   = errors.New("duration must not be negative")
)

// InitError is returned when the network fails to initialize. No tick has
// been issued and Shutdown has not been called.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("network initialization failed: %s", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// TickError is returned when a tick fails. The loop stops at Sample and
// Shutdown is still called once.
type TickError struct {
	Sample int
	Err    error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick failed at sample %d: %s", e.Sample, e.Err)
}

func (e *TickError) Unwrap() error { return e.Err }
