package serlink

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrPortOpen indicates that the serial port could not be opened.
	ErrPortOpen = errors.New("serlink: cannot open serial port")

	// ErrWrite indicates a failed write to the serial port.
	ErrWrite = errors.New("serlink: serial write failed")

	// ErrRead indicates a failed read from the serial port.
	ErrRead = errors.New("serlink: serial read failed")

	// ErrWaitTimeout indicates that a bounded completion wait expired
	// before the instrument reported ready. Use errors.As with
	// *WaitTimeoutError to recover the query and bound.
	ErrWaitTimeout = errors.New("serlink: completion wait timed out")
)

// WaitTimeoutError reports that the instrument did not signal ready within
// the configured wait bound. It matches ErrWaitTimeout under errors.Is.
type WaitTimeoutError struct {
	Query   string
	Timeout time.Duration
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("serlink: device not ready within %v (query %q)", e.Timeout, e.Query)
}

func (e *WaitTimeoutError) Is(target error) bool { return target == ErrWaitTimeout }
