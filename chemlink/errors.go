package chemlink

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrEmptyCommand indicates that an empty command string was passed to Send.
	ErrEmptyCommand = errors.New("chemlink: command must not be empty")

	// ErrInvalidTimeout indicates that a non-positive timeout was passed to Send.
	ErrInvalidTimeout = errors.New("chemlink: timeout must be positive")

	// ErrWriteFailed indicates that the command could not be written to the
	// medium after exhausting all retry attempts.
	ErrWriteFailed = errors.New("chemlink: command write failed, retries exhausted")

	// ErrTimeout indicates that no response with the expected command number
	// arrived before the deadline. Use errors.As with *TimeoutError to
	// recover the pending command number.
	ErrTimeout = errors.New("chemlink: response timeout")

	// ErrDevice indicates that the instrument explicitly reported a failure
	// in the response payload. Use errors.As with *DeviceError to recover
	// the error text.
	ErrDevice = errors.New("chemlink: device reported error")

	// ErrProtocol indicates response content that is structurally
	// nonsensical after a number match. Content that fails to parse is
	// normally treated as "no response yet", so this error is reserved for
	// defects that polling cannot paper over.
	ErrProtocol = errors.New("chemlink: malformed response")

	// ErrConfiguration indicates an invalid channel setup, detected at
	// construction rather than at send time.
	ErrConfiguration = errors.New("chemlink: invalid channel configuration")

	// ErrConnectionTest indicates that the construction-time echo test did
	// not round-trip through the control application.
	ErrConnectionTest = errors.New("chemlink: connection test failed")
)

// TimeoutError reports that no response bearing the expected command number
// arrived before the deadline. It matches ErrTimeout under errors.Is.
type TimeoutError struct {
	CommandNumber int
	Timeout       time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("chemlink: no response for command %d within %v", e.CommandNumber, e.Timeout)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// DeviceError carries the error text the instrument embedded in a response
// payload. It matches ErrDevice under errors.Is.
type DeviceError struct {
	Message string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("chemlink: device reported error: %s", e.Message)
}

func (e *DeviceError) Is(target error) bool { return target == ErrDevice }
