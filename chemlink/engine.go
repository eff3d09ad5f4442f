package chemlink

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Xixaus/go-siace/internal/poll"
	"github.com/Xixaus/go-siace/logger"
)

const (
	// resetCommand is the assignment the external macro recognizes as an
	// instruction to zero its last-seen command counter. It is written with
	// a number one past the normal range so it can never collide with a
	// live command.
	resetCommand = "last_command_number = 0"

	// The echo command and marker used by the construction-time self-test.
	connectionTestMarker  = "CONNECTION_TEST"
	connectionTestCommand = `response$ = "CONNECTION_TEST"`

	// connectionTestTimeout bounds the self-test round trip.
	connectionTestTimeout = 3 * time.Second
)

// Engine drives the numbered command/response exchange with the external
// control application.
//
// An Engine owns its command counter and allows at most one command in
// flight; it is not safe for concurrent use. Construct one Engine per
// control-application session and reuse it for the session's lifetime.
type Engine struct {
	cfg       *Config
	transport Transport
	clock     poll.Clock
	logger    logger.Logger

	// commandNumber is the number of the most recently issued command.
	// It only moves forward, except for the reset handshake.
	commandNumber int

	metrics EngineMetrics
}

// NewEngine creates an Engine for the given configuration.
//
// Unless a transport was injected, the communication directory is created
// and both files are touched; failures surface as ErrConfiguration. The
// constructor then performs the counter reset handshake so both sides start
// from zero, and optionally runs the connection echo test.
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("chemlink: config is nil")
	}

	e := &Engine{
		cfg:       cfg,
		transport: cfg.transport,
		clock:     cfg.clock,
		logger:    cfg.logger,
	}

	if e.transport == nil {
		if err := ensureCommFiles(cfg); err != nil {
			return nil, err
		}
		e.transport = newFileTransport(cfg.CommandFilePath(), cfg.ResponseFilePath())
	}

	if err := e.resetCounter(); err != nil {
		return nil, err
	}

	if cfg.testOnInit {
		if err := e.testConnection(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func ensureCommFiles(cfg *Config) error {
	if err := os.MkdirAll(cfg.commDir, 0o755); err != nil {
		return fmt.Errorf("%w: create comm dir: %v", ErrConfiguration, err)
	}

	for _, path := range []string{cfg.CommandFilePath(), cfg.ResponseFilePath()} {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrConfiguration, path, err)
		}
		_ = f.Close()
	}

	return nil
}

// Send writes command to the shared medium under a fresh command number and
// polls for the response carrying the same number.
//
// The returned bool reports whether the instrument produced a value: it is
// false for the no-value sentinel, a legitimate outcome for commands that
// act without returning data. Responses bearing any other number are stale
// and are skipped without error.
//
// Errors: ErrWriteFailed when the write retries are exhausted, ErrTimeout
// (as *TimeoutError) when no matching response arrives in time, and
// ErrDevice (as *DeviceError) when the response carries the error marker.
func (e *Engine) Send(command string, timeout time.Duration) (string, bool, error) {
	if command == "" {
		return "", false, ErrEmptyCommand
	}
	if timeout <= 0 {
		return "", false, ErrInvalidTimeout
	}

	if e.commandNumber >= e.cfg.maxCommandNumber {
		if err := e.resetCounter(); err != nil {
			return "", false, err
		}
	}

	e.commandNumber++
	number := e.commandNumber

	e.logger.Debug("sending command", "number", number, "command", command)

	if err := e.writeCommand(number, command); err != nil {
		return "", false, err
	}
	e.metrics.incCommandSendCount()

	value, hasValue, err := e.awaitResponse(number, timeout)
	if err != nil {
		return "", false, err
	}

	e.logger.Debug("received response", "number", number, "value", value, "hasValue", hasValue)

	// Re-check after the send so the next caller starts from a clean state.
	if e.commandNumber >= e.cfg.maxCommandNumber {
		if err := e.resetCounter(); err != nil {
			return "", false, err
		}
	}

	return value, hasValue, nil
}

// SendDefault sends command with the configured default timeout.
func (e *Engine) SendDefault(command string) (string, bool, error) {
	return e.Send(command, e.cfg.defaultTimeout)
}

// CommandNumber returns the number of the most recently issued command.
func (e *Engine) CommandNumber() int { return e.commandNumber }

// Metrics returns the engine's metrics counters.
func (e *Engine) Metrics() *EngineMetrics { return &e.metrics }

// writeCommand writes "<number> <command>" to the medium with bounded
// retries. The shared file may be transiently held open by the macro, so a
// handful of spaced attempts is part of normal operation.
func (e *Engine) writeCommand(number int, command string) error {
	line := fmt.Sprintf("%d %s", number, command)

	err := poll.Retry(e.clock, e.cfg.maxRetries, e.cfg.retryDelay, func() error {
		werr := e.transport.Write(line)
		if werr != nil {
			e.metrics.incWriteRetryCount()
		}
		return werr
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	return nil
}

// awaitResponse polls the medium until a response numbered number appears
// or the timeout elapses. Content with any other number, unparseable
// content, empty content, and transient read failures all count as "not yet
// available".
func (e *Engine) awaitResponse(number int, timeout time.Duration) (string, bool, error) {
	var value string
	var hasValue bool

	err := poll.Until(e.clock, timeout, e.cfg.retryDelay, func() (bool, error) {
		content, ok, rerr := e.transport.TryRead()
		if rerr != nil || !ok {
			return false, nil
		}

		respNumber, payload, ok := splitResponse(content)
		if !ok || respNumber != number {
			return false, nil
		}

		v, hv, perr := parsePayload(payload)
		if perr != nil {
			return false, perr
		}
		value, hasValue = v, hv

		return true, nil
	})
	if err != nil {
		if errors.Is(err, poll.ErrDeadline) {
			e.metrics.incTimeoutCount()
			return "", false, &TimeoutError{CommandNumber: number, Timeout: timeout}
		}
		if errors.Is(err, ErrDevice) {
			e.metrics.incDeviceErrCount()
		}

		return "", false, err
	}

	return value, hasValue, nil
}

// resetCounter performs the wraparound handshake. The external macro keeps
// its own last-seen command number, so both sides must agree on zero before
// numbering can restart; sequence numbers exhausted by one session would
// otherwise never correlate again.
func (e *Engine) resetCounter() error {
	e.logger.Debug("resetting command counter", "number", e.cfg.maxCommandNumber+1)

	if err := e.writeCommand(e.cfg.maxCommandNumber+1, resetCommand); err != nil {
		return err
	}

	e.commandNumber = 0
	e.metrics.incResetCount()
	e.clock.Sleep(e.cfg.resetSettle)

	return nil
}

// testConnection round-trips a marker through the response file to verify
// the macro is alive and polling.
func (e *Engine) testConnection() error {
	value, hasValue, err := e.Send(connectionTestCommand, connectionTestTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnectionTest, err)
	}
	if !hasValue || !strings.Contains(value, connectionTestMarker) {
		return fmt.Errorf("%w: unexpected reply %q", ErrConnectionTest, value)
	}

	return nil
}
