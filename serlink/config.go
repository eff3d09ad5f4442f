package serlink

import (
	"errors"
	"fmt"
	"time"

	"github.com/Xixaus/go-siace/internal/poll"
	"github.com/Xixaus/go-siace/logger"
)

const (
	DefaultBaudRate = 9600

	// DefaultWriteSettle is the pause after writing a command, giving the
	// instrument time to latch it before the line is touched again.
	DefaultWriteSettle = 200 * time.Millisecond

	// DefaultReadInterval is the polling cadence for response capture and
	// completion waits.
	DefaultReadInterval = 200 * time.Millisecond

	// DefaultResponseTimeout bounds response capture. Expiry is not an
	// error: the caller receives whatever arrived, possibly nothing.
	DefaultResponseTimeout = 3 * time.Second
)

// Config holds all configuration for a serial [Channel].
// It is immutable after construction.
type Config struct {
	portName string
	baudRate int

	// prefix and address are prepended to every command per the
	// instrument's addressing scheme.
	prefix  string
	address string

	writeSettle     time.Duration
	readInterval    time.Duration
	responseTimeout time.Duration

	// waitTimeout bounds completion waits built with WaitLoop.
	// Zero means unbounded, matching the instrument protocol's lack of a
	// completion bound.
	waitTimeout time.Duration

	opener PortOpener
	clock  poll.Clock
	logger logger.Logger
}

// NewConfig creates a serial channel configuration for the named port.
func NewConfig(portName string, opts ...SerialOption) (*Config, error) {
	if portName == "" {
		return nil, errors.New("serlink: port name must not be empty")
	}

	cfg := &Config{
		portName:        portName,
		baudRate:        DefaultBaudRate,
		writeSettle:     DefaultWriteSettle,
		readInterval:    DefaultReadInterval,
		responseTimeout: DefaultResponseTimeout,
		opener:          openSerialPort,
		clock:           poll.SystemClock(),
		logger:          logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// --- Getters ---

// PortName returns the serial port name.
func (cfg *Config) PortName() string { return cfg.portName }

// BaudRate returns the configured baud rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// Prefix returns the command prefix.
func (cfg *Config) Prefix() string { return cfg.prefix }

// Address returns the device address string.
func (cfg *Config) Address() string { return cfg.address }

// WriteSettle returns the pause after each command write.
func (cfg *Config) WriteSettle() time.Duration { return cfg.writeSettle }

// ReadInterval returns the response and completion polling cadence.
func (cfg *Config) ReadInterval() time.Duration { return cfg.readInterval }

// ResponseTimeout returns the default bound for response capture.
func (cfg *Config) ResponseTimeout() time.Duration { return cfg.responseTimeout }

// WaitTimeout returns the completion wait bound; zero means unbounded.
func (cfg *Config) WaitTimeout() time.Duration { return cfg.waitTimeout }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- SerialOption ---

// SerialOption is a functional option for configuring a Config.
type SerialOption interface {
	apply(*Config) error
}

type serialOptFunc func(*Config) error

func (f serialOptFunc) apply(cfg *Config) error { return f(cfg) }

// WithBaudRate sets the communication speed. Default 9600.
func WithBaudRate(baud int) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if baud <= 0 {
			return fmt.Errorf("serlink: baud rate %d must be positive", baud)
		}
		cfg.baudRate = baud

		return nil
	})
}

// WithPrefix sets the string prepended to every command, before the address.
func WithPrefix(prefix string) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		cfg.prefix = prefix

		return nil
	})
}

// WithAddress sets the device address string, e.g. "/1" for the first pump
// on a daisy chain.
func WithAddress(address string) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		cfg.address = address

		return nil
	})
}

// WithWriteSettle sets the pause after each command write.
func WithWriteSettle(d time.Duration) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if d < 0 {
			return errors.New("serlink: write settle must not be negative")
		}
		cfg.writeSettle = d

		return nil
	})
}

// WithReadInterval sets the response and completion polling cadence.
func WithReadInterval(d time.Duration) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("serlink: read interval must be positive")
		}
		cfg.readInterval = d

		return nil
	})
}

// WithDefaultResponseTimeout sets the default bound for response capture.
func WithDefaultResponseTimeout(d time.Duration) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("serlink: response timeout must be positive")
		}
		cfg.responseTimeout = d

		return nil
	})
}

// WithWaitTimeout bounds completion waits built with WaitLoop. The default
// of zero preserves the instrument protocol's unbounded behavior.
func WithWaitTimeout(d time.Duration) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if d < 0 {
			return errors.New("serlink: wait timeout must not be negative")
		}
		cfg.waitTimeout = d

		return nil
	})
}

// WithPortOpener substitutes how the port is opened. Primarily for tests.
func WithPortOpener(opener PortOpener) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if opener == nil {
			return errors.New("serlink: port opener must not be nil")
		}
		cfg.opener = opener

		return nil
	})
}

// WithClock sets the clock used for sleeps and deadlines.
// Primarily for tests; the default is the system clock.
func WithClock(c poll.Clock) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if c == nil {
			return errors.New("serlink: clock must not be nil")
		}
		cfg.clock = c

		return nil
	})
}

// WithLogger sets the logger for the channel.
func WithLogger(l logger.Logger) SerialOption {
	return serialOptFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("serlink: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
