package chemlink

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Xixaus/go-siace/internal/poll"
	"github.com/Xixaus/go-siace/logger"
)

// Defaults match the macro running on the control-application side.
const (
	DefaultCommandFileName  = "command"
	DefaultResponseFileName = "response"

	DefaultTimeout          = 5 * time.Second
	DefaultRetryDelay       = 100 * time.Millisecond
	DefaultMaxRetries       = 10
	DefaultMaxCommandNumber = 256

	// DefaultResetSettle is the pause after a counter reset, giving the
	// external macro time to observe the reset command before the next one
	// overwrites it.
	DefaultResetSettle = 500 * time.Millisecond
)

// Config holds all configuration for a file-channel [Engine].
// It is immutable after construction.
type Config struct {
	commDir          string
	commandFileName  string
	responseFileName string

	defaultTimeout   time.Duration
	retryDelay       time.Duration
	maxRetries       int
	maxCommandNumber int
	resetSettle      time.Duration

	testOnInit bool

	transport Transport
	clock     poll.Clock
	logger    logger.Logger
}

// NewConfig creates a file-channel configuration.
//
// commDir is the directory holding the command and response files shared
// with the control application. opts are functional options applied in
// order; see the With* functions.
func NewConfig(commDir string, opts ...Option) (*Config, error) {
	if commDir == "" {
		return nil, fmt.Errorf("%w: comm dir must not be empty", ErrConfiguration)
	}

	cfg := &Config{
		commDir:          commDir,
		commandFileName:  DefaultCommandFileName,
		responseFileName: DefaultResponseFileName,
		defaultTimeout:   DefaultTimeout,
		retryDelay:       DefaultRetryDelay,
		maxRetries:       DefaultMaxRetries,
		maxCommandNumber: DefaultMaxCommandNumber,
		resetSettle:      DefaultResetSettle,
		clock:            poll.SystemClock(),
		logger:           logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// --- Getters ---

// CommDir returns the communication directory.
func (cfg *Config) CommDir() string { return cfg.commDir }

// CommandFilePath returns the full path of the command file.
func (cfg *Config) CommandFilePath() string {
	return filepath.Join(cfg.commDir, cfg.commandFileName)
}

// ResponseFilePath returns the full path of the response file.
func (cfg *Config) ResponseFilePath() string {
	return filepath.Join(cfg.commDir, cfg.responseFileName)
}

// DefaultTimeout returns the response timeout used by Engine.SendDefault.
func (cfg *Config) DefaultTimeout() time.Duration { return cfg.defaultTimeout }

// RetryDelay returns the delay between write retries, which is also the
// response polling interval.
func (cfg *Config) RetryDelay() time.Duration { return cfg.retryDelay }

// MaxRetries returns the maximum number of write attempts.
func (cfg *Config) MaxRetries() int { return cfg.maxRetries }

// MaxCommandNumber returns the command number at which the counter reset
// handshake is triggered.
func (cfg *Config) MaxCommandNumber() int { return cfg.maxCommandNumber }

// ResetSettle returns the pause after a counter reset.
func (cfg *Config) ResetSettle() time.Duration { return cfg.resetSettle }

// TestOnInit returns whether the engine runs the echo test at construction.
func (cfg *Config) TestOnInit() bool { return cfg.testOnInit }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// --- Option ---

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithCommandFileName sets the command file name inside the comm directory.
func WithCommandFileName(name string) Option {
	return optFunc(func(cfg *Config) error {
		if name == "" {
			return fmt.Errorf("%w: command file name must not be empty", ErrConfiguration)
		}
		cfg.commandFileName = name

		return nil
	})
}

// WithResponseFileName sets the response file name inside the comm directory.
func WithResponseFileName(name string) Option {
	return optFunc(func(cfg *Config) error {
		if name == "" {
			return fmt.Errorf("%w: response file name must not be empty", ErrConfiguration)
		}
		cfg.responseFileName = name

		return nil
	})
}

// WithDefaultTimeout sets the response timeout used by Engine.SendDefault.
func WithDefaultTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return fmt.Errorf("%w: default timeout must be positive", ErrConfiguration)
		}
		cfg.defaultTimeout = d

		return nil
	})
}

// WithRetryDelay sets the delay between write retries and the response
// polling interval.
func WithRetryDelay(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return fmt.Errorf("%w: retry delay must be positive", ErrConfiguration)
		}
		cfg.retryDelay = d

		return nil
	})
}

// WithMaxRetries sets the maximum number of write attempts per command.
func WithMaxRetries(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: max retries must be >= 1", ErrConfiguration)
		}
		cfg.maxRetries = n

		return nil
	})
}

// WithMaxCommandNumber sets the command number at which the counter reset
// handshake is performed. It must match the range the external macro uses.
func WithMaxCommandNumber(n int) Option {
	return optFunc(func(cfg *Config) error {
		if n < 1 {
			return fmt.Errorf("%w: max command number must be >= 1", ErrConfiguration)
		}
		cfg.maxCommandNumber = n

		return nil
	})
}

// WithResetSettle sets the pause after a counter reset handshake.
func WithResetSettle(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < 0 {
			return fmt.Errorf("%w: reset settle must not be negative", ErrConfiguration)
		}
		cfg.resetSettle = d

		return nil
	})
}

// WithConnectionTest enables or disables the construction-time echo test.
// Disabled by default.
func WithConnectionTest(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.testOnInit = enabled

		return nil
	})
}

// WithLogger sets the logger for the engine.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("chemlink: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}

// WithClock sets the clock used for sleeps and deadlines.
// Primarily for tests; the default is the system clock.
func WithClock(c poll.Clock) Option {
	return optFunc(func(cfg *Config) error {
		if c == nil {
			return errors.New("chemlink: clock must not be nil")
		}
		cfg.clock = c

		return nil
	})
}

// WithTransport substitutes the medium the engine talks through, bypassing
// the file pair entirely. Primarily for tests.
func WithTransport(t Transport) Option {
	return optFunc(func(cfg *Config) error {
		if t == nil {
			return errors.New("chemlink: transport must not be nil")
		}
		cfg.transport = t

		return nil
	})
}
