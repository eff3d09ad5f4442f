package serlink

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xixaus/go-siace/internal/poll"
	"github.com/Xixaus/go-siace/logger"
)

// Channel sends line-oriented commands to an instrument over a serial port.
//
// A Channel allows one command at a time and is not safe for concurrent
// use. The underlying port is acquired and released within each
// SendCommand call; see the package documentation for the trade-off.
type Channel struct {
	cfg    *Config
	clock  poll.Clock
	logger logger.Logger

	metrics ChannelMetrics
}

// NewChannel creates a Channel for the given configuration. The port is not
// touched until the first SendCommand call.
func NewChannel(cfg *Config) (*Channel, error) {
	if cfg == nil {
		return nil, errors.New("serlink: config is nil")
	}

	return &Channel{
		cfg:    cfg,
		clock:  cfg.clock,
		logger: cfg.logger,
	}, nil
}

// Metrics returns the channel's metrics counters.
func (c *Channel) Metrics() *ChannelMetrics { return &c.metrics }

// SendOption adjusts a single SendCommand call.
type SendOption func(*sendOptions)

type sendOptions struct {
	waitFunc        func(Port) error
	captureResponse bool
	responseTimeout time.Duration
}

// WithWaitFunc runs fn after the command is written, with the port still
// open. It is typically a completion poll built with [Channel.WaitLoop].
func WithWaitFunc(fn func(Port) error) SendOption {
	return func(o *sendOptions) { o.waitFunc = fn }
}

// WithResponse makes SendCommand poll for and return the instrument's reply.
func WithResponse() SendOption {
	return func(o *sendOptions) { o.captureResponse = true }
}

// WithResponseTimeout requests the instrument's reply like WithResponse and
// overrides the configured response timeout for one call.
func WithResponseTimeout(d time.Duration) SendOption {
	return func(o *sendOptions) {
		o.captureResponse = true
		o.responseTimeout = d
	}
}

// SendCommand writes command to the instrument and, when requested, returns
// its response.
//
// The port is opened first and released on every exit path. The wire format
// is "<prefix><address><command>\r". When a response is requested and none
// arrives within the response timeout, SendCommand returns an empty string
// with no error: some instrument commands reply only under certain
// conditions, and silence is not a failure.
func (c *Channel) SendCommand(command string, opts ...SendOption) (string, error) {
	o := sendOptions{responseTimeout: c.cfg.responseTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	port, err := c.cfg.opener(c.cfg.portName, c.cfg.baudRate)
	if err != nil {
		return "", err
	}
	defer port.Close()

	if err := c.writeCommand(port, command); err != nil {
		return "", err
	}
	c.metrics.incCommandSendCount()

	if o.waitFunc != nil {
		if err := o.waitFunc(port); err != nil {
			return "", err
		}
	}

	if !o.captureResponse {
		return "", nil
	}

	return c.readResponse(port, o.responseTimeout)
}

// WaitLoop returns a completion wait usable with WithWaitFunc: it
// repeatedly writes query and reads the reply until readyMark appears.
//
// With no wait timeout configured the loop polls indefinitely, mirroring
// the device protocol's lack of a completion bound; set WithWaitTimeout on
// the config to fail with ErrWaitTimeout instead.
func (c *Channel) WaitLoop(query string, readyMark byte) func(Port) error {
	return func(port Port) error {
		var deadline time.Time
		if c.cfg.waitTimeout > 0 {
			deadline = c.clock.Now().Add(c.cfg.waitTimeout)
		}

		chunk := make([]byte, 64)
		for {
			if err := c.writeCommand(port, query); err != nil {
				return err
			}
			c.metrics.incWaitPollCount()

			n, _ := port.Read(chunk)
			if n > 0 && bytes.IndexByte(chunk[:n], readyMark) >= 0 {
				return nil
			}

			if !deadline.IsZero() && !c.clock.Now().Before(deadline) {
				return &WaitTimeoutError{Query: query, Timeout: c.cfg.waitTimeout}
			}
		}
	}
}

func (c *Channel) writeCommand(port Port, command string) error {
	line := fmt.Sprintf("%s%s%s\r", c.cfg.prefix, c.cfg.address, command)

	c.logger.Debug("writing serial command", "port", c.cfg.portName, "command", command)

	if _, err := port.Write([]byte(line)); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	// Give the instrument time to latch the command before the line is
	// read or written again.
	c.clock.Sleep(c.cfg.writeSettle)

	return nil
}

// readResponse polls for incoming bytes until data arrives or the timeout
// elapses. Expiry returns whatever was collected, possibly nothing.
func (c *Channel) readResponse(port Port, timeout time.Duration) (string, error) {
	var data []byte
	chunk := make([]byte, 128)

	err := poll.Until(c.clock, timeout, c.cfg.readInterval, func() (bool, error) {
		n, rerr := port.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)

			// Drain whatever else is already buffered.
			for {
				n, rerr = port.Read(chunk)
				if n <= 0 {
					break
				}
				data = append(data, chunk[:n]...)
			}

			return true, nil
		}
		if rerr != nil {
			return false, fmt.Errorf("%w: %v", ErrRead, rerr)
		}

		return false, nil
	})
	if err != nil {
		if errors.Is(err, poll.ErrDeadline) {
			c.metrics.incResponseTimeoutCount()
			return "", nil
		}

		return "", err
	}

	// The instrument side is not guaranteed to emit clean text.
	return strings.ToValidUTF8(string(data), ""), nil
}
