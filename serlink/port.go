package serlink

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// portReadTimeout keeps individual reads short so the channel's own poll
// loops stay in control of the waiting.
const portReadTimeout = 300 * time.Millisecond

// Port is the subset of a serial connection the channel uses. The
// production implementation is a go.bug.st/serial port; tests substitute a
// scripted fake.
//
// Read must honor a short read timeout, returning zero bytes with a nil
// error when nothing arrives, so callers can poll without blocking.
type Port interface {
	io.ReadWriteCloser
	ResetInputBuffer() error
}

// PortOpener opens the named serial port at the given baud rate.
// The default opener is backed by go.bug.st/serial; tests inject their own.
type PortOpener func(name string, baudRate int) (Port, error)

func openSerialPort(name string, baudRate int) (Port, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPortOpen, name, err)
	}

	if err := p.SetReadTimeout(portReadTimeout); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrPortOpen, name, err)
	}

	return p, nil
}
