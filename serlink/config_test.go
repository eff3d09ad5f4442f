package serlink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("COM3")
	require.NoError(t, err)

	assert.Equal(t, "COM3", cfg.PortName())
	assert.Equal(t, DefaultBaudRate, cfg.BaudRate())
	assert.Empty(t, cfg.Prefix())
	assert.Empty(t, cfg.Address())
	assert.Equal(t, DefaultWriteSettle, cfg.WriteSettle())
	assert.Equal(t, DefaultReadInterval, cfg.ReadInterval())
	assert.Equal(t, DefaultResponseTimeout, cfg.ResponseTimeout())
	assert.Zero(t, cfg.WaitTimeout()) // unbounded completion wait
	assert.NotNil(t, cfg.GetLogger())
}

func TestNewConfig_WithOptions(t *testing.T) {
	cfg, err := NewConfig("/dev/ttyUSB0",
		WithBaudRate(115200),
		WithPrefix("\x1b\x02"),
		WithAddress("/1"),
		WithWriteSettle(50*time.Millisecond),
		WithReadInterval(100*time.Millisecond),
		WithDefaultResponseTimeout(5*time.Second),
		WithWaitTimeout(30*time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.PortName())
	assert.Equal(t, 115200, cfg.BaudRate())
	assert.Equal(t, "\x1b\x02", cfg.Prefix())
	assert.Equal(t, "/1", cfg.Address())
	assert.Equal(t, 50*time.Millisecond, cfg.WriteSettle())
	assert.Equal(t, 100*time.Millisecond, cfg.ReadInterval())
	assert.Equal(t, 5*time.Second, cfg.ResponseTimeout())
	assert.Equal(t, 30*time.Second, cfg.WaitTimeout())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		portName string
		opts     []SerialOption
	}{
		{name: "empty port name", portName: ""},
		{name: "zero baud", portName: "COM3", opts: []SerialOption{WithBaudRate(0)}},
		{name: "negative settle", portName: "COM3", opts: []SerialOption{WithWriteSettle(-time.Second)}},
		{name: "zero read interval", portName: "COM3", opts: []SerialOption{WithReadInterval(0)}},
		{name: "zero response timeout", portName: "COM3", opts: []SerialOption{WithDefaultResponseTimeout(0)}},
		{name: "negative wait timeout", portName: "COM3", opts: []SerialOption{WithWaitTimeout(-time.Second)}},
		{name: "nil opener", portName: "COM3", opts: []SerialOption{WithPortOpener(nil)}},
		{name: "nil clock", portName: "COM3", opts: []SerialOption{WithClock(nil)}},
		{name: "nil logger", portName: "COM3", opts: []SerialOption{WithLogger(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.portName, tt.opts...)
			require.Error(t, err)
		})
	}
}
