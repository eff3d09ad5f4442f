package chemlink

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("comm")
	require.NoError(t, err)

	assert.Equal(t, "comm", cfg.CommDir())
	assert.Equal(t, filepath.Join("comm", "command"), cfg.CommandFilePath())
	assert.Equal(t, filepath.Join("comm", "response"), cfg.ResponseFilePath())

	assert.Equal(t, DefaultTimeout, cfg.DefaultTimeout())
	assert.Equal(t, DefaultRetryDelay, cfg.RetryDelay())
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries())
	assert.Equal(t, DefaultMaxCommandNumber, cfg.MaxCommandNumber())
	assert.Equal(t, DefaultResetSettle, cfg.ResetSettle())
	assert.False(t, cfg.TestOnInit())

	assert.NotNil(t, cfg.GetLogger())
}

func TestNewConfig_WithOptions(t *testing.T) {
	cfg, err := NewConfig("comm",
		WithCommandFileName("cmd.txt"),
		WithResponseFileName("rsp.txt"),
		WithDefaultTimeout(10*time.Second),
		WithRetryDelay(50*time.Millisecond),
		WithMaxRetries(3),
		WithMaxCommandNumber(100),
		WithResetSettle(time.Second),
		WithConnectionTest(true),
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("comm", "cmd.txt"), cfg.CommandFilePath())
	assert.Equal(t, filepath.Join("comm", "rsp.txt"), cfg.ResponseFilePath())
	assert.Equal(t, 10*time.Second, cfg.DefaultTimeout())
	assert.Equal(t, 50*time.Millisecond, cfg.RetryDelay())
	assert.Equal(t, 3, cfg.MaxRetries())
	assert.Equal(t, 100, cfg.MaxCommandNumber())
	assert.Equal(t, time.Second, cfg.ResetSettle())
	assert.True(t, cfg.TestOnInit())
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		commDir string
		opts    []Option
	}{
		{name: "empty comm dir", commDir: ""},
		{name: "empty command file", commDir: "comm", opts: []Option{WithCommandFileName("")}},
		{name: "empty response file", commDir: "comm", opts: []Option{WithResponseFileName("")}},
		{name: "zero timeout", commDir: "comm", opts: []Option{WithDefaultTimeout(0)}},
		{name: "zero retry delay", commDir: "comm", opts: []Option{WithRetryDelay(0)}},
		{name: "zero retries", commDir: "comm", opts: []Option{WithMaxRetries(0)}},
		{name: "zero max number", commDir: "comm", opts: []Option{WithMaxCommandNumber(0)}},
		{name: "negative settle", commDir: "comm", opts: []Option{WithResetSettle(-time.Second)}},
		{name: "nil logger", commDir: "comm", opts: []Option{WithLogger(nil)}},
		{name: "nil clock", commDir: "comm", opts: []Option{WithClock(nil)}},
		{name: "nil transport", commDir: "comm", opts: []Option{WithTransport(nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.commDir, tt.opts...)
			require.Error(t, err)
		})
	}
}
