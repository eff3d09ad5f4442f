package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuning_Empty(t *testing.T) {
	tn, err := loadTuning("")
	require.NoError(t, err)

	opts, err := tn.chemlinkOptions()
	require.NoError(t, err)
	assert.Empty(t, opts)

	sopts, err := tn.serlinkOptions()
	require.NoError(t, err)
	assert.Empty(t, sopts)
}

func TestLoadTuning_FullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := `file_channel:
  command_file: cmd
  response_file: rsp
  retry_delay: 50ms
  max_retries: 5
  max_command_number: 128
  reset_settle: 1s
serial:
  baud_rate: 115200
  address: "/1"
  write_settle: 100ms
  read_interval: 150ms
  wait_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tn, err := loadTuning(path)
	require.NoError(t, err)

	opts, err := tn.chemlinkOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 6)

	sopts, err := tn.serlinkOptions()
	require.NoError(t, err)
	assert.Len(t, sopts, 5)
}

func TestLoadTuning_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("file_channel:\n  retry_delay: fast\n"), 0o644))

	tn, err := loadTuning(path)
	require.NoError(t, err)

	_, err = tn.chemlinkOptions()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry_delay")
}

func TestLoadTuning_MissingFile(t *testing.T) {
	_, err := loadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
