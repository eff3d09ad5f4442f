package chemlink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitResponse(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantNumber int
		wantText   string
		wantOK     bool
	}{
		{name: "value", content: "12 75.5", wantNumber: 12, wantText: "75.5", wantOK: true},
		{name: "sentinel", content: "3 None", wantNumber: 3, wantText: "None", wantOK: true},
		{
			name:       "error payload keeps leading space",
			content:    "5  ERROR: disk full",
			wantNumber: 5,
			wantText:   " ERROR: disk full",
			wantOK:     true,
		},
		{
			name:       "surrounding whitespace stripped",
			content:    "  8 RUNNING  ",
			wantNumber: 8,
			wantText:   "RUNNING",
			wantOK:     true,
		},
		{
			name:       "payload with spaces",
			content:    "9 C:\\Chem32\\1\\Data result.d",
			wantNumber: 9,
			wantText:   "C:\\Chem32\\1\\Data result.d",
			wantOK:     true,
		},
		{name: "empty", content: "", wantOK: false},
		{name: "number only", content: "42", wantOK: false},
		{name: "no number", content: "garbage text", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			number, text, ok := splitResponse(tt.content)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantNumber, number)
				assert.Equal(t, tt.wantText, text)
			}
		})
	}
}

func TestParsePayload_Value(t *testing.T) {
	value, hasValue, err := parsePayload("75.5")
	require.NoError(t, err)
	assert.True(t, hasValue)
	assert.Equal(t, "75.5", value)
}

func TestParsePayload_NoValueSentinel(t *testing.T) {
	value, hasValue, err := parsePayload("None")
	require.NoError(t, err)
	assert.False(t, hasValue)
	assert.Empty(t, value)
}

func TestParsePayload_DeviceError(t *testing.T) {
	_, _, err := parsePayload(" ERROR: disk full")
	require.ErrorIs(t, err, ErrDevice)

	var devErr *DeviceError
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, "disk full", devErr.Message)
}

func TestParsePayload_SentinelLookalikes(t *testing.T) {
	// Payloads that merely resemble the reserved strings pass through verbatim.
	for _, payload := range []string{"None ", "NoneSuch", "ERROR: no space", "error: lowercase"} {
		value, hasValue, err := parsePayload(payload)
		require.NoError(t, err, payload)
		assert.True(t, hasValue, payload)
		assert.Equal(t, payload, value)
	}
}
