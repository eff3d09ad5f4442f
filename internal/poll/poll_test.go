package poll

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	clock := NewFakeClock()

	calls := 0
	err := Retry(clock, 5, 100*time.Millisecond, func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Empty(t, clock.Sleeps)
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	clock := NewFakeClock()

	calls := 0
	err := Retry(clock, 5, 100*time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Len(t, clock.Sleeps, 2)
}

func TestRetry_Exhaustion(t *testing.T) {
	clock := NewFakeClock()
	failure := errors.New("locked")

	calls := 0
	err := Retry(clock, 4, 50*time.Millisecond, func() error {
		calls++
		return failure
	})
	require.ErrorIs(t, err, failure)
	assert.Equal(t, 4, calls)

	// Attempts are separated by the retry delay, with no sleep after the last.
	require.Len(t, clock.Sleeps, 3)
	for _, d := range clock.Sleeps {
		assert.Equal(t, 50*time.Millisecond, d)
	}
}

func TestUntil_ImmediateDone(t *testing.T) {
	clock := NewFakeClock()

	err := Until(clock, time.Second, 100*time.Millisecond, func() (bool, error) {
		return true, nil
	})
	require.NoError(t, err)
	assert.Empty(t, clock.Sleeps)
}

func TestUntil_DoneAfterTicks(t *testing.T) {
	clock := NewFakeClock()

	calls := 0
	err := Until(clock, time.Second, 100*time.Millisecond, func() (bool, error) {
		calls++
		return calls == 4, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Len(t, clock.Sleeps, 3)
}

func TestUntil_ErrorAborts(t *testing.T) {
	clock := NewFakeClock()
	boom := errors.New("device rejected command")

	err := Until(clock, time.Second, 100*time.Millisecond, func() (bool, error) {
		return false, boom
	})
	require.ErrorIs(t, err, boom)
}

func TestUntil_DeadlineWindow(t *testing.T) {
	clock := NewFakeClock()
	start := clock.Now()

	timeout := 2 * time.Second
	interval := 100 * time.Millisecond

	err := Until(clock, timeout, interval, func() (bool, error) {
		return false, nil
	})
	require.ErrorIs(t, err, ErrDeadline)

	// Expiry is detected no earlier than the timeout and no later than one
	// poll interval past it.
	elapsed := clock.Now().Sub(start)
	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.LessOrEqual(t, elapsed, timeout+interval)
}

func TestUntil_LastChancePollAtExpiry(t *testing.T) {
	clock := NewFakeClock()

	// The condition becomes true exactly when the deadline is reached; the
	// final poll must still observe it.
	deadline := clock.Now().Add(time.Second)
	err := Until(clock, time.Second, 300*time.Millisecond, func() (bool, error) {
		return !clock.Now().Before(deadline), nil
	})
	require.NoError(t, err)
}
