// Package poll provides the two timing primitives shared by the go-siace
// channels: a bounded-retry wrapper for flaky writes and a deadline-based
// poll loop for response waits.
//
// Both take an injectable Clock so protocol timing can be tested without
// real delays.
package poll

import (
	"errors"
	"time"
)

// ErrDeadline is returned by Until when the timeout elapses before the
// condition reports done.
var ErrDeadline = errors.New("poll: deadline exceeded")

// Retry invokes fn up to attempts times, sleeping delay between consecutive
// attempts. It returns nil on the first success, or the last error once all
// attempts are exhausted. There is no sleep after the final attempt.
func Retry(clock Clock, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			clock.Sleep(delay)
		}
	}

	return err
}

// Until repeatedly invokes fn at the given interval until it reports done,
// returns an error, or the timeout elapses.
//
// fn is invoked immediately, then once per interval. It is also invoked one
// final time at or after the deadline, so a result that becomes available
// exactly at expiry is still observed. On expiry Until returns ErrDeadline;
// the caller translates it into its own timeout error.
func Until(clock Clock, timeout, interval time.Duration, fn func() (done bool, err error)) error {
	deadline := clock.Now().Add(timeout)
	for {
		done, err := fn()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if !clock.Now().Before(deadline) {
			return ErrDeadline
		}
		clock.Sleep(interval)
	}
}
