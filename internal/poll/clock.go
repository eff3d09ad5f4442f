package poll

import (
	"sync"
	"time"
)

// Clock abstracts time for the polling primitives so they can be driven by
// a virtual clock in tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock returns the real-time Clock used in production.
func SystemClock() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(d time.Duration) {
	t := getTimer(d)
	<-t.C
	putTimer(t)
}

// Poll loops sleep between every attempt, so timers are recycled through a
// pool instead of being allocated per tick.
var timerPool sync.Pool

func getTimer(d time.Duration) *time.Timer {
	if v := timerPool.Get(); v != nil {
		t, _ := v.(*time.Timer) // only *time.Timer is ever put into the pool
		if t.Reset(d) {
			// Timer was active, drain the channel to prevent potential leaks.
			select {
			case <-t.C:
			default:
			}
		}
		return t
	}
	return time.NewTimer(d)
}

func putTimer(t *time.Timer) {
	if !t.Stop() {
		// Drain t.C if it wasn't consumed by the caller yet.
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}
