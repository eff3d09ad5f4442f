package serlink

import (
	"sync/atomic"
)

// ChannelMetrics contains atomic metrics for a serial channel.
// Metrics can be used as the value of a prometheus CounterFunc.
type ChannelMetrics struct {
	// CommandSendCount indicates the number of commands written to the port.
	CommandSendCount atomic.Uint64
	// WaitPollCount indicates the number of status queries issued by
	// completion waits.
	WaitPollCount atomic.Uint64
	// ResponseTimeoutCount indicates the number of response captures that
	// expired without data.
	ResponseTimeoutCount atomic.Uint64
}

func (m *ChannelMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *ChannelMetrics) incWaitPollCount() {
	m.WaitPollCount.Add(1)
}

func (m *ChannelMetrics) incResponseTimeoutCount() {
	m.ResponseTimeoutCount.Add(1)
}
