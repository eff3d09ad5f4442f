package chemlink

import (
	"sync/atomic"
)

// EngineMetrics contains atomic metrics for a file-channel engine.
// Metrics can be used as the value of a prometheus CounterFunc.
type EngineMetrics struct {
	// CommandSendCount indicates the number of commands written to the medium.
	CommandSendCount atomic.Uint64
	// WriteRetryCount indicates the number of failed write attempts.
	WriteRetryCount atomic.Uint64
	// TimeoutCount indicates the number of sends that expired without a
	// matching response.
	TimeoutCount atomic.Uint64
	// DeviceErrCount indicates the number of responses carrying the device
	// error marker.
	DeviceErrCount atomic.Uint64
	// ResetCount indicates the number of counter reset handshakes performed.
	ResetCount atomic.Uint64
}

func (m *EngineMetrics) incCommandSendCount() {
	m.CommandSendCount.Add(1)
}

func (m *EngineMetrics) incWriteRetryCount() {
	m.WriteRetryCount.Add(1)
}

func (m *EngineMetrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

func (m *EngineMetrics) incDeviceErrCount() {
	m.DeviceErrCount.Add(1)
}

func (m *EngineMetrics) incResetCount() {
	m.ResetCount.Add(1)
}
