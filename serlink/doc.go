// Package serlink implements the line-oriented serial command protocol used
// by syringe-pump and valve-selector instruments.
//
// Commands are written as "<prefix><address><command>\r". The instrument
// only speaks when spoken to, so there is no numeric correlation: the port
// is exclusively owned for the duration of one command, and a response, when
// requested, is whatever the instrument has buffered.
//
// The port is opened at the start of every [Channel.SendCommand] call and
// closed on every exit path. Reconnecting per command costs a little time
// but keeps a failed call from wedging the port for the rest of the session.
//
// Long-running operations are tracked with a completion poll: the device
// answers a status query with a busy/ready character rather than signaling
// completion on its own, so the only way to detect the end of an operation
// is to keep asking. See [Channel.WaitLoop].
package serlink
