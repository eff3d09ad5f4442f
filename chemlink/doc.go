// Package chemlink implements the numbered command/response exchange with a
// ChemStation-style host control application over a shared file pair.
//
// # Protocol Overview
//
// The control application runs a macro that continuously polls a command
// file, executes whatever appears there, and writes the result to a response
// file. There is no framing, locking, or acknowledgment beyond plain text:
// each command is tagged with a sequence number, and the response is matched
// by finding the same number echoed back.
//
// Command file content:  "<number> <command>"  (single line, overwritten)
// Response file content: "<number> <payload>"
//
// Two payloads are reserved: "None" means the command executed without
// producing data, and a payload starting with " ERROR:" reports an
// instrument-side failure.
//
// # Sequence Numbers
//
// The macro keeps its own last-seen command number, so the client counter
// and the macro counter must stay in step. When the counter reaches the
// configured maximum, the [Engine] writes a reset command numbered one past
// the range; both sides then restart from zero. Without this handshake a
// long session would exhaust the number space and responses would never
// correlate again.
//
// # Files as a Medium
//
// The file pair is shared with an independently scheduled process. The
// engine never locks the files; it retries transiently failing writes and
// re-reads the response file until a matching number appears or the
// deadline expires. Stale responses from earlier commands are skipped
// without error.
package chemlink
