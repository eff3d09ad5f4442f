package chemlink

import (
	"strconv"
	"strings"
)

const (
	// noValueSentinel is the reserved payload meaning "command executed, no
	// data to return". It is a legitimate outcome, not a failure.
	noValueSentinel = "None"

	// errorPrefix marks payloads in which the instrument reports a failure.
	// The leading space is part of the marker as emitted by the macro.
	errorPrefix = " ERROR:"
)

// splitResponse parses raw medium content of the form "<number> <payload>".
// ok is false when the content carries no parseable command number; callers
// treat that as "no response yet" and keep polling.
func splitResponse(content string) (number int, payload string, ok bool) {
	content = strings.TrimSpace(content)

	head, rest, found := strings.Cut(content, " ")
	if !found {
		return 0, "", false
	}

	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", false
	}

	return n, rest, true
}

// parsePayload classifies the payload of a matched response: a device-side
// error, the no-value sentinel, or a verbatim value. Numeric or other
// conversions of the value are the caller's business.
func parsePayload(payload string) (value string, hasValue bool, err error) {
	if strings.HasPrefix(payload, errorPrefix) {
		msg := strings.TrimSpace(strings.TrimPrefix(payload, errorPrefix))
		return "", false, &DeviceError{Message: msg}
	}

	if payload == noValueSentinel {
		return "", false, nil
	}

	return payload, true, nil
}
