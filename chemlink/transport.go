package chemlink

import (
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Transport is the medium the engine writes commands to and polls responses
// from. Production uses the shared-file transport; tests inject an
// in-memory fake.
type Transport interface {
	// Write replaces the medium's command content with line.
	Write(line string) error

	// TryRead returns the medium's current response content. ok is false
	// when nothing is available. The engine treats read errors the same as
	// "nothing yet" and keeps polling, so implementations may report
	// transient failures either way.
	TryRead() (content string, ok bool, err error)
}

// The control application reads and writes the shared files as UTF-16 with
// a byte order mark.
var utf16codec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// fileTransport exchanges single-line messages through a command/response
// file pair shared with an externally polled control application.
//
// The command file is overwritten wholesale on every write and fsynced so
// the macro's next poll sees a complete line. No locking is involved: write
// retries and response re-reads are the engine's only defense against the
// two sides touching a file at the same moment.
type fileTransport struct {
	commandPath  string
	responsePath string
}

func newFileTransport(commandPath, responsePath string) *fileTransport {
	return &fileTransport{
		commandPath:  commandPath,
		responsePath: responsePath,
	}
}

func (t *fileTransport) Write(line string) error {
	f, err := os.OpenFile(t.commandPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open command file: %w", err)
	}

	w := transform.NewWriter(f, utf16codec.NewEncoder())
	if _, err := w.Write([]byte(line)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write command file: %w", err)
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode command file: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync command file: %w", err)
	}

	return f.Close()
}

func (t *fileTransport) TryRead() (string, bool, error) {
	raw, err := os.ReadFile(t.responsePath)
	if err != nil {
		return "", false, err
	}
	if len(raw) == 0 {
		return "", false, nil
	}

	decoded, err := utf16codec.NewDecoder().Bytes(raw)
	if err != nil {
		// Partially written or foreign content; the next poll re-reads.
		return "", false, nil
	}

	return string(decoded), true, nil
}
