// Package transport delivers key-code frames to the calculator engine over a
// named pipe. Each send is one open/write/close cycle; the pipe handle is
// never held between calls and writes from concurrent callers are left to OS
// pipe semantics (no internal serialization).
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/calc-sim/fxpad/internal/keys"
	"github.com/calc-sim/fxpad/internal/logging"
)

// DefaultEndpoint is the well-known FIFO path the engine reads from.
const DefaultEndpoint = "/tmp/calculator_keypad_fifo"

// ErrNotNamedPipe is returned when the endpoint path exists but is a regular
// file or other non-FIFO object.
var ErrNotNamedPipe = errors.New("endpoint exists but is not a named pipe")

// Writer performs single-frame writes to the FIFO endpoint. Construct one at
// startup and pass it to the dispatcher; it holds no open handles and is safe
// to share across requests.
type Writer struct {
	path   string
	logger logging.Logger
}

// NewWriter creates a Writer for the given endpoint path (DefaultEndpoint if
// empty). The endpoint is created eagerly as a convenience; creation failure
// is logged and left for the next Send to retry.
func NewWriter(path string, logger logging.Logger) *Writer {
	if path == "" {
		path = DefaultEndpoint
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	w := &Writer{
		path:   path,
		logger: logger.WithComponent("transport"),
	}

	if err := w.ensureEndpoint(); err != nil {
		w.logger.Warn(context.Background(), err, "endpoint creation deferred", "path", path)
	}

	return w
}

// Path returns the endpoint path this writer delivers to.
func (w *Writer) Path() string {
	return w.path
}

// ensureEndpoint creates the FIFO if absent and verifies an existing path is
// actually a named pipe. An endpoint left behind by a previous run is reused.
func (w *Writer) ensureEndpoint() error {
	fi, err := os.Stat(w.path)
	if err == nil {
		if fi.Mode()&os.ModeNamedPipe == 0 {
			return fmt.Errorf("%w: %s", ErrNotNamedPipe, w.path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat endpoint: %w", err)
	}

	if err := unix.Mkfifo(w.path, 0o666); err != nil {
		// Another writer may have created it between stat and mkfifo.
		if errors.Is(err, unix.EEXIST) {
			return nil
		}
		return fmt.Errorf("mkfifo %s: %w", w.path, err)
	}

	w.logger.Info(context.Background(), "created endpoint", "path", w.path)
	return nil
}

// Send serializes code as a 4-byte little-endian frame and writes it to the
// endpoint.
//
// The open blocks until the engine has the FIFO open for reading; that is a
// property of the transport, not a policy of this writer, and no timeout is
// imposed. The handle is closed on every exit path and success is reported
// only when open, write and close all complete.
func (w *Writer) Send(code keys.Code) error {
	if err := w.ensureEndpoint(); err != nil {
		w.logger.Warn(context.Background(), err, "endpoint unavailable", "path", w.path)
		return fmt.Errorf("ensure endpoint: %w", err)
	}

	f, err := os.OpenFile(w.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open endpoint: %w", err)
	}

	frame := code.Frame()
	n, err := f.Write(frame[:])
	if err != nil {
		f.Close()
		return fmt.Errorf("write frame: %w", err)
	}
	if n != len(frame) {
		f.Close()
		return fmt.Errorf("write frame: %w", io.ErrShortWrite)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close endpoint: %w", err)
	}

	w.logger.Debug(context.Background(), "sent key",
		"key", code.Name(), "code", uint32(code))
	return nil
}
