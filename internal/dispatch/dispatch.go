// Package dispatch validates symbolic key names and routes them to the
// transport. Validation happens before the transport is touched: opening the
// FIFO can block indefinitely when no reader is attached, so garbage names
// must never reach the writer.
package dispatch

import (
	"context"
	"fmt"

	"github.com/calc-sim/fxpad/internal/keys"
	"github.com/calc-sim/fxpad/internal/logging"
)

// Sender delivers one validated key code to the engine. *transport.Writer is
// the production implementation; tests substitute fakes.
type Sender interface {
	Send(code keys.Code) error
}

// Result statuses, mirrored into the HTTP response body.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is the outcome of one key press: the status flag, the resolved
// numeric code when the name was valid, and an error message otherwise.
type Result struct {
	Status  string    `json:"status"`
	Key     string    `json:"key"`
	Value   keys.Code `json:"value,omitempty"`
	Message string    `json:"message,omitempty"`
}

// OK reports whether the press was delivered.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Dispatcher resolves key names against the registry and forwards hits to
// the sender. Construct one at startup and share it; it is stateless beyond
// its collaborators.
type Dispatcher struct {
	sender Sender
	logger logging.Logger
}

// NewDispatcher creates a dispatcher around the given sender.
func NewDispatcher(sender Sender, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Dispatcher{
		sender: sender,
		logger: logger.WithComponent("dispatch"),
	}
}

// Press looks name up in the key registry and, on a hit, sends the resolved
// code. Unknown names fail validation without invoking the sender.
func (d *Dispatcher) Press(ctx context.Context, name string) Result {
	code, ok := keys.Lookup(name)
	if !ok {
		d.logger.Warn(ctx, nil, "rejected unknown key", "key", name)
		return Result{
			Status:  StatusError,
			Key:     name,
			Message: fmt.Sprintf("invalid key: %s", name),
		}
	}

	if err := d.sender.Send(code); err != nil {
		d.logger.Error(ctx, err, "failed to send key", "key", name, "code", uint32(code))
		return Result{
			Status:  StatusError,
			Key:     name,
			Value:   code,
			Message: fmt.Sprintf("failed to send key: %s", name),
		}
	}

	d.logger.Info(ctx, "key sent", "key", name, "code", uint32(code))
	return Result{
		Status: StatusSuccess,
		Key:    name,
		Value:  code,
	}
}
