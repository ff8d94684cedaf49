package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calc-sim/fxpad/internal/keys"
)

// fakeSender records calls and returns a configurable error.
type fakeSender struct {
	sent []keys.Code
	err  error
}

func (f *fakeSender) Send(code keys.Code) error {
	f.sent = append(f.sent, code)
	return f.err
}

func TestPressValidKey(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, nil)

	result := d.Press(context.Background(), "KEY_PLUS")

	require.True(t, result.OK())
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "KEY_PLUS", result.Key)
	assert.Equal(t, keys.KeyPlus, result.Value)
	assert.Empty(t, result.Message)
	assert.Equal(t, []keys.Code{keys.KeyPlus}, sender.sent)
}

func TestPressUnknownKeyNeverTouchesSender(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, nil)

	for _, name := range []string{"", "KEY_BOGUS", "key_plus", "DROP TABLE"} {
		result := d.Press(context.Background(), name)

		assert.False(t, result.OK())
		assert.Equal(t, StatusError, result.Status)
		assert.Equal(t, name, result.Key)
		assert.Equal(t, keys.KeyNone, result.Value)
		assert.Contains(t, result.Message, "invalid key")
	}

	// The pipe must never be opened for an invalid request.
	assert.Empty(t, sender.sent)
}

func TestPressTransportFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("broken pipe")}
	d := NewDispatcher(sender, nil)

	result := d.Press(context.Background(), "KEY_EQUAL")

	assert.False(t, result.OK())
	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, keys.KeyEqual, result.Value)
	assert.Contains(t, result.Message, "failed to send")

	// Failure is not sticky; the next press goes through.
	sender.err = nil
	result = d.Press(context.Background(), "KEY_EQUAL")
	assert.True(t, result.OK())
	assert.Equal(t, []keys.Code{keys.KeyEqual, keys.KeyEqual}, sender.sent)
}
