package mutation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateSerializesPerRecord(t *testing.T) {
	g := NewGate()

	require.True(t, g.TryAcquire("station-1"))
	assert.False(t, g.TryAcquire("station-1"))
	assert.True(t, g.Busy("station-1"))

	// A different record is unaffected.
	assert.True(t, g.TryAcquire("station-2"))

	g.Release("station-1")
	assert.False(t, g.Busy("station-1"))
	assert.True(t, g.TryAcquire("station-1"))
}

func TestGateDo(t *testing.T) {
	g := NewGate()

	ran := false
	err := g.Do("v-1", func() error {
		ran = true
		// While running, the same record is gated.
		return g.Do("v-1", func() error { return nil })
	})

	require.True(t, ran)
	assert.ErrorIs(t, err, ErrRecordBusy)

	// The slot is released afterwards, including on error paths.
	assert.NoError(t, g.Do("v-1", func() error { return nil }))
}

func TestGateDoPropagatesError(t *testing.T) {
	g := NewGate()
	sentinel := errors.New("sync conflict")

	err := g.Do("v-1", func() error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, g.Busy("v-1"))
}
