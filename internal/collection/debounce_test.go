package collection

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debounceRecorder struct {
	mu     sync.Mutex
	values []string
}

func (r *debounceRecorder) record(value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = append(r.values, value)
}

func (r *debounceRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.values...)
}

func TestDebounceCollapsesBurst(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)
	defer d.Stop()

	for _, v := range []string{"t", "tr", "trạ", "trạm"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, []string{"trạm"}, rec.snapshot())
}

func TestDebounceStopCancelsPendingFire(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(30*time.Millisecond, rec.record)

	d.Set("pending")
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebounceSetAfterStopIsIgnored(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(10*time.Millisecond, rec.record)

	d.Stop()
	d.Set("late")

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestDebounceSeparateQuietPeriodsBothFire(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Set("first")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	d.Set("second")
	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"first", "second"}, rec.snapshot())
}

func TestDebounceSupersededTimerDropsStaleValue(t *testing.T) {
	rec := &debounceRecorder{}
	d := NewDebouncer(20*time.Millisecond, rec.record)
	defer d.Stop()

	d.Set("stale")
	stale := d.timer
	d.Set("fresh")

	// Re-arm the replaced timer, standing in for a callback that had already
	// fired and was waiting on the lock when the newer Set came in.
	stale.Reset(0)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) >= 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, []string{"fresh"}, rec.snapshot())
}
