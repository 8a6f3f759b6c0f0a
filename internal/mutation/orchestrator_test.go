package mutation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ambiguousErr struct{ msg string }

func (e *ambiguousErr) Error() string        { return e.msg }
func (e *ambiguousErr) OutcomeUnknown() bool { return true }

type eventLog struct {
	mu     sync.Mutex
	events []string
}

func (l *eventLog) add(event string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.events...)
}

func TestInvokeSuccessLifecycle(t *testing.T) {
	log := &eventLog{}
	o := New(Config{
		OnChange: func(s Snapshot) { log.add("phase:" + s.Phase.String()) },
		Refresh:  func() { log.add("refresh") },
	})
	defer o.Close()

	err := o.Invoke(context.Background(), func(context.Context) error {
		log.add("op")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"phase:pending", "op", "phase:success", "refresh"}, log.snapshot())
	assert.Equal(t, PhaseSuccess, o.State().Phase)
}

func TestInvokeRejectsConcurrentCalls(t *testing.T) {
	o := New(Config{})
	defer o.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	go func() {
		_ = o.Invoke(context.Background(), func(context.Context) error {
			calls.Add(1)
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	err := o.Invoke(context.Background(), func(context.Context) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.Eventually(t, func() bool {
		return o.State().Phase == PhaseSuccess
	}, time.Second, 5*time.Millisecond)

	// The second underlying call never started.
	assert.Equal(t, int32(1), calls.Load())
}

func TestDefiniteFailureDoesNotRefresh(t *testing.T) {
	var refreshes atomic.Int32
	o := New(Config{Refresh: func() { refreshes.Add(1) }})
	defer o.Close()

	err := o.Invoke(context.Background(), func(context.Context) error {
		return errors.New("station capacity exceeded")
	})
	require.Error(t, err)

	state := o.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.False(t, state.Ambiguous)
	assert.Equal(t, "station capacity exceeded", state.Message)
	assert.Zero(t, refreshes.Load())
}

func TestAmbiguousFailureRefreshesAndHints(t *testing.T) {
	var refreshes atomic.Int32
	o := New(Config{Refresh: func() { refreshes.Add(1) }})
	defer o.Close()

	err := o.Invoke(context.Background(), func(context.Context) error {
		return &ambiguousErr{msg: "request timed out"}
	})
	require.Error(t, err)

	state := o.State()
	assert.Equal(t, PhaseError, state.Phase)
	assert.True(t, state.Ambiguous)
	assert.Contains(t, state.Message, VerifyHint)
	assert.Equal(t, int32(1), refreshes.Load())
}

func TestAutoDismissReturnsToIdle(t *testing.T) {
	o := New(Config{AutoDismiss: 20 * time.Millisecond})
	defer o.Close()

	require.NoError(t, o.Invoke(context.Background(), func(context.Context) error { return nil }))
	assert.Equal(t, PhaseSuccess, o.State().Phase)

	assert.Eventually(t, func() bool {
		return o.State().Phase == PhaseIdle
	}, time.Second, 5*time.Millisecond)
}

func TestCloseCancelsAutoDismiss(t *testing.T) {
	var changes atomic.Int32
	o := New(Config{
		AutoDismiss: 20 * time.Millisecond,
		OnChange:    func(Snapshot) { changes.Add(1) },
	})

	require.NoError(t, o.Invoke(context.Background(), func(context.Context) error { return nil }))
	before := changes.Load()

	o.Close()
	time.Sleep(80 * time.Millisecond)

	// No state update after teardown.
	assert.Equal(t, before, changes.Load())
	assert.ErrorIs(t, o.Invoke(context.Background(), func(context.Context) error { return nil }), ErrClosed)
}

func TestRetryRerunsFailedOperation(t *testing.T) {
	var attempts atomic.Int32
	o := New(Config{})
	defer o.Close()

	op := func(context.Context) error {
		if attempts.Add(1) == 1 {
			return errors.New("transient")
		}
		return nil
	}

	require.Error(t, o.Invoke(context.Background(), op))
	require.Equal(t, PhaseError, o.State().Phase)

	require.NoError(t, o.Retry(context.Background()))
	state := o.State()
	assert.Equal(t, PhaseSuccess, state.Phase)
	assert.Equal(t, 1, state.Retries)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestRetryOnlyValidInErrorPhase(t *testing.T) {
	o := New(Config{})
	defer o.Close()

	assert.ErrorIs(t, o.Retry(context.Background()), ErrNothingToRetry)
}

func TestDismissClearsError(t *testing.T) {
	o := New(Config{})
	defer o.Close()

	require.Error(t, o.Invoke(context.Background(), func(context.Context) error {
		return errors.New("rejected")
	}))

	o.Dismiss()
	state := o.State()
	assert.Equal(t, PhaseIdle, state.Phase)
	assert.Empty(t, state.Message)
}
