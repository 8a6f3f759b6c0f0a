// Package mutation wraps long-running backend mutations with an explicit
// loading / error / success state machine, auto-dismiss timers, and
// teardown-safe cleanup.
package mutation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Phase is the lifecycle state of an orchestrated operation.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSuccess
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSuccess:
		return "success"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when Invoke is called while an operation is pending.
	ErrBusy = errors.New("mutation already in progress")
	// ErrClosed is returned when the orchestrator's owning scope is gone.
	ErrClosed = errors.New("mutation orchestrator closed")
	// ErrNothingToRetry is returned by Retry when no failed operation exists.
	ErrNothingToRetry = errors.New("no failed mutation to retry")
)

// VerifyHint is appended to ambiguous failure messages: the mutation may have
// taken effect server-side, so resubmitting could duplicate it.
const VerifyHint = "the request may still have gone through; refresh the list and verify before retrying"

// outcomer matches errors whose server-side outcome cannot be determined,
// such as api.AmbiguousError. Declared locally so this package stays
// transport-agnostic.
type outcomer interface {
	OutcomeUnknown() bool
}

// Snapshot is an immutable view of the orchestrator state for rendering.
type Snapshot struct {
	Phase     Phase
	Message   string
	Ambiguous bool
	Retries   int
}

// Config wires an orchestrator to its owning view.
type Config struct {
	// AutoDismiss, when positive, returns the orchestrator to idle this long
	// after a success. Zero keeps the success state until dismissed.
	AutoDismiss time.Duration
	// OnChange is called after every state transition, typically to queue a
	// redraw. May be nil.
	OnChange func(Snapshot)
	// Refresh re-fetches the owning collection. It runs after a success
	// (before any auto-dismiss timer is scheduled) and after an ambiguous
	// failure, so the list self-corrects either way. May be nil.
	Refresh func()
}

// Orchestrator runs at most one mutation at a time and owns every timer it
// schedules. Close must be called when the owning view is torn down.
type Orchestrator struct {
	mu      sync.Mutex
	cfg     Config
	phase   Phase
	message string
	amb     bool
	retries int
	timer   *time.Timer
	closed  bool
	lastOp  func(context.Context) error
}

// New creates an idle orchestrator.
func New(cfg Config) *Orchestrator {
	return &Orchestrator{cfg: cfg}
}

// State returns the current snapshot.
func (o *Orchestrator) State() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

func (o *Orchestrator) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:     o.phase,
		Message:   o.message,
		Ambiguous: o.amb,
		Retries:   o.retries,
	}
}

// Invoke runs op, blocking until it completes. Callers run it from a
// goroutine. A second Invoke while one is pending returns ErrBusy without
// starting the underlying call.
func (o *Orchestrator) Invoke(ctx context.Context, op func(context.Context) error) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if o.phase == PhasePending {
		o.mu.Unlock()
		return ErrBusy
	}

	o.stopTimerLocked()
	o.phase = PhasePending
	o.message = ""
	o.amb = false
	o.lastOp = op
	o.notifyLocked()
	o.mu.Unlock()

	err := op(ctx)
	if err != nil {
		o.fail(err)
		return err
	}

	o.succeed()
	return nil
}

// Retry re-runs the last failed operation. Only valid in the error phase.
func (o *Orchestrator) Retry(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if o.phase != PhaseError || o.lastOp == nil {
		o.mu.Unlock()
		return ErrNothingToRetry
	}
	op := o.lastOp
	o.retries++
	o.phase = PhaseIdle
	o.mu.Unlock()

	return o.Invoke(ctx, op)
}

// Dismiss returns the orchestrator to idle from a terminal state and cancels
// any auto-dismiss timer. It is a no-op while pending.
func (o *Orchestrator) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.phase == PhasePending || o.phase == PhaseIdle {
		return
	}

	o.stopTimerLocked()
	o.phase = PhaseIdle
	o.message = ""
	o.amb = false
	o.notifyLocked()
}

// Close tears the orchestrator down: the timer is cancelled and no state
// update is applied afterwards, even if an operation is still in flight.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	o.stopTimerLocked()
}

func (o *Orchestrator) succeed() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.phase = PhaseSuccess
	o.message = ""
	o.amb = false
	o.notifyLocked()
	refresh := o.cfg.Refresh
	o.mu.Unlock()

	// The success side effect runs before the auto-dismiss timer exists, so a
	// fast dismissal can never race the refresh.
	if refresh != nil {
		refresh()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed || o.phase != PhaseSuccess || o.cfg.AutoDismiss <= 0 {
		return
	}
	o.timer = time.AfterFunc(o.cfg.AutoDismiss, o.autoDismiss)
}

func (o *Orchestrator) fail(err error) {
	ambiguous := outcomeUnknown(err)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.phase = PhaseError
	o.amb = ambiguous
	o.message = err.Error()
	if ambiguous {
		o.message += "; " + VerifyHint
	}
	o.notifyLocked()
	refresh := o.cfg.Refresh
	o.mu.Unlock()

	// An ambiguous failure may have mutated server state, so the list is
	// refreshed here too.
	if ambiguous && refresh != nil {
		refresh()
	}
}

func (o *Orchestrator) autoDismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.phase != PhaseSuccess {
		return
	}
	o.phase = PhaseIdle
	o.notifyLocked()
}

func (o *Orchestrator) stopTimerLocked() {
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}

func (o *Orchestrator) notifyLocked() {
	if o.cfg.OnChange != nil {
		o.cfg.OnChange(o.snapshotLocked())
	}
}

func outcomeUnknown(err error) bool {
	var oc outcomer
	if errors.As(err, &oc) {
		return oc.OutcomeUnknown()
	}
	return errors.Is(err, context.DeadlineExceeded)
}
