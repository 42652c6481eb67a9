package actor

import (
	"context"
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// ExitFuture resolves exactly once, when the actor's loop has finished and
// decided its final ExitStatus. This runtime has no request/response
// protocol, so a one-shot "the actor is done" signal is all a join needs.
type ExitFuture struct {
	once   sync.Once
	done   chan struct{}
	status ExitStatus
}

func newExitFuture() *ExitFuture {
	return &ExitFuture{done: make(chan struct{})}
}

// resolve is called exactly once by the loop on its way out.
func (f *ExitFuture) resolve(status ExitStatus) {
	f.once.Do(func() {
		f.status = status
		close(f.done)
	})
}

// Wait blocks until the actor has exited or ctx is done, whichever comes
// first, returning the final ExitStatus wrapped in a fn.Result.
func (f *ExitFuture) Wait(ctx context.Context) fn.Result[ExitStatus] {
	select {
	case <-f.done:
		return fn.Ok(f.status)
	case <-ctx.Done():
		return fn.Err[ExitStatus](ctx.Err())
	}
}

// Handle is the spawner-facing control surface for a running actor: observe
// its latest published state, watch for state-change notifications, and
// request pause/resume/quit/kill without reaching into the actor itself.
type Handle[M any, S any] struct {
	name       string
	mailbox    Mailbox[M]
	killSwitch *KillSwitch
	watch      *Watch[S]
	exitFuture *ExitFuture
	progress   *Progress
}

// Name returns the actor's diagnostic label.
func (h *Handle[M, S]) Name() string {
	return h.name
}

// Progress returns the actor's liveness beacon, letting a supervisor poll it
// directly or Attach a ProgressSink (e.g. a metrics.Gauge) to it.
func (h *Handle[M, S]) Progress() *Progress {
	return h.progress
}

// Observe returns the most recently published ObservableState snapshot.
func (h *Handle[M, S]) Observe() S {
	return h.watch.Value()
}

// StateChanges returns a channel of ObservableState updates and a cancel
// function to stop receiving them. The channel always carries only the
// latest value -- see Watch.Subscribe.
func (h *Handle[M, S]) StateChanges() (<-chan S, func()) {
	return h.watch.Subscribe()
}

// Mailbox returns a cloned send handle to the actor's mailbox, so callers
// can deliver application messages.
func (h *Handle[M, S]) Mailbox() Mailbox[M] {
	return h.mailbox.Clone()
}

// Pause asks the actor to stop processing Messages (Commands still flow).
func (h *Handle[M, S]) Pause(ctx context.Context) error {
	return h.mailbox.SendCommand(ctx, Pause())
}

// Resume asks a Paused actor to resume processing Messages.
func (h *Handle[M, S]) Resume(ctx context.Context) error {
	return h.mailbox.SendCommand(ctx, Resume())
}

// RequestObserve asks the loop to publish a fresh ObservableState snapshot
// immediately, without waiting for the actor to exit.
func (h *Handle[M, S]) RequestObserve(ctx context.Context) error {
	return h.mailbox.SendCommand(ctx, Observe())
}

// Quit asks the actor to terminate gracefully, finishing any message
// already being processed first.
func (h *Handle[M, S]) Quit(ctx context.Context) error {
	return h.mailbox.SendCommand(ctx, QuitCommand())
}

// Kill trips the actor's shared kill switch and asks it to terminate. Any
// other actor sharing this kill switch observes the trip on its own next
// receive cycle and terminates with Killed as well.
func (h *Handle[M, S]) Kill(ctx context.Context) error {
	h.killSwitch.Kill()
	return h.mailbox.SendCommand(ctx, KillCommand())
}

// Join blocks until the actor has exited or ctx is done, returning the
// final ExitStatus.
func (h *Handle[M, S]) Join(ctx context.Context) fn.Result[ExitStatus] {
	return h.exitFuture.Wait(ctx)
}
