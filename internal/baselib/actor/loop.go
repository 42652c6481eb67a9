package actor

import (
	"context"
	"errors"
	"runtime"
	"time"
)

// Spawn starts an actor on the asynchronous, cooperative driver: a single
// goroutine that receives from the actor's mailbox and calls the actor's
// handlers directly on that goroutine, yielding between cycles. It returns a
// clone of the actor's mailbox (for callers who want to send it application
// messages) and a Handle for observing and controlling it.
//
// killSwitch is typically fresh (NewKillSwitch()) but may be shared with
// other actors spawned earlier, letting a single Kill trip all of them.
// schedulerMailbox may be the zero Mailbox value if the actor never uses
// Context.SchedulerMailbox. opts tune per-actor timing; see WithRecvTimeout
// and WithCleanupTimeout.
func Spawn[M any, S any](
	a Actor[M, S],
	killSwitch *KillSwitch,
	schedulerMailbox Mailbox[SchedulerMessage[M]],
	opts ...SpawnOption,
) (Mailbox[M], *Handle[M, S]) {

	cfg := newSpawnConfig(opts)

	mb, inbox := NewMailbox[M](a.Name(), a.QueueCapacity())
	selfMailbox := mb.weakClone()
	ctx := newContext[M, S](selfMailbox, killSwitch, schedulerMailbox)
	watch := NewWatch[S](a.ObservableState())
	exitFuture := newExitFuture()

	handle := &Handle[M, S]{
		name:       a.Name(),
		mailbox:    mb.weakClone(),
		killSwitch: killSwitch,
		watch:      watch,
		exitFuture: exitFuture,
		progress:   ctx.Progress(),
	}

	go runLoop[M, S](a, inbox, ctx, watch, exitFuture, nil, cfg)

	return mb, handle
}

// runLoop is the shared driver body for both Spawn and SpawnSync. dispatch
// wraps each handler invocation (Initialize/ProcessMessage/command
// handling); the async driver passes nil (direct call), the CPU-bound sync
// driver passes a semaphore-bounded wrapper. This is the one piece of the
// two drivers that differs; everything else (receive discipline, kill
// check, progress stamps, exit/finalize sequencing) is identical.
func runLoop[M any, S any](
	a Actor[M, S],
	inbox *Inbox[M],
	ctx *Context[M, S],
	watch *Watch[S],
	exitFuture *ExitFuture,
	dispatch func(func()),
	cfg spawnConfig,
) {

	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}

	recvTimeout := cfg.recvTimeout.UnwrapOr(DefaultRecvTimeout)
	cleanupTimeout := cfg.cleanupTimeout.UnwrapOr(DefaultCleanupTimeout)

	var status ExitStatus
	var decided bool

	defer func() {
		if r := recover(); r != nil {
			log.ErrorS(context.Background(), "actor panicked", nil,
				"actor", a.Name(), "recover", r)
			finishLoop[M, S](
				a, Panicked(), ctx, watch, exitFuture, cleanupTimeout,
			)
		}
	}()

	dispatch(func() {
		if err := a.Initialize(ctx); err != nil {
			status, decided = toExitStatus(err), true
		}
	})

	for !decided {
		runtime.Gosched()

		if ctx.KillSwitch().IsDead() {
			status, decided = Killed(), true
			break
		}

		ctx.Progress().RecordProgress()

		running := ctx.GetState() == ActorRunning
		item, err := inbox.recvTimeout(running, recvTimeout)

		ctx.Progress().RecordProgress()

		if err == nil && ctx.KillSwitch().IsDead() {
			status, decided = Killed(), true
			break
		}

		if err != nil {
			switch {
			case errors.Is(err, ErrTimeout):
				if inbox.IsLastMailbox() {
					status, decided = Success(), true
				}
				continue

			case errors.Is(err, ErrDisconnected):
				status, decided = Success(), true

			default:
				status, decided = Failure(err), true
			}
			break
		}

		if item.IsCommand {
			dispatch(func() {
				if s, ok := processCommand[M, S](a, item.Cmd, ctx, watch); ok {
					status, decided = s, true
				}
			})
			continue
		}

		dispatch(func() {
			if err := a.ProcessMessage(item.Msg, ctx); err != nil {
				status, decided = toExitStatus(err), true
			}
		})
	}

	finishLoop[M, S](a, status, ctx, watch, exitFuture, cleanupTimeout)
}

// finishLoop runs the shared exit sequence: fix the exit status on the
// context (tripping the kill switch for fatal statuses), call Finalize
// (its error is logged and discarded, never surfaced through Join, so the
// exit status stays fixed once decided), publish the final ObservableState
// snapshot, and resolve the join future. Called exactly once per actor,
// from runLoop's normal path or its panic recovery path.
func finishLoop[M any, S any](
	a Actor[M, S],
	status ExitStatus,
	ctx *Context[M, S],
	watch *Watch[S],
	exitFuture *ExitFuture,
	cleanupTimeout time.Duration,
) {

	ctx.Exit(status)

	runFinalize(a, status, ctx, cleanupTimeout)

	watch.Publish(a.ObservableState())
	exitFuture.resolve(status)
}

// runFinalize invokes Finalize on its own goroutine and waits at most
// cleanupTimeout for it to return. A Finalize that overruns the bound is
// logged as stuck and abandoned; the exit sequence proceeds so the handle
// still resolves with the already-decided status.
func runFinalize[M any, S any](
	a Actor[M, S],
	status ExitStatus,
	ctx *Context[M, S],
	cleanupTimeout time.Duration,
) {

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorS(context.Background(), "actor finalize panicked",
					nil, "actor", a.Name(), "recover", r)
				done <- nil
			}
		}()
		done <- a.Finalize(status, ctx)
	}()

	timer := time.NewTimer(cleanupTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			log.ErrorS(context.Background(), "actor finalize failed", err,
				"actor", a.Name())
		}

	case <-timer.C:
		log.ErrorS(context.Background(), "actor finalize timed out", nil,
			"actor", a.Name(), "timeout", cleanupTimeout)
	}
}
