package actor

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"
)

// defaultSyncWeight bounds concurrent handler execution across all
// SpawnSync actors sharing a weighted semaphore to GOMAXPROCS, a worker
// pool sized to the machine.
func defaultSyncWeight() int64 {
	return int64(runtime.GOMAXPROCS(0))
}

// SyncPool is a semaphore.Weighted shared by one or more SpawnSync actors,
// bounding how many of their handlers may run concurrently regardless of
// how many such actors exist. Construct one with NewSyncPool and reuse it
// across every SpawnSync call that should share the same CPU budget.
type SyncPool struct {
	sem *semaphore.Weighted
}

// NewSyncPool builds a SyncPool with the given concurrency weight. A weight
// of 0 or less defaults to GOMAXPROCS.
func NewSyncPool(weight int64) *SyncPool {
	if weight <= 0 {
		weight = defaultSyncWeight()
	}
	return &SyncPool{sem: semaphore.NewWeighted(weight)}
}

// SpawnSync starts an actor on the CPU-bound synchronous driver:
// the same receive/dispatch loop as Spawn, but
// each handler invocation (Initialize, ProcessMessage, command processing)
// acquires a slot on pool before running and releases it immediately after,
// so a burst of CPU-heavy actors sharing a pool never oversubscribes the
// machine. If pool is nil, a private pool sized to GOMAXPROCS is created
// for this actor alone. opts tune per-actor timing; see WithRecvTimeout and
// WithCleanupTimeout.
func SpawnSync[M any, S any](
	a Actor[M, S],
	killSwitch *KillSwitch,
	schedulerMailbox Mailbox[SchedulerMessage[M]],
	pool *SyncPool,
	opts ...SpawnOption,
) (Mailbox[M], *Handle[M, S]) {

	if pool == nil {
		pool = NewSyncPool(0)
	}

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

	dispatch := func(fn func()) {
		// Acquire blocks only on ctx.Done(); context.Background() never
		// cancels, so this blocks until a slot is free, mirroring a
		// bounded worker-pool submit.
		if err := pool.sem.Acquire(context.Background(), 1); err != nil {
			log.ErrorS(context.Background(), "sync actor semaphore acquire failed",
				err, "actor", a.Name())
			fn()
			return
		}
		defer pool.sem.Release(1)
		fn()
	}

	go runLoop[M, S](a, inbox, ctx, watch, exitFuture, dispatch, cfg)

	return mb, handle
}
