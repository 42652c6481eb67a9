package actor

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestSpawnSync_SameContractAsSpawn runs the echo scenario through the
// CPU-bound driver: same receive discipline, same exit sequencing.
func TestSpawnSync_SameContractAsSpawn(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := &recordingActor{name: "sync-echo", capacity: 8}
	mb, handle := SpawnSync[int, []int](
		a, NewKillSwitch(), Mailbox[SchedulerMessage[int]]{}, nil,
	)

	ctx := context.Background()
	require.NoError(t, mb.Send(ctx, 1))
	require.NoError(t, mb.Send(ctx, 2))
	mb.Close()

	status, err := handle.Join(withTimeout(t)).Unpack()
	require.NoError(t, err)
	require.Equal(t, ExitSuccess, status.Kind())
	require.Equal(t, []int{1, 2}, a.snapshot())
	require.Equal(t, 1, a.initCount)
	require.Equal(t, 1, a.finalCount)
}

// gaugedActor tracks how many of its handlers are in flight at once, so a
// test can assert the shared SyncPool's concurrency bound is honored.
type gaugedActor struct {
	name     string
	inFlight *atomic.Int64
	maxSeen  *atomic.Int64
}

func (a *gaugedActor) Name() string                            { return a.name }
func (a *gaugedActor) QueueCapacity() int                      { return 4 }
func (a *gaugedActor) ObservableState() int                    { return int(a.maxSeen.Load()) }
func (a *gaugedActor) Initialize(ctx *Context[int, int]) error { return nil }

func (a *gaugedActor) ProcessMessage(msg int, ctx *Context[int, int]) error {
	cur := a.inFlight.Add(1)
	for {
		max := a.maxSeen.Load()
		if cur <= max || a.maxSeen.CompareAndSwap(max, cur) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	a.inFlight.Add(-1)
	return nil
}

func (a *gaugedActor) Finalize(status ExitStatus, ctx *Context[int, int]) error { return nil }

// TestSpawnSync_SharedPoolBoundsConcurrency spawns several sync actors on a
// weight-1 pool and checks that no two handlers ever overlap, even though
// each actor has its own goroutine.
func TestSpawnSync_SharedPoolBoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, maxSeen atomic.Int64
	pool := NewSyncPool(1)

	const numActors = 3
	mailboxes := make([]Mailbox[int], numActors)
	handles := make([]*Handle[int, int], numActors)
	for i := 0; i < numActors; i++ {
		a := &gaugedActor{name: "gauged", inFlight: &inFlight, maxSeen: &maxSeen}
		mailboxes[i], handles[i] = SpawnSync[int, int](
			a, NewKillSwitch(), Mailbox[SchedulerMessage[int]]{}, pool,
		)
	}

	ctx := context.Background()
	for i := 0; i < numActors; i++ {
		for j := 0; j < 3; j++ {
			require.NoError(t, mailboxes[i].Send(ctx, j))
		}
		mailboxes[i].Close()
	}

	for _, h := range handles {
		status, err := h.Join(withTimeout(t)).Unpack()
		require.NoError(t, err)
		require.Equal(t, ExitSuccess, status.Kind())
	}

	require.Equal(t, int64(1), maxSeen.Load())
}

func TestNewSyncPoolDefaultsWeight(t *testing.T) {
	require.NotNil(t, NewSyncPool(0))
	require.NotNil(t, NewSyncPool(-5))
}
