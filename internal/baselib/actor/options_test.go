package actor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// stuckFinalizeActor blocks inside Finalize until released, so a test can
// observe the cleanup bound abandoning it.
type stuckFinalizeActor struct {
	name     string
	release  chan struct{}
	finished chan struct{}
}

func (a *stuckFinalizeActor) Name() string                                    { return a.name }
func (a *stuckFinalizeActor) QueueCapacity() int                              { return 1 }
func (a *stuckFinalizeActor) ObservableState() int                            { return 0 }
func (a *stuckFinalizeActor) Initialize(ctx *Context[int, int]) error         { return nil }
func (a *stuckFinalizeActor) ProcessMessage(msg int, ctx *Context[int, int]) error { return nil }

func (a *stuckFinalizeActor) Finalize(status ExitStatus, ctx *Context[int, int]) error {
	defer close(a.finished)
	<-a.release
	return nil
}

// A Finalize that overruns WithCleanupTimeout must not hold up the exit
// sequence: the handle still resolves with the already-decided status.
func TestWithCleanupTimeoutAbandonsStuckFinalize(t *testing.T) {
	a := &stuckFinalizeActor{
		name:     "stuck-finalize",
		release:  make(chan struct{}),
		finished: make(chan struct{}),
	}
	mb, handle := Spawn[int, int](
		a, NewKillSwitch(), Mailbox[SchedulerMessage[int]]{},
		WithCleanupTimeout(20*time.Millisecond),
	)
	mb.Close()

	status, err := handle.Join(withTimeout(t)).Unpack()
	require.NoError(t, err)
	require.Equal(t, ExitSuccess, status.Kind())

	// Unblock the abandoned Finalize and wait for it, so the goroutine
	// does not outlive the test.
	close(a.release)
	<-a.finished
}

// With nothing ever sent and the spawner's mailbox kept open, the idle loop
// keeps polling instead of exiting; WithRecvTimeout governs how often it
// wakes, which shows up as progress-beacon stamps (two per receive cycle).
// 40 stamps within 400ms needs ~20 wakeups, which the 25ms default cannot
// reach. Closing the mailbox then ends the actor with Success.
func TestWithRecvTimeoutGovernsIdlePolling(t *testing.T) {
	defer goleak.VerifyNone(t)

	a := &recordingActor{name: "fast-poll", capacity: 2}
	mb, handle := Spawn[int, []int](
		a, NewKillSwitch(), Mailbox[SchedulerMessage[int]]{},
		WithRecvTimeout(time.Millisecond),
	)

	require.Eventually(t, func() bool {
		return handle.Progress().Ticks() >= 40
	}, 400*time.Millisecond, time.Millisecond)
	mb.Close()

	status, err := handle.Join(withTimeout(t)).Unpack()
	require.NoError(t, err)
	require.Equal(t, ExitSuccess, status.Kind())
	require.Empty(t, a.snapshot())
}

func TestSpawnConfigDefaultsWhenUnset(t *testing.T) {
	cfg := newSpawnConfig(nil)
	require.Equal(t, DefaultRecvTimeout, cfg.recvTimeout.UnwrapOr(DefaultRecvTimeout))
	require.Equal(t, DefaultCleanupTimeout, cfg.cleanupTimeout.UnwrapOr(DefaultCleanupTimeout))

	cfg = newSpawnConfig([]SpawnOption{
		WithRecvTimeout(time.Millisecond),
		WithCleanupTimeout(time.Second),
	})
	require.Equal(t, time.Millisecond, cfg.recvTimeout.UnwrapOr(DefaultRecvTimeout))
	require.Equal(t, time.Second, cfg.cleanupTimeout.UnwrapOr(DefaultCleanupTimeout))
}
