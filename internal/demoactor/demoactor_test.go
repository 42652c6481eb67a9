package demoactor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/archon-search/actorcore/internal/baselib/actor"
)

func TestEchoAccumulatesInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := NewEcho("echo", 8)
	mb, handle := actor.Spawn[int, EchoState](
		e, actor.NewKillSwitch(), actor.Mailbox[actor.SchedulerMessage[int]]{},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, mb.Send(ctx, 1))
	require.NoError(t, mb.Send(ctx, 2))
	require.NoError(t, mb.Send(ctx, 3))
	mb.Close()

	status, err := handle.Join(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, actor.ExitSuccess, status.Kind())
	require.Equal(t, []int{1, 2, 3}, handle.Observe().Received)
}

func TestFailingCounterStopsAtFailAfter(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewFailingCounter("counter", 8, 2)
	killSwitch := actor.NewKillSwitch()
	mb, handle := actor.Spawn[int, CounterState](
		c, killSwitch, actor.Mailbox[actor.SchedulerMessage[int]]{},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, mb.Send(ctx, 10))
	require.NoError(t, mb.Send(ctx, 20))
	require.NoError(t, mb.Send(ctx, 30))
	mb.Close()

	status, err := handle.Join(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, actor.ExitFailure, status.Kind())
	require.True(t, killSwitch.IsDead())
	require.Equal(t, 2, handle.Observe().Processed)
}

func TestFailingCounterZeroFailAfterNeverFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewFailingCounter("counter", 8, 0)
	mb, handle := actor.Spawn[int, CounterState](
		c, actor.NewKillSwitch(), actor.Mailbox[actor.SchedulerMessage[int]]{},
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 10; i++ {
		require.NoError(t, mb.Send(ctx, i))
	}
	mb.Close()

	status, err := handle.Join(ctx).Unpack()
	require.NoError(t, err)
	require.Equal(t, actor.ExitSuccess, status.Kind())
	require.Equal(t, 10, handle.Observe().Processed)
}
