package actorutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/archon-search/actorcore/internal/baselib/actor"
	"github.com/archon-search/actorcore/internal/demoactor"
)

func echoPool(size int) *Pool[int, demoactor.EchoState] {
	return NewPool(PoolConfig[int, demoactor.EchoState]{
		ID:   "echo-pool",
		Size: size,
		Factory: func(idx int) actor.Actor[int, demoactor.EchoState] {
			return demoactor.NewEcho("echo", 8)
		},
	})
}

func TestPoolRoundRobinSpreadsMessages(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := echoPool(3)
	require.Equal(t, 3, pool.Size())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := 0; i < 6; i++ {
		require.NoError(t, pool.Send(ctx, i))
	}

	// Quit is a command and commands outrun queued messages, so wait for
	// every message to land before asking the pool to shut down.
	require.Eventually(t, func() bool {
		total := 0
		for _, s := range ObserveAll(pool.Handles()) {
			total += len(s.Received)
		}
		return total == 6
	}, 2*time.Second, 10*time.Millisecond)

	for _, s := range ObserveAll(pool.Handles()) {
		require.Len(t, s.Received, 2)
	}

	for _, h := range pool.Handles() {
		require.NoError(t, h.Quit(ctx))
	}
	for _, res := range JoinAll(ctx, pool.Handles()) {
		status, err := res.Unpack()
		require.NoError(t, err)
		require.Equal(t, actor.ExitQuit, status.Kind())
	}
}

func TestPoolBroadcastReachesEveryMember(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := echoPool(4)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, pool.Broadcast(ctx, 42))

	require.Eventually(t, func() bool {
		for _, s := range ObserveAll(pool.Handles()) {
			if len(s.Received) != 1 {
				return false
			}
		}
		return true
	}, 2*time.Second, 10*time.Millisecond)

	pool.Kill()
	for _, res := range JoinAll(ctx, pool.Handles()) {
		status, err := res.Unpack()
		require.NoError(t, err)
		require.Equal(t, actor.ExitKilled, status.Kind())
	}
}

func TestPoolKillBringsDownEveryMember(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := echoPool(3)
	pool.Kill()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, res := range JoinAll(ctx, pool.Handles()) {
		status, err := res.Unpack()
		require.NoError(t, err)
		require.Equal(t, actor.ExitKilled, status.Kind())
	}
}

// BroadcastKill must bring down handles that do NOT share a switch, e.g.
// members gathered from two independent pools.
func TestBroadcastKillAcrossIndependentPools(t *testing.T) {
	defer goleak.VerifyNone(t)

	poolA := echoPool(2)
	poolB := echoPool(2)
	handles := append(poolA.Handles(), poolB.Handles()...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	BroadcastKill(ctx, handles)

	for _, res := range JoinAll(ctx, handles) {
		status, err := res.Unpack()
		require.NoError(t, err)
		require.Equal(t, actor.ExitKilled, status.Kind())
	}
}

func TestPoolDefaultsSizeToOne(t *testing.T) {
	defer goleak.VerifyNone(t)

	pool := echoPool(0)
	require.Equal(t, 1, pool.Size())
	pool.Kill()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, res := range JoinAll(ctx, pool.Handles()) {
		_, err := res.Unpack()
		require.NoError(t, err)
	}
}

func TestPoolSharesProvidedKillSwitch(t *testing.T) {
	defer goleak.VerifyNone(t)

	killSwitch := actor.NewKillSwitch()
	pool := NewPool(PoolConfig[int, demoactor.EchoState]{
		ID:         "shared",
		Size:       2,
		KillSwitch: killSwitch,
		Factory: func(idx int) actor.Actor[int, demoactor.EchoState] {
			return demoactor.NewEcho("shared-echo", 4)
		},
	})

	require.Same(t, killSwitch, pool.KillSwitch())

	killSwitch.Kill()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, res := range JoinAll(ctx, pool.Handles()) {
		status, err := res.Unpack()
		require.NoError(t, err)
		require.Equal(t, actor.ExitKilled, status.Kind())
	}
}
