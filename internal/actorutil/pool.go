// Package actorutil provides utilities for operating over groups of actors
// spawned from internal/baselib/actor: a round-robin pool sharing one kill
// switch, and fan-out helpers for observing/joining/broadcasting across a
// slice of handles.
package actorutil

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/archon-search/actorcore/internal/baselib/actor"
)

// PoolConfig configures a Pool of identically-shaped actors.
type PoolConfig[M any, S any] struct {
	// ID identifies the pool (see Pool.ID). It is not applied to the
	// pooled actors' names; those come from whatever Factory builds.
	ID string

	// Size is the number of actor instances to spawn. A value <= 0
	// defaults to 1.
	Size int

	// Factory builds the actor behavior for pool member idx.
	Factory func(idx int) actor.Actor[M, S]

	// KillSwitch is shared by every actor in the pool. If nil, a fresh
	// one is created. Either way, killing any pool member brings down
	// every other member.
	KillSwitch *actor.KillSwitch

	// SpawnOpts are per-actor timing overrides applied to every pool
	// member, e.g. actor.WithRecvTimeout / actor.WithCleanupTimeout.
	SpawnOpts []actor.SpawnOption
}

// Pool spawns Size actors sharing one KillSwitch and round-robins Send
// across them. There is no request/response protocol in this runtime, so
// the pool is tell-only; callers wanting replies route them through a
// mailbox of their own.
type Pool[M any, S any] struct {
	id         string
	killSwitch *actor.KillSwitch
	mailboxes  []actor.Mailbox[M]
	handles    []*actor.Handle[M, S]
	next       atomic.Uint64
}

// NewPool spawns cfg.Size actors built by cfg.Factory, all sharing one
// KillSwitch.
func NewPool[M any, S any](cfg PoolConfig[M, S]) *Pool[M, S] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}

	killSwitch := cfg.KillSwitch
	if killSwitch == nil {
		killSwitch = actor.NewKillSwitch()
	}

	p := &Pool[M, S]{
		id:         cfg.ID,
		killSwitch: killSwitch,
		mailboxes:  make([]actor.Mailbox[M], cfg.Size),
		handles:    make([]*actor.Handle[M, S], cfg.Size),
	}

	for i := 0; i < cfg.Size; i++ {
		a := cfg.Factory(i)
		mb, h := actor.Spawn[M, S](
			a, killSwitch, actor.Mailbox[actor.SchedulerMessage[M]]{},
			cfg.SpawnOpts...,
		)
		p.mailboxes[i] = mb
		p.handles[i] = h
	}

	return p
}

// ID returns the pool's identifying prefix.
func (p *Pool[M, S]) ID() string { return p.id }

// Size returns the number of actors in the pool.
func (p *Pool[M, S]) Size() int { return len(p.handles) }

// KillSwitch returns the switch shared by every actor in the pool.
func (p *Pool[M, S]) KillSwitch() *actor.KillSwitch { return p.killSwitch }

// Handles returns a copy of the pool's actor handles.
func (p *Pool[M, S]) Handles() []*actor.Handle[M, S] {
	out := make([]*actor.Handle[M, S], len(p.handles))
	copy(out, p.handles)
	return out
}

// Send delivers msg to the next actor in round-robin order.
func (p *Pool[M, S]) Send(ctx context.Context, msg M) error {
	if len(p.mailboxes) == 0 {
		return fmt.Errorf("actorutil: pool %q is empty", p.id)
	}
	idx := p.next.Add(1) % uint64(len(p.mailboxes))
	return p.mailboxes[idx].Send(ctx, msg)
}

// Broadcast delivers msg to every actor in the pool.
func (p *Pool[M, S]) Broadcast(ctx context.Context, msg M) error {
	for _, mb := range p.mailboxes {
		if err := mb.Send(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// Kill trips the pool's shared kill switch, bringing down every actor in
// the pool at its next loop boundary.
func (p *Pool[M, S]) Kill() {
	p.killSwitch.Kill()
}
