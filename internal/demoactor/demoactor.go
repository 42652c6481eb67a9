// Package demoactor provides small, concrete Actor implementations used as
// runnable fixtures: an echo actor that accumulates every message it sees,
// and a counter actor that fails after a configurable number of messages.
// Both are exercised by the actorcore test suite and by cmd/actorctl's
// "demo" subcommand.
package demoactor

import (
	"fmt"
	"sync"

	"github.com/archon-search/actorcore/internal/baselib/actor"
)

// EchoState is the observable projection of an Echo actor: every message
// received so far, in order.
type EchoState struct {
	Received []int
}

// Echo is the simplest possible actor: it appends every int message it
// receives to its observable state and never fails.
type Echo struct {
	mu       sync.Mutex
	name     string
	capacity int
	received []int
}

// NewEcho builds an Echo actor with the given diagnostic name and mailbox
// capacity.
func NewEcho(name string, capacity int) *Echo {
	return &Echo{name: name, capacity: capacity}
}

func (e *Echo) Name() string        { return e.name }
func (e *Echo) QueueCapacity() int  { return e.capacity }

func (e *Echo) ObservableState() EchoState {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]int, len(e.received))
	copy(out, e.received)
	return EchoState{Received: out}
}

func (e *Echo) Initialize(ctx *actor.Context[int, EchoState]) error {
	return nil
}

func (e *Echo) ProcessMessage(msg int, ctx *actor.Context[int, EchoState]) error {
	e.mu.Lock()
	e.received = append(e.received, msg)
	e.mu.Unlock()
	return nil
}

func (e *Echo) Finalize(status actor.ExitStatus, ctx *actor.Context[int, EchoState]) error {
	return nil
}

// CounterState is the observable projection of a FailingCounter: how many
// messages it has successfully processed.
type CounterState struct {
	Processed int
}

// FailingCounter processes messages normally until it has seen FailAfter of
// them, at which point the next ProcessMessage call returns a Failure
// wrapping a descriptive error. FailAfter == 0 disables the failure.
type FailingCounter struct {
	mu        sync.Mutex
	name      string
	capacity  int
	FailAfter int
	processed int
}

// NewFailingCounter builds a FailingCounter that fails on its
// (failAfter+1)-th message.
func NewFailingCounter(name string, capacity, failAfter int) *FailingCounter {
	return &FailingCounter{name: name, capacity: capacity, FailAfter: failAfter}
}

func (c *FailingCounter) Name() string       { return c.name }
func (c *FailingCounter) QueueCapacity() int { return c.capacity }

func (c *FailingCounter) ObservableState() CounterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CounterState{Processed: c.processed}
}

func (c *FailingCounter) Initialize(ctx *actor.Context[int, CounterState]) error {
	return nil
}

func (c *FailingCounter) ProcessMessage(msg int, ctx *actor.Context[int, CounterState]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.FailAfter > 0 && c.processed == c.FailAfter {
		return actor.Failure(fmt.Errorf("boom: failed on message %d", msg))
	}
	c.processed++
	return nil
}

func (c *FailingCounter) Finalize(status actor.ExitStatus, ctx *actor.Context[int, CounterState]) error {
	return nil
}
