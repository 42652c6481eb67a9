package actor

import "sync/atomic"

// ActorState enumerates the lifecycle states an actor can be in while its
// loop is running. It does not include terminal states; those are
// represented by ExitStatus once the loop has broken out.
type ActorState int32

const (
	// ActorRunning is the default state: the mailbox drains both
	// commands and messages.
	ActorRunning ActorState = iota

	// ActorPaused means the mailbox still delivers commands (so the
	// actor can still be Resumed, Quit, or Killed) but defers message
	// delivery.
	ActorPaused

	// ActorExit is set exactly once, by Context.Exit, when the loop has
	// decided its terminal ExitStatus.
	ActorExit
)

// String returns a short, human-readable name for the state.
func (s ActorState) String() string {
	switch s {
	case ActorRunning:
		return "running"
	case ActorPaused:
		return "paused"
	case ActorExit:
		return "exit"
	default:
		return "unknown"
	}
}

// stateBox is an atomic cell holding an ActorState, embedded in Context.
type stateBox struct {
	v atomic.Int32
}

func (b *stateBox) get() ActorState {
	return ActorState(b.v.Load())
}

func (b *stateBox) set(s ActorState) {
	b.v.Store(int32(s))
}
