// Package actor implements a lightweight in-process actor runtime: a bounded
// mailbox, a cooperative driver loop, kill-switch-based graceful shutdown,
// and observable-state publication. It is the core scheduling primitive
// underneath the rest of this module's search-system components.
package actor

// Actor is the capability every user-supplied actor type must provide. M is
// the message envelope type the actor processes; S is a cheaply-cloneable
// projection of the actor's state that can be observed from outside the
// loop at any point in its lifecycle.
//
// The loop that drives an Actor owns it exclusively: no other goroutine may
// call its methods directly. All interaction happens through the Mailbox
// returned by Spawn/SpawnSync and the Handle used to observe/control it.
type Actor[M any, S any] interface {
	// Name returns a diagnostic label, stable for the actor's lifetime.
	Name() string

	// QueueCapacity returns the bounded capacity applied to the actor's
	// message lane. Must be a positive integer.
	QueueCapacity() int

	// ObservableState returns a pure projection of current state. It
	// must be callable at any point -- before Initialize, after any
	// ProcessMessage call, or after the loop has exited -- without side
	// effects beyond cloning.
	ObservableState() S

	// Initialize is invoked exactly once, before the first receive. If
	// it returns an error wrapping an ExitStatus (see Quit/Killed/etc),
	// the loop treats it as deciding that exact exit status; any other
	// error becomes Failure(err). No messages are processed if
	// Initialize decides an exit status.
	Initialize(ctx *Context[M, S]) error

	// ProcessMessage is invoked once per received Message. A non-nil
	// error terminates the actor (see Initialize's error-handling note);
	// the message that caused termination has already been consumed.
	ProcessMessage(msg M, ctx *Context[M, S]) error

	// Finalize is invoked exactly once, after the loop has broken out of
	// its receive cycle and before the Handle resolves. Its error is
	// logged and discarded -- it cannot change the decided exit status.
	Finalize(status ExitStatus, ctx *Context[M, S]) error
}
