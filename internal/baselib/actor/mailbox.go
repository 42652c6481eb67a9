package actor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRecvTimeout is the millisecond-scale timeout used by RecvTimeout to
// periodically wake the loop so it can re-check the kill switch and the
// last-mailbox condition even when nothing has been sent. It is not a
// user-visible deadline.
const DefaultRecvTimeout = 25 * time.Millisecond

// ErrTimeout is returned by RecvTimeout when nothing arrived before the
// internal liveness-polling timeout elapsed.
var ErrTimeout = errors.New("actor: recv timeout")

// ErrDisconnected is returned by RecvTimeout when no Mailbox clone can ever
// send again and the queue has been fully drained, and by Send/SendCommand
// when the mailbox has already reached that state.
var ErrDisconnected = errors.New("actor: mailbox disconnected")

// CommandOrMessage is the tagged item carried by the mailbox: either a
// control Command (delivered on the priority lane) or a user Message.
type CommandOrMessage[M any] struct {
	// Cmd is set when this item is a Command; IsCommand reports which
	// field is meaningful.
	Cmd Command

	// Msg is set when this item is a user Message.
	Msg M

	// IsCommand distinguishes the two arms of this tagged union.
	IsCommand bool
}

// mailboxCore holds the state shared by every clone of a Mailbox and by its
// Inbox. It is never closed via Go's close(): the command and message
// channels are drained independently by RecvTimeout, and closing one while
// the other still holds buffered, unprocessed items would let a closed,
// empty channel race a still-populated one in a select statement -- Go
// chooses uniformly among ready cases, so that race could surface
// Disconnected before every buffered message had been delivered. Instead,
// Close flips an atomic flag; RecvTimeout treats "closed and both channels
// empty" as Disconnected.
type mailboxCore[M any] struct {
	name     string
	cmdCh    chan Command
	msgCh    chan M
	refCount atomic.Int64
	closed   atomic.Bool
}

// mailboxHandle is the unique-per-clone wrapper around a shared
// mailboxCore. Each Mailbox value wraps a distinct *mailboxHandle so that
// Close is idempotent per handle (via sync.Once) without requiring every
// clone to share a single close flag.
type mailboxHandle[M any] struct {
	core      *mailboxCore[M]
	closeOnce sync.Once
}

// Mailbox is the send side of an actor's inbox: a bounded, two-lane channel
// of CommandOrMessage items. It is cheap to copy/clone and reference-counted;
// only the Inbox (held exclusively by the loop) ever receives from it.
type Mailbox[M any] struct {
	h *mailboxHandle[M]
}

// Inbox is the receive side of an actor's mailbox, singly owned by the
// actor's loop.
type Inbox[M any] struct {
	core *mailboxCore[M]

	// pending holds a message that was pulled off the message lane while
	// a command was also waiting. The command wins and the message is
	// stashed here, to be delivered ahead of the rest of the message lane
	// on a later receive. This is what keeps "commands observed before
	// any message enqueued after them" true even though Go's select picks
	// uniformly among ready cases.
	pending *M
}

// NewMailbox creates a linked Mailbox/Inbox pair with the given queue
// capacity. The command lane is always given a small fixed capacity since
// commands are meant to be infrequent control traffic, never the
// backpressure bottleneck.
func NewMailbox[M any](name string, capacity int) (Mailbox[M], *Inbox[M]) {
	if capacity <= 0 {
		capacity = 1
	}

	core := &mailboxCore[M]{
		name:  name,
		cmdCh: make(chan Command, 8),
		msgCh: make(chan M, capacity),
	}
	core.refCount.Store(1)

	mb := Mailbox[M]{h: &mailboxHandle[M]{core: core}}
	ib := &Inbox[M]{core: core}

	return mb, ib
}

// Clone returns a new, independent Mailbox handle sharing the same
// underlying channels. Every clone must eventually have Close called on it
// exactly once; this is the Go stand-in for the reference being dropped in
// languages with deterministic destructors.
func (mb Mailbox[M]) Clone() Mailbox[M] {
	mb.h.core.refCount.Add(1)
	return Mailbox[M]{h: &mailboxHandle[M]{core: mb.h.core}}
}

// weakClone returns a new Mailbox handle sharing the same underlying core
// without incrementing refCount. The Context and the Handle each hold one
// of these for the actor's entire lifetime and never Close it, so it must
// not count as an outstanding send-side reference; otherwise
// IsLastMailbox/disconnected could never observe "no external sender
// remains".
func (mb Mailbox[M]) weakClone() Mailbox[M] {
	return Mailbox[M]{h: &mailboxHandle[M]{core: mb.h.core}}
}

// Close releases this Mailbox handle. Once the last outstanding handle is
// closed, the mailbox is marked disconnected: further Send/SendCommand calls
// fail with ErrDisconnected, and RecvTimeout reports ErrDisconnected once the
// queues are drained. Close is safe to call more than once on the same
// handle (idempotent) but must not be called on a handle that has already
// been Clone()'d without also closing the clone.
func (mb Mailbox[M]) Close() {
	mb.h.closeOnce.Do(func() {
		if mb.h.core.refCount.Add(-1) == 0 {
			mb.h.core.closed.Store(true)
		}
	})
}

// IsLastMailbox reports whether this handle is the only outstanding
// counted send-side reference to the mailbox. The loop itself asks the
// Inbox instead (see Inbox.IsLastMailbox).
func (mb Mailbox[M]) IsLastMailbox() bool {
	return mb.h.core.refCount.Load() == 1
}

// Name returns the diagnostic label this mailbox was created with.
func (mb Mailbox[M]) Name() string {
	return mb.h.core.name
}

// Send enqueues a Message, suspending until a slot is free, the mailbox is
// disconnected, or ctx is cancelled.
func (mb Mailbox[M]) Send(ctx context.Context, msg M) error {
	if mb.h.core.closed.Load() {
		return ErrDisconnected
	}

	select {
	case mb.h.core.msgCh <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TrySend enqueues a Message without suspending. It returns false if the
// mailbox is full or disconnected.
func (mb Mailbox[M]) TrySend(msg M) bool {
	if mb.h.core.closed.Load() {
		return false
	}

	select {
	case mb.h.core.msgCh <- msg:
		return true
	default:
		return false
	}
}

// SendCommand enqueues a Command on the priority lane. Commands bypass the
// normal message queue discipline: the Inbox always drains the command lane
// before considering the next message.
func (mb Mailbox[M]) SendCommand(ctx context.Context, cmd Command) error {
	if mb.h.core.closed.Load() {
		return ErrDisconnected
	}

	select {
	case mb.h.core.cmdCh <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RecvTimeout receives the next item from the mailbox, commands first.
//
// When running is true, it returns the next CommandOrMessage as soon as one
// is available, ErrTimeout after DefaultRecvTimeout with nothing available,
// or ErrDisconnected once no sender can ever send again and the queues are
// empty. When running is false (the actor is Paused), it only ever returns
// Commands (or Timeout/Disconnected); message delivery is deferred until the
// actor resumes.
func (ib *Inbox[M]) RecvTimeout(running bool) (CommandOrMessage[M], error) {
	return ib.recvTimeout(running, DefaultRecvTimeout)
}

// recvTimeout is RecvTimeout with an explicit polling timeout, used by the
// loop to honor a WithRecvTimeout override.
func (ib *Inbox[M]) recvTimeout(
	running bool, timeout time.Duration,
) (CommandOrMessage[M], error) {

	var zero CommandOrMessage[M]

	// Priority lane: always drain a pending command first, even while
	// paused, so Resume/Quit/Kill are never starved by pending messages.
	select {
	case cmd := <-ib.core.cmdCh:
		return CommandOrMessage[M]{Cmd: cmd, IsCommand: true}, nil
	default:
	}

	// A message stashed behind an earlier command is the head of the
	// message lane; deliver it before receiving anything new.
	if running && ib.pending != nil {
		msg := *ib.pending
		ib.pending = nil
		return CommandOrMessage[M]{Msg: msg}, nil
	}

	if ib.disconnected() {
		return zero, ErrDisconnected
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	if !running {
		select {
		case cmd := <-ib.core.cmdCh:
			return CommandOrMessage[M]{Cmd: cmd, IsCommand: true}, nil
		case <-timer.C:
			if ib.disconnected() {
				return zero, ErrDisconnected
			}
			return zero, ErrTimeout
		}
	}

	select {
	case cmd := <-ib.core.cmdCh:
		return CommandOrMessage[M]{Cmd: cmd, IsCommand: true}, nil
	case msg := <-ib.core.msgCh:
		// select picks uniformly among ready cases, so the message
		// lane can win even though a command arrived first. A command
		// sent before this message is guaranteed visible on the lane
		// by now, so one non-blocking check restores priority: stash
		// the message and hand the command over instead.
		select {
		case cmd := <-ib.core.cmdCh:
			ib.pending = &msg
			return CommandOrMessage[M]{Cmd: cmd, IsCommand: true}, nil
		default:
		}
		return CommandOrMessage[M]{Msg: msg}, nil
	case <-timer.C:
		if ib.disconnected() {
			return zero, ErrDisconnected
		}
		return zero, ErrTimeout
	}
}

// disconnected reports whether the mailbox is closed and fully drained. This
// is only ever called from the Inbox's owning goroutine, so the length
// checks cannot race with a concurrent drain of the same channels.
func (ib *Inbox[M]) disconnected() bool {
	return ib.core.closed.Load() &&
		ib.pending == nil &&
		len(ib.core.cmdCh) == 0 &&
		len(ib.core.msgCh) == 0
}

// IsLastMailbox reports, from the Inbox side, whether the actor's own
// uncounted self-mailbox is the only send-side reference left: no counted
// Mailbox handle (the one Spawn returned, or any Clone of it) remains open.
// The loop uses this to decide whether a receive timeout means "no one will
// ever send again" (Success) rather than "just a quiet moment".
func (ib *Inbox[M]) IsLastMailbox() bool {
	return ib.core.refCount.Load() == 0
}
