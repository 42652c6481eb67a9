package actor

import "fmt"

// ExitStatusKind enumerates the terminal outcomes an actor can reach.
// Exactly one ExitStatusKind is produced per actor and, once decided, it is
// never overwritten by later events.
type ExitStatusKind int

const (
	// ExitSuccess indicates natural completion: the mailbox disconnected
	// while idle, or no further sender can possibly exist.
	ExitSuccess ExitStatusKind = iota

	// ExitQuit indicates a graceful Quit command was processed.
	ExitQuit

	// ExitKilled indicates the kill switch was observed tripped. This
	// never re-trips the switch; it is purely an observation.
	ExitKilled

	// ExitFailure indicates process_message or initialize returned an
	// error. Reaching this status trips the kill switch.
	ExitFailure

	// ExitPanicked indicates the actor's task panicked. Reaching this
	// status trips the kill switch; the loop recovers the panic and still
	// runs finalize before resolving the Handle.
	ExitPanicked
)

// String returns a short, human-readable name for the kind.
func (k ExitStatusKind) String() string {
	switch k {
	case ExitSuccess:
		return "success"
	case ExitQuit:
		return "quit"
	case ExitKilled:
		return "killed"
	case ExitFailure:
		return "failure"
	case ExitPanicked:
		return "panicked"
	default:
		return fmt.Sprintf("exit-status(%d)", int(k))
	}
}

// ExitStatus is the terminal outcome of an actor. It implements error so
// that a ProcessMessage/Initialize handler can return one directly (e.g.
// `return actor.Quit()`) and have the loop recognize it without wrapping it
// in a generic Failure.
type ExitStatus struct {
	kind ExitStatusKind
	err  error
}

// Success builds the Success terminal status.
func Success() ExitStatus { return ExitStatus{kind: ExitSuccess} }

// Quit builds the Quit terminal status.
func Quit() ExitStatus { return ExitStatus{kind: ExitQuit} }

// Killed builds the Killed terminal status.
func Killed() ExitStatus { return ExitStatus{kind: ExitKilled} }

// Panicked builds the Panicked terminal status.
func Panicked() ExitStatus { return ExitStatus{kind: ExitPanicked} }

// Failure builds a Failure terminal status wrapping the given cause. Passing
// a nil err still produces an ExitFailure status with a generic message.
func Failure(err error) ExitStatus {
	if err == nil {
		err = fmt.Errorf("actor failed with no underlying error")
	}
	return ExitStatus{kind: ExitFailure, err: err}
}

// Kind reports which terminal outcome this status represents.
func (s ExitStatus) Kind() ExitStatusKind { return s.kind }

// IsFatal reports whether reaching this status should trip the kill switch.
// Failure and Panicked are fatal; Success, Quit, and Killed are not (Killed
// is merely the observation of an already-tripped switch).
func (s ExitStatus) IsFatal() bool {
	return s.kind == ExitFailure || s.kind == ExitPanicked
}

// Unwrap exposes the underlying cause for Failure statuses so callers can use
// errors.Is/errors.As against it.
func (s ExitStatus) Unwrap() error { return s.err }

// Error implements the error interface so handlers can return an ExitStatus
// directly from ProcessMessage/Initialize.
func (s ExitStatus) Error() string {
	if s.kind == ExitFailure && s.err != nil {
		return fmt.Sprintf("actor exit: %s: %v", s.kind, s.err)
	}
	return fmt.Sprintf("actor exit: %s", s.kind)
}

// toExitStatus converts an error returned by a handler into an ExitStatus.
// If err already carries an ExitStatus (found by asExitStatus, either as err
// itself or along its Unwrap chain), that status is used verbatim; otherwise
// the error is wrapped as a Failure.
func toExitStatus(err error) ExitStatus {
	if err == nil {
		return Success()
	}

	var status ExitStatus
	if asExitStatus(err, &status) {
		return status
	}

	return Failure(err)
}

// asExitStatus is a narrow stand-in for errors.As specialized to ExitStatus,
// avoiding a dependency on errors.As's reflection-based unwrap chain for the
// common case where handlers return an ExitStatus value directly.
func asExitStatus(err error, target *ExitStatus) bool {
	if status, ok := err.(ExitStatus); ok {
		*target = status
		return true
	}

	type unwrapper interface{ Unwrap() error }
	for u, ok := err.(unwrapper); ok; u, ok = err.(unwrapper) {
		err = u.Unwrap()
		if status, ok := err.(ExitStatus); ok {
			*target = status
			return true
		}
	}

	return false
}
