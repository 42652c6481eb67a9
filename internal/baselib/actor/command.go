package actor

import "context"

// CommandKind enumerates the control directives an actor's mailbox can
// carry on its priority lane.
type CommandKind int

const (
	// CmdPause moves the actor to ActorPaused: message delivery is
	// deferred but commands still arrive.
	CmdPause CommandKind = iota

	// CmdResume moves the actor back to ActorRunning.
	CmdResume

	// CmdObserve asks the loop to publish a fresh ObservableState on the
	// watch channel immediately, rather than waiting for it to be
	// published at exit.
	CmdObserve

	// CmdQuit asks the actor to terminate gracefully with ExitQuit.
	CmdQuit

	// CmdKill trips the shared kill switch and terminates the actor with
	// ExitKilled.
	CmdKill
)

// String returns a short, human-readable name for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CmdPause:
		return "pause"
	case CmdResume:
		return "resume"
	case CmdObserve:
		return "observe"
	case CmdQuit:
		return "quit"
	case CmdKill:
		return "kill"
	default:
		return "unknown"
	}
}

// Command is a control directive delivered on the mailbox's priority lane.
type Command struct {
	Kind CommandKind
}

// Pause builds a Pause command.
func Pause() Command { return Command{Kind: CmdPause} }

// Resume builds a Resume command.
func Resume() Command { return Command{Kind: CmdResume} }

// Observe builds an Observe command.
func Observe() Command { return Command{Kind: CmdObserve} }

// QuitCommand builds a Quit command. Named distinctly from the ExitStatus
// constructor Quit() since both live in this package.
func QuitCommand() Command { return Command{Kind: CmdQuit} }

// KillCommand builds a Kill command. Named distinctly from the ExitStatus
// constructor Killed() since both live in this package.
func KillCommand() Command { return Command{Kind: CmdKill} }

// processCommand runs the shared command-processing discipline:
// Pause/Resume flip the ActorState, Observe publishes a
// fresh snapshot, Quit and Kill decide a terminal ExitStatus. It returns
// (status, true) when the command decided an exit status, (zero, false)
// otherwise.
func processCommand[M any, S any](
	a Actor[M, S],
	cmd Command,
	ctx *Context[M, S],
	watch *Watch[S],
) (ExitStatus, bool) {

	switch cmd.Kind {
	case CmdPause:
		ctx.SetState(ActorPaused)
		return ExitStatus{}, false

	case CmdResume:
		ctx.SetState(ActorRunning)
		return ExitStatus{}, false

	case CmdObserve:
		watch.Publish(a.ObservableState())
		return ExitStatus{}, false

	case CmdQuit:
		return Quit(), true

	case CmdKill:
		ctx.KillSwitch().Kill()
		return Killed(), true

	default:
		log.WarnS(context.Background(), "Ignoring unrecognized command",
			nil, "actor", a.Name(), "kind", int(cmd.Kind))
		return ExitStatus{}, false
	}
}
