package actor

import "time"

// SchedulerMessage is the shape the external scheduler collaborator expects
// to receive: a payload to deliver to a target mailbox no earlier than
// DeliverAt. The runtime never interprets this message; it only knows how
// to send one to the scheduler's mailbox via Context.SchedulerMailbox. The
// scheduler itself lives outside this package.
type SchedulerMessage[M any] struct {
	// DeliverAt is the earliest time the scheduler should deliver
	// Payload to Target.
	DeliverAt time.Time

	// Target is the mailbox the scheduler should deliver Payload to.
	Target Mailbox[M]

	// Payload is the message to deliver.
	Payload M
}
