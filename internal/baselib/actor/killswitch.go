package actor

import "sync/atomic"

// KillSwitch is a shareable, monotonic one-shot flag. Once tripped, it never
// untrips. Multiple actors may share a single KillSwitch; a trip becomes
// visible to all observers eventually (no ordering is guaranteed beyond
// "visible at the next loop boundary").
type KillSwitch struct {
	dead atomic.Bool
}

// NewKillSwitch returns a fresh, untripped KillSwitch.
func NewKillSwitch() *KillSwitch {
	return &KillSwitch{}
}

// Kill trips the switch. It is idempotent: calling it any number of times
// has the same effect as calling it once.
func (k *KillSwitch) Kill() {
	k.dead.Store(true)
}

// IsDead reports whether the switch has been tripped.
func (k *KillSwitch) IsDead() bool {
	return k.dead.Load()
}
