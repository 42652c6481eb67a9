package actor

import (
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// DefaultCleanupTimeout bounds how long Finalize may run before the loop
// stops waiting for it, logs the actor as stuck, and proceeds with the exit
// sequence anyway.
const DefaultCleanupTimeout = 10 * time.Second

// spawnConfig holds the optional per-actor timing overrides collected from
// SpawnOptions.
type spawnConfig struct {
	// recvTimeout overrides the liveness-polling receive timeout.
	recvTimeout fn.Option[time.Duration]

	// cleanupTimeout overrides the bound on Finalize's runtime.
	cleanupTimeout fn.Option[time.Duration]
}

// SpawnOption is a functional option for Spawn and SpawnSync.
type SpawnOption func(*spawnConfig)

// WithRecvTimeout overrides the millisecond-scale timeout the actor's loop
// uses to periodically wake and re-check the kill switch and the
// last-mailbox condition. If not specified, DefaultRecvTimeout is used.
// Shorter values tighten kill latency at the cost of more idle wakeups.
func WithRecvTimeout(d time.Duration) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.recvTimeout = fn.Some(d)
	}
}

// WithCleanupTimeout bounds how long the actor's Finalize may run during
// shutdown. If not specified, DefaultCleanupTimeout is used. Use a longer
// timeout for actors whose finalization waits on external resources.
func WithCleanupTimeout(d time.Duration) SpawnOption {
	return func(cfg *spawnConfig) {
		cfg.cleanupTimeout = fn.Some(d)
	}
}

// newSpawnConfig applies opts over the zero config.
func newSpawnConfig(opts []SpawnOption) spawnConfig {
	var cfg spawnConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
