// Package config loads the runtime tunables that sit around the actor
// contract but are not part of it: default mailbox capacity, the
// millisecond-scale recv-timeout the loop polls the kill switch on,
// cleanup timeout, and log level. The actor contract itself never sees
// this package; host processes load a Config and apply it at spawn time.
package config

import (
	"time"

	"github.com/archon-search/actorcore/internal/baselib/actor"
)

// LogLevel mirrors the small set of levels btclog.Logger understands.
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace"
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid reports whether l is one of the known levels.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// Config is the complete set of runtime tunables loaded from a YAML file
// (or environment overrides) for an actorcore host process.
type Config struct {
	// Log holds the logging tunables.
	Log LogConfig `yaml:"log" json:"log"`

	// Actor holds the mailbox/timeout defaults new actors inherit unless
	// they override them explicitly.
	Actor ActorConfig `yaml:"actor" json:"actor"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum severity logged.
	Level LogLevel `yaml:"level" json:"level"`

	// Output is a destination: "stdout", "stderr", or a directory path
	// handed to build.NewRotatingWriter for dual-stream file logging.
	Output string `yaml:"output" json:"output"`
}

// ActorConfig contains the default tunables applied to actors spawned by
// the host process.
type ActorConfig struct {
	// DefaultMailboxSize is the queue capacity actorctl gives its demo
	// actors when --capacity is not set. The actor runtime does not read
	// it: a QueueCapacity() <= 0 is treated as 1 by NewMailbox.
	DefaultMailboxSize int `yaml:"default_mailbox_size" json:"default_mailbox_size"`

	// RecvTimeout is the millisecond-scale timeout the loop's
	// RecvTimeout call uses to periodically re-check the kill switch
	// and the last-mailbox condition.
	RecvTimeout time.Duration `yaml:"recv_timeout" json:"recv_timeout"`

	// CleanupTimeout bounds how long Finalize is allowed to run before
	// a supervisor should consider the actor stuck during shutdown.
	CleanupTimeout time.Duration `yaml:"cleanup_timeout" json:"cleanup_timeout"`
}

// SpawnOptions converts the configured tunables into per-actor spawn
// overrides. Anything the file left at zero stays unset, so the runtime's
// own defaults apply.
func (c ActorConfig) SpawnOptions() []actor.SpawnOption {
	var opts []actor.SpawnOption
	if c.RecvTimeout > 0 {
		opts = append(opts, actor.WithRecvTimeout(c.RecvTimeout))
	}
	if c.CleanupTimeout > 0 {
		opts = append(opts, actor.WithCleanupTimeout(c.CleanupTimeout))
	}
	return opts
}

// DefaultConfig returns the configuration used when no file is found and no
// environment overrides are set.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  LogLevelInfo,
			Output: "stdout",
		},
		Actor: ActorConfig{
			DefaultMailboxSize: 64,
			RecvTimeout:        25 * time.Millisecond,
			CleanupTimeout:     10 * time.Second,
		},
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if !c.Log.Level.IsValid() {
		return ErrInvalidLogLevel
	}
	if c.Actor.DefaultMailboxSize <= 0 {
		return ErrInvalidMailboxSize
	}
	if c.Actor.RecvTimeout <= 0 {
		return ErrInvalidRecvTimeout
	}
	return nil
}
