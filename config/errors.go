package config

import "errors"

// Validation errors.
var (
	ErrInvalidLogLevel    = errors.New("config: invalid log level")
	ErrInvalidMailboxSize = errors.New("config: invalid default mailbox size")
	ErrInvalidRecvTimeout = errors.New("config: invalid recv timeout")
)

// Loading errors.
var (
	ErrConfigFileNotFound = errors.New("config: no configuration file found in search path")
)
