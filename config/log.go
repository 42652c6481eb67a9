package config

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger for the config package, following the
// same disabled-by-default convention as internal/baselib/actor.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the logger used by the config package.
func UseLogger(logger btclog.Logger) {
	log = logger
}
