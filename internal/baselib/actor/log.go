package actor

import "github.com/btcsuite/btclog/v2"

// log is the package-level logger for the actor runtime. It defaults to a
// disabled sink so importing this package has no logging side effects until
// the host application wires up a real logger via UseLogger.
var log btclog.Logger = btclog.Disabled

// UseLogger sets the logger used by the actor package. Call this once during
// application startup, before spawning any actors.
func UseLogger(logger btclog.Logger) {
	log = logger
}
