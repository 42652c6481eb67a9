package actor

import (
	"sync/atomic"
	"time"
)

// ProgressSink receives the running tick count as it advances. It is a
// narrow structural interface rather than an import of the metrics
// package, so the actor runtime has no dependency on the ambient metrics
// registry. A *metrics.Gauge satisfies this interface without either
// package importing the other.
type ProgressSink interface {
	Set(v int64)
}

// Progress is a per-actor liveness beacon. The loop stamps it before and
// after every receive attempt; an external supervisor polls it to detect a
// stalled actor (one whose progress counter has not advanced in too long).
// The core only ever writes to it through RecordProgress; everything else is
// read-only from the outside.
type Progress struct {
	ticks    atomic.Uint64
	lastTick atomic.Int64 // UnixNano of the last RecordProgress call.
	sink     atomic.Pointer[ProgressSink]
}

// NewProgress returns a fresh Progress beacon stamped at creation time.
func NewProgress() *Progress {
	p := &Progress{}
	p.RecordProgress()
	return p
}

// Attach wires a ProgressSink (typically a metrics.Gauge registered under
// this actor's name) that mirrors the tick count on every RecordProgress
// call, letting a supervisor poll per-actor liveness through the same
// registry it already polls cache/search counters through.
func (p *Progress) Attach(sink ProgressSink) {
	p.sink.Store(&sink)
}

// RecordProgress stamps the beacon. Called by the loop immediately before
// and immediately after every mailbox receive attempt.
func (p *Progress) RecordProgress() {
	ticks := p.ticks.Add(1)
	p.lastTick.Store(time.Now().UnixNano())

	if sink := p.sink.Load(); sink != nil {
		(*sink).Set(int64(ticks))
	}
}

// Ticks returns the number of times the beacon has been stamped. A
// supervisor can sample this twice, a poll interval apart, to detect
// whether the actor has made any progress.
func (p *Progress) Ticks() uint64 {
	return p.ticks.Load()
}

// LastTick returns the time of the most recent RecordProgress call.
func (p *Progress) LastTick() time.Time {
	return time.Unix(0, p.lastTick.Load())
}

// Idle reports whether the beacon has not been stamped for at least the
// given duration, a convenience for supervisors implementing stall
// detection.
func (p *Progress) Idle(threshold time.Duration) bool {
	return time.Since(p.LastTick()) >= threshold
}
