package actorutil

import (
	"context"

	"github.com/archon-search/actorcore/internal/baselib/actor"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// BroadcastKill calls Kill on every handle: each call trips that handle's
// kill switch and sends it a Kill command, so callers targeting a slice of
// handles that do NOT already share one switch (e.g. handles gathered from
// several independent pools) still get every actor down.
func BroadcastKill[M any, S any](ctx context.Context, handles []*actor.Handle[M, S]) {
	for _, h := range handles {
		_ = h.Kill(ctx)
	}
}

// JoinAll waits for every handle to exit, returning one fn.Result per
// handle in the same order.
func JoinAll[M any, S any](
	ctx context.Context,
	handles []*actor.Handle[M, S],
) []fn.Result[actor.ExitStatus] {

	results := make([]fn.Result[actor.ExitStatus], len(handles))
	for i, h := range handles {
		results[i] = h.Join(ctx)
	}
	return results
}

// ObserveAll snapshots the current ObservableState of every handle, in
// order.
func ObserveAll[M any, S any](handles []*actor.Handle[M, S]) []S {
	out := make([]S, len(handles))
	for i, h := range handles {
		out[i] = h.Observe()
	}
	return out
}
