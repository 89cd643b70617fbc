package contract

import "kodama_protocol/sdk"

// Re-entrancy guard: an explicit in-progress flag per guarded surface,
// checked and set at entry, cleared on every exit path. The host rolls the
// flag back together with everything else if the call aborts, the deferred
// clear covers the success path.

func guardKey(surface string) string {
	return singletonKey(kGuard) + surface
}

// enterGuard rejects nested re-entry into the same guarded surface for the
// duration of the outer call. Use as: defer enterGuard("gov")().
func enterGuard(surface string) func() {
	key := guardKey(surface)
	if sdk.StateGetObject(key) != nil {
		abortState("reentrant call into " + surface)
	}
	sdk.StateSetObject(key, "1")
	return func() {
		sdk.StateDeleteObject(key)
	}
}
