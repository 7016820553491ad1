package ir

import "sort"

// sortHandles orders handles by (kind, slot index) so that iteration
// over a set — a value's users — is deterministic without requiring
// the set itself to carry order.
func sortHandles(hs []ValueHandle) {
	sort.Slice(hs, func(i, j int) bool {
		return RawHandle(hs[i]) < RawHandle(hs[j])
	})
}
