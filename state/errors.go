// Copyright © 2026 Orrery contributors.

package state

import "github.com/orrery-sim/orrery"

// NewCorruptPersistedState constructs the CorruptPersistedState error
// returned by Read when a document fails to parse or fails a semantic
// check (§7).
func NewCorruptPersistedState(message string) error {
	return orrery.NewError(orrery.CorruptPersistedState, message)
}
