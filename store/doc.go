/*
Package store is an in-memory declaration store for styled instances.

Instances form a tree, like the elements of an HTML document. For every
instance the store holds declared style values in tiers:

    remote     values of presets and imported stylesheets
    local      values explicitly set by the user
    ephemeral  transient preview values, never persisted

Default values are not stored; they are derived from property metadata by
the cascade resolver.

All modifications go through ApplyBatch, which applies a list of operations
atomically: readers never observe a state in which only some of the
operations have been applied. Every applied batch increments the store's
version and is announced to subscribers with a single Change notification.

The ephemeral tier is an overlay keyed by (instance, property). It may hold
a preview value as well as a preview deletion, which masks the local value
of the property. Applying a batch to the local tier clears the overlay for
all touched (instance, property) pairs.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package store

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.store'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.store")
}

// ErrUnknownInstance is flagged for instance IDs not contained in a store.
var ErrUnknownInstance = errors.New("unknown instance")

// ErrTier is flagged for operations on a tier which does not support them.
var ErrTier = errors.New("tier not writable")

// Tier is a precedence level a declared value can occupy.
type Tier uint8

// Tiers, from lowest to highest precedence.
const (
	TierDefault Tier = iota
	TierRemote
	TierLocal
	TierEphemeral
)

func (t Tier) String() string {
	switch t {
	case TierDefault:
		return "default"
	case TierRemote:
		return "remote"
	case TierLocal:
		return "local"
	case TierEphemeral:
		return "ephemeral"
	}
	return "<unknown tier>"
}
