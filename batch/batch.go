/*
Package batch collects style modifications and publishes them as one unit.

Edits spanning several properties, like adding a layer to all background
properties at once, must never become partially visible. Clients therefore
never write to the declaration store directly, but collect operations in a
batch:

    b := batch.Create(st, selection)
    b.Set("background-image", layers).Set("background-size", sizes)
    err := b.Publish()

Publishing with option Ephemeral() applies the operations to the preview
overlay of the store instead of the local tier.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package batch

import (
	"fmt"

	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/dotkaio/wstudio/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.store'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.store")
}

// Applier is the part of a declaration store a batch publishes to.
// *store.Store implements it.
type Applier interface {
	ApplyBatch(targets []store.ID, tier store.Tier, ops []store.Op) error
	ResetEphemeral()
}

var _ Applier = (*store.Store)(nil)

// Batch is an unpublished list of property operations for a selection of
// instances. A batch is not safe for concurrent use.
type Batch struct {
	st        Applier
	selection []store.ID
	ops       []store.Op
}

// Create starts a new, empty batch for a selection of instances.
func Create(st Applier, selection []store.ID) *Batch {
	assertThat(st != nil, "batch needs a store to publish to")
	return &Batch{
		st:        st,
		selection: append([]store.ID(nil), selection...),
	}
}

// Set adds an operation setting property to value.
// It returns the batch to allow for chaining.
func (b *Batch) Set(property string, value css.Value) *Batch {
	assertThat(value != nil, "cannot set property %s to nil", property)
	b.ops = append(b.ops, store.Op{Property: style.Normalize(property), Value: value})
	return b
}

// Delete adds an operation removing property.
// It returns the batch to allow for chaining.
func (b *Batch) Delete(property string) *Batch {
	b.ops = append(b.ops, store.Op{Property: style.Normalize(property), Delete: true})
	return b
}

// Len returns the number of pending operations.
func (b *Batch) Len() int {
	return len(b.ops)
}

// Ops returns a copy of the pending operations, in the order they were added.
func (b *Batch) Ops() []store.Op {
	return append([]store.Op(nil), b.ops...)
}

// Option is a type to configure publishing of a batch.
type Option func(*options)

type options struct {
	ephemeral bool
}

// Ephemeral marks the operations of a publish as transient previews.
func Ephemeral() Option {
	return func(o *options) {
		o.ephemeral = true
	}
}

// Publish applies all pending operations to the store as one unit and
// empties the batch. Publishing an empty batch is a no-op.
//
// Without option Ephemeral(), operations go to the local tier and discard
// previews of the touched properties.
func (b *Batch) Publish(opts ...Option) error {
	if len(b.ops) == 0 {
		return nil
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	tier := store.TierLocal
	if o.ephemeral {
		tier = store.TierEphemeral
	}
	tracer().P("tier", tier).Debugf("publishing %d operations", len(b.ops))
	if err := b.st.ApplyBatch(b.selection, tier, b.ops); err != nil {
		return fmt.Errorf("publishing style batch: %w", err)
	}
	b.ops = nil
	return nil
}

// --- Single-property helpers -----------------------------------------------

// SetProperty sets a single property for a selection.
func SetProperty(st Applier, selection []store.ID, property string, value css.Value, opts ...Option) error {
	return Create(st, selection).Set(property, value).Publish(opts...)
}

// DeleteProperty removes a single property from a selection. With option
// Ephemeral() the deletion is previewed only.
func DeleteProperty(st Applier, selection []store.ID, property string, opts ...Option) error {
	return Create(st, selection).Delete(property).Publish(opts...)
}

// ResetEphemeral discards all previews, reverting every previewed property
// to its persisted value.
func ResetEphemeral(st Applier) {
	st.ResetEphemeral()
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("batch: "+msg, msgargs...)
		panic(msg)
	}
}
