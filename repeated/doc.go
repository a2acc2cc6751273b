/*
Package repeated edits groups of CSS properties whose values are parallel
lists.

A background layer is spread over many properties: background-image,
background-size, background-position-x, and so on. Each of them holds a
layers value, and item i of every property belongs to layer i. The engine
keeps these lists aligned while items are added, edited, deleted, toggled
or reordered.

The first property of a group is its primary property. Its item count is
authoritative: before every edit, each property of the group is normalized
to exactly as many items as the primary property holds. Missing items are
produced by cyclic repetition of the existing ones, which is how CSS itself
fills up short lists. A property without any items is seeded with its CSS
initial item first. Surplus items are truncated.

Every operation writes all affected properties with one batch, so readers
never observe a partially edited group. Items of an unexpected kind skip
their property only; the remaining properties are written, and the
mismatches are reported as one combined error wrapping ErrKindMismatch.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package repeated

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.repeated'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.repeated")
}

// ErrKindMismatch is flagged for new items whose container kind does not
// match the normalized kind of their property.
var ErrKindMismatch = errors.New("unexpected item type for repeated value")

// ErrNoTuple is flagged when setting an item of a tuple property which holds
// no tuple and has no seed tuple to start from.
var ErrNoTuple = errors.New("no tuple to edit")

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("repeated: "+msg, msgargs...)
		panic(msg)
	}
}
