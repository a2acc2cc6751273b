/*
Package css models resolved CSS property values.

A value is one of a closed set of variants: keywords, numbers with a unit,
colors, image references, tuples, layer stacks, unparsed raw text and
intermediate (mid-edit) text. Tuples and layer stacks are the only
variants carrying a nested sequence of values; all others are leaves.

Clients switch over the concrete types:

	switch v := value.(type) {
	case css.Keyword:
		…
	case css.Layers:
		…
	default: // Unparsed, Intermediate
		…
	}

Values are immutable by convention. Operations returning a modified value
always return a copy with freshly allocated item slices.

Status

The parser is not a full CSS grammar. It decomposes a value into the
variants above and falls back to Unparsed for everything else.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package css

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.css'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.css")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("css: "+msg, msgargs...)
		panic(msg)
	}
}
