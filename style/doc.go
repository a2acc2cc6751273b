/*
Package style holds metadata about CSS properties.

CSS knows a whole lot of properties. For the style editor, every property
we care about is described by a small set of facts: its initial value,
whether it is inherited, whether its value is a repeated list (layers or
tuple), and the category it is shown in. These facts are declared in an
embedded YAML file and loaded into a Registry:

    reg := style.Default()
    v := reg.Initial("background-size", "div")   // keyword auto

Properties whose repeated values must stay aligned, like the various
background-* properties of one background layer stack, are organized into
groups. The first property of a group is its primary property; it dictates
the number of items for all the other members.

Property names are kebab-case. Normalize converts camelCase names, as they
are used by script-side style objects, into the canonical form.

Status

The metadata covers the properties the editor has controls for. Clients may
load a custom metadata file with LoadRegistry.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.style'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.style")
}

// ErrUnknownProperty is flagged for properties not contained in a registry.
var ErrUnknownProperty = errors.New("unknown style property")

// ErrNotShorthand is flagged by ExpandShorthand for properties which are no
// shorthands.
var ErrNotShorthand = errors.New("not recognized as shorthand property")

// Symbolic names for property categories. Unknown properties are put
// into category CatX.
const (
	CatMargins     = "Margins"
	CatPadding     = "Padding"
	CatBorder      = "Border"
	CatDimension   = "Dimension"
	CatDisplay     = "Display"
	CatPosition    = "Position"
	CatLayout      = "Layout"
	CatRegion      = "Region"
	CatColor       = "Color"
	CatText        = "Text"
	CatBackgrounds = "Backgrounds"
	CatEffects     = "Effects"
	CatTransforms  = "Transforms"
	CatTransitions = "Transitions"
	CatX           = "X"
)
