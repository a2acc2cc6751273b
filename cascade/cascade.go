/*
Package cascade computes which declared value of a style property wins for
a selection of instances.

For a single instance, the tiers of the declaration store are consulted from
highest to lowest precedence:

    ephemeral   a preview value, or a preview deletion masking local
    local       the value explicitly set for the instance
    remote      the value set by a preset; for inherited properties, the
                value of the nearest ancestor declaring the property
    default     the initial value from property metadata

A property absent from all tiers resolves to its CSS initial value, never
to an error.

For selections of several instances, the rendered value is the one of the
first instance. The resolver additionally classifies the set of sources into
a Category, which is advisory only (the editor uses it for coloring labels).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package cascade

import (
	"sort"

	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/dotkaio/wstudio/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'wstudio.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.cascade")
}

// Category classifies the sources of a property across a selection.
type Category uint8

// Categories, in ascending priority.
const (
	CategoryDefault     Category = iota // all instances use the initial value
	CategoryRemote                      // all remote, same value
	CategoryLocal                       // all local, same value
	CategoryOverwritten                 // instances disagree or mix tiers
)

func (c Category) String() string {
	switch c {
	case CategoryDefault:
		return "default"
	case CategoryRemote:
		return "remote"
	case CategoryLocal:
		return "local"
	case CategoryOverwritten:
		return "overwritten"
	}
	return "<unknown category>"
}

// Decl is a read-only snapshot of a resolved property.
type Decl struct {
	Property      string
	CascadedValue css.Value
	Source        store.Tier // tier of the rendered value
	Category      Category
}

// Item returns the repeated item at index of a layers or tuple value.
// Indices wrap around, so secondary properties with fewer items than their
// primary property repeat their items cyclically. Item returns nil for
// single values and empty containers.
func (d Decl) Item(index int) css.Value {
	items, ok := css.Items(d.CascadedValue)
	if !ok || len(items) == 0 || index < 0 {
		return nil
	}
	return items[index%len(items)]
}

// Store is the part of a declaration store the resolver reads from.
// *store.Store implements it.
type Store interface {
	View(func(store.Reader) error) error
}

var _ Store = (*store.Store)(nil)

// Resolver resolves properties against a store and property metadata.
// Resolution has no side effects.
type Resolver struct {
	st  Store
	reg *style.Registry
}

// NewResolver creates a resolver. If reg is nil, the default registry is used.
func NewResolver(st Store, reg *style.Registry) *Resolver {
	if reg == nil {
		reg = style.Default()
	}
	return &Resolver{st: st, reg: reg}
}

// Registry returns the property metadata the resolver uses.
func (res *Resolver) Registry() *style.Registry {
	return res.reg
}

// Resolve computes the winning value of a property for a selection.
func (res *Resolver) Resolve(property string, selection []store.ID) Decl {
	var d Decl
	_ = res.st.View(func(r store.Reader) error {
		d = res.resolve(r, style.Normalize(property), selection)
		return nil
	})
	return d
}

// ResolveGroup resolves all properties of a repeated-style group against one
// consistent state of the store. The primary property is the first Decl.
func (res *Resolver) ResolveGroup(g style.Group, selection []store.ID) []Decl {
	decls := make([]Decl, len(g.Properties))
	_ = res.st.View(func(r store.Reader) error {
		for i, p := range g.Properties {
			decls[i] = res.resolve(r, p, selection)
		}
		return nil
	})
	return decls
}

// ResolveAll resolves every property known to the registry plus every
// property declared for an instance of the selection, sorted by name.
func (res *Resolver) ResolveAll(selection []store.ID) []Decl {
	var decls []Decl
	_ = res.st.View(func(r store.Reader) error {
		names := make(map[string]struct{})
		for _, p := range res.reg.Properties() {
			names[p] = struct{}{}
		}
		for _, id := range selection {
			for _, tier := range []store.Tier{store.TierRemote, store.TierLocal, store.TierEphemeral} {
				for _, p := range r.Properties(id, tier) {
					names[p] = struct{}{}
				}
			}
		}
		sorted := make([]string, 0, len(names))
		for p := range names {
			sorted = append(sorted, p)
		}
		sort.Strings(sorted)
		decls = make([]Decl, len(sorted))
		for i, p := range sorted {
			decls[i] = res.resolve(r, p, selection)
		}
		return nil
	})
	return decls
}

func (res *Resolver) resolve(r store.Reader, property string, selection []store.ID) Decl {
	d := Decl{Property: property}
	if len(selection) == 0 {
		d.CascadedValue = res.reg.Initial(property, "")
		return d
	}
	values := make([]css.Value, len(selection))
	tiers := make([]store.Tier, len(selection))
	for i, id := range selection {
		values[i], tiers[i] = res.resolveInstance(r, id, property)
	}
	d.CascadedValue, d.Source = values[0], tiers[0]
	d.Category = classify(values, tiers)
	tracer().P("property", property).Debugf("resolved to %v from %s (%s)",
		css.ToValue(d.CascadedValue), d.Source, d.Category)
	return d
}

// resolveInstance finds the winning value for a single instance.
func (res *Resolver) resolveInstance(r store.Reader, id store.ID, property string) (css.Value, store.Tier) {
	inst, ok := r.Instance(id)
	if !ok {
		tracer().Errorf("cannot resolve %s for unknown instance %s", property, id)
		return res.reg.Initial(property, ""), store.TierDefault
	}
	maskLocal := false
	if v, ok := r.Get(id, property, store.TierEphemeral); ok {
		if v != nil {
			return res.keywords(r, inst, property, v), store.TierEphemeral
		}
		maskLocal = true // preview deletion
	}
	if !maskLocal {
		if v, ok := r.Get(id, property, store.TierLocal); ok {
			return res.keywords(r, inst, property, v), store.TierLocal
		}
	}
	if v, ok := r.Get(id, property, store.TierRemote); ok {
		return res.keywords(r, inst, property, v), store.TierRemote
	}
	if res.reg.IsInherited(property) && inst.Parent != "" {
		if v, tier := res.resolveInstance(r, inst.Parent, property); tier != store.TierDefault {
			return v, store.TierRemote
		}
	}
	return res.reg.Initial(property, inst.Tag), store.TierDefault
}

// keywords substitutes the CSS-wide keywords `inherit` and `initial` by the
// values they denote. The tier of the declaration is not changed.
func (res *Resolver) keywords(r store.Reader, inst store.Instance, property string, v css.Value) css.Value {
	k, ok := v.(css.Keyword)
	if !ok {
		return v
	}
	switch k.Name {
	case "initial":
		return res.reg.Initial(property, inst.Tag)
	case "inherit":
		if inst.Parent == "" {
			return res.reg.Initial(property, inst.Tag)
		}
		pv, _ := res.resolveInstance(r, inst.Parent, property)
		return pv
	case "unset":
		if res.reg.IsInherited(property) && inst.Parent != "" {
			pv, _ := res.resolveInstance(r, inst.Parent, property)
			return pv
		}
		return res.reg.Initial(property, inst.Tag)
	}
	return v
}

// classify computes the aggregate category for per-instance results.
// Previews count as local values.
func classify(values []css.Value, tiers []store.Tier) Category {
	category := func(t store.Tier) Category {
		switch t {
		case store.TierRemote:
			return CategoryRemote
		case store.TierLocal, store.TierEphemeral:
			return CategoryLocal
		}
		return CategoryDefault
	}
	first := category(tiers[0])
	for i := 1; i < len(tiers); i++ {
		if category(tiers[i]) != first {
			return CategoryOverwritten
		}
		if first != CategoryDefault && !css.Equal(values[i], values[0]) {
			return CategoryOverwritten
		}
	}
	return first
}

// PrioritySource folds the categories of several properties into one, as
// needed for controls editing more than one property at a time. Priority is
// overwritten > local > remote > default.
func PrioritySource(decls []Decl) Category {
	c := CategoryDefault
	for _, d := range decls {
		if d.Category > c {
			c = d.Category
		}
	}
	return c
}
