package repeated

import (
	"fmt"

	"github.com/dotkaio/wstudio/batch"
	"github.com/dotkaio/wstudio/cascade"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/dotkaio/wstudio/style"
	"go.uber.org/multierr"
)

// Store is what the engine needs from a declaration store: reading for
// resolution and applying batches. *store.Store implements it.
type Store interface {
	cascade.Store
	batch.Applier
}

var _ Store = (*store.Store)(nil)

// Engine edits repeated-style groups for a selection of instances.
type Engine struct {
	st        Store
	reg       *style.Registry
	res       *cascade.Resolver
	selection []store.ID
}

// NewEngine creates an engine for a selection. If reg is nil, the default
// registry is used.
func NewEngine(st Store, reg *style.Registry, selection []store.ID) *Engine {
	assertThat(st != nil, "engine needs a store")
	if reg == nil {
		reg = style.Default()
	}
	return &Engine{
		st:        st,
		reg:       reg,
		res:       cascade.NewResolver(st, reg),
		selection: append([]store.ID(nil), selection...),
	}
}

// Group resolves the properties of a named repeated-style group for the
// engine's selection. The primary property comes first.
func (e *Engine) Group(name string) ([]cascade.Decl, error) {
	g, ok := e.reg.Group(name)
	if !ok {
		return nil, fmt.Errorf("no repeated-style group %q", name)
	}
	return e.res.ResolveGroup(g, e.selection), nil
}

// Resolve resolves a single property for the engine's selection.
func (e *Engine) Resolve(property string) cascade.Decl {
	return e.res.Resolve(property, e.selection)
}

// --- Normalization ---------------------------------------------------------

// Normalize returns the container of d's property resized to the item
// count of primary. kind is the container kind to produce; if it is
// css.KindInvalid, it is tuple for tuple primaries and layers otherwise.
//
// Values of another kind count as empty. An empty container is seeded
// with the property's initial item if the primary has items, and then
// repeated cyclically or truncated to the primary's count.
func (e *Engine) Normalize(d cascade.Decl, primary css.Value, kind css.Kind) css.Value {
	if kind == css.KindInvalid {
		kind = containerKind(primary)
	}
	count := 0
	if primary != nil && primary.Kind() == kind {
		count = css.Len(primary)
	}
	var items []css.Value
	if d.CascadedValue != nil && d.CascadedValue.Kind() == kind {
		items, _ = css.Items(d.CascadedValue)
	}
	if len(items) == 0 && count > 0 {
		items = []css.Value{e.reg.InitialItem(d.Property)}
	}
	return css.Container(kind, repeatUntil(items, count))
}

func containerKind(v css.Value) css.Kind {
	if v != nil && v.Kind() == css.KindTuple {
		return css.KindTuple
	}
	return css.KindLayers
}

// repeatUntil returns a list of n items, repeating items cyclically or
// truncating them. An empty list cannot be repeated and stays empty.
func repeatUntil(items []css.Value, n int) []css.Value {
	if len(items) == 0 {
		return []css.Value{}
	}
	if len(items) >= n {
		return items[:n:n]
	}
	r := make([]css.Value, n)
	for i := range r {
		r[i] = items[i%len(items)]
	}
	return r
}

// --- Operations ------------------------------------------------------------

// Add appends new items to the properties of a group. For every
// declaration in newItems whose value is a layers or tuple container, the
// property's current value is normalized to the current item count of the
// primary property, then the new container's items are appended.
//
// The container kind is the one declared for the property in the registry,
// or the kind of the incoming value for unregistered properties. Values
// which are no containers and properties not in the group are skipped.
// All other members of the group are aligned to the resulting item count of
// the primary property.
func (e *Engine) Add(group []cascade.Decl, newItems []css.Declaration) error {
	assertThat(len(group) > 0, "add on empty group")
	primary := group[0].CascadedValue
	var writes []css.Declaration
	var errs error
	for _, ni := range newItems {
		if ni.Value == nil || !ni.Value.Kind().IsContainer() {
			tracer().Debugf("add: skipping non-container value for %s", ni.Property)
			continue
		}
		d, ok := lookup(group, ni.Property)
		if !ok {
			tracer().Infof("add: property %s is not part of the group", ni.Property)
			continue
		}
		kind := e.reg.ListKind(d.Property)
		if kind == css.KindInvalid {
			kind = ni.Value.Kind()
		}
		normalized := e.Normalize(d, primary, kind)
		if ni.Value.Kind() != kind {
			errs = multierr.Append(errs, mismatch(d.Property, kind, ni.Value))
			continue
		}
		added, _ := css.Items(ni.Value)
		items, _ := css.Items(normalized)
		writes = append(writes, css.Declaration{
			Property: d.Property,
			Value:    css.Container(kind, append(items, added...)),
		})
	}
	return multierr.Append(errs, e.commit(group, writes))
}

// Edit replaces the item at index with the items of the new containers,
// for every property of newItems. Replacing one item by several is
// supported. Properties are normalized first, so stale indices from callers
// holding an out-of-date item count are corrected. Properties for which
// index is out of range are skipped. All other members of the group are
// aligned to the resulting item count of the primary property.
func (e *Engine) Edit(group []cascade.Decl, index int, newItems []css.Declaration, opts ...batch.Option) error {
	assertThat(len(group) > 0, "edit on empty group")
	primary := group[0].CascadedValue
	var writes []css.Declaration
	var errs error
	for _, ni := range newItems {
		d, ok := lookup(group, ni.Property)
		if !ok {
			tracer().Infof("edit: property %s is not part of the group", ni.Property)
			continue
		}
		normalized := e.Normalize(d, primary, css.KindInvalid)
		if ni.Value == nil || ni.Value.Kind() != normalized.Kind() {
			errs = multierr.Append(errs, mismatch(d.Property, normalized.Kind(), ni.Value))
			continue
		}
		items, _ := css.Items(normalized)
		if index < 0 || index >= len(items) {
			tracer().Infof("edit: index %d out of range for %s with %d items", index, d.Property, len(items))
			continue
		}
		replacement, _ := css.Items(ni.Value)
		items = splice(items, index, 1, replacement...)
		writes = append(writes, css.Declaration{
			Property: d.Property,
			Value:    css.Container(normalized.Kind(), items),
		})
	}
	return multierr.Append(errs, e.commit(group, writes, opts...))
}

// commit publishes writes with a single batch. Containers of the group,
// written or not, are first resized to the item count the primary
// property holds after the writes.
func (e *Engine) commit(group []cascade.Decl, writes []css.Declaration, opts ...batch.Option) error {
	primary := group[0]
	written := make(map[string]bool, len(writes))
	for _, w := range writes {
		written[w.Property] = true
		if w.Property == primary.Property {
			primary.CascadedValue = w.Value
		}
	}
	align := func(d cascade.Decl) css.Value {
		p := primary.CascadedValue
		if d.Property == primary.Property || p == nil || !p.Kind().IsContainer() ||
			d.CascadedValue == nil || d.CascadedValue.Kind() != p.Kind() ||
			css.Len(d.CascadedValue) == css.Len(p) {
			return nil
		}
		return e.Normalize(d, p, p.Kind())
	}
	b := batch.Create(e.st, e.selection)
	for _, w := range writes {
		if v := align(cascade.Decl{Property: w.Property, CascadedValue: w.Value}); v != nil {
			w.Value = v
		}
		b.Set(w.Property, w.Value)
	}
	for _, d := range group {
		if written[d.Property] {
			continue
		}
		if v := align(d); v != nil {
			tracer().Debugf("aligning %s to %d items", d.Property, css.Len(v))
			b.Set(d.Property, v)
		}
	}
	return b.Publish(opts...)
}

// Set replaces the item at index of a single property. If newItem is a
// container of the property's kind, its first item is used, as callers
// often pass a freshly parsed single-item container. The container is
// padded up to index+1 items by cyclic repetition before writing.
//
// A tuple property without a tuple value, e.g. `translate: none`, is
// edited starting from its seed tuple. Without a seed, Set flags
// ErrNoTuple.
func (e *Engine) Set(d cascade.Decl, index int, newItem css.Value, opts ...batch.Option) error {
	assertThat(newItem != nil, "set of nil item for %s", d.Property)
	if index < 0 {
		return fmt.Errorf("set %s: negative index %d", d.Property, index)
	}
	kind := css.KindLayers
	if d.CascadedValue != nil && d.CascadedValue.Kind().IsContainer() {
		kind = d.CascadedValue.Kind()
	} else if k := e.reg.ListKind(d.Property); k != css.KindInvalid {
		kind = k
	}
	var items []css.Value
	if d.CascadedValue != nil && d.CascadedValue.Kind() == kind {
		items, _ = css.Items(d.CascadedValue)
	}
	if len(items) == 0 {
		if kind == css.KindTuple {
			seed := e.reg.Seed(d.Property)
			if seed == nil {
				return fmt.Errorf("set %s: %w", d.Property, ErrNoTuple)
			}
			items, _ = css.Items(seed)
		} else {
			items = []css.Value{e.reg.InitialItem(d.Property)}
		}
	}
	items = repeatUntil(items, max(len(items), index+1))
	if newItem.Kind() == kind {
		inner, _ := css.Items(newItem)
		if len(inner) == 0 {
			return mismatch(d.Property, kind, newItem)
		}
		newItem = inner[0]
	}
	items[index] = newItem
	return batch.Create(e.st, e.selection).
		Set(d.Property, css.Container(kind, items)).
		Publish(opts...)
}

// Delete removes the item at index from every property of the group.
// Properties left without items are deleted altogether.
func (e *Engine) Delete(group []cascade.Decl, index int) error {
	assertThat(len(group) > 0, "delete on empty group")
	primary := group[0].CascadedValue
	b := batch.Create(e.st, e.selection)
	for _, d := range group {
		normalized := e.Normalize(d, primary, css.KindInvalid)
		items, _ := css.Items(normalized)
		if len(items) == 0 {
			continue // nothing to delete
		}
		if index >= 0 && index < len(items) {
			items = splice(items, index, 1)
		}
		if len(items) == 0 {
			b.Delete(d.Property)
			continue
		}
		b.Set(d.Property, css.Container(normalized.Kind(), items))
	}
	return b.Publish()
}

// Toggle flips the visibility of the item at index for every property of
// the group.
func (e *Engine) Toggle(group []cascade.Decl, index int) error {
	assertThat(len(group) > 0, "toggle on empty group")
	primary := group[0].CascadedValue
	b := batch.Create(e.st, e.selection)
	for _, d := range group {
		normalized := e.Normalize(d, primary, css.KindInvalid)
		items, _ := css.Items(normalized)
		if index < 0 || index >= len(items) {
			continue
		}
		items[index] = items[index].WithHidden(!items[index].IsHidden())
		b.Set(d.Property, css.Container(normalized.Kind(), items))
	}
	return b.Publish()
}

// Swap moves the item at oldIndex to newIndex, for every property of the
// group. Properties with fewer than two items are left untouched.
func (e *Engine) Swap(group []cascade.Decl, oldIndex, newIndex int) error {
	assertThat(len(group) > 0, "swap on empty group")
	primary := group[0].CascadedValue
	b := batch.Create(e.st, e.selection)
	for _, d := range group {
		normalized := e.Normalize(d, primary, css.KindInvalid)
		items, _ := css.Items(normalized)
		if len(items) < 2 || oldIndex < 0 || oldIndex >= len(items) {
			continue
		}
		item := items[oldIndex]
		items = splice(items, oldIndex, 1)
		items = splice(items, newIndex, 0, item)
		b.Set(d.Property, css.Container(normalized.Kind(), items))
	}
	return b.Publish()
}

// Item returns the repeated item at index of a layers or tuple value,
// wrapping around for indices beyond the item count.
func Item(v css.Value, index int) css.Value {
	return cascade.Decl{CascadedValue: v}.Item(index)
}

// --- Helpers ---------------------------------------------------------------

func lookup(group []cascade.Decl, property string) (cascade.Decl, bool) {
	property = style.Normalize(property)
	for _, d := range group {
		if d.Property == property {
			return d, true
		}
	}
	return cascade.Decl{}, false
}

func mismatch(property string, want css.Kind, got css.Value) error {
	k := css.KindInvalid
	if got != nil {
		k = got.Kind()
	}
	err := fmt.Errorf("%w: %s holds %s, got %s", ErrKindMismatch, property, want, k)
	tracer().Errorf("%v", err)
	return err
}

// splice removes n items at index and inserts ins there. index is clamped
// to [0, len(items)]. splice never modifies the backing array of items.
func splice(items []css.Value, index, n int, ins ...css.Value) []css.Value {
	if index < 0 {
		index = 0
	}
	if index > len(items) {
		index = len(items)
	}
	if index+n > len(items) {
		n = len(items) - index
	}
	r := make([]css.Value, 0, len(items)-n+len(ins))
	r = append(r, items[:index]...)
	r = append(r, ins...)
	return append(r, items[index+n:]...)
}
