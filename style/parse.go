package style

import "github.com/dotkaio/wstudio/css"

// Parse parses CSS value text for a property and shapes the result to the
// property's declared list kind:
//
//   - a single layer of a layers-property is wrapped into css.Layers
//   - layer items of properties with item kind tuple are wrapped into css.Tuple
//   - a single component of a tuple-property is wrapped into css.Tuple
//
// CSS-wide keywords, `none` and intermediate values are returned as they
// are. Properties unknown to the registry are not shaped.
func (reg *Registry) Parse(property string, text string) css.Value {
	v := css.Parse(text)
	meta, err := reg.Lookup(property)
	if err != nil || !meta.IsRepeated() || !shapeable(v) {
		return v
	}
	switch meta.ListKind() {
	case css.KindLayers:
		if v.Kind() != css.KindLayers {
			v = css.NewLayers(v)
		}
		if meta.Item != "tuple" {
			return v
		}
		items, _ := css.Items(v)
		for i, item := range items {
			if item.Kind() != css.KindTuple && shapeable(item) {
				items[i] = css.NewTuple(item)
			}
		}
		return css.Layers{Items: items}
	case css.KindTuple:
		if v.Kind() != css.KindTuple {
			return css.NewTuple(v)
		}
	}
	return v
}

func shapeable(v css.Value) bool {
	switch v.Kind() {
	case css.KindIntermediate:
		return false
	case css.KindKeyword:
		return !css.IsCSSWide(v) && v.(css.Keyword).Name != "none"
	}
	return true
}
