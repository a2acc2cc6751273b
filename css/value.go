package css

// Kind denotes the variant of a style value.
type Kind uint8

// Kinds of style values.
const (
	KindInvalid Kind = iota
	KindKeyword
	KindUnit
	KindColor
	KindImage
	KindTuple
	KindLayers
	KindUnparsed
	KindIntermediate
)

var kindNames = [...]string{"invalid", "keyword", "unit", "color", "image", "tuple", "layers",
	"unparsed", "intermediate"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// IsContainer is true for kinds carrying a nested sequence of values.
func (k Kind) IsContainer() bool {
	return k == KindTuple || k == KindLayers
}

// Value is a resolved CSS property value. The set of implementations is closed;
// see the package documentation.
type Value interface {
	Kind() Kind
	IsHidden() bool        // is this item switched off within a layer stack?
	WithHidden(bool) Value // copy of the value with the hidden flag set
	String() string        // CSS text of the value
	isValue()
}

// Declaration pairs a property with a value.
type Declaration struct {
	Property string
	Value    Value
}

// --- Leafs -----------------------------------------------------------------

// Keyword is an identifier value, e.g. `none` or `inset`.
type Keyword struct {
	Name   string
	Hidden bool
}

// Unit is a number with an optional unit, e.g. `12px`, `50%` or `1.5`.
type Unit struct {
	Number float64
	Unit   string // "px", "%", "em", … or "number"
	Hidden bool
}

// Color is an sRGB color with alpha.
type Color struct {
	R, G, B uint8
	Alpha   float64 // 0…1
	Hidden  bool
}

// ImageSource references an image either by asset id or by URL.
// Exactly one of Asset and URL is set.
type ImageSource struct {
	Asset string
	URL   string
}

// IsAsset is true if the image references a managed asset.
func (src ImageSource) IsAsset() bool {
	return src.Asset != ""
}

// Image is an image reference.
type Image struct {
	Source ImageSource
	Hidden bool
}

// Unparsed holds raw CSS text the value model cannot decompose, e.g. gradients.
type Unparsed struct {
	Raw    string
	Hidden bool
}

// Intermediate is a value in the middle of being edited. It is never stored
// as a committed value.
type Intermediate struct {
	Text string
	Unit string
}

// --- Containers ------------------------------------------------------------

// Tuple is a fixed-shape composite, e.g. one box-shadow or the axes of `translate`.
type Tuple struct {
	Items  []Value
	Hidden bool
}

// Layers is a stack of independently hideable items, e.g. background layers.
type Layers struct {
	Items []Value
}

// --- Interface implementation ----------------------------------------------

func (Keyword) Kind() Kind      { return KindKeyword }
func (Unit) Kind() Kind         { return KindUnit }
func (Color) Kind() Kind        { return KindColor }
func (Image) Kind() Kind        { return KindImage }
func (Unparsed) Kind() Kind     { return KindUnparsed }
func (Intermediate) Kind() Kind { return KindIntermediate }
func (Tuple) Kind() Kind        { return KindTuple }
func (Layers) Kind() Kind       { return KindLayers }

func (v Keyword) IsHidden() bool    { return v.Hidden }
func (v Unit) IsHidden() bool       { return v.Hidden }
func (v Color) IsHidden() bool      { return v.Hidden }
func (v Image) IsHidden() bool      { return v.Hidden }
func (v Unparsed) IsHidden() bool   { return v.Hidden }
func (Intermediate) IsHidden() bool { return false }
func (v Tuple) IsHidden() bool      { return v.Hidden }
func (Layers) IsHidden() bool       { return false }

func (v Keyword) WithHidden(h bool) Value  { v.Hidden = h; return v }
func (v Unit) WithHidden(h bool) Value     { v.Hidden = h; return v }
func (v Color) WithHidden(h bool) Value    { v.Hidden = h; return v }
func (v Image) WithHidden(h bool) Value    { v.Hidden = h; return v }
func (v Unparsed) WithHidden(h bool) Value { v.Hidden = h; return v }

// WithHidden is a no-op for intermediate values.
func (v Intermediate) WithHidden(bool) Value { return v }

func (v Tuple) WithHidden(h bool) Value {
	return Tuple{Items: cloneItems(v.Items), Hidden: h}
}

// WithHidden is a no-op for layer stacks; hide the items instead.
func (v Layers) WithHidden(bool) Value {
	return Layers{Items: cloneItems(v.Items)}
}

func (Keyword) isValue()      {}
func (Unit) isValue()         {}
func (Color) isValue()        {}
func (Image) isValue()        {}
func (Unparsed) isValue()     {}
func (Intermediate) isValue() {}
func (Tuple) isValue()        {}
func (Layers) isValue()       {}

// --- Constructors ----------------------------------------------------------

// KW creates a keyword value.
func KW(name string) Keyword {
	return Keyword{Name: name}
}

// Px creates a unit value in pixels.
func Px(n float64) Unit {
	return Unit{Number: n, Unit: "px"}
}

// Number creates a unit-less number.
func Number(n float64) Unit {
	return Unit{Number: n, Unit: "number"}
}

// RGBA creates a color value.
func RGBA(r, g, b uint8, alpha float64) Color {
	return Color{R: r, G: g, B: b, Alpha: alpha}
}

// URL creates an image value referencing a URL.
func URL(url string) Image {
	return Image{Source: ImageSource{URL: url}}
}

// Asset creates an image value referencing an asset by id.
func Asset(id string) Image {
	return Image{Source: ImageSource{Asset: id}}
}

// NewTuple creates a tuple of items.
func NewTuple(items ...Value) Tuple {
	return Tuple{Items: cloneItems(items)}
}

// NewLayers creates a layer stack of items.
func NewLayers(items ...Value) Layers {
	return Layers{Items: cloneItems(items)}
}

// Container creates a container of kind k holding items. k has to be
// KindTuple or KindLayers.
func Container(k Kind, items []Value) Value {
	assertThat(k.IsContainer(), "cannot create container of kind %s", k)
	if k == KindTuple {
		return Tuple{Items: items}
	}
	return Layers{Items: items}
}

// --- Inspection ------------------------------------------------------------

// Items returns the nested items of a tuple or layer stack, together with
// a flag indicating whether v is a container at all. The returned slice is
// a copy and may be modified by the caller.
func Items(v Value) ([]Value, bool) {
	switch c := v.(type) {
	case Tuple:
		return cloneItems(c.Items), true
	case Layers:
		return cloneItems(c.Items), true
	}
	return nil, false
}

// ItemsOfKind returns the items of v if v is a container of kind k,
// and an empty slice otherwise.
func ItemsOfKind(v Value, k Kind) []Value {
	if v == nil || v.Kind() != k {
		return []Value{}
	}
	items, _ := Items(v)
	if items == nil {
		return []Value{}
	}
	return items
}

// Len returns the number of items of a container value, or 0 for leafs.
func Len(v Value) int {
	switch c := v.(type) {
	case Tuple:
		return len(c.Items)
	case Layers:
		return len(c.Items)
	}
	return 0
}

// IsCSSWide is true for the CSS-wide keywords (initial, inherit, unset, revert).
func IsCSSWide(v Value) bool {
	if k, ok := v.(Keyword); ok {
		switch k.Name {
		case "initial", "inherit", "unset", "revert", "revert-layer":
			return true
		}
	}
	return false
}

func cloneItems(items []Value) []Value {
	if items == nil {
		return nil
	}
	c := make([]Value, len(items))
	copy(c, items)
	return c
}
