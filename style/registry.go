package style

import (
	_ "embed"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dotkaio/wstudio/css"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Meta describes a CSS property.
type Meta struct {
	Initial   string `yaml:"initial" validate:"required"`
	Inherited bool   `yaml:"inherited"`
	List      string `yaml:"list" validate:"omitempty,oneof=layers tuple"`
	Item      string `yaml:"item" validate:"omitempty,oneof=tuple"`
	Category  string `yaml:"category" validate:"required,category"`
	Seed      string `yaml:"seed"`

	initial css.Value
	seed    css.Value
}

// ListKind returns the container kind of repeated values of the property,
// or css.KindInvalid for single-valued properties.
func (m *Meta) ListKind() css.Kind {
	switch m.List {
	case "layers":
		return css.KindLayers
	case "tuple":
		return css.KindTuple
	}
	return css.KindInvalid
}

// IsRepeated is true for properties with layers or tuple values.
func (m *Meta) IsRepeated() bool {
	return m.List != ""
}

// Group is a named set of properties whose repeated values have to stay
// length-synchronized. Properties[0] is the primary property.
type Group struct {
	Name       string
	Properties []string
}

// Primary returns the property dictating the item count of the group.
func (g Group) Primary() string {
	assertThat(len(g.Properties) > 0, "group %q has no properties", g.Name)
	return g.Properties[0]
}

// document is the YAML layout of a metadata file.
type document struct {
	Properties map[string]*Meta    `yaml:"properties" validate:"required,min=1,dive,required"`
	Groups     map[string][]string `yaml:"groups" validate:"dive,min=1,dive,required"`
}

// Registry holds metadata for a set of CSS properties. A registry is
// immutable after loading and may be shared between goroutines.
type Registry struct {
	props   map[string]*Meta
	groups  map[string]Group
	groupOf map[string]string
}

//go:embed properties.yaml
var defaultMetadata []byte

var defaultRegistry struct {
	once sync.Once
	reg  *Registry
}

// Default returns the registry loaded from the built-in metadata.
func Default() *Registry {
	defaultRegistry.once.Do(func() {
		reg, err := parseRegistry(defaultMetadata)
		assertThat(err == nil, "built-in property metadata is invalid: %v", err)
		defaultRegistry.reg = reg
	})
	return defaultRegistry.reg
}

// LoadRegistry reads property metadata in YAML format from r.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading property metadata: %w", err)
	}
	return parseRegistry(data)
}

func parseRegistry(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding property metadata: %w", err)
	}
	if err := validatorInstance().Struct(&doc); err != nil {
		return nil, fmt.Errorf("validating property metadata: %w", err)
	}
	reg := &Registry{
		props:   make(map[string]*Meta, len(doc.Properties)),
		groups:  make(map[string]Group, len(doc.Groups)),
		groupOf: make(map[string]string),
	}
	for name, meta := range doc.Properties {
		if name != Normalize(name) {
			return nil, fmt.Errorf("property %q: name not in kebab-case", name)
		}
		if meta.Item != "" && meta.List != "layers" {
			return nil, fmt.Errorf("property %q: item kind requires list kind layers", name)
		}
		if meta.Seed != "" {
			if meta.List != "tuple" {
				return nil, fmt.Errorf("property %q: seed requires list kind tuple", name)
			}
			if meta.seed = css.Parse(meta.Seed); meta.seed.Kind() != css.KindTuple {
				return nil, fmt.Errorf("property %q: seed %q is not a tuple", name, meta.Seed)
			}
		}
		meta.initial = css.Parse(meta.Initial)
		if meta.initial.Kind() == css.KindUnparsed {
			tracer().Infof("initial value of %s is not decomposable: %q", name, meta.Initial)
		}
		reg.props[name] = meta
	}
	for gname, members := range doc.Groups {
		for _, p := range members {
			meta, ok := reg.props[p]
			if !ok {
				return nil, fmt.Errorf("group %q: %w: %s", gname, ErrUnknownProperty, p)
			}
			if !meta.IsRepeated() {
				return nil, fmt.Errorf("group %q: property %s is not repeated", gname, p)
			}
			if other, dup := reg.groupOf[p]; dup {
				return nil, fmt.Errorf("property %s is member of groups %q and %q", p, other, gname)
			}
			reg.groupOf[p] = gname
		}
		reg.groups[gname] = Group{Name: gname, Properties: members}
	}
	tracer().Debugf("loaded metadata for %d properties, %d groups", len(reg.props), len(reg.groups))
	return reg, nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

var categories = map[string]struct{}{
	CatMargins: {}, CatPadding: {}, CatBorder: {}, CatDimension: {}, CatDisplay: {},
	CatPosition: {}, CatLayout: {}, CatRegion: {}, CatColor: {}, CatText: {},
	CatBackgrounds: {}, CatEffects: {}, CatTransforms: {}, CatTransitions: {}, CatX: {},
}

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, ok := categories[fl.Field().String()]
			return ok
		})
		validateInst = v
	})
	return validateInst
}

// --- Queries ---------------------------------------------------------------

// Lookup returns the metadata for a property. Property names are normalized
// first, so "backgroundImage" and "background-image" denote the same property.
func (reg *Registry) Lookup(property string) (*Meta, error) {
	meta, ok := reg.props[Normalize(property)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProperty, property)
	}
	return meta, nil
}

// Has is a predicate wether a property is known to the registry.
func (reg *Registry) Has(property string) bool {
	_, ok := reg.props[Normalize(property)]
	return ok
}

// Properties returns the names of all registered properties, sorted.
func (reg *Registry) Properties() []string {
	names := make([]string, 0, len(reg.props))
	for name := range reg.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsInherited returns wether the standard behaviour for a property is to be
// inherited, i.e., resolving its value will cascade to ancestors.
// Unknown properties are not inherited.
func (reg *Registry) IsInherited(property string) bool {
	if meta, err := reg.Lookup(property); err == nil {
		return meta.Inherited
	}
	return false
}

// Category returns the category name for a property.
// Example:
//
//	reg.Category("margin-top") => "Margins"
//
// Unknown properties will return category "X".
func (reg *Registry) Category(property string) string {
	if meta, err := reg.Lookup(property); err == nil {
		return meta.Category
	}
	return CatX
}

// ListKind returns the declared container kind for repeated values of a
// property, or css.KindInvalid.
func (reg *Registry) ListKind(property string) css.Kind {
	if meta, err := reg.Lookup(property); err == nil {
		return meta.ListKind()
	}
	return css.KindInvalid
}

// Initial returns the CSS initial value of a property for an element with
// HTML tag name tag. The tag is relevant for `display` only and may be empty.
// Unknown properties resolve to keyword `initial`.
func (reg *Registry) Initial(property, tag string) css.Value {
	property = Normalize(property)
	if property == "display" && tag != "" {
		return css.KW(displayForTag(tag))
	}
	if meta, ok := reg.props[property]; ok {
		return meta.initial
	}
	tracer().Debugf("no metadata for property %s, using keyword initial", property)
	return css.KW("initial")
}

// InitialItem returns the item used to seed an empty repeated value of a
// property, i.e. the first item of its initial value.
func (reg *Registry) InitialItem(property string) css.Value {
	v := reg.Initial(property, "")
	if items, ok := css.Items(v); ok && len(items) > 0 {
		return items[0]
	}
	return v
}

// Seed returns the tuple to start editing a tuple property from while it
// holds no tuple, e.g. `0px 0px 0px` for translate. It returns nil for
// properties without a seed.
func (reg *Registry) Seed(property string) css.Value {
	if meta, err := reg.Lookup(property); err == nil && meta.seed != nil {
		return meta.seed
	}
	return nil
}

// Group returns the repeated-style group with a given name.
func (reg *Registry) Group(name string) (Group, bool) {
	g, ok := reg.groups[name]
	return g, ok
}

// GroupOf returns the repeated-style group a property is a member of.
func (reg *Registry) GroupOf(property string) (Group, bool) {
	gname, ok := reg.groupOf[Normalize(property)]
	if !ok {
		return Group{}, false
	}
	return reg.groups[gname], true
}

// Groups returns all repeated-style groups, sorted by name.
func (reg *Registry) Groups() []Group {
	groups := make([]Group, 0, len(reg.groups))
	for _, g := range reg.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("style: "+msg, msgargs...)
		panic(msg)
	}
}
