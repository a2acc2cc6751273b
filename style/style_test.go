package style_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/style"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.style")
	defer teardown()
	//
	reg := style.Default()
	if !reg.Has("background-image") || !reg.Has("backgroundImage") {
		t.Errorf("expected background-image to be registered")
	}
	if reg.Category("margin-top") != style.CatMargins {
		t.Errorf("expected margin-top to be in category Margins, is %s", reg.Category("margin-top"))
	}
	if reg.Category("funny-margin") != style.CatX {
		t.Errorf("expected unknown property to be in category X, is %s", reg.Category("funny-margin"))
	}
	if !reg.IsInherited("color") || reg.IsInherited("margin-top") {
		t.Errorf("inherited flags wrong for color/margin-top")
	}
	assert.Equal(t, css.KindLayers, reg.ListKind("backgroundSize"))
	assert.Equal(t, css.KindTuple, reg.ListKind("translate"))
	assert.Equal(t, css.KindInvalid, reg.ListKind("width"))
}

func TestInitialValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.style")
	defer teardown()
	//
	reg := style.Default()
	assert.True(t, css.Equal(css.KW("none"), reg.Initial("background-image", "")))
	assert.True(t, css.Equal(css.Px(0), reg.Initial("marginTop", "")))
	assert.True(t, css.Equal(css.KW("initial"), reg.Initial("no-such-thing", "")))
	assert.True(t, css.Equal(css.KW("block"), reg.Initial("display", "div")))
	assert.True(t, css.Equal(css.KW("list-item"), reg.Initial("display", "LI")))
	assert.True(t, css.Equal(css.KW("inline"), reg.Initial("display", "span")))
	assert.True(t, css.Equal(css.KW("none"), reg.Initial("display", "head")))
	assert.True(t, css.Equal(css.KW("inline"), reg.Initial("display", "")))

	assert.True(t, css.Equal(css.KW("auto"), reg.InitialItem("background-size")))
	assert.True(t, css.Equal(css.Unit{Number: 50, Unit: "%"}, reg.InitialItem("transform-origin")))
}

func TestGroups(t *testing.T) {
	reg := style.Default()
	g, ok := reg.Group("backgrounds")
	require.True(t, ok)
	assert.Equal(t, "background-image", g.Primary())
	g2, ok := reg.GroupOf("backgroundSize")
	require.True(t, ok)
	assert.Equal(t, "backgrounds", g2.Name)
	_, ok = reg.GroupOf("width")
	assert.False(t, ok)
	names := make([]string, 0)
	for _, g := range reg.Groups() {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "box-shadows")
	assert.Contains(t, names, "transitions")
}

func TestLoadRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.style")
	defer teardown()
	//
	good := `
properties:
  shadow: { initial: "none", list: layers, item: tuple, category: Effects }
  tint:   { initial: "red", list: layers, category: Color }
groups:
  fx: [shadow, tint]
`
	reg, err := style.LoadRegistry(strings.NewReader(good))
	require.NoError(t, err)
	g, ok := reg.Group("fx")
	require.True(t, ok)
	assert.Equal(t, []string{"shadow", "tint"}, g.Properties)

	bad := map[string]string{
		"list kind":      `properties: { x: { initial: "0", list: stack, category: Effects } }`,
		"category":       `properties: { x: { initial: "0", category: Fancy } }`,
		"no initial":     `properties: { x: { category: Effects } }`,
		"group member":   "properties: { x: { initial: \"0\", list: layers, category: Effects } }\ngroups: { g: [y] }",
		"not repeated":   "properties: { x: { initial: \"0\", category: Effects } }\ngroups: { g: [x] }",
		"item w/o list":  `properties: { x: { initial: "0", item: tuple, category: Effects } }`,
		"camel case":     `properties: { boxShadow: { initial: "none", category: Effects } }`,
		"seed w/o tuple": `properties: { x: { initial: "none", list: layers, seed: "1 1", category: Effects } }`,
		"seed no tuple":  `properties: { x: { initial: "none", list: tuple, seed: "1", category: Effects } }`,
	}
	for name, text := range bad {
		if _, err := style.LoadRegistry(strings.NewReader(text)); err == nil {
			t.Errorf("expected metadata with bad %s to be rejected", name)
		}
	}
	_, err = style.LoadRegistry(strings.NewReader("properties: { x: { initial: \"0\", list: layers, category: Effects } }\ngroups: { g: [y] }"))
	assert.True(t, errors.Is(err, style.ErrUnknownProperty))
}

func TestSeed(t *testing.T) {
	reg := style.Default()
	if s := reg.Seed("translate"); !css.Equal(css.NewTuple(css.Px(0), css.Px(0), css.Px(0)), s) {
		t.Errorf("expected translate to be seeded with 0px 0px 0px, is %v", s)
	}
	assert.Nil(t, reg.Seed("background-image"))
	assert.Nil(t, reg.Seed("funny-margin"))
}

func TestLookupUnknown(t *testing.T) {
	_, err := style.Default().Lookup("funny-margin")
	if !errors.Is(err, style.ErrUnknownProperty) {
		t.Errorf("expected ErrUnknownProperty, is %v", err)
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"backgroundImage":  "background-image",
		"background-image": "background-image",
		"WebkitBoxShadow":  "-webkit-box-shadow",
		"color":            "color",
		"--myVar":          "--myVar",
	}
	for in, want := range cases {
		if got := style.Normalize(in); got != want {
			t.Errorf("expected Normalize(%q) = %q, is %q", in, want, got)
		}
	}
}

func TestExpandShorthand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.style")
	defer teardown()
	//
	decls, err := style.ExpandShorthand("padding", "3px 5px")
	require.NoError(t, err)
	require.Len(t, decls, 4)
	want := []string{"padding-top:3px", "padding-right:5px", "padding-bottom:3px", "padding-left:5px"}
	for i, d := range decls {
		assert.Equal(t, want[i], d.Property+":"+d.Value.String())
	}
	decls, err = style.ExpandShorthand("borderRadius", "1px 2px 3px")
	require.NoError(t, err)
	assert.Equal(t, "border-top-left-radius", decls[0].Property)
	assert.Equal(t, "2px", decls[3].Value.String(), "bottom-left mirrors top-right")
	decls, err = style.ExpandShorthand("border-color", "red rgb(0, 0, 255)")
	require.NoError(t, err)
	assert.Equal(t, "border-right-color", decls[1].Property)
	assert.Equal(t, "rgb(0, 0, 255)", decls[1].Value.String())
	decls, err = style.ExpandShorthand("inset", "0px")
	require.NoError(t, err)
	assert.Equal(t, "left", decls[3].Property)
	decls, err = style.ExpandShorthand("gap", "4px 8px")
	require.NoError(t, err)
	assert.Equal(t, "column-gap", decls[1].Property)
	assert.Equal(t, "8px", decls[1].Value.String())

	_, err = style.ExpandShorthand("margin", "1px 2px 3px 4px 5px")
	assert.Error(t, err)
	_, err = style.ExpandShorthand("width", "1px")
	assert.True(t, errors.Is(err, style.ErrNotShorthand))
}

func TestParseShaping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.style")
	defer teardown()
	//
	reg := style.Default()
	v := reg.Parse("background-size", "cover")
	assert.Equal(t, css.KindLayers, v.Kind())
	assert.Equal(t, 1, css.Len(v))

	v = reg.Parse("boxShadow", "0px 2px 5px 0px rgba(0, 0, 0, 0.2)")
	require.Equal(t, css.KindLayers, v.Kind())
	items, _ := css.Items(v)
	assert.Equal(t, css.KindTuple, items[0].Kind())
	assert.Equal(t, 5, css.Len(items[0]))

	v = reg.Parse("box-shadow", "inset 1px 1px red, 2px 2px blue")
	assert.Equal(t, 2, css.Len(v))

	v = reg.Parse("translate", "10px")
	assert.Equal(t, css.KindTuple, v.Kind())
	assert.Equal(t, 1, css.Len(v))

	v = reg.Parse("background-image", "linear-gradient(red, blue)")
	assert.Equal(t, css.KindLayers, v.Kind())

	assert.True(t, css.Equal(css.KW("none"), reg.Parse("box-shadow", "none")))
	assert.True(t, css.Equal(css.KW("inherit"), reg.Parse("background-size", "inherit")))
	assert.True(t, css.Equal(css.Px(3), reg.Parse("width", "3px")))
	assert.True(t, css.Equal(css.Px(3), reg.Parse("funny-width", "3px")))
}
