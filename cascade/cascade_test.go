package cascade_test

import (
	"testing"

	"github.com/dotkaio/wstudio/batch"
	"github.com/dotkaio/wstudio/cascade"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	st         *store.Store
	res        *cascade.Resolver
	body, a, b store.ID
}

func newFixture(t *testing.T) fixture {
	st := store.New()
	body, err := st.AddInstance("", "body")
	require.NoError(t, err)
	a, _ := st.AddInstance(body, "div")
	b, _ := st.AddInstance(body, "span")
	return fixture{st: st, res: cascade.NewResolver(st, nil), body: body, a: a, b: b}
}

func (f fixture) apply(t *testing.T, tier store.Tier, id store.ID, property string, v css.Value) {
	require.NoError(t, f.st.ApplyBatch([]store.ID{id}, tier, []store.Op{{Property: property, Value: v}}))
}

func TestPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cascade")
	defer teardown()
	//
	f := newFixture(t)
	sel := []store.ID{f.a}
	d := f.res.Resolve("width", sel)
	assert.Equal(t, store.TierDefault, d.Source)
	assert.True(t, css.Equal(css.KW("auto"), d.CascadedValue))

	f.apply(t, store.TierRemote, f.a, "width", css.Px(1))
	d = f.res.Resolve("width", sel)
	assert.Equal(t, store.TierRemote, d.Source)

	f.apply(t, store.TierLocal, f.a, "width", css.Px(2))
	d = f.res.Resolve("width", sel)
	assert.Equal(t, store.TierLocal, d.Source)
	assert.True(t, css.Equal(css.Px(2), d.CascadedValue))

	f.apply(t, store.TierEphemeral, f.a, "width", css.Px(3))
	d = f.res.Resolve("width", sel)
	assert.Equal(t, store.TierEphemeral, d.Source)
	assert.True(t, css.Equal(css.Px(3), d.CascadedValue))
	assert.Equal(t, cascade.CategoryLocal, d.Category)

	// removing the preview reverts to the prior tier
	batch.ResetEphemeral(f.st)
	d = f.res.Resolve("width", sel)
	assert.Equal(t, store.TierLocal, d.Source)
	assert.True(t, css.Equal(css.Px(2), d.CascadedValue))
}

func TestEphemeralWinsForAllProperties(t *testing.T) {
	f := newFixture(t)
	sel := []store.ID{f.a}
	for _, p := range f.res.Registry().Properties() {
		f.apply(t, store.TierLocal, f.a, p, css.KW("local"))
		f.apply(t, store.TierEphemeral, f.a, p, css.KW("preview"))
	}
	for _, p := range f.res.Registry().Properties() {
		d := f.res.Resolve(p, sel)
		if d.Source != store.TierEphemeral || !css.Equal(css.KW("preview"), d.CascadedValue) {
			t.Errorf("expected preview to win for %s, is %v from %s", p, d.CascadedValue, d.Source)
		}
	}
	batch.ResetEphemeral(f.st)
	for _, p := range f.res.Registry().Properties() {
		if d := f.res.Resolve(p, sel); d.Source != store.TierLocal {
			t.Errorf("expected %s to revert to local, is %s", p, d.Source)
		}
	}
}

func TestPreviewDeletion(t *testing.T) {
	f := newFixture(t)
	sel := []store.ID{f.a}
	f.apply(t, store.TierRemote, f.a, "opacity", css.Number(0.5))
	f.apply(t, store.TierLocal, f.a, "opacity", css.Number(0.8))
	require.NoError(t, batch.DeleteProperty(f.st, sel, "opacity", batch.Ephemeral()))
	d := f.res.Resolve("opacity", sel)
	assert.Equal(t, store.TierRemote, d.Source, "preview deletion unmasks the remote value")
	assert.True(t, css.Equal(css.Number(0.5), d.CascadedValue))
}

func TestInheritance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cascade")
	defer teardown()
	//
	f := newFixture(t)
	f.apply(t, store.TierLocal, f.body, "color", css.KW("red"))
	f.apply(t, store.TierLocal, f.body, "width", css.Px(100))

	d := f.res.Resolve("color", []store.ID{f.a})
	assert.Equal(t, store.TierRemote, d.Source, "inherited values count as remote")
	assert.True(t, css.Equal(css.KW("red"), d.CascadedValue))

	d = f.res.Resolve("width", []store.ID{f.a})
	assert.Equal(t, store.TierDefault, d.Source, "width is not inherited")

	f.apply(t, store.TierLocal, f.a, "width", css.KW("inherit"))
	d = f.res.Resolve("width", []store.ID{f.a})
	assert.Equal(t, store.TierLocal, d.Source)
	assert.True(t, css.Equal(css.Px(100), d.CascadedValue))

	f.apply(t, store.TierLocal, f.b, "color", css.KW("initial"))
	d = f.res.Resolve("color", []store.ID{f.b})
	assert.True(t, css.Equal(css.KW("black"), d.CascadedValue))
}

func TestDisplayDependsOnTag(t *testing.T) {
	f := newFixture(t)
	assert.True(t, css.Equal(css.KW("block"), f.res.Resolve("display", []store.ID{f.a}).CascadedValue))
	assert.True(t, css.Equal(css.KW("inline"), f.res.Resolve("display", []store.ID{f.b}).CascadedValue))
}

func TestUnknownPropertyResolvesToInitial(t *testing.T) {
	f := newFixture(t)
	d := f.res.Resolve("funny-margin", []store.ID{f.a})
	assert.Equal(t, store.TierDefault, d.Source)
	assert.True(t, css.Equal(css.KW("initial"), d.CascadedValue))
	d = f.res.Resolve("width", nil)
	assert.Equal(t, cascade.CategoryDefault, d.Category)
}

func TestAggregateClassification(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cascade")
	defer teardown()
	//
	f := newFixture(t)
	sel := []store.ID{f.a, f.b}
	assert.Equal(t, cascade.CategoryDefault, f.res.Resolve("height", sel).Category)

	f.apply(t, store.TierRemote, f.a, "height", css.Px(5))
	assert.Equal(t, cascade.CategoryOverwritten, f.res.Resolve("height", sel).Category, "mixed tiers")
	f.apply(t, store.TierRemote, f.b, "height", css.Px(5))
	assert.Equal(t, cascade.CategoryRemote, f.res.Resolve("height", sel).Category)

	f.apply(t, store.TierLocal, f.a, "height", css.Px(6))
	f.apply(t, store.TierLocal, f.b, "height", css.Px(7))
	d := f.res.Resolve("height", sel)
	assert.Equal(t, cascade.CategoryOverwritten, d.Category, "different values")
	assert.True(t, css.Equal(css.Px(6), d.CascadedValue), "renders the first instance's value")

	f.apply(t, store.TierLocal, f.b, "height", css.Px(6))
	assert.Equal(t, cascade.CategoryLocal, f.res.Resolve("height", sel).Category)
}

func TestPrioritySource(t *testing.T) {
	decls := []cascade.Decl{{Category: cascade.CategoryRemote}, {Category: cascade.CategoryDefault}}
	assert.Equal(t, cascade.CategoryRemote, cascade.PrioritySource(decls))
	decls = append(decls, cascade.Decl{Category: cascade.CategoryLocal})
	assert.Equal(t, cascade.CategoryLocal, cascade.PrioritySource(decls))
	decls = append(decls, cascade.Decl{Category: cascade.CategoryOverwritten})
	assert.Equal(t, cascade.CategoryOverwritten, cascade.PrioritySource(decls))
	assert.Equal(t, cascade.CategoryDefault, cascade.PrioritySource(nil))
}

func TestItemWrapsAround(t *testing.T) {
	d := cascade.Decl{CascadedValue: css.NewLayers(css.KW("a"), css.KW("b"))}
	assert.True(t, css.Equal(css.KW("a"), d.Item(0)))
	assert.True(t, css.Equal(css.KW("b"), d.Item(3)))
	assert.Nil(t, cascade.Decl{CascadedValue: css.KW("none")}.Item(0))
	assert.Nil(t, cascade.Decl{CascadedValue: css.NewLayers()}.Item(0))
}

func TestResolveGroupAndAll(t *testing.T) {
	f := newFixture(t)
	g, ok := f.res.Registry().Group("backgrounds")
	require.True(t, ok)
	decls := f.res.ResolveGroup(g, []store.ID{f.a})
	require.Len(t, decls, len(g.Properties))
	assert.Equal(t, "background-image", decls[0].Property)

	f.apply(t, store.TierLocal, f.a, "--brand", css.KW("x"))
	all := f.res.ResolveAll([]store.ID{f.a})
	found := false
	for _, d := range all {
		if d.Property == "--brand" {
			found = true
			assert.Equal(t, store.TierLocal, d.Source)
		}
	}
	assert.True(t, found, "custom properties declared for an instance are resolved, too")
	assert.Equal(t, len(f.res.Registry().Properties())+1, len(all))
}
