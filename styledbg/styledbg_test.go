package styledbg

import (
	"strings"
	"testing"

	"github.com/dotkaio/wstudio/cascade"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/require"
)

func styledTree(t *testing.T) (*store.Store, store.ID) {
	st := store.New()
	body, err := st.AddInstance("", "body")
	require.NoError(t, err)
	div, _ := st.AddInstance(body, "div", "card")
	require.NoError(t, st.ApplyBatch([]store.ID{div}, store.TierLocal, []store.Op{
		{Property: "margin-top", Value: css.Px(4)},
		{Property: "background-image", Value: css.NewLayers(css.URL("a.png"))},
	}))
	require.NoError(t, st.ApplyBatch([]store.ID{body}, store.TierRemote, []store.Op{
		{Property: "color", Value: css.KW("navy")},
	}))
	return st, div
}

func TestPrint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cascade")
	defer teardown()
	//
	st, _ := styledTree(t)
	out := Print(cascade.NewResolver(st, nil), st)
	t.Logf("\n%s", out)
	for _, want := range []string{
		"body #", "div.card #",
		"Margins", "margin-top: 4px (local) = 3pt",
		`background-image: url("a.png") (local)`,
		"color: navy (remote)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, is\n%s", want, out)
		}
	}
	if strings.Contains(out, "width: auto") {
		t.Errorf("expected default values to be omitted")
	}
	out = Print(cascade.NewResolver(st, nil), st, "Margins")
	if strings.Contains(out, "background-image") {
		t.Errorf("expected output to be restricted to margins, is\n%s", out)
	}
}

func TestToGraphViz(t *testing.T) {
	st, _ := styledTree(t)
	var b strings.Builder
	require.NoError(t, ToGraphViz(cascade.NewResolver(st, nil), st, &b))
	out := b.String()
	if !strings.HasPrefix(out, "digraph g {") || !strings.HasSuffix(out, "}\n") {
		t.Errorf("expected a digraph, is\n%s", out)
	}
	for _, want := range []string{"node00001 -> node00002", "Backgrounds", "margin-top:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestDeclStringPoints(t *testing.T) {
	for _, tc := range []struct {
		v    css.Value
		want string
	}{
		{css.Px(4), "width: 4px (local) = 3pt"},
		{css.Unit{Number: 1, Unit: "in"}, "width: 1in (local) = 72pt"},
		{css.Unit{Number: 12, Unit: "pt"}, "width: 12pt (local)"},
		{css.Unit{Number: 2, Unit: "em"}, "width: 2em (local)"},
		{css.Px(0), "width: 0px (local)"},
		{css.KW("auto"), "width: auto (local)"},
	} {
		d := cascade.Decl{Property: "width", CascadedValue: tc.v, Source: store.TierLocal}
		if s := declString(d); s != tc.want {
			t.Errorf("expected %q, is %q", tc.want, s)
		}
	}
}
