package cssom_test

import (
	"strings"
	"testing"

	"github.com/dotkaio/wstudio/cascade"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/cssom"
	"github.com/dotkaio/wstudio/cssom/douceuradapter"
	"github.com/dotkaio/wstudio/store"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var presets = `
div { width: 10px; color: red }
.card { width: 20px; margin: 1px 2px }
div.card { width: 30px; background-image: url(a.png), url(b.png) }
p { color: blue !important }
.card p { color: green }
a:no-such-state { color: pink }
@media print { div { width: 99px } }
`

type tree struct {
	st                   *store.Store
	body, card, p, plain store.ID
}

func newTree(t *testing.T) tree {
	st := store.New()
	body, err := st.AddInstance("", "body")
	require.NoError(t, err)
	card, _ := st.AddInstance(body, "div", "card")
	p, _ := st.AddInstance(card, "p")
	plain, _ := st.AddInstance(body, "div")
	return tree{st: st, body: body, card: card, p: p, plain: plain}
}

func (tr tree) remote(t *testing.T, id store.ID, property string) css.Value {
	t.Helper()
	v, ok := tr.st.Get(id, property, store.TierRemote)
	if !ok {
		t.Errorf("expected remote value for %s", property)
	}
	return v
}

func TestImport(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cssom")
	defer teardown()
	//
	tr := newTree(t)
	sheet, err := douceuradapter.Parse(presets)
	require.NoError(t, err)
	var changes int
	tr.st.Subscribe(func(store.Change) { changes++ })
	report, err := cssom.NewImporter(tr.st, nil).Import(sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, changes, "import is applied in one step")
	assert.Equal(t, 6, report.Rules, "@media rules are not imported")
	assert.Equal(t, 3, report.Instances)
	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0], "no-such-state")

	if v := tr.remote(t, tr.card, "width"); !css.Equal(css.Px(30), v) {
		t.Errorf("expected the more specific selector to win, is %v", v)
	}
	assert.True(t, css.Equal(css.KW("red"), tr.remote(t, tr.card, "color")))
	assert.True(t, css.Equal(css.Px(2), tr.remote(t, tr.card, "margin-left")))
	assert.True(t, css.Equal(css.NewLayers(css.URL("a.png"), css.URL("b.png")),
		tr.remote(t, tr.card, "background-image")))
	assert.True(t, css.Equal(css.Px(10), tr.remote(t, tr.plain, "width")))
	if v := tr.remote(t, tr.p, "color"); !css.Equal(css.KW("blue"), v) {
		t.Errorf("expected !important to beat specificity, is %v", v)
	}
	assert.Empty(t, tr.st.Properties(tr.body, store.TierRemote))
}

func TestImportedValuesYieldToLocal(t *testing.T) {
	tr := newTree(t)
	require.NoError(t, tr.st.ApplyBatch([]store.ID{tr.plain}, store.TierLocal,
		[]store.Op{{Property: "width", Value: css.Px(50)}}))
	sheet, err := douceuradapter.Parse(presets)
	require.NoError(t, err)
	_, err = cssom.NewImporter(tr.st, nil).Import(sheet)
	require.NoError(t, err)
	d := cascade.NewResolver(tr.st, nil).Resolve("width", []store.ID{tr.plain})
	assert.Equal(t, store.TierLocal, d.Source)
	assert.True(t, css.Equal(css.Px(50), d.CascadedValue))
	d = cascade.NewResolver(tr.st, nil).Resolve("width", []store.ID{tr.card})
	assert.Equal(t, cascade.CategoryRemote, d.Category)
}

func TestImportEmpty(t *testing.T) {
	tr := newTree(t)
	sheet, err := douceuradapter.Parse("")
	require.NoError(t, err)
	report, err := cssom.NewImporter(tr.st, nil).Import(sheet)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Rules)
	assert.Equal(t, uint64(0), tr.st.Version())
}

func TestInlineStyle(t *testing.T) {
	tr := newTree(t)
	sheet, err := douceuradapter.ParseInline("p", "padding: 4px; color: teal")
	require.NoError(t, err)
	_, err = cssom.NewImporter(tr.st, nil).Import(sheet)
	require.NoError(t, err)
	assert.True(t, css.Equal(css.Px(4), tr.remote(t, tr.p, "padding-bottom")))
	if v := tr.remote(t, tr.p, "color"); !css.Equal(css.KW("teal"), v) {
		t.Errorf("expected the unterminated last declaration to keep its value, is %#v", v)
	}
	for _, p := range tr.st.Properties(tr.p, store.TierRemote) {
		if v, _ := tr.st.Get(tr.p, p, store.TierRemote); v.Kind() == css.KindIntermediate {
			t.Errorf("expected no intermediate values to be imported, %s is %#v", p, v)
		}
	}
}

func TestExtractStyleElements(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><head>
<style>div { width: 1px }</style></head>
<body><p>x</p><style>p { color: red } p { width: 2px }</style></body></html>`))
	require.NoError(t, err)
	sheets := douceuradapter.ExtractStyleElements(doc)
	require.Len(t, sheets, 2)
	sheets[0].AppendRules(sheets[1])
	assert.Len(t, sheets[0].Rules(), 3)
	assert.False(t, sheets[0].Empty())
	assert.Equal(t, "p", strings.TrimSpace(sheets[0].Rules()[1].Selector()))
}

type rawRule struct {
	selector string
	decls    [][2]string
}

func (r rawRule) Selector() string { return r.selector }
func (r rawRule) Properties() []string {
	props := make([]string, len(r.decls))
	for i, d := range r.decls {
		props[i] = d[0]
	}
	return props
}
func (r rawRule) Value(key string) string {
	for _, d := range r.decls {
		if d[0] == key {
			return d[1]
		}
	}
	return ""
}
func (r rawRule) IsImportant(string) bool { return false }

type rawSheet []cssom.Rule

func (s rawSheet) AppendRules(cssom.StyleSheet) {}
func (s rawSheet) Empty() bool                 { return len(s) == 0 }
func (s rawSheet) Rules() []cssom.Rule         { return s }

func TestImportSkipsBlankValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wstudio.cssom")
	defer teardown()
	//
	tr := newTree(t)
	sheet := rawSheet{rawRule{selector: "p", decls: [][2]string{
		{"color", ""}, {"width", "  "}, {"height", "3px"},
	}}}
	report, err := cssom.NewImporter(tr.st, nil).Import(sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Declarations)
	assert.Equal(t, []string{"height"}, tr.st.Properties(tr.p, store.TierRemote))
}
