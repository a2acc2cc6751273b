package cssom

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/dotkaio/wstudio/store"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// mirror is an HTML element tree standing in for the instance tree of a
// store, for use with cascadia's selector matching.
type mirror struct {
	doc   *html.Node
	ids   map[*html.Node]store.ID
	order []*html.Node // elements in document order
}

func mirrorTree(r store.Reader) *mirror {
	m := &mirror{
		doc: &html.Node{Type: html.DocumentNode},
		ids: make(map[*html.Node]store.ID),
	}
	for _, id := range r.Roots() {
		m.add(r, m.doc, id)
	}
	return m
}

func (m *mirror) add(r store.Reader, parent *html.Node, id store.ID) {
	inst, ok := r.Instance(id)
	if !ok {
		return
	}
	tag := strings.ToLower(inst.Tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(inst.Classes) > 0 {
		n.Attr = []html.Attribute{{Key: "class", Val: strings.Join(inst.Classes, " ")}}
	}
	parent.AppendChild(n)
	m.ids[n] = id
	m.order = append(m.order, n)
	for _, ch := range inst.Children {
		m.add(r, n, ch)
	}
}

// selector is a parsed rule prelude.
type selector struct {
	group cascadia.SelectorGroup
}

func compile(prelude string) (selector, error) {
	g, err := cascadia.ParseGroup(prelude)
	if err != nil {
		return selector{}, err
	}
	return selector{group: g}, nil
}

// match returns the highest specificity of the selectors in the group
// matching n. Selectors addressing pseudo-elements never match instances.
func (sel selector) match(n *html.Node) (cascadia.Specificity, bool) {
	var spec cascadia.Specificity
	matched := false
	for _, s := range sel.group {
		if s.PseudoElement() != "" || !s.Match(n) {
			continue
		}
		if sp := s.Specificity(); !matched || spec.Less(sp) {
			spec = sp
		}
		matched = true
	}
	return spec, matched
}
