/*
Package styledbg implements helpers to debug the styles of an instance tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledbg

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"github.com/dotkaio/wstudio/cascade"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/npillmayer/tyse/core/dimen"
	tp "github.com/xlab/treeprint"
)

// snapshot is a copy of the instance tree, taken in a single view.
type snapshot struct {
	roots     []store.ID
	instances map[store.ID]store.Instance
}

func takeSnapshot(st cascade.Store) snapshot {
	snap := snapshot{instances: make(map[store.ID]store.Instance)}
	_ = st.View(func(r store.Reader) error {
		snap.roots = r.Roots()
		var walk func(store.ID)
		walk = func(id store.ID) {
			inst, ok := r.Instance(id)
			if !ok {
				return
			}
			snap.instances[id] = inst
			for _, ch := range inst.Children {
				walk(ch)
			}
		}
		for _, id := range snap.roots {
			walk(id)
		}
		return nil
	})
	return snap
}

// styles resolves the declarations of an instance which do not stem from
// the defaults, grouped by category.
func styles(res *cascade.Resolver, id store.ID, categories []string) map[string][]cascade.Decl {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}
	groups := make(map[string][]cascade.Decl)
	for _, d := range res.ResolveAll([]store.ID{id}) {
		if d.Source == store.TierDefault {
			continue
		}
		cat := res.Registry().Category(d.Property)
		if len(wanted) > 0 && !wanted[cat] {
			continue
		}
		groups[cat] = append(groups[cat], d)
	}
	return groups
}

func sortedKeys(m map[string][]cascade.Decl) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func label(inst store.Instance) string {
	var b strings.Builder
	b.WriteString(inst.Tag)
	for _, c := range inst.Classes {
		b.WriteString(".")
		b.WriteString(c)
	}
	id := string(inst.ID)
	if len(id) > 8 {
		id = id[:8]
	}
	b.WriteString(" #")
	b.WriteString(id)
	return b.String()
}

func declString(d cascade.Decl) string {
	s := fmt.Sprintf("%s: %s (%s)", d.Property, css.ToValue(d.CascadedValue), d.Source)
	return s + points(d.CascadedValue)
}

// points annotates absolute lengths not given in pt with their size in
// points.
func points(v css.Value) string {
	u, ok := v.(css.Unit)
	if !ok || u.Unit == "pt" || u.Number == 0 {
		return ""
	}
	var du dimen.DU
	switch m := u.Match(); m {
	case m.Just(&du):
		return fmt.Sprintf(" = %.4gpt", du.Points())
	}
	return ""
}

// Print renders the instance tree of a store as a tree, listing the
// non-default styles of every instance grouped by category. If categories
// are given, only styles of these categories are listed.
func Print(res *cascade.Resolver, st cascade.Store, categories ...string) string {
	snap := takeSnapshot(st)
	p := tp.New()
	for _, id := range snap.roots {
		printInstance(p, res, snap, id, categories)
	}
	return p.String()
}

func printInstance(p tp.Tree, res *cascade.Resolver, snap snapshot, id store.ID, categories []string) {
	inst, ok := snap.instances[id]
	if !ok {
		return
	}
	branch := p.AddBranch(label(inst))
	groups := styles(res, id, categories)
	for _, cat := range sortedKeys(groups) {
		cb := branch.AddMetaBranch("style", cat)
		for _, d := range groups[cat] {
			cb.AddNode(declString(d))
		}
	}
	for _, ch := range inst.Children {
		printInstance(branch, res, snap, ch, categories)
	}
}

// --- GraphViz --------------------------------------------------------------

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname       string
	NodeTmpl       *template.Template
	EdgeTmpl       *template.Template
	StylegroupTmpl *template.Template
	PgedgeTmpl     *template.Template
}

type gvNode struct {
	Name  string
	Label string
}

type gvGroup struct {
	Name       string
	Category   string
	Properties []cascade.Decl
}

// ToGraphViz outputs a diagram for the instance tree of a store. The
// diagram is in GraphViz (DOT) format. It includes the non-default styles
// of every instance, restricted to categories if any are given.
func ToGraphViz(res *cascade.Resolver, st cascade.Store, w io.Writer, categories ...string) error {
	snap := takeSnapshot(st)
	gparams := graphParamsType{Fontname: "Helvetica"}
	gparams.NodeTmpl = template.Must(template.New("instance").Parse(instanceNodeTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(instanceEdgeTmpl))
	gparams.StylegroupTmpl = template.Must(template.New("stylegroup").Funcs(
		template.FuncMap{"value": css.ToValue}).Parse(styleGroupTmpl))
	gparams.PgedgeTmpl = template.Must(template.New("pgedge").Parse(pgEdgeTmpl))
	head := template.Must(template.New("graph").Parse(graphHeadTmpl))
	if err := head.Execute(w, gparams); err != nil {
		return err
	}
	dict := make(map[store.ID]string, len(snap.instances))
	for _, id := range snap.roots {
		if err := instances(res, snap, id, w, dict, &gparams, categories); err != nil {
			return err
		}
	}
	_, err := w.Write([]byte("}\n"))
	return err
}

func instances(res *cascade.Resolver, snap snapshot, id store.ID, w io.Writer,
	dict map[store.ID]string, gparams *graphParamsType, categories []string) error {
	//
	inst, ok := snap.instances[id]
	if !ok {
		return nil
	}
	name := fmt.Sprintf("node%05d", len(dict)+1)
	dict[id] = name
	if err := gparams.NodeTmpl.Execute(w, gvNode{Name: name, Label: label(inst)}); err != nil {
		return err
	}
	groups := styles(res, id, categories)
	for i, cat := range sortedKeys(groups) {
		pg := gvGroup{Name: fmt.Sprintf("%s_pg%d", name, i), Category: cat, Properties: groups[cat]}
		if err := gparams.StylegroupTmpl.Execute(w, pg); err != nil {
			return err
		}
		if err := gparams.PgedgeTmpl.Execute(w, []string{name, pg.Name}); err != nil {
			return err
		}
	}
	for _, ch := range inst.Children {
		if err := instances(res, snap, ch, w, dict, gparams, categories); err != nil {
			return err
		}
		if err := gparams.EdgeTmpl.Execute(w, []string{name, dict[ch]}); err != nil {
			return err
		}
	}
	return nil
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const instanceNodeTmpl = `{{ .Name }}	[ label={{ printf "%q" .Label }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
`

const styleGroupTmpl = `{{ .Name }} [ style="filled" penwidth=1 fillcolor="ivory3" shape="Mrecord" fontsize=12
    label=<<table border="0" cellborder="0" cellpadding="2" cellspacing="0" bgcolor="ivory3">
      <tr><td bgcolor="azure4" align="center" colspan="2"><font color="white">{{ .Category }}</font></td></tr>
      {{ range .Properties }}
      <tr><td align="right">{{ .Property }}:</td><td>{{ value .CascadedValue }}</td></tr>
      {{ end }}
    </table>> ] ;
`

const instanceEdgeTmpl = `{{ index . 0 }} -> {{ index . 1 }} [weight=1] ;
`

const pgEdgeTmpl = `{{ index . 0 }} -> {{ index . 1 }} [dir=none weight=1 style="dashed"] ;
`
