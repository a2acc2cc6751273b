package cssom

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/dotkaio/wstudio/css"
	"github.com/dotkaio/wstudio/store"
	"github.com/dotkaio/wstudio/style"
)

// Store is what the importer needs from a declaration store.
// *store.Store implements it.
type Store interface {
	View(func(store.Reader) error) error
	ApplyEach(store.Tier, map[store.ID][]store.Op) error
}

var _ Store = (*store.Store)(nil)

// Importer writes the declarations of stylesheets to the remote tier.
type Importer struct {
	st  Store
	reg *style.Registry
}

// NewImporter creates an importer for a store. If reg is nil, the default
// registry is used for parsing values.
func NewImporter(st Store, reg *style.Registry) *Importer {
	if reg == nil {
		reg = style.Default()
	}
	return &Importer{st: st, reg: reg}
}

// Report summarizes an import.
type Report struct {
	Rules        int      // qualified rules of the stylesheet
	Instances    int      // instances matched by at least one rule
	Declarations int      // declarations written
	Skipped      []string // selectors which could not be parsed
}

// candidate is a declaration competing in the cascade for an instance.
type candidate struct {
	important bool
	spec      cascadia.Specificity
	order     int // rule position
	decls     []css.Declaration
}

func (c candidate) less(other candidate) bool {
	if c.important != other.important {
		return other.important
	}
	if c.spec != other.spec {
		return c.spec.Less(other.spec)
	}
	return c.order < other.order
}

// Import matches the rules of sheet against the instance tree and writes
// the winning declarations of every matched instance to the remote tier,
// all in one step. Between rules, importance beats specificity, and
// specificity beats source order. Shorthand properties are expanded into
// their longhands.
func (im *Importer) Import(sheet StyleSheet) (Report, error) {
	var report Report
	if sheet == nil || sheet.Empty() {
		return report, nil
	}
	rules := sheet.Rules()
	report.Rules = len(rules)
	compiled := make([]selector, len(rules))
	valid := make([]bool, len(rules))
	for i, rule := range rules {
		sel, err := compile(rule.Selector())
		if err != nil {
			tracer().Infof("skipping rule %q: %v", rule.Selector(), err)
			report.Skipped = append(report.Skipped, rule.Selector())
			continue
		}
		compiled[i], valid[i] = sel, true
	}
	ops := make(map[store.ID][]store.Op)
	_ = im.st.View(func(r store.Reader) error {
		m := mirrorTree(r)
		for _, n := range m.order {
			var cands []candidate
			for i, rule := range rules {
				if !valid[i] {
					continue
				}
				spec, ok := compiled[i].match(n)
				if !ok {
					continue
				}
				for _, p := range rule.Properties() {
					decls := im.expand(p, rule.Value(p))
					if len(decls) == 0 {
						continue
					}
					cands = append(cands, candidate{
						important: rule.IsImportant(p),
						spec:      spec,
						order:     i,
						decls:     decls,
					})
				}
			}
			if len(cands) == 0 {
				continue
			}
			ops[m.ids[n]] = cascaded(cands)
			report.Instances++
			report.Declarations += len(ops[m.ids[n]])
		}
		return nil
	})
	if err := im.st.ApplyEach(store.TierRemote, ops); err != nil {
		return report, fmt.Errorf("importing stylesheet: %w", err)
	}
	tracer().Infof("imported %d declarations for %d instances", report.Declarations, report.Instances)
	return report, nil
}

// cascaded orders competing declarations from lowest to highest precedence
// and keeps the last value for every property.
func cascaded(cands []candidate) []store.Op {
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].less(cands[j])
	})
	index := make(map[string]int)
	var ops []store.Op
	for _, c := range cands {
		for _, d := range c.decls {
			if i, ok := index[d.Property]; ok {
				ops[i].Value = d.Value
				continue
			}
			index[d.Property] = len(ops)
			ops = append(ops, store.Op{Property: d.Property, Value: d.Value})
		}
	}
	return ops
}

// expand turns a declaration of a stylesheet into longhand declarations
// with parsed values.
func (im *Importer) expand(property, text string) []css.Declaration {
	property = style.Normalize(property)
	if strings.TrimSpace(text) == "" {
		tracer().Infof("skipping %s without value", property)
		return nil
	}
	decls, err := style.ExpandShorthand(property, text)
	if err == nil {
		return decls
	}
	if !errors.Is(err, style.ErrNotShorthand) {
		tracer().Infof("skipping %s: %v", property, err)
		return nil
	}
	if !im.reg.Has(property) {
		tracer().Debugf("importing property %s unknown to the registry", property)
	}
	v := im.reg.Parse(property, text)
	if v == nil || v.Kind() == css.KindIntermediate {
		return nil
	}
	return []css.Declaration{{Property: property, Value: v}}
}
