package css

import (
	"math"

	"github.com/npillmayer/tyse/core/dimen"
)

// big points per absolute CSS unit; CSS fixes 1in = 96px = 72pt.
var absoluteUnits = map[string]float64{
	"pt": 1,
	"px": 0.75,
	"pc": 12,
	"in": 72,
	"cm": 72 / 2.54,
	"mm": 72 / 25.4,
	"q":  72 / 101.6,
}

// Dimen converts an absolute length to design units. It returns false for
// relative lengths, angles, times and plain numbers.
func (v Unit) Dimen() (dimen.DU, bool) {
	pts, ok := absoluteUnits[v.Unit]
	if !ok {
		return 0, false
	}
	return dimen.DU(math.Round(v.Number * pts * float64(dimen.BP))), true
}

// ---------------------------------------------------------------------------

// Match returns a matcher for v. Use it like this:
//
//	var du dimen.DU
//	switch m := v.Match(); m {
//	case m.Just(&du):
//		…
//	}
func (v Unit) Match() *Matcher {
	return &Matcher{unit: v}
}

// Matcher matches unit values against classes of lengths.
type Matcher struct {
	unit Unit
}

// Just matches absolute lengths and stores the length in du, if non-nil.
func (m *Matcher) Just(du *dimen.DU) *Matcher {
	d, ok := m.unit.Dimen()
	if !ok {
		return nil
	}
	if du != nil {
		*du = d
	}
	return m
}
