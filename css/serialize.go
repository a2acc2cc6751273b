package css

import (
	"strconv"
	"strings"
)

func (v Keyword) String() string {
	return v.Name
}

func (v Unit) String() string {
	n := formatNumber(v.Number)
	if v.Unit == "number" || v.Unit == "" {
		return n
	}
	return n + v.Unit
}

func (v Color) String() string {
	if v.Alpha >= 1 {
		return "rgb(" + strconv.Itoa(int(v.R)) + ", " + strconv.Itoa(int(v.G)) + ", " +
			strconv.Itoa(int(v.B)) + ")"
	}
	return "rgba(" + strconv.Itoa(int(v.R)) + ", " + strconv.Itoa(int(v.G)) + ", " +
		strconv.Itoa(int(v.B)) + ", " + formatNumber(v.Alpha) + ")"
}

// String renders an image reference. Assets are rendered with a symbolic
// `asset:` scheme, as resolving them to URLs is the asset manager's job.
func (v Image) String() string {
	if v.Source.IsAsset() {
		return `url("asset:` + escapeDoubleQuoted(v.Source.Asset) + `")`
	}
	return `url("` + escapeDoubleQuoted(v.Source.URL) + `")`
}

func (v Unparsed) String() string {
	return v.Raw
}

func (v Intermediate) String() string {
	return v.Text + v.Unit
}

// String joins the tuple components with spaces. Hidden components are skipped.
func (v Tuple) String() string {
	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.IsHidden() {
			continue
		}
		parts = append(parts, item.String())
	}
	return strings.Join(parts, " ")
}

// String joins the visible layers with commas. A stack without visible
// layers is rendered as `none`.
func (v Layers) String() string {
	parts := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		if item.IsHidden() {
			continue
		}
		parts = append(parts, item.String())
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// ToValue returns the CSS text of v; nil is rendered as the empty string.
func ToValue(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// escapeDoubleQuoted escapes a string for use inside CSS double quotes.
func escapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// --- Equality --------------------------------------------------------------

// Equal compares two values structurally, including hidden flags.
// Two nil values are equal.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || a.IsHidden() != b.IsHidden() {
		return false
	}
	switch x := a.(type) {
	case Keyword:
		return x.Name == b.(Keyword).Name
	case Unit:
		y := b.(Unit)
		return x.Number == y.Number && x.Unit == y.Unit
	case Color:
		y := b.(Color)
		return x.R == y.R && x.G == y.G && x.B == y.B && x.Alpha == y.Alpha
	case Image:
		return x.Source == b.(Image).Source
	case Unparsed:
		return x.Raw == b.(Unparsed).Raw
	case Intermediate:
		y := b.(Intermediate)
		return x.Text == y.Text && x.Unit == y.Unit
	case Tuple:
		return equalItems(x.Items, b.(Tuple).Items)
	case Layers:
		return equalItems(x.Items, b.(Layers).Items)
	}
	return false
}

func equalItems(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
