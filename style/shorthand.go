package style

import (
	"fmt"

	"github.com/dotkaio/wstudio/css"
)

// ExpandShorthand splits up a shorthand property into its individual
// longhand components.
// Example:
//
//	ExpandShorthand("padding", "3px 5px")
//
// will return
//
//	padding-top    => 3px
//	padding-right  => 5px
//	padding-bottom => 3px
//	padding-left   => 5px
//
// Values of CSS-wide keywords like `inherit` are copied to every longhand.
// For properties which are not shorthands, ErrNotShorthand is returned.
func ExpandShorthand(property string, text string) ([]css.Declaration, error) {
	property = Normalize(property)
	var pre, suf string
	dirs := fourDirs
	switch property {
	case "margin", "padding":
		pre = property
	case "inset":
	case "border-color", "border-width", "border-style":
		pre, suf = "border", property[len("border-"):]
	case "border-radius":
		pre, suf, dirs = "border", "radius", fourCorners
	case "gap":
		return expandGap(text)
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotShorthand, property)
	}
	fields, err := shorthandFields(property, text)
	if err != nil {
		return nil, err
	}
	return expandCompound4(pre, suf, dirs, fields)
}

// CSS logic to distribute individual values from shorthands follows the
// usual 1-2-3-4 pattern: top, right, bottom, left.
func expandCompound4(pre string, suf string, dirs [4]string, fields []css.Value) ([]css.Declaration, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s, have %d", p(pre, suf, "*"), l)
	}
	var pick [4]int
	switch l {
	case 1:
		pick = [4]int{0, 0, 0, 0}
	case 2:
		pick = [4]int{0, 1, 0, 1}
	case 3:
		pick = [4]int{0, 1, 2, 1}
	case 4:
		pick = [4]int{0, 1, 2, 3}
	}
	r := make([]css.Declaration, 4)
	for i, dir := range dirs {
		r[i] = css.Declaration{Property: p(pre, suf, dir), Value: fields[pick[i]]}
	}
	return r, nil
}

func expandGap(text string) ([]css.Declaration, error) {
	fields, err := shorthandFields("gap", text)
	if err != nil {
		return nil, err
	}
	if len(fields) > 2 {
		return nil, fmt.Errorf("expecting 1-2 values for gap, have %d", len(fields))
	}
	col := fields[len(fields)-1]
	return []css.Declaration{
		{Property: "row-gap", Value: fields[0]},
		{Property: "column-gap", Value: col},
	}, nil
}

func shorthandFields(property, text string) ([]css.Value, error) {
	v := css.Parse(text)
	switch v.Kind() {
	case css.KindTuple:
		items, _ := css.Items(v)
		return items, nil
	case css.KindLayers, css.KindIntermediate:
		return nil, fmt.Errorf("invalid value for shorthand %s: %q", property, text)
	}
	return []css.Value{v}, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if prefix == "" {
		return tag
	}
	if suffix == "" {
		return prefix + "-" + tag
	}
	return prefix + "-" + tag + "-" + suffix
}
