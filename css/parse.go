package css

import (
	"io"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Parse decomposes CSS value text into a Value. Top-level commas separate
// layers, whitespace separates tuple components. Parse never fails: text it
// cannot decompose is returned as Unparsed, and empty text is returned as an
// Intermediate value.
//
// Parse knows nothing about properties; shaping a value to a property's
// list kind is done by package style.
func Parse(text string) Value {
	text = strings.TrimSpace(text)
	if text == "" {
		return Intermediate{}
	}
	segments, err := tokenize(text)
	if err != nil {
		tracer().Debugf("css value %q not decomposable: %v", text, err)
		return Unparsed{Raw: text}
	}
	values := make([]Value, 0, len(segments))
	for _, seg := range segments {
		if len(seg) == 0 { // dangling comma
			return Unparsed{Raw: text}
		}
		values = append(values, segmentValue(seg))
	}
	if len(values) == 1 {
		return values[0]
	}
	return Layers{Items: values}
}

// component is a whitespace-delimited part of a value, e.g. `2px` or `rgba(0, 0, 0, 0.2)`.
type component struct {
	first css.TokenType
	name  string // function name for function components
	count int    // number of tokens
	raw   strings.Builder
	args  []token
}

type token struct {
	tt   css.TokenType
	data string
}

type segment []*component

func tokenize(text string) ([]segment, error) {
	lexer := css.NewLexer(parse.NewInputString(text))
	segments := []segment{{}}
	var current *component
	depth := 0
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return nil, err
			}
			break
		}
		s := string(data)
		if depth == 0 {
			switch tt {
			case css.WhitespaceToken, css.CommentToken:
				current = nil
				continue
			case css.CommaToken:
				segments = append(segments, segment{})
				current = nil
				continue
			}
		}
		if current == nil {
			current = &component{first: tt}
			if tt == css.FunctionToken {
				current.name = strings.ToLower(strings.TrimSuffix(s, "("))
			}
			last := len(segments) - 1
			segments[last] = append(segments[last], current)
		} else if depth > 0 && tt != css.WhitespaceToken && tt != css.CommaToken {
			current.args = append(current.args, token{tt: tt, data: s})
		}
		current.raw.WriteString(s)
		current.count++
		switch tt {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		}
	}
	return segments, nil
}

func segmentValue(seg segment) Value {
	if len(seg) == 1 {
		return componentValue(seg[0])
	}
	items := make([]Value, len(seg))
	for i, c := range seg {
		items[i] = componentValue(c)
	}
	return Tuple{Items: items}
}

func componentValue(c *component) Value {
	raw := c.raw.String()
	if c.first == css.FunctionToken {
		switch c.name {
		case "rgb", "rgba":
			if col, ok := rgbFunction(c.args); ok {
				return col
			}
		case "url":
			if len(c.args) > 0 && c.args[0].tt == css.StringToken {
				if target := unquote(c.args[0].data); target != "" {
					return URL(target)
				}
			}
		}
		return Unparsed{Raw: raw}
	}
	if c.count > 1 {
		return Unparsed{Raw: raw}
	}
	switch c.first {
	case css.IdentToken:
		return Keyword{Name: strings.ToLower(raw)}
	case css.NumberToken:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return Number(n)
		}
	case css.PercentageToken:
		if n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64); err == nil {
			return Unit{Number: n, Unit: "%"}
		}
	case css.DimensionToken:
		if u, ok := dimension(raw); ok {
			return u
		}
	case css.HashToken:
		if col, ok := hexColor(raw); ok {
			return col
		}
	case css.URLToken:
		if target := urlTokenTarget(raw); target != "" {
			return URL(target)
		}
	}
	return Unparsed{Raw: raw}
}

// dimension splits a dimension token like `-1.5em` into number and unit.
func dimension(raw string) (Unit, bool) {
	i := 0
	for i < len(raw) {
		ch := raw[i]
		if (ch >= '0' && ch <= '9') || ch == '.' || ch == '+' || ch == '-' {
			i++
			continue
		}
		if (ch == 'e' || ch == 'E') && i+1 < len(raw) && (raw[i+1] >= '0' && raw[i+1] <= '9') {
			i++
			continue
		}
		break
	}
	if i == 0 || i == len(raw) {
		return Unit{}, false
	}
	n, err := strconv.ParseFloat(raw[:i], 64)
	if err != nil {
		return Unit{}, false
	}
	return Unit{Number: n, Unit: strings.ToLower(raw[i:])}, true
}

// hexColor parses #rgb, #rgba, #rrggbb and #rrggbbaa.
func hexColor(raw string) (Color, bool) {
	hex := strings.TrimPrefix(raw, "#")
	alpha := 1.0
	switch len(hex) {
	case 4:
		a, err := strconv.ParseUint(strings.Repeat(hex[3:], 2), 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha, hex = float64(a)/255, hex[:3]
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return Color{}, false
		}
		alpha, hex = float64(a)/255, hex[:6]
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, false
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b, Alpha: roundAlpha(alpha)}, true
}

// rgbFunction interprets the arguments of rgb() and rgba(), in comma- as
// well as in space-separated syntax.
func rgbFunction(args []token) (Color, bool) {
	var nums []float64
	var percent []bool
	for _, a := range args {
		switch a.tt {
		case css.NumberToken:
			n, err := strconv.ParseFloat(a.data, 64)
			if err != nil {
				return Color{}, false
			}
			nums, percent = append(nums, n), append(percent, false)
		case css.PercentageToken:
			n, err := strconv.ParseFloat(strings.TrimSuffix(a.data, "%"), 64)
			if err != nil {
				return Color{}, false
			}
			nums, percent = append(nums, n), append(percent, true)
		case css.DelimToken: // '/' before alpha
		case css.RightParenthesisToken:
		default:
			return Color{}, false
		}
	}
	if len(nums) < 3 || len(nums) > 4 {
		return Color{}, false
	}
	channel := func(i int) uint8 {
		n := nums[i]
		if percent[i] {
			n = n * 255 / 100
		}
		return uint8(clamp(n, 0, 255) + 0.5)
	}
	col := Color{R: channel(0), G: channel(1), B: channel(2), Alpha: 1}
	if len(nums) == 4 {
		a := nums[3]
		if percent[3] {
			a /= 100
		}
		col.Alpha = roundAlpha(clamp(a, 0, 1))
	}
	return col, true
}

func urlTokenTarget(raw string) string {
	s := strings.TrimSpace(raw)
	s = s[strings.IndexByte(s, '(')+1:]
	s = strings.TrimSuffix(s, ")")
	return unquote(strings.TrimSpace(s))
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func roundAlpha(a float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(a, 'f', 3, 64), 64)
	return r
}
