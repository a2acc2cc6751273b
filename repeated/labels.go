package repeated

import (
	"strings"

	"github.com/dotkaio/wstudio/css"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ShadowLabel describes a shadow layer for display in a layer list, e.g.
//
//	Outer Shadow: 0px 2px 5px 0px
//
// The color of the shadow is not part of the label but returned separately,
// with ok set if the layer has a color.
func ShadowLabel(layer css.Value) (label string, color colorful.Color, ok bool) {
	items := css.ItemsOfKind(layer, css.KindTuple)
	labels := make([]string, 0, len(items)+1)
	inset := false
	for _, item := range items {
		switch v := item.(type) {
		case css.Color:
			color, ok = colorful.Color{
				R: float64(v.R) / 255,
				G: float64(v.G) / 255,
				B: float64(v.B) / 255,
			}, true
			continue
		case css.Keyword:
			if v.Name == "inset" {
				inset = true
				continue
			}
			if c, isColor := namedColor(v.Name); isColor {
				color, ok = c, true
				continue
			}
		}
		labels = append(labels, item.String())
	}
	if inset {
		labels = append([]string{"Inner Shadow:"}, labels...)
	} else {
		labels = append([]string{"Outer Shadow:"}, labels...)
	}
	return strings.Join(labels, " "), color, ok
}

// basic CSS color keywords
var namedColors = map[string]string{
	"black":   "#000000",
	"silver":  "#c0c0c0",
	"gray":    "#808080",
	"grey":    "#808080",
	"white":   "#ffffff",
	"maroon":  "#800000",
	"red":     "#ff0000",
	"purple":  "#800080",
	"fuchsia": "#ff00ff",
	"green":   "#008000",
	"lime":    "#00ff00",
	"olive":   "#808000",
	"yellow":  "#ffff00",
	"navy":    "#000080",
	"blue":    "#0000ff",
	"teal":    "#008080",
	"aqua":    "#00ffff",
	"orange":  "#ffa500",
}

func namedColor(name string) (colorful.Color, bool) {
	hex, ok := namedColors[name]
	if !ok {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

var gradientNames = []string{
	"repeating-conic-gradient",
	"repeating-linear-gradient",
	"repeating-radial-gradient",
	"conic-gradient",
	"linear-gradient",
	"radial-gradient",
}

// BackgroundLabel describes a background-image layer for display in a
// layer list. Image assets are labeled with their name from assets (asset
// id → name), URLs with the URL, gradients with their PascalCase function
// name. Anything else is labeled "None".
func BackgroundLabel(layer css.Value, assets map[string]string) string {
	switch v := layer.(type) {
	case css.Image:
		if v.Source.IsAsset() {
			if name, ok := assets[v.Source.Asset]; ok {
				return name
			}
			return "None"
		}
		return v.Source.URL
	case css.Unparsed:
		for _, g := range gradientNames {
			if strings.Contains(v.Raw, g) {
				return pascalCase(g)
			}
		}
		return "Gradient"
	}
	return "None"
}

func pascalCase(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "")
}
