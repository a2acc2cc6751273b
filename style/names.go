package style

import "strings"

// Normalize converts a property name to kebab-case, e.g.
//
//	Normalize("backgroundImage")  => "background-image"
//	Normalize("WebkitBoxShadow")  => "-webkit-box-shadow"
//
// Kebab-case names and custom properties (`--foo`) are returned unchanged.
func Normalize(name string) string {
	if strings.HasPrefix(name, "--") {
		return name
	}
	hasUpper := false
	for i := 0; i < len(name); i++ {
		if name[i] >= 'A' && name[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			b.WriteByte('-')
			b.WriteByte(ch + ('a' - 'A'))
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
