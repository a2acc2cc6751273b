package style

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// displayForTag returns the user-agent default `display` for an HTML element.
func displayForTag(tag string) string {
	a := atom.Lookup([]byte(strings.ToLower(tag)))
	switch a {
	case 0:
		tracer().Infof("unknown HTML element %q will be set to display: inline", tag)
		return "inline"
	case atom.Head, atom.Script, atom.Style, atom.Title, atom.Meta, atom.Link, atom.Template:
		return "none"
	case atom.Html, atom.Body, atom.Address, atom.Article, atom.Aside, atom.Blockquote,
		atom.Div, atom.Dl, atom.Fieldset, atom.Figure, atom.Footer, atom.Form,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header, atom.Hr,
		atom.Main, atom.Nav, atom.Ol, atom.P, atom.Pre, atom.Section, atom.Ul,
		atom.Figcaption, atom.Details, atom.Summary:
		return "block"
	case atom.Li:
		return "list-item"
	case atom.Table:
		return "table"
	case atom.Tr:
		return "table-row"
	case atom.Td, atom.Th:
		return "table-cell"
	case atom.Button, atom.Input, atom.Select, atom.Textarea, atom.Img, atom.Video:
		return "inline-block"
	}
	return "inline"
}
