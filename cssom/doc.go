/*
Package cssom imports CSS stylesheets into the remote tier of a
declaration store.

Overview

Instances of a project may be styled by presets shipped with a template or
a design system. Presets arrive as plain CSS. Importing a stylesheet
matches the selectors of its rules against the instance tree of a store,
resolves the CSS cascade between the matching rules and writes the winning
declarations as remote values. Values set by the user (the local tier)
are never touched and keep taking precedence.

Selector matching is done by https://godoc.org/github.com/andybalholm/cascadia
on a mirror of the instance tree. Instances match by element name and by
their class names. Rules with selectors cascadia cannot parse are skipped
and reported; selectors addressing pseudo-elements never match.

CSS handling is de-coupled by introducing interfaces StyleSheet and Rule.
A concrete implementation based on github.com/aymerick/douceur may be found
in sub-package douceuradapter.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'wstudio.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("wstudio.cssom")
}
