// Package transform walks document trees and produces new shapes: a styled
// render tree, canonical markdown text, plain text or HTML. Every
// transformation is a pure function of its input tree; inherited state
// (inline marks, contract scope) is passed down by value so it never leaks
// back to siblings.
package transform

import (
	"fmt"

	"github.com/clausemark/clausemark/internal/doctree"
)

// UnhandledNodeTypeError aborts a traversal when a node kind has no
// transformation rule. The whole call fails; no partial output is kept.
type UnhandledNodeTypeError struct {
	Kind doctree.Kind
}

func (e *UnhandledNodeTypeError) Error() string {
	return fmt.Sprintf("unhandled node type %q", e.Kind)
}

// Marks is the inline formatting state inherited during a traversal.
type Marks struct {
	Emph   bool
	Strong bool
	Code   bool
}

var headingStyles = map[string]string{
	"1": "heading_one",
	"2": "heading_two",
	"3": "heading_three",
	"4": "heading_four",
	"5": "heading_five",
	"6": "heading_six",
}

// HeadingStyle maps a heading level to its style name. Levels outside
// "1".."6" fall back to heading_one.
func HeadingStyle(level string) string {
	if s, ok := headingStyles[level]; ok {
		return s
	}
	return "heading_one"
}

// firstText descends into the first child only, recursively, until it
// reaches a Text leaf. It deliberately does not concatenate sibling runs:
// widening it would silently change round-trip output for multi-run
// headings and links.
func firstText(n *doctree.Node) string {
	if n.Kind == doctree.KindText {
		return n.Value
	}
	if len(n.Children) == 0 {
		return ""
	}
	return firstText(n.Children[0])
}

// variableText is the rendered text of a variable-family node: the raw
// stored value, unquoted when the element type is String or the variable
// is declared identifiedBy.
func variableText(n *doctree.Node) string {
	if n.ElementType == "String" || n.IdentifiedBy != "" {
		return unquote(n.Value)
	}
	return n.Value
}

// unquote strips one pair of outer matching quote characters.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
