package transform

import (
	"fmt"
	"strings"

	"github.com/clausemark/clausemark/internal/doctree"
)

// ToPlaintext renders a document tree as unformatted text: blocks
// separated by blank lines, inline marks dropped, variables resolved.
func ToPlaintext(doc *doctree.Node) (string, error) {
	var blocks []string
	nodes := doc.Children
	if doc.Kind != doctree.KindDocument && doc.Kind != doctree.KindContract && doc.Kind != doctree.KindClause {
		nodes = []*doctree.Node{doc}
	}
	for _, n := range nodes {
		s, err := plainBlock(n)
		if err != nil {
			return "", err
		}
		if s != "" {
			blocks = append(blocks, s)
		}
	}
	return strings.Join(blocks, "\n\n"), nil
}

func plainBlock(n *doctree.Node) (string, error) {
	switch n.Kind {
	case doctree.KindParagraph, doctree.KindHeading:
		return plainInline(n.Children)

	case doctree.KindList:
		var items []string
		for i, item := range n.Children {
			inner, err := ToPlaintext(&doctree.Node{Kind: doctree.KindClause, Children: item.Children})
			if err != nil {
				return "", err
			}
			if n.ListType == doctree.ListOrdered {
				items = append(items, fmt.Sprintf("%d. %s", i+1, inner))
			} else {
				items = append(items, "- "+inner)
			}
		}
		return strings.Join(items, "\n"), nil

	case doctree.KindBlockQuote, doctree.KindClause, doctree.KindContract:
		return ToPlaintext(&doctree.Node{Kind: doctree.KindClause, Children: n.Children})

	case doctree.KindCodeBlock, doctree.KindHtmlBlock:
		return strings.TrimRight(n.Value, "\n"), nil

	case doctree.KindThematicBreak:
		return "", nil

	default:
		return plainInline([]*doctree.Node{n})
	}
}

func plainInline(nodes []*doctree.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case doctree.KindText, doctree.KindCode, doctree.KindHtmlInline:
			b.WriteString(n.Value)
		case doctree.KindEmph, doctree.KindStrong, doctree.KindLink:
			inner, err := plainInline(n.Children)
			if err != nil {
				return "", err
			}
			b.WriteString(inner)
		case doctree.KindImage:
			// No inline representation.
		case doctree.KindLinebreak:
			b.WriteString("\n")
		case doctree.KindSoftbreak:
			b.WriteString(" ")
		case doctree.KindVariable, doctree.KindFormattedVariable, doctree.KindEnumVariable, doctree.KindFormula:
			b.WriteString(variableText(n))
		case doctree.KindConditional:
			b.WriteString(firstText(n))
		default:
			return "", &UnhandledNodeTypeError{Kind: n.Kind}
		}
	}
	return b.String(), nil
}
