package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clausemark/clausemark/internal/doctree"
	"golang.org/x/net/html"
)

// ToHTML renders a document tree as an HTML fragment.
func ToHTML(doc *doctree.Node) (string, error) {
	var b strings.Builder
	nodes := doc.Children
	if doc.Kind != doctree.KindDocument {
		nodes = []*doctree.Node{doc}
	}
	for _, n := range nodes {
		if err := writeHTMLBlock(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeHTMLBlock(b *strings.Builder, n *doctree.Node) error {
	switch n.Kind {
	case doctree.KindParagraph:
		b.WriteString("<p>")
		if err := writeHTMLInlines(b, n.Children); err != nil {
			return err
		}
		b.WriteString("</p>\n")

	case doctree.KindHeading:
		level, err := strconv.Atoi(n.Level)
		if err != nil || level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(b, "<h%d>", level)
		if err := writeHTMLInlines(b, n.Children); err != nil {
			return err
		}
		fmt.Fprintf(b, "</h%d>\n", level)

	case doctree.KindList:
		tag := "ul"
		if n.ListType == doctree.ListOrdered {
			tag = "ol"
		}
		b.WriteString("<" + tag + ">\n")
		for _, item := range n.Children {
			b.WriteString("<li>")
			for _, c := range item.Children {
				if err := writeHTMLBlock(b, c); err != nil {
					return err
				}
			}
			b.WriteString("</li>\n")
		}
		b.WriteString("</" + tag + ">\n")

	case doctree.KindBlockQuote:
		b.WriteString("<blockquote>\n")
		for _, c := range n.Children {
			if err := writeHTMLBlock(b, c); err != nil {
				return err
			}
		}
		b.WriteString("</blockquote>\n")

	case doctree.KindCodeBlock:
		b.WriteString("<pre><code>")
		b.WriteString(html.EscapeString(n.Value))
		b.WriteString("</code></pre>\n")

	case doctree.KindHtmlBlock:
		b.WriteString(n.Value)

	case doctree.KindThematicBreak:
		b.WriteString("<hr/>\n")

	case doctree.KindClause:
		fmt.Fprintf(b, "<div class=\"clause\" data-src=%q data-clauseid=%q>\n", n.Src, n.ClauseID)
		for _, c := range n.Children {
			if err := writeHTMLBlock(b, c); err != nil {
				return err
			}
		}
		b.WriteString("</div>\n")

	case doctree.KindContract:
		b.WriteString("<div class=\"contract\">\n")
		for _, c := range n.Children {
			if err := writeHTMLBlock(b, c); err != nil {
				return err
			}
		}
		b.WriteString("</div>\n")

	default:
		return writeHTMLInlines(b, []*doctree.Node{n})
	}
	return nil
}

func writeHTMLInlines(b *strings.Builder, nodes []*doctree.Node) error {
	for _, n := range nodes {
		switch n.Kind {
		case doctree.KindText:
			b.WriteString(html.EscapeString(n.Value))
		case doctree.KindEmph:
			b.WriteString("<em>")
			if err := writeHTMLInlines(b, n.Children); err != nil {
				return err
			}
			b.WriteString("</em>")
		case doctree.KindStrong:
			b.WriteString("<strong>")
			if err := writeHTMLInlines(b, n.Children); err != nil {
				return err
			}
			b.WriteString("</strong>")
		case doctree.KindCode:
			b.WriteString("<code>" + html.EscapeString(n.Value) + "</code>")
		case doctree.KindHtmlInline:
			b.WriteString(n.Value)
		case doctree.KindLink:
			fmt.Fprintf(b, "<a href=%q>", n.Destination)
			if err := writeHTMLInlines(b, n.Children); err != nil {
				return err
			}
			b.WriteString("</a>")
		case doctree.KindImage:
			fmt.Fprintf(b, "<img src=%q/>", n.Destination)
		case doctree.KindLinebreak:
			b.WriteString("<br/>\n")
		case doctree.KindSoftbreak:
			b.WriteString("\n")
		case doctree.KindVariable, doctree.KindFormattedVariable, doctree.KindEnumVariable, doctree.KindFormula:
			b.WriteString(html.EscapeString(variableText(n)))
		case doctree.KindConditional:
			b.WriteString(html.EscapeString(firstText(n)))
		default:
			return &UnhandledNodeTypeError{Kind: n.Kind}
		}
	}
	return nil
}
