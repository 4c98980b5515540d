package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/clausemark/clausemark/internal/doctree"
)

// ToMarkdown serializes a document tree back to canonical markdown text.
// Serialization is the inverse of the markdown tokenizer for canonical
// documents: tokenize(ToMarkdown(t)) reproduces t and ToMarkdown of that
// tree reproduces the same bytes. Clauses inside a contract are bracketed
// with the shared boundary markers, so compiled template parsers accept
// exactly what this serializer emits.
func ToMarkdown(doc *doctree.Node) (string, error) {
	var b strings.Builder
	var err error
	switch doc.Kind {
	case doctree.KindDocument, doctree.KindClause:
		err = writeBlocks(&b, doc.Children, false)
	case doctree.KindContract:
		err = writeBlocks(&b, doc.Children, true)
	default:
		err = writeBlocks(&b, []*doctree.Node{doc}, false)
	}
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// writeBlocks joins block-level nodes with blank lines. Clause markers
// carry their own surrounding newlines, so marker-wrapped clauses join
// without the usual separator.
func writeBlocks(b *strings.Builder, nodes []*doctree.Node, withinContract bool) error {
	first := true
	prevMarked := false
	for _, n := range nodes {
		marked := withinContract && n.Kind == doctree.KindClause
		if !first && !prevMarked && !marked {
			b.WriteString("\n\n")
		}
		s, err := renderBlock(n, withinContract)
		if err != nil {
			return err
		}
		b.WriteString(s)
		first = false
		prevMarked = marked
	}
	return nil
}

func renderBlock(n *doctree.Node, withinContract bool) (string, error) {
	switch n.Kind {
	case doctree.KindParagraph:
		return renderInline(n.Children)

	case doctree.KindHeading:
		level, err := strconv.Atoi(n.Level)
		if err != nil || level < 1 || level > 6 {
			level = 1
		}
		inner, err := renderInline(n.Children)
		if err != nil {
			return "", err
		}
		return strings.Repeat("#", level) + " " + inner, nil

	case doctree.KindList:
		return renderList(n, withinContract)

	case doctree.KindBlockQuote:
		var inner strings.Builder
		if err := writeBlocks(&inner, n.Children, withinContract); err != nil {
			return "", err
		}
		return quoteLines(inner.String()), nil

	case doctree.KindCodeBlock:
		content := n.Value
		if !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		return "```" + n.Info + "\n" + content + "```", nil

	case doctree.KindHtmlBlock:
		return strings.TrimRight(n.Value, "\n"), nil

	case doctree.KindThematicBreak:
		return "---", nil

	case doctree.KindClause:
		var inner strings.Builder
		if err := writeBlocks(&inner, n.Children, false); err != nil {
			return "", err
		}
		if !withinContract {
			return inner.String(), nil
		}
		return doctree.ClauseOpening(n.Src, n.ClauseID) + inner.String() + doctree.ClauseClosing, nil

	case doctree.KindContract:
		var inner strings.Builder
		if err := writeBlocks(&inner, n.Children, true); err != nil {
			return "", err
		}
		return inner.String(), nil

	default:
		// Inline content hoisted to block position serializes as a run.
		return renderInline([]*doctree.Node{n})
	}
}

func renderList(n *doctree.Node, withinContract bool) (string, error) {
	ordered := n.ListType == doctree.ListOrdered
	var items []string
	for i, item := range n.Children {
		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", i+1)
		}
		var inner strings.Builder
		if err := writeBlocks(&inner, item.Children, withinContract); err != nil {
			return "", err
		}
		items = append(items, prefix+indentContinuation(inner.String(), len(prefix)))
	}
	return strings.Join(items, "\n"), nil
}

// indentContinuation indents every line after the first so nested blocks
// stay inside their list item.
func indentContinuation(s string, width int) string {
	lines := strings.Split(s, "\n")
	pad := strings.Repeat(" ", width)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func quoteLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

func renderInline(nodes []*doctree.Node) (string, error) {
	var b strings.Builder
	for _, n := range nodes {
		if err := writeInline(&b, n); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeInline(b *strings.Builder, n *doctree.Node) error {
	switch n.Kind {
	case doctree.KindText:
		b.WriteString(n.Value)

	case doctree.KindEmph:
		inner, err := renderInline(n.Children)
		if err != nil {
			return err
		}
		b.WriteString("*" + inner + "*")

	case doctree.KindStrong:
		inner, err := renderInline(n.Children)
		if err != nil {
			return err
		}
		b.WriteString("**" + inner + "**")

	case doctree.KindCode:
		b.WriteString("`" + n.Value + "`")

	case doctree.KindHtmlInline:
		b.WriteString(n.Value)

	case doctree.KindLink:
		inner, err := renderInline(n.Children)
		if err != nil {
			return err
		}
		b.WriteString("[" + inner + "](" + n.Destination + ")")

	case doctree.KindImage:
		inner, err := renderInline(n.Children)
		if err != nil {
			return err
		}
		b.WriteString("![" + inner + "](" + n.Destination + ")")

	case doctree.KindLinebreak:
		b.WriteString("\\\n")

	case doctree.KindSoftbreak:
		b.WriteString("\n")

	case doctree.KindVariable, doctree.KindFormattedVariable, doctree.KindEnumVariable, doctree.KindFormula:
		b.WriteString(variableText(n))

	case doctree.KindConditional:
		b.WriteString(firstText(n))

	default:
		return &UnhandledNodeTypeError{Kind: n.Kind}
	}
	return nil
}
