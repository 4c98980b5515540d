package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Tokenize(src)
}

// Tokenize converts markdown source into a structural document tree.
// Fenced blocks whose info string opens a <clause …> tag become Clause
// nodes with the fence body tokenized recursively, so contract documents
// round-trip through their boundary markers.
func Tokenize(src []byte) (*doctree.Node, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	children, err := convertChildren(doc, src)
	if err != nil {
		return nil, err
	}
	return &doctree.Node{Kind: doctree.KindDocument, Children: children}, nil
}

func convertChildren(n ast.Node, src []byte) ([]*doctree.Node, error) {
	var out []*doctree.Node
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		// Text carries its line-break flags as trailing sibling nodes.
		if t, ok := c.(*ast.Text); ok {
			out = append(out, &doctree.Node{Kind: doctree.KindText, Value: string(t.Segment.Value(src))})
			switch {
			case t.HardLineBreak():
				out = append(out, &doctree.Node{Kind: doctree.KindLinebreak})
			case t.SoftLineBreak():
				out = append(out, &doctree.Node{Kind: doctree.KindSoftbreak})
			}
			continue
		}
		node, err := convertNode(c, src)
		if err != nil {
			return nil, err
		}
		if node != nil {
			out = append(out, node)
		}
	}
	return out, nil
}

func convertNode(n ast.Node, src []byte) (*doctree.Node, error) {
	switch node := n.(type) {
	case *ast.Heading:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{
			Kind:     doctree.KindHeading,
			Level:    strconv.Itoa(node.Level),
			Children: children,
		}, nil

	case *ast.Paragraph:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{Kind: doctree.KindParagraph, Children: children}, nil

	case *ast.TextBlock:
		// Tight list items wrap their text in a TextBlock.
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{Kind: doctree.KindParagraph, Children: children}, nil

	case *ast.List:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		listType := doctree.ListUnordered
		if node.IsOrdered() {
			listType = doctree.ListOrdered
		}
		return &doctree.Node{Kind: doctree.KindList, ListType: listType, Children: children}, nil

	case *ast.ListItem:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{Kind: doctree.KindListItem, Children: children}, nil

	case *ast.Blockquote:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{Kind: doctree.KindBlockQuote, Children: children}, nil

	case *ast.FencedCodeBlock:
		info := ""
		if node.Info != nil {
			info = string(node.Info.Segment.Value(src))
		}
		content := blockLines(node, src)
		if strings.HasPrefix(info, "<clause") {
			return convertClause(info, content)
		}
		return &doctree.Node{Kind: doctree.KindCodeBlock, Info: info, Value: content}, nil

	case *ast.CodeBlock:
		return &doctree.Node{Kind: doctree.KindCodeBlock, Value: blockLines(node, src)}, nil

	case *ast.HTMLBlock:
		content := blockLines(node, src)
		if node.HasClosure() {
			content += string(node.ClosureLine.Value(src))
		}
		return &doctree.Node{Kind: doctree.KindHtmlBlock, Value: content}, nil

	case *ast.ThematicBreak:
		return &doctree.Node{Kind: doctree.KindThematicBreak}, nil

	case *ast.Emphasis:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		kind := doctree.KindEmph
		if node.Level == 2 {
			kind = doctree.KindStrong
		}
		return &doctree.Node{Kind: kind, Children: children}, nil

	case *ast.CodeSpan:
		return &doctree.Node{Kind: doctree.KindCode, Value: string(node.Text(src))}, nil

	case *ast.Link:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{
			Kind:        doctree.KindLink,
			Destination: string(node.Destination),
			Children:    children,
		}, nil

	case *ast.Image:
		children, err := convertChildren(node, src)
		if err != nil {
			return nil, err
		}
		return &doctree.Node{
			Kind:        doctree.KindImage,
			Destination: string(node.Destination),
			Children:    children,
		}, nil

	case *ast.AutoLink:
		dest := string(node.URL(src))
		return &doctree.Node{
			Kind:        doctree.KindLink,
			Destination: dest,
			Children:    []*doctree.Node{{Kind: doctree.KindText, Value: string(node.Label(src))}},
		}, nil

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.Write(seg.Value(src))
		}
		return &doctree.Node{Kind: doctree.KindHtmlInline, Value: b.String()}, nil

	case *ast.String:
		return &doctree.Node{Kind: doctree.KindText, Value: string(node.Value)}, nil

	default:
		return nil, fmt.Errorf("markdown: unsupported node %s", n.Kind())
	}
}

// blockLines collects the raw source lines of a block node.
func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		b.Write(line.Value(src))
	}
	return b.String()
}

// convertClause turns a clause fence into a Clause node. The fence body is
// the clause's rendered markdown followed by the closing marker's leading
// newline, which is stripped before recursive tokenization.
func convertClause(info, content string) (*doctree.Node, error) {
	inner, err := Tokenize([]byte(strings.TrimSuffix(content, "\n")))
	if err != nil {
		return nil, err
	}
	return &doctree.Node{
		Kind:     doctree.KindClause,
		Src:      clauseAttr(info, "src"),
		ClauseID: clauseAttr(info, "clauseid"),
		Children: inner.Children,
	}, nil
}

// clauseAttr extracts a quoted attribute value from a clause info string.
func clauseAttr(info, key string) string {
	i := strings.Index(info, key+"=")
	if i < 0 {
		return ""
	}
	quoted, err := strconv.QuotedPrefix(info[i+len(key)+1:])
	if err != nil {
		return ""
	}
	v, err := strconv.Unquote(quoted)
	if err != nil {
		return ""
	}
	return v
}
