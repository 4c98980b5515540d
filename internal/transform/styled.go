package transform

import (
	"github.com/clausemark/clausemark/internal/doctree"
)

// Styled node kinds.
const (
	StyledDocument  = "document"
	StyledParagraph = "paragraph"
	StyledStack     = "stack"
	StyledRun       = "run"
	StyledHeading   = "heading"
	StyledList      = "list"
	StyledCode      = "code"
	StyledImage     = "image"
)

// paragraphSpacing is the fixed vertical margin attached to paragraphs,
// in twentieths of a point.
const paragraphSpacing = 120

// StyledNode is a node of the styled render tree consumed by backend
// renderers. Field names are part of the interop contract.
type StyledNode struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`

	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	CodeStyle bool `json:"code,omitempty"`

	Link  string `json:"link,omitempty"`
	Image string `json:"image,omitempty"`

	Style          string `json:"style,omitempty"`
	TOC            bool   `json:"toc,omitempty"`
	PageBreakAfter bool   `json:"pageBreakAfter,omitempty"`
	Ordered        bool   `json:"ordered,omitempty"`
	Spacing        int    `json:"spacing,omitempty"`

	Children []*StyledNode `json:"children,omitempty"`
}

// ToStyled transforms a document tree into the styled render tree.
func ToStyled(doc *doctree.Node) (*StyledNode, error) {
	out, err := visitStyled(doc, Marks{})
	if err != nil {
		return nil, err
	}
	if len(out) == 1 {
		return out[0], nil
	}
	return &StyledNode{Kind: StyledStack, Children: out}, nil
}

// visitStyled is the single dispatch point: one rule per node kind. Marks
// are received by value, so a rule that sets one for its children cannot
// leak it back to siblings.
func visitStyled(n *doctree.Node, m Marks) ([]*StyledNode, error) {
	switch n.Kind {
	case doctree.KindDocument:
		kids, err := visitStyledChildren(n, m)
		if err != nil {
			return nil, err
		}
		return one(&StyledNode{Kind: StyledDocument, Children: kids}), nil

	case doctree.KindText:
		return one(&StyledNode{
			Kind:      StyledRun,
			Text:      n.Value,
			Italic:    m.Emph,
			Bold:      m.Strong,
			CodeStyle: m.Code,
		}), nil

	case doctree.KindEmph:
		child := m
		child.Emph = true
		return visitStyledChildren(n, child)

	case doctree.KindStrong:
		child := m
		child.Strong = true
		return visitStyledChildren(n, child)

	case doctree.KindBlockQuote, doctree.KindListItem, doctree.KindClause, doctree.KindContract:
		return visitStyledChildren(n, m)

	case doctree.KindLink:
		return one(&StyledNode{Kind: StyledRun, Text: firstText(n), Link: n.Destination}), nil

	case doctree.KindImage:
		return one(&StyledNode{Kind: StyledImage, Image: n.Destination}), nil

	case doctree.KindParagraph:
		kids, err := visitStyledChildren(n, m)
		if err != nil {
			return nil, err
		}
		// Images cannot render inline in the target format: a paragraph
		// led by an image becomes a block stack instead of a text run.
		if len(kids) > 0 && kids[0].Kind == StyledImage {
			return one(&StyledNode{Kind: StyledStack, Children: kids}), nil
		}
		return one(&StyledNode{Kind: StyledParagraph, Spacing: paragraphSpacing, Children: kids}), nil

	case doctree.KindVariable, doctree.KindFormattedVariable, doctree.KindEnumVariable, doctree.KindFormula:
		return one(&StyledNode{Kind: StyledRun, Text: variableText(n)}), nil

	case doctree.KindConditional:
		// The first child is the already-resolved branch.
		return one(&StyledNode{Kind: StyledRun, Text: firstText(n)}), nil

	case doctree.KindHeading:
		return one(&StyledNode{
			Kind:  StyledHeading,
			Text:  "\n" + firstText(n) + "\n",
			Style: HeadingStyle(n.Level),
			TOC:   true,
		}), nil

	case doctree.KindThematicBreak:
		return one(&StyledNode{Kind: StyledParagraph, PageBreakAfter: true}), nil

	case doctree.KindLinebreak:
		return one(&StyledNode{Kind: StyledRun, Text: "\n"}), nil

	case doctree.KindSoftbreak:
		return one(&StyledNode{Kind: StyledRun, Text: " "}), nil

	case doctree.KindList:
		kids, err := visitStyledChildren(n, m)
		if err != nil {
			return nil, err
		}
		return one(&StyledNode{
			Kind:     StyledList,
			Ordered:  n.ListType == doctree.ListOrdered,
			Children: kids,
		}), nil

	case doctree.KindCode:
		return one(&StyledNode{Kind: StyledRun, Text: n.Value, CodeStyle: true}), nil

	case doctree.KindHtmlInline:
		return one(&StyledNode{Kind: StyledRun, Text: n.Value}), nil

	case doctree.KindCodeBlock, doctree.KindHtmlBlock:
		return one(&StyledNode{Kind: StyledCode, Text: n.Value}), nil

	default:
		return nil, &UnhandledNodeTypeError{Kind: n.Kind}
	}
}

func visitStyledChildren(n *doctree.Node, m Marks) ([]*StyledNode, error) {
	var out []*StyledNode
	for _, c := range n.Children {
		kids, err := visitStyled(c, m)
		if err != nil {
			return nil, err
		}
		out = append(out, kids...)
	}
	return out, nil
}

func one(n *StyledNode) []*StyledNode {
	return []*StyledNode{n}
}
