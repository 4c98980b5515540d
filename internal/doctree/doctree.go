package doctree

// Kind discriminates document node records. The string values are the
// interop contract with external renderers and editors and must not change.
type Kind string

const (
	KindDocument      Kind = "Document"
	KindParagraph     Kind = "Paragraph"
	KindHeading       Kind = "Heading"
	KindList          Kind = "List"
	KindListItem      Kind = "ListItem"
	KindBlockQuote    Kind = "BlockQuote"
	KindCodeBlock     Kind = "CodeBlock"
	KindCode          Kind = "Code"
	KindHtmlInline    Kind = "HtmlInline"
	KindHtmlBlock     Kind = "HtmlBlock"
	KindThematicBreak Kind = "ThematicBreak"
	KindLinebreak     Kind = "Linebreak"
	KindSoftbreak     Kind = "Softbreak"
	KindLink          Kind = "Link"
	KindImage         Kind = "Image"
	KindText          Kind = "Text"
	KindEmph          Kind = "Emph"
	KindStrong        Kind = "Strong"
	KindClause        Kind = "Clause"
	KindContract      Kind = "Contract"
	KindConditional   Kind = "ConditionalBlock"

	KindVariable          Kind = "Variable"
	KindFormattedVariable Kind = "FormattedVariable"
	KindEnumVariable      Kind = "EnumVariable"
	KindFormula           Kind = "Formula"
)

// Node is one node of the structural document tree. Which fields are
// meaningful depends on Kind; unused fields stay at their zero value and
// are omitted from JSON. Children order is significant: it drives both
// rendering order and parse order.
type Node struct {
	Kind Kind `json:"kind"`

	// Text / Code / HtmlInline / HtmlBlock / CodeBlock literal content.
	Value string `json:"value,omitempty"`

	// Heading level, "1".."6".
	Level string `json:"level,omitempty"`

	// CodeBlock info string (fence language).
	Info string `json:"info,omitempty"`

	// Link / Image target.
	Destination string `json:"destination,omitempty"`

	// List ordering, "ordered" or "unordered".
	ListType string `json:"listType,omitempty"`

	// Variable family.
	Name         string `json:"name,omitempty"`
	Type         string `json:"type,omitempty"`
	ElementType  string `json:"elementType,omitempty"`
	IdentifiedBy string `json:"identifiedBy,omitempty"`

	// ConditionalBlock literals.
	WhenTrue  string `json:"whenTrue,omitempty"`
	WhenFalse string `json:"whenFalse,omitempty"`

	// Clause identifiers (used for boundary markers inside a Contract).
	Src      string `json:"src,omitempty"`
	ClauseID string `json:"clauseid,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

const (
	ListOrdered   = "ordered"
	ListUnordered = "unordered"
)

// IsVariable reports whether the node belongs to the variable family.
func (n *Node) IsVariable() bool {
	switch n.Kind {
	case KindVariable, KindFormattedVariable, KindEnumVariable, KindFormula:
		return true
	}
	return false
}
