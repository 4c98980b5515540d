package parser

import (
	"testing"

	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/clausemark/clausemark/internal/transform"
)

func TestTokenize_HeadingAndParagraph(t *testing.T) {
	tree, err := Tokenize([]byte("## Terms\n\nBody text."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Kind != doctree.KindDocument || len(tree.Children) != 2 {
		t.Fatalf("unexpected document shape: %+v", tree)
	}
	h := tree.Children[0]
	if h.Kind != doctree.KindHeading || h.Level != "2" {
		t.Errorf("unexpected heading: %+v", h)
	}
	if h.Children[0].Value != "Terms" {
		t.Errorf("unexpected heading text: %+v", h.Children[0])
	}
	p := tree.Children[1]
	if p.Kind != doctree.KindParagraph || p.Children[0].Value != "Body text." {
		t.Errorf("unexpected paragraph: %+v", p)
	}
}

func TestTokenize_InlineMarks(t *testing.T) {
	tree, err := Tokenize([]byte("a **b** *c* `d`"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kids := tree.Children[0].Children
	kinds := make([]doctree.Kind, len(kids))
	for i, k := range kids {
		kinds[i] = k.Kind
	}
	want := []doctree.Kind{
		doctree.KindText, doctree.KindStrong, doctree.KindText,
		doctree.KindEmph, doctree.KindText, doctree.KindCode,
	}
	if len(kinds) != len(want) {
		t.Fatalf("unexpected inline shape: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], kinds[i])
		}
	}
	if kids[5].Value != "d" {
		t.Errorf("unexpected code span: %+v", kids[5])
	}
}

func TestTokenize_Breaks(t *testing.T) {
	tree, err := Tokenize([]byte("a\\\nb\nc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kids := tree.Children[0].Children
	want := []doctree.Kind{
		doctree.KindText, doctree.KindLinebreak,
		doctree.KindText, doctree.KindSoftbreak,
		doctree.KindText,
	}
	if len(kids) != len(want) {
		t.Fatalf("unexpected shape: %+v", kids)
	}
	for i := range want {
		if kids[i].Kind != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], kids[i].Kind)
		}
	}
}

func TestTokenize_Lists(t *testing.T) {
	tree, err := Tokenize([]byte("1. first\n2. second"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := tree.Children[0]
	if list.Kind != doctree.KindList || list.ListType != doctree.ListOrdered {
		t.Fatalf("unexpected list: %+v", list)
	}
	if len(list.Children) != 2 {
		t.Fatalf("expected two items, got %d", len(list.Children))
	}
	item := list.Children[0]
	if item.Kind != doctree.KindListItem {
		t.Fatalf("unexpected item: %+v", item)
	}
	// Tight items come back as paragraphs so serialization is uniform.
	if item.Children[0].Kind != doctree.KindParagraph {
		t.Errorf("expected paragraph inside item, got %s", item.Children[0].Kind)
	}
}

func TestTokenize_CodeBlockKeepsInfo(t *testing.T) {
	tree, err := Tokenize([]byte("```go\nx := 1\n```"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cb := tree.Children[0]
	if cb.Kind != doctree.KindCodeBlock || cb.Info != "go" || cb.Value != "x := 1\n" {
		t.Errorf("unexpected code block: %+v", cb)
	}
}

func TestTokenize_ClauseFenceBecomesClause(t *testing.T) {
	src := doctree.ClauseOpening("templates/delivery.md", "c1") +
		"Deliver the **goods**." +
		doctree.ClauseClosing
	tree, err := Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clause := tree.Children[0]
	if clause.Kind != doctree.KindClause {
		t.Fatalf("expected clause node, got %+v", clause)
	}
	if clause.Src != "templates/delivery.md" || clause.ClauseID != "c1" {
		t.Errorf("unexpected clause identifiers: src=%q clauseid=%q", clause.Src, clause.ClauseID)
	}
	p := clause.Children[0]
	if p.Kind != doctree.KindParagraph {
		t.Fatalf("unexpected clause content: %+v", p)
	}
	if p.Children[1].Kind != doctree.KindStrong {
		t.Errorf("expected recursive tokenization of clause body: %+v", p.Children)
	}
}

func TestClauseAttr_QuotedValues(t *testing.T) {
	info := `<clause src="a \"b\".md" clauseid="c1">`
	if got := clauseAttr(info, "src"); got != `a "b".md` {
		t.Errorf("unexpected src: %q", got)
	}
	if got := clauseAttr(info, "clauseid"); got != "c1" {
		t.Errorf("unexpected clauseid: %q", got)
	}
	if got := clauseAttr(info, "missing"); got != "" {
		t.Errorf("expected empty value for absent key, got %q", got)
	}
}

func TestTokenize_MarkdownRoundTrip(t *testing.T) {
	canonical := []string{
		"# Title\n\nFirst paragraph with **bold** and *italic* and `code`.",
		"- item one\n- item two",
		"1. first\n2. second",
		"> quoted line",
		"```go\nx := 1\n```",
		"---",
		"[site](https://example.com) and ![alt](logo.png)",
		"line one\\\nline two",
		"soft\nwrap",
	}
	for _, src := range canonical {
		tree, err := Tokenize([]byte(src))
		if err != nil {
			t.Fatalf("%q: tokenize failed: %v", src, err)
		}
		out, err := transform.ToMarkdown(tree)
		if err != nil {
			t.Fatalf("%q: serialize failed: %v", src, err)
		}
		if out != src {
			t.Errorf("round trip diverged:\nin  %q\nout %q", src, out)
		}
	}
}

func TestTokenize_ClauseMarkerRoundTrip(t *testing.T) {
	contract := &doctree.Node{
		Kind: doctree.KindContract,
		Children: []*doctree.Node{
			{
				Kind:     doctree.KindClause,
				Src:      "templates/delivery.md",
				ClauseID: "c1",
				Children: []*doctree.Node{
					{Kind: doctree.KindParagraph, Children: []*doctree.Node{
						{Kind: doctree.KindText, Value: "Deliver the goods."},
					}},
				},
			},
		},
	}
	rendered, err := transform.ToMarkdown(contract)
	if err != nil {
		t.Fatalf("serialize failed: %v", err)
	}
	tree, err := Tokenize([]byte(rendered))
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	clause := tree.Children[0]
	if clause.Kind != doctree.KindClause || clause.Src != "templates/delivery.md" || clause.ClauseID != "c1" {
		t.Fatalf("clause identity lost in round trip: %+v", clause)
	}
	got := clause.Children[0].Children[0].Value
	if got != "Deliver the goods." {
		t.Errorf("clause content lost in round trip: %q", got)
	}
}

func TestForFile_SelectsByExtension(t *testing.T) {
	cases := []struct {
		filename string
		ok       bool
	}{
		{"contract.md", true},
		{"contract.txt", true},
		{"contract.html", true},
		{"contract.docx", true},
		{"contract.pdf", true},
		{"contract.csv", false},
		{"contract", false},
	}
	for _, c := range cases {
		_, err := ForFile(c.filename)
		if c.ok && err != nil {
			t.Errorf("%s: expected parser, got error: %v", c.filename, err)
		}
		if !c.ok && err == nil {
			t.Errorf("%s: expected error", c.filename)
		}
	}
}
