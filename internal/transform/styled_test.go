package transform

import (
	"errors"
	"testing"

	"github.com/clausemark/clausemark/internal/doctree"
)

func textNode(v string) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindText, Value: v}
}

func doc(children ...*doctree.Node) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindDocument, Children: children}
}

func para(children ...*doctree.Node) *doctree.Node {
	return &doctree.Node{Kind: doctree.KindParagraph, Children: children}
}

func TestToStyled_TextInheritsNestedMarks(t *testing.T) {
	d := doc(para(
		&doctree.Node{Kind: doctree.KindStrong, Children: []*doctree.Node{
			{Kind: doctree.KindEmph, Children: []*doctree.Node{textNode("both")}},
		}},
	))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run := out.Children[0].Children[0]
	if run.Kind != StyledRun || run.Text != "both" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if !run.Bold || !run.Italic {
		t.Errorf("expected bold and italic set, got %+v", run)
	}
	if run.CodeStyle {
		t.Errorf("code style must stay unset, got %+v", run)
	}
}

func TestToStyled_MarksDoNotLeakToSiblings(t *testing.T) {
	d := doc(para(
		&doctree.Node{Kind: doctree.KindEmph, Children: []*doctree.Node{textNode("em")}},
		textNode("plain"),
	))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	runs := out.Children[0].Children
	if !runs[0].Italic {
		t.Errorf("expected first run italic, got %+v", runs[0])
	}
	if runs[1].Italic {
		t.Errorf("mark leaked to sibling: %+v", runs[1])
	}
}

func TestToStyled_HeadingStyleAndTOC(t *testing.T) {
	d := doc(&doctree.Node{
		Kind:     doctree.KindHeading,
		Level:    "3",
		Children: []*doctree.Node{textNode("Terms")},
	})
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := out.Children[0]
	if h.Kind != StyledHeading || h.Style != "heading_three" {
		t.Errorf("unexpected heading: %+v", h)
	}
	if h.Text != "\nTerms\n" {
		t.Errorf("expected newline-padded text, got %q", h.Text)
	}
	if !h.TOC {
		t.Error("expected heading marked for table of contents")
	}
}

func TestHeadingStyle_OutOfRangeFallsBack(t *testing.T) {
	for _, level := range []string{"9", "0", ""} {
		if got := HeadingStyle(level); got != "heading_one" {
			t.Errorf("level %q: expected heading_one, got %q", level, got)
		}
	}
}

func TestToStyled_ImageLedParagraphBecomesStack(t *testing.T) {
	d := doc(para(
		&doctree.Node{Kind: doctree.KindImage, Destination: "logo.png"},
		textNode(" caption"),
	))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := out.Children[0]
	if block.Kind != StyledStack {
		t.Fatalf("expected stack, got %q", block.Kind)
	}
	if block.Children[0].Kind != StyledImage || block.Children[0].Image != "logo.png" {
		t.Errorf("unexpected image child: %+v", block.Children[0])
	}
}

func TestToStyled_TextLedParagraphStaysParagraph(t *testing.T) {
	d := doc(para(
		textNode("see "),
		&doctree.Node{Kind: doctree.KindImage, Destination: "logo.png"},
	))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	block := out.Children[0]
	if block.Kind != StyledParagraph {
		t.Errorf("expected paragraph, got %q", block.Kind)
	}
	if block.Spacing != paragraphSpacing {
		t.Errorf("expected spacing %d, got %d", paragraphSpacing, block.Spacing)
	}
}

func TestToStyled_UnhandledKindFailsWhole(t *testing.T) {
	d := doc(
		para(textNode("before")),
		&doctree.Node{Kind: "Hologram"},
	)
	out, err := ToStyled(d)
	if out != nil {
		t.Errorf("expected no partial output, got %+v", out)
	}
	var uerr *UnhandledNodeTypeError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnhandledNodeTypeError, got %v", err)
	}
	if uerr.Kind != "Hologram" {
		t.Errorf("expected offending kind in error, got %q", uerr.Kind)
	}
}

func TestToStyled_VariableUnquoting(t *testing.T) {
	cases := []struct {
		node *doctree.Node
		want string
	}{
		{&doctree.Node{Kind: doctree.KindVariable, Value: `"Steve"`, ElementType: "String"}, "Steve"},
		{&doctree.Node{Kind: doctree.KindVariable, Value: "'x'", IdentifiedBy: "id"}, "x"},
		{&doctree.Node{Kind: doctree.KindVariable, Value: `"42"`, ElementType: "Integer"}, `"42"`},
	}
	for i, c := range cases {
		out, err := ToStyled(doc(para(c.node)))
		if err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		run := out.Children[0].Children[0]
		if run.Text != c.want {
			t.Errorf("case %d: expected %q, got %q", i, c.want, run.Text)
		}
	}
}

func TestToStyled_ConditionalRendersResolvedBranch(t *testing.T) {
	d := doc(para(&doctree.Node{
		Kind:     doctree.KindConditional,
		Children: []*doctree.Node{para(textNode("will"))},
	}))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.Children[0].Children[0].Text; got != "will" {
		t.Errorf("expected resolved branch text, got %q", got)
	}
}

func TestToStyled_ThematicBreakPageBreaks(t *testing.T) {
	out, err := ToStyled(doc(&doctree.Node{Kind: doctree.KindThematicBreak}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := out.Children[0]
	if b.Kind != StyledParagraph || !b.PageBreakAfter {
		t.Errorf("expected page-breaking paragraph, got %+v", b)
	}
}

func TestToStyled_Lists(t *testing.T) {
	d := doc(&doctree.Node{
		Kind:     doctree.KindList,
		ListType: doctree.ListOrdered,
		Children: []*doctree.Node{
			{Kind: doctree.KindListItem, Children: []*doctree.Node{para(textNode("first"))}},
		},
	})
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list := out.Children[0]
	if list.Kind != StyledList || !list.Ordered {
		t.Errorf("unexpected list: %+v", list)
	}
	// List items are transparent: their paragraph content hangs directly
	// off the list.
	if list.Children[0].Kind != StyledParagraph {
		t.Errorf("unexpected item shape: %+v", list.Children[0])
	}
}

func TestToStyled_LinkUsesFirstText(t *testing.T) {
	d := doc(para(&doctree.Node{
		Kind:        doctree.KindLink,
		Destination: "https://example.com",
		Children:    []*doctree.Node{textNode("site")},
	}))
	out, err := ToStyled(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	run := out.Children[0].Children[0]
	if run.Text != "site" || run.Link != "https://example.com" {
		t.Errorf("unexpected link run: %+v", run)
	}
}

func TestFirstText_FirstChildDescentOnly(t *testing.T) {
	n := &doctree.Node{Kind: doctree.KindHeading, Children: []*doctree.Node{
		{Kind: doctree.KindEmph, Children: []*doctree.Node{textNode("lead")}},
		textNode(" trailing"),
	}}
	if got := firstText(n); got != "lead" {
		t.Errorf("expected first-child descent only, got %q", got)
	}
	if got := firstText(&doctree.Node{Kind: doctree.KindEmph}); got != "" {
		t.Errorf("expected empty string for childless node, got %q", got)
	}
}
