package parser

import (
	"strings"
	"testing"

	"github.com/clausemark/clausemark/internal/doctree"
)

func TestTextParser_BasicParagraphSplitting(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(tree.Children))
	}

	want := []string{
		"First paragraph line one.\nFirst paragraph line two.",
		"Second paragraph.",
		"Third paragraph.",
	}
	for i, w := range want {
		para := tree.Children[i]
		if para.Kind != doctree.KindParagraph {
			t.Fatalf("child[%d]: expected paragraph, got %s", i, para.Kind)
		}
		if para.Children[0].Value != w {
			t.Errorf("child[%d]: expected %q, got %q", i, w, para.Children[0].Value)
		}
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 0 {
		t.Errorf("expected 0 children for empty input, got %d", len(tree.Children))
	}
}

func TestTextParser_WhitespaceOnlyLinesSplit(t *testing.T) {
	p := &TextParser{}
	tree, err := p.Parse(strings.NewReader("a\n   \nb"), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 2 {
		t.Errorf("expected whitespace line to split paragraphs, got %d", len(tree.Children))
	}
}
