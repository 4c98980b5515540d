package convert

import (
	"errors"
	"strings"
	"testing"

	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/clausemark/clausemark/internal/transform"
)

func TestRegistry_RunExecutesChainInOrder(t *testing.T) {
	r := NewRegistry()
	r.RegisterConverter(Converter{From: "a", To: "b", Convert: func(doc any) (any, error) {
		return doc.(string) + "+b", nil
	}})
	r.RegisterConverter(Converter{From: "b", To: "c", Convert: func(doc any) (any, error) {
		return doc.(string) + "+c", nil
	}})

	out, err := r.Run("start", "a", []string{"b", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "start+b+c" {
		t.Errorf("expected chained output, got %v", out)
	}
}

func TestRegistry_RunMissingHopNamesBothFormats(t *testing.T) {
	r := NewRegistry()
	r.RegisterConverter(Converter{From: "a", To: "b", Convert: func(doc any) (any, error) {
		return doc, nil
	}})

	_, err := r.Run("x", "a", []string{"b", "z"})
	var uerr *UnsupportedConversionError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UnsupportedConversionError, got %v", err)
	}
	if uerr.From != "b" || uerr.To != "z" {
		t.Errorf("expected failing hop b->z, got %s->%s", uerr.From, uerr.To)
	}
}

func TestRegistry_RunEmptyChainReturnsInput(t *testing.T) {
	r := NewRegistry()
	out, err := r.Run("doc", "a", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "doc" {
		t.Errorf("expected input back, got %v", out)
	}
}

func TestRegistry_RunWrapsConverterError(t *testing.T) {
	r := NewRegistry()
	r.RegisterConverter(Converter{From: "a", To: "b", Convert: func(doc any) (any, error) {
		return nil, errors.New("boom")
	}})
	_, err := r.Run("x", "a", []string{"b"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "convert a to b") {
		t.Errorf("expected hop context in error, got %v", err)
	}
}

func TestRegistry_FormatsSorted(t *testing.T) {
	r := NewRegistry()
	r.RegisterFormat(Format{Name: "zebra", Serialization: SerializationText})
	r.RegisterFormat(Format{Name: "alpha", Serialization: SerializationTree})

	formats := r.Formats()
	if len(formats) != 2 || formats[0].Name != "alpha" || formats[1].Name != "zebra" {
		t.Errorf("expected sorted formats, got %v", formats)
	}
}

func TestDefault_RegistersExpectedConverters(t *testing.T) {
	r := Default()
	for _, hop := range [][2]string{
		{FormatMarkdown, FormatTree},
		{FormatTree, FormatMarkdown},
		{FormatTree, FormatHTML},
		{FormatTree, FormatPlaintext},
		{FormatTree, FormatStyled},
		{FormatHTML, FormatTree},
		{FormatDOCX, FormatTree},
		{FormatPDF, FormatTree},
		{FormatText, FormatTree},
	} {
		found := false
		for _, c := range r.Converters() {
			if c.From == hop[0] && c.To == hop[1] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing converter %s->%s", hop[0], hop[1])
		}
	}
	if _, ok := r.Format(FormatTree); !ok {
		t.Error("tree format not registered")
	}
}

func TestDefault_MarkdownToStyledChain(t *testing.T) {
	r := Default()
	out, err := r.Run("# Title\n\nHello **world**.", FormatMarkdown, []string{FormatTree, FormatStyled})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	styled, ok := out.(*transform.StyledNode)
	if !ok {
		t.Fatalf("expected styled tree, got %T", out)
	}
	if styled.Kind != transform.StyledDocument {
		t.Errorf("expected document root, got %q", styled.Kind)
	}
	if styled.Children[0].Kind != transform.StyledHeading {
		t.Errorf("expected heading first, got %+v", styled.Children[0])
	}
}

func TestDefault_MarkdownRoundTripChain(t *testing.T) {
	r := Default()
	src := "# Title\n\nHello **world**."
	out, err := r.Run(src, FormatMarkdown, []string{FormatTree, FormatMarkdown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != src {
		t.Errorf("round trip diverged:\nin  %q\nout %q", src, out)
	}
}

func TestDefault_TreeInputTypeChecked(t *testing.T) {
	r := Default()
	_, err := r.Run("not a tree", FormatTree, []string{FormatMarkdown})
	if err == nil {
		t.Fatal("expected type error for non-tree input")
	}

	out, err := r.Run(&doctree.Node{
		Kind: doctree.KindDocument,
		Children: []*doctree.Node{
			{Kind: doctree.KindParagraph, Children: []*doctree.Node{
				{Kind: doctree.KindText, Value: "hi"},
			}},
		},
	}, FormatTree, []string{FormatMarkdown})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi" {
		t.Errorf("unexpected markdown: %v", out)
	}
}
