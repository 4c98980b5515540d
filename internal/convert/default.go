package convert

import (
	"bytes"
	"fmt"

	"github.com/clausemark/clausemark/internal/doctree"
	"github.com/clausemark/clausemark/internal/parser"
	"github.com/clausemark/clausemark/internal/transform"
)

// Format names registered by Default.
const (
	FormatMarkdown  = "markdown"
	FormatTree      = "tree"
	FormatStyled    = "styled"
	FormatHTML      = "html"
	FormatPlaintext = "plaintext"
	FormatDOCX      = "docx"
	FormatPDF       = "pdf"
	FormatText      = "text"
)

// Default builds the registry with every built-in format and converter.
func Default() *Registry {
	r := NewRegistry()

	r.RegisterFormat(Format{Name: FormatMarkdown, Serialization: SerializationText})
	r.RegisterFormat(Format{Name: FormatTree, Serialization: SerializationTree})
	r.RegisterFormat(Format{Name: FormatStyled, Serialization: SerializationTree})
	r.RegisterFormat(Format{Name: FormatHTML, Serialization: SerializationText})
	r.RegisterFormat(Format{Name: FormatPlaintext, Serialization: SerializationText})
	r.RegisterFormat(Format{Name: FormatDOCX, Serialization: SerializationBinary})
	r.RegisterFormat(Format{Name: FormatPDF, Serialization: SerializationBinary})
	r.RegisterFormat(Format{Name: FormatText, Serialization: SerializationText})

	r.RegisterConverter(Converter{From: FormatMarkdown, To: FormatTree, Convert: func(doc any) (any, error) {
		s, err := asText(doc)
		if err != nil {
			return nil, err
		}
		return parser.Tokenize([]byte(s))
	}})
	r.RegisterConverter(Converter{From: FormatTree, To: FormatMarkdown, Convert: treeConverter(transform.ToMarkdown)})
	r.RegisterConverter(Converter{From: FormatTree, To: FormatHTML, Convert: treeConverter(transform.ToHTML)})
	r.RegisterConverter(Converter{From: FormatTree, To: FormatPlaintext, Convert: treeConverter(transform.ToPlaintext)})
	r.RegisterConverter(Converter{From: FormatTree, To: FormatStyled, Convert: func(doc any) (any, error) {
		t, err := asTree(doc)
		if err != nil {
			return nil, err
		}
		return transform.ToStyled(t)
	}})
	r.RegisterConverter(Converter{From: FormatHTML, To: FormatTree, Convert: readerConverter(&parser.HTMLParser{}, "document.html")})
	r.RegisterConverter(Converter{From: FormatDOCX, To: FormatTree, Convert: readerConverter(&parser.DOCXParser{}, "document.docx")})
	r.RegisterConverter(Converter{From: FormatPDF, To: FormatTree, Convert: readerConverter(&parser.PDFParser{FallbackPdftotext: true}, "document.pdf")})
	r.RegisterConverter(Converter{From: FormatText, To: FormatTree, Convert: readerConverter(&parser.TextParser{}, "document.txt")})

	return r
}

// SetPDFFallback re-registers the pdf converter with the pdftotext
// fallback toggled.
func (r *Registry) SetPDFFallback(enabled bool) {
	r.RegisterConverter(Converter{From: FormatPDF, To: FormatTree, Convert: readerConverter(&parser.PDFParser{FallbackPdftotext: enabled}, "document.pdf")})
}

func treeConverter(f func(*doctree.Node) (string, error)) func(any) (any, error) {
	return func(doc any) (any, error) {
		t, err := asTree(doc)
		if err != nil {
			return nil, err
		}
		return f(t)
	}
}

func readerConverter(p parser.Parser, filename string) func(any) (any, error) {
	return func(doc any) (any, error) {
		data, err := asBytes(doc)
		if err != nil {
			return nil, err
		}
		return p.Parse(bytes.NewReader(data), filename)
	}
}

func asTree(doc any) (*doctree.Node, error) {
	t, ok := doc.(*doctree.Node)
	if !ok {
		return nil, fmt.Errorf("expected document tree, got %T", doc)
	}
	return t, nil
}

func asText(doc any) (string, error) {
	switch v := doc.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("expected text, got %T", doc)
}

func asBytes(doc any) ([]byte, error) {
	switch v := doc.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("expected bytes, got %T", doc)
}
