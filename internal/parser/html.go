package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/clausemark/clausemark/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files, mapping structural elements onto the
// document tree and descending transparently through containers.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	root := doc
	if body := findBody(doc); body != nil {
		root = body
	}

	out := &doctree.Node{Kind: doctree.KindDocument}
	out.Children = convertHTMLBlocks(root)
	return out, nil
}

func convertHTMLBlocks(n *html.Node) []*doctree.Node {
	var out []*doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				out = append(out, &doctree.Node{
					Kind:     doctree.KindParagraph,
					Children: []*doctree.Node{{Kind: doctree.KindText, Value: t}},
				})
			}
		case html.ElementNode:
			if node := convertHTMLElement(c); node != nil {
				out = append(out, node)
			} else if !skipElement(c.Data) {
				// Transparent container: hoist its blocks.
				out = append(out, convertHTMLBlocks(c)...)
			}
		}
	}
	return out
}

// convertHTMLElement maps a structural element; nil means the element is
// not structural and its children should be walked instead.
func convertHTMLElement(n *html.Node) *doctree.Node {
	if level := headingLevel(n.Data); level > 0 {
		return &doctree.Node{
			Kind:     doctree.KindHeading,
			Level:    strconv.Itoa(level),
			Children: convertHTMLInlines(n),
		}
	}
	switch n.Data {
	case "p":
		return &doctree.Node{Kind: doctree.KindParagraph, Children: convertHTMLInlines(n)}
	case "ul", "ol":
		list := &doctree.Node{Kind: doctree.KindList, ListType: doctree.ListUnordered}
		if n.Data == "ol" {
			list.ListType = doctree.ListOrdered
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "li" {
				list.Children = append(list.Children, &doctree.Node{
					Kind:     doctree.KindListItem,
					Children: convertHTMLBlocksOrInline(c),
				})
			}
		}
		return list
	case "blockquote":
		return &doctree.Node{Kind: doctree.KindBlockQuote, Children: convertHTMLBlocks(n)}
	case "pre":
		return &doctree.Node{Kind: doctree.KindCodeBlock, Value: textContent(n)}
	case "hr":
		return &doctree.Node{Kind: doctree.KindThematicBreak}
	}
	return nil
}

// convertHTMLBlocksOrInline handles list items, which may hold bare inline
// content or nested blocks.
func convertHTMLBlocksOrInline(n *html.Node) []*doctree.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && convertHTMLElement(c) != nil {
			return convertHTMLBlocks(n)
		}
	}
	return []*doctree.Node{{Kind: doctree.KindParagraph, Children: convertHTMLInlines(n)}}
}

func convertHTMLInlines(n *html.Node) []*doctree.Node {
	var out []*doctree.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			out = append(out, &doctree.Node{Kind: doctree.KindText, Value: c.Data})
		case html.ElementNode:
			switch c.Data {
			case "em", "i":
				out = append(out, &doctree.Node{Kind: doctree.KindEmph, Children: convertHTMLInlines(c)})
			case "strong", "b":
				out = append(out, &doctree.Node{Kind: doctree.KindStrong, Children: convertHTMLInlines(c)})
			case "code":
				out = append(out, &doctree.Node{Kind: doctree.KindCode, Value: textContent(c)})
			case "a":
				out = append(out, &doctree.Node{
					Kind:        doctree.KindLink,
					Destination: attr(c, "href"),
					Children:    convertHTMLInlines(c),
				})
			case "img":
				out = append(out, &doctree.Node{Kind: doctree.KindImage, Destination: attr(c, "src")})
			case "br":
				out = append(out, &doctree.Node{Kind: doctree.KindLinebreak})
			default:
				if !skipElement(c.Data) {
					out = append(out, convertHTMLInlines(c)...)
				}
			}
		}
	}
	return out
}

func skipElement(tag string) bool {
	switch tag {
	case "script", "style", "nav", "footer", "header":
		return true
	}
	return false
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
