// Package haml converts parsed HTML or XHTML documents into Haml templates.
//
// Input may be raw markup text, an io.Reader, a file, or a pre-built node
// tree; output is the Haml source as a string. An optional templating-tag
// mode converts embedded <%= %> and <% %> tags into Haml's evaluate and
// execute line forms instead of treating them as literal text.
package haml

import (
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Inputs that carry document-level structure parse as full documents; bare
// snippets parse as body fragments so no synthetic html/head/body wrappers
// leak into the output.
var fullDocumentPattern = regexp.MustCompile(`(?i)<!doctype|<\?xml|<html[\s>]`)

// Converter loads one document and serializes it to Haml. A Converter is not
// safe for concurrent use; separate conversions need separate Converters.
type Converter struct {
	opts     *Options
	doc      *Node
	roots    []*html.Node // lenient-parse roots, kept for selector scoping
	selector cascadia.Selector
}

// NewConverter creates a converter with the given options. Nil options mean
// defaults.
func NewConverter(opts *Options) *Converter {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	return &Converter{opts: opts}
}

// LoadFromString loads the document from raw markup text.
func (c *Converter) LoadFromString(input string) error {
	if err := checkEncoding(input); err != nil {
		return err
	}

	normalized := escapeAmpersands(input)
	if c.opts.TemplatingTags {
		normalized = extractTags(normalized)
	}

	if c.opts.StrictXML {
		xdoc, err := xmlquery.Parse(strings.NewReader(normalized))
		if err != nil {
			return NewParseError("failed to parse XML document", err)
		}
		tree, err := fromXMLNode(xdoc)
		if err != nil {
			return err
		}
		c.doc = tree
		c.roots = nil
		return nil
	}

	roots, tree, err := parseLenient(normalized)
	if err != nil {
		return err
	}
	c.doc = tree
	c.roots = roots
	return nil
}

// LoadFromReader loads the document from a reader.
func (c *Converter) LoadFromReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return NewIOError("failed to read input", err)
	}
	return c.LoadFromString(string(data))
}

// LoadFromFile loads the document from a file.
func (c *Converter) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return NewIOError("failed to open input file", err)
	}
	defer file.Close()

	return c.LoadFromReader(file)
}

// LoadTree borrows a pre-built node tree for conversion. The tree is not
// preprocessed: no encoding check, ampersand escaping, or tag extraction.
func (c *Converter) LoadTree(doc *Node) {
	c.doc = doc
	c.roots = nil
}

// Convert serializes the loaded document and returns the Haml source.
func (c *Converter) Convert() (string, error) {
	if c.doc == nil {
		return "", NewConfigError("no document loaded")
	}
	if c.selector != nil {
		return c.convertSelection()
	}
	return RenderNode(c.doc, c.opts)
}

// Render converts raw markup text to Haml in one call.
func Render(input string, opts *Options) (string, error) {
	c := NewConverter(opts)
	if err := c.LoadFromString(input); err != nil {
		return "", err
	}
	return c.Convert()
}

// RenderNode converts a pre-built node tree to Haml.
func RenderNode(n *Node, opts *Options) (string, error) {
	if opts == nil {
		opts = NewDefaultOptions()
	}
	var b strings.Builder
	if err := serializeNode(&b, n, 0, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderHTMLNode converts an x/net/html node tree to Haml, for callers that
// already hold a parsed document.
func RenderHTMLNode(n *html.Node, opts *Options) (string, error) {
	tree, err := fromHTMLNode(n)
	if err != nil {
		return "", err
	}
	return RenderNode(tree, opts)
}

// parseLenient parses markup permissively. Full documents go through
// goquery; snippets parse as body fragments collected under a synthetic
// document node.
func parseLenient(markup string) ([]*html.Node, *Node, error) {
	if fullDocumentPattern.MatchString(markup) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if err != nil {
			return nil, nil, NewParseError("failed to parse HTML document", err)
		}
		root := doc.Get(0)
		tree, err := fromHTMLNode(root)
		if err != nil {
			return nil, nil, err
		}
		return []*html.Node{root}, tree, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	fragments, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, nil, NewParseError("failed to parse HTML fragment", err)
	}

	tree := &Node{Kind: KindDocument}
	for _, f := range fragments {
		child, err := fromHTMLNode(f)
		if err != nil {
			return nil, nil, err
		}
		tree.Children = append(tree.Children, child)
	}
	return fragments, tree, nil
}

// checkEncoding validates that raw input is well-formed UTF-8 and reports
// the line of the first bad byte sequence.
func checkEncoding(input string) error {
	if utf8.ValidString(input) {
		return nil
	}
	line := 1
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			return NewEncodingError("invalid UTF-8 byte sequence", line)
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return nil
}
