package haml

import (
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html"
)

// Kind identifies the variant of a document node. The converter works on its
// own closed node set so it never depends on a parser library's type system.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	KindCData
	KindDocType
	KindXMLDecl
)

// String returns a human-readable kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindCData:
		return "cdata"
	case KindDocType:
		return "doctype"
	case KindXMLDecl:
		return "xml declaration"
	default:
		return "unknown"
	}
}

// Attribute is a single element attribute. Attributes keep document order so
// the rendered attribute hash matches the source.
type Attribute struct {
	Name  string
	Value string
}

// Node is one node of the borrowed document tree.
//
// Data holds text content for Text/Comment/CData nodes and the public
// identifier for DocType nodes. Tag and Attr are only set for elements.
type Node struct {
	Kind     Kind
	Tag      string
	Attr     []Attribute
	Data     string
	Children []*Node
}

// Attribute returns the value of the named attribute and whether it exists.
func (n *Node) Attribute(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// innerText concatenates the text content of a node's subtree.
func (n *Node) innerText() string {
	if n.Kind == KindText {
		return n.Data
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.innerText())
	}
	return b.String()
}

// The HTML tokenizer has no XML-declaration concept and reports
// "<?xml ... ?>" as a bogus comment starting with "?xml".
const bogusXMLDeclPrefix = "?xml"

// fromHTMLNode builds a Node tree from a lenient x/net/html parse.
func fromHTMLNode(src *html.Node) (*Node, error) {
	if src == nil {
		return nil, NewParseError("cannot build tree from nil html node", nil)
	}

	switch src.Type {
	case html.DocumentNode:
		n := &Node{Kind: KindDocument}
		if err := appendHTMLChildren(n, src); err != nil {
			return nil, err
		}
		return n, nil

	case html.ElementNode:
		n := &Node{Kind: KindElement, Tag: src.Data}
		for _, a := range src.Attr {
			name := a.Key
			if a.Namespace != "" {
				name = a.Namespace + ":" + a.Key
			}
			n.Attr = append(n.Attr, Attribute{Name: name, Value: a.Val})
		}
		if err := appendHTMLChildren(n, src); err != nil {
			return nil, err
		}
		return n, nil

	case html.TextNode:
		return &Node{Kind: KindText, Data: src.Data}, nil

	case html.CommentNode:
		if strings.HasPrefix(src.Data, bogusXMLDeclPrefix) {
			return &Node{Kind: KindXMLDecl, Data: src.Data}, nil
		}
		return &Node{Kind: KindComment, Data: src.Data}, nil

	case html.DoctypeNode:
		n := &Node{Kind: KindDocType}
		for _, a := range src.Attr {
			if a.Key == "public" {
				n.Data = a.Val
			}
		}
		return n, nil

	default:
		return nil, NewParseError("unsupported html node type", nil)
	}
}

func appendHTMLChildren(dst *Node, src *html.Node) error {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ErrorNode {
			continue
		}
		child, err := fromHTMLNode(c)
		if err != nil {
			return err
		}
		dst.Children = append(dst.Children, child)
	}
	return nil
}

// The strict parser reports "<!DOCTYPE ...>" as a raw directive; the public
// identifier is the first quoted token after PUBLIC.
var xmlPublicIDPattern = regexp.MustCompile(`PUBLIC\s+["']([^"']*)["']`)

// fromXMLNode builds a Node tree from a strict xmlquery parse.
func fromXMLNode(src *xmlquery.Node) (*Node, error) {
	if src == nil {
		return nil, NewParseError("cannot build tree from nil xml node", nil)
	}

	switch src.Type {
	case xmlquery.DocumentNode:
		n := &Node{Kind: KindDocument}
		if err := appendXMLChildren(n, src); err != nil {
			return nil, err
		}
		return n, nil

	case xmlquery.DeclarationNode:
		return &Node{Kind: KindXMLDecl, Data: src.Data}, nil

	case xmlquery.ElementNode:
		tag := src.Data
		if src.Prefix != "" {
			tag = src.Prefix + ":" + src.Data
		}
		n := &Node{Kind: KindElement, Tag: tag}
		for _, a := range src.Attr {
			name := a.Name.Local
			if a.Name.Space != "" {
				name = a.Name.Space + ":" + a.Name.Local
			}
			n.Attr = append(n.Attr, Attribute{Name: name, Value: a.Value})
		}
		if err := appendXMLChildren(n, src); err != nil {
			return nil, err
		}
		return n, nil

	case xmlquery.TextNode:
		return &Node{Kind: KindText, Data: src.Data}, nil

	case xmlquery.CharDataNode:
		return &Node{Kind: KindCData, Data: src.Data}, nil

	case xmlquery.CommentNode:
		return &Node{Kind: KindComment, Data: src.Data}, nil

	case xmlquery.NotationNode:
		n := &Node{Kind: KindDocType}
		if m := xmlPublicIDPattern.FindStringSubmatch(src.Data); m != nil {
			n.Data = m[1]
		}
		return n, nil

	default:
		return nil, NewParseError("unsupported xml node type", nil)
	}
}

func appendXMLChildren(dst *Node, src *xmlquery.Node) error {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.AttributeNode {
			continue
		}
		child, err := fromXMLNode(c)
		if err != nil {
			return err
		}
		dst.Children = append(dst.Children, child)
	}
	return nil
}
