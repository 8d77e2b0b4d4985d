package haml

import (
	"html"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// defaultTag is Haml's implicit element: "#id" and ".class" lines stand for
// a div, so the tag marker is dropped when shorthand disambiguates it.
const defaultTag = "div"

// Downlevel-revealed conditional comments keep their condition on the
// comment line: <!--[if IE]>...<![endif]--> becomes "/[if IE] ...".
var conditionalCommentPattern = regexp.MustCompile(`(?s)^\s*(\[[^\]]+\])>(.*)<!\[endif\]\s*$`)

// serializeNode emits the Haml rendering of one node at the given depth and
// recurses into children. Output for a subtree depends only on the subtree,
// the depth, and the options.
func serializeNode(b *strings.Builder, n *Node, depth int, opts *Options) error {
	switch n.Kind {
	case KindDocument:
		for _, c := range n.Children {
			if err := serializeNode(b, c, 0, opts); err != nil {
				return err
			}
		}
		return nil

	case KindXMLDecl:
		b.WriteString(tabulate(depth) + "!!! XML\n")
		return nil

	case KindDocType:
		return serializeDoctype(b, n, depth)

	case KindCData:
		b.WriteString(tabulate(depth) + ":cdata\n")
		b.WriteString(formatText(n.Data, depth+1))
		return nil

	case KindComment:
		serializeComment(b, n, depth)
		return nil

	case KindText:
		b.WriteString(formatText(n.Data, depth))
		return nil

	case KindElement:
		return serializeElement(b, n, depth, opts)

	default:
		return NewParseError("unsupported node kind: "+n.Kind.String(), nil)
	}
}

func serializeDoctype(b *strings.Builder, n *Node, depth int) error {
	publicID := strings.TrimSpace(n.Data)
	if publicID == "" {
		// No DTD reference (HTML5 style): plain marker.
		b.WriteString(tabulate(depth) + "!!!\n")
		return nil
	}
	line, err := translateDoctype(publicID)
	if err != nil {
		return err
	}
	b.WriteString(tabulate(depth) + line + "\n")
	return nil
}

func serializeComment(b *strings.Builder, n *Node, depth int) {
	content := n.Data
	condition := ""
	if m := conditionalCommentPattern.FindStringSubmatch(content); m != nil {
		condition = m[1]
		content = m[2]
	}

	if strings.Contains(strings.TrimSpace(content), "\n") {
		b.WriteString(tabulate(depth) + "/" + condition + "\n")
		b.WriteString(formatText(content, depth+1))
		return
	}
	b.WriteString(tabulate(depth) + "/" + condition + " " + strings.TrimSpace(content) + "\n")
}

func serializeElement(b *strings.Builder, n *Node, depth int, opts *Options) error {
	if opts.TemplatingTags && (n.Tag == loudTagName || n.Tag == silentTagName) {
		serializePlaceholder(b, n, depth)
		return nil
	}

	var open strings.Builder
	open.WriteString(tabulate(depth))

	id, hasStaticID := staticAttribute(n, "id", opts)
	class, hasStaticClass := staticAttribute(n, "class", opts)

	if !(n.Tag == defaultTag && (hasStaticID || hasStaticClass)) {
		open.WriteString("%" + n.Tag)
	}

	// Shorthand consumes id/class; everything else stays in the hash. The
	// consumed set is per element, the tree itself is never touched.
	consumed := make(map[string]bool, 2)
	if hasStaticID {
		open.WriteString("#" + id)
		consumed["id"] = true
	}
	if hasStaticClass {
		for _, token := range strings.Fields(class) {
			open.WriteString("." + token)
		}
		consumed["class"] = true
	}
	open.WriteString(renderAttributes(n.Attr, consumed, opts))

	// A lone text child collapses onto the element's line unless its
	// rendering spans lines.
	if len(n.Children) == 1 && n.Children[0].Kind == KindText {
		text := formatText(n.Children[0].Data, depth+1)
		switch {
		case text == "":
			b.WriteString(open.String() + "\n")
		case strings.Contains(strings.TrimRight(text, "\n"), "\n"):
			b.WriteString(open.String() + "\n")
			b.WriteString(text)
		default:
			b.WriteString(open.String() + " " + strings.TrimLeft(text, " "))
		}
		return nil
	}

	b.WriteString(open.String() + "\n")
	for _, c := range n.Children {
		if err := serializeNode(b, c, depth+1, opts); err != nil {
			return err
		}
	}
	return nil
}

// serializePlaceholder unwraps a synthetic templating-tag element into "="
// (evaluate) or "-" (execute) lines. Terminal: placeholder children are the
// carried code, not document structure.
func serializePlaceholder(b *strings.Builder, n *Node, depth int) {
	content := html.UnescapeString(n.innerText())
	prefix := tabulate(depth)

	lines := lo.FilterMap(strings.Split(content, "\n"), func(line string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(line)
		return trimmed, trimmed != ""
	})
	if len(lines) == 0 {
		return
	}

	if n.Tag == silentTagName {
		for _, line := range lines {
			b.WriteString(prefix + "- " + line + "\n")
		}
		return
	}

	if len(lines) == 1 {
		b.WriteString(prefix + "= " + lines[0] + "\n")
		return
	}
	// Multiline script: every line carries Haml's trailing | marker, the
	// last one included, so the whole block reads back as one script line.
	for i, line := range lines {
		if i == 0 {
			line = "= " + line
		} else {
			line = "  " + line
		}
		b.WriteString(prefix + line + " |\n")
	}
}
