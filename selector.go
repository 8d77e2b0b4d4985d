package haml

import (
	"strings"

	"github.com/andybalholm/cascadia"
)

// Select restricts conversion to the subtrees matching a CSS selector. Each
// match is serialized at depth zero, in document order. Selector scoping
// works on the lenient HTML parse only.
func (c *Converter) Select(selector string) error {
	if c.opts.StrictXML {
		return NewConfigError("selector scoping is not supported with strict XML parsing")
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return NewConfigError("invalid CSS selector: " + err.Error())
	}
	c.selector = sel
	return nil
}

func (c *Converter) convertSelection() (string, error) {
	if c.roots == nil {
		return "", NewConfigError("selector scoping requires a document loaded from markup text")
	}

	var b strings.Builder
	for _, root := range c.roots {
		for _, match := range c.selector.MatchAll(root) {
			tree, err := fromHTMLNode(match)
			if err != nil {
				return "", err
			}
			if err := serializeNode(&b, tree, 0, c.opts); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}
