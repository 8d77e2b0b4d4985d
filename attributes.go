package haml

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var (
	// Attribute names that are not plain identifiers cannot render as Ruby
	// symbols and need string keys.
	attrNonWordPattern = regexp.MustCompile(`\W`)

	// A loud placeholder smuggled through the parse inside an attribute value.
	loudWrapperPattern = regexp.MustCompile(`(?s)<` + loudTagName + `>\s*(.+?)\s*</` + loudTagName + `>`)
)

// attributeIsDynamic reports whether the value carries an embedded expression.
// Only meaningful in templating mode; otherwise every value is static text.
func attributeIsDynamic(value string, opts *Options) bool {
	return opts.TemplatingTags && loudWrapperPattern.MatchString(value)
}

// staticAttribute returns the value of the named attribute when it exists,
// is non-empty, and holds no embedded expression. Shorthand notation (#id,
// .class) is only valid for such attributes.
func staticAttribute(n *Node, name string, opts *Options) (string, bool) {
	value, ok := n.Attribute(name)
	if !ok || value == "" {
		return "", false
	}
	if attributeIsDynamic(value, opts) {
		return "", false
	}
	return value, true
}

// renderAttributes renders the element's remaining attributes as a Haml
// attribute hash, preserving document order. Attributes named in consumed
// were already folded into shorthand notation; empty values contribute
// nothing. Returns "" when nothing is left to render.
func renderAttributes(attrs []Attribute, consumed map[string]bool, opts *Options) string {
	kept := lo.Filter(attrs, func(a Attribute, _ int) bool {
		return !consumed[a.Name] && a.Value != ""
	})
	if len(kept) == 0 {
		return ""
	}

	pairs := lo.Map(kept, func(a Attribute, _ int) string {
		return renderAttributeKey(a.Name) + " => " + renderAttributeValue(a.Value, opts)
	})
	return "{" + strings.Join(pairs, ", ") + "}"
}

func renderAttributeKey(name string) string {
	if attrNonWordPattern.MatchString(name) {
		return strconv.Quote(name)
	}
	return ":" + name
}

// renderAttributeValue classifies one attribute value. A value that is
// exactly one loud placeholder renders as the bare expression; a placeholder
// embedded in surrounding text renders as a quoted string with Haml
// interpolation; anything else is a quoted literal.
func renderAttributeValue(value string, opts *Options) string {
	if !opts.TemplatingTags {
		return strconv.Quote(value)
	}

	m := loudWrapperPattern.FindStringSubmatchIndex(value)
	if m == nil {
		return strconv.Quote(value)
	}

	if m[0] == 0 && m[1] == len(value) {
		// Pure dynamic: the whole value is the expression.
		return html.UnescapeString(value[m[2]:m[3]])
	}

	var b strings.Builder
	b.WriteByte('"')
	last := 0
	for _, idx := range loudWrapperPattern.FindAllStringSubmatchIndex(value, -1) {
		b.WriteString(escapeStaticSegment(value[last:idx[0]]))
		b.WriteString("#{" + html.UnescapeString(value[idx[2]:idx[3]]) + "}")
		last = idx[1]
	}
	b.WriteString(escapeStaticSegment(value[last:]))
	b.WriteByte('"')
	return b.String()
}

// escapeStaticSegment makes literal text safe inside a double-quoted Ruby
// string: quotes and backslashes are escaped, and a literal #{ is kept from
// interpolating.
func escapeStaticSegment(s string) string {
	quoted := strconv.Quote(s)
	return strings.ReplaceAll(quoted[1:len(quoted)-1], "#{", `\#{`)
}
