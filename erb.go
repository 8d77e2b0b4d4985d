package haml

import (
	"html"
	"regexp"
	"strings"
)

// The preprocessor rewrites ERB tags into synthetic namespaced elements so
// the HTML parser carries them through as ordinary foreign nodes. The tag
// names below are an internal protocol between the preprocessor and the
// serializer, not part of the public surface; the "haml:" prefix keeps them
// out of the way of any real markup vocabulary.
const (
	loudTagName   = "haml:loud"   // <%= expr %>, evaluates and inserts
	silentTagName = "haml:silent" // <% stmt %>, executes only
)

// Pre-compiled tag patterns. Both are non-greedy and span newlines. The loud
// pass must run first: after it, no "<%=" remains, so the silent pattern only
// picks up statement tags.
var (
	loudTagPattern   = regexp.MustCompile(`(?s)<%=(.*?)-?%>`)
	silentTagPattern = regexp.MustCompile(`(?s)<%-?(.*?)-?%>`)
)

// escapeAmpersands escapes every literal "&" once so the subsequent parse
// stays well-formed and entity text in the source survives verbatim. Applied
// to every raw-text input, templating mode or not.
func escapeAmpersands(raw string) string {
	return strings.ReplaceAll(raw, "&", "&amp;")
}

// extractTags rewrites embedded templating tags into synthetic placeholder
// elements. Tag bodies are entity-escaped so arbitrary code survives the
// parse; the serializer unescapes them when unwrapping. Unmatched delimiters
// are left alone and fall through as literal text.
func extractTags(raw string) string {
	raw = rewriteTags(raw, loudTagPattern, loudTagName)
	raw = rewriteTags(raw, silentTagPattern, silentTagName)
	return raw
}

func rewriteTags(raw string, pattern *regexp.Regexp, tagName string) string {
	return pattern.ReplaceAllStringFunc(raw, func(match string) string {
		body := pattern.FindStringSubmatch(match)[1]
		return "<" + tagName + ">" + html.EscapeString(body) + "</" + tagName + ">"
	})
}
