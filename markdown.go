package haml

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a Markdown source to Haml by rendering it to HTML
// first and converting the result.
func RenderMarkdown(source []byte, opts *Options) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(source, &buf); err != nil {
		return "", NewParseError("failed to render markdown", err)
	}
	return Render(buf.String(), opts)
}
