package haml

// Options controls one conversion. It is read-only for the duration of the
// conversion and shared by every recursive call.
type Options struct {
	// TemplatingTags treats embedded <%= %> / <% %> tags as evaluate and
	// execute constructs instead of literal text.
	TemplatingTags bool `toml:"templating_tags"`

	// StrictXML parses raw input as an XML document rather than permissive
	// HTML. Parse errors surface instead of being repaired.
	StrictXML bool `toml:"strict_xml"`
}

// NewDefaultOptions returns the default conversion options.
func NewDefaultOptions() *Options {
	return &Options{}
}
