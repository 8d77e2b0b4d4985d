package haml

import (
	"time"
)

// Config is the tool-level configuration consumed by the CLI. Conversion
// behavior lives in Options; everything else here is input/output plumbing.
type Config struct {
	// Input
	InputFile string `toml:"input" mapstructure:"input"` // input HTML file path, "-" for stdin
	URL       string `toml:"url" mapstructure:"url"`     // fetch the document from a URL instead
	Markdown  bool   `toml:"markdown" mapstructure:"markdown"`

	// Output
	OutputFile string `toml:"output" mapstructure:"output"` // output Haml file path, empty for stdout

	// Conversion
	Selector       string `toml:"selector" mapstructure:"selector"` // optional CSS selector scoping
	TemplatingTags bool   `toml:"templating_tags" mapstructure:"templating_tags"`
	StrictXML      bool   `toml:"strict_xml" mapstructure:"strict_xml"`

	// Fetching
	HTTPTimeout   time.Duration `toml:"timeout" mapstructure:"timeout"`
	HTTPUserAgent string        `toml:"user_agent" mapstructure:"user_agent"`
}

// NewDefaultConfig creates the default configuration.
func NewDefaultConfig() *Config {
	return &Config{
		HTTPTimeout:   30 * time.Second,
		HTTPUserAgent: "html2haml/1.0",
	}
}

// ConversionOptions extracts the conversion options from the config.
func (c *Config) ConversionOptions() *Options {
	return &Options{
		TemplatingTags: c.TemplatingTags,
		StrictXML:      c.StrictXML,
	}
}
