package haml

import (
	"regexp"
	"strings"
)

// DOCTYPE public identifiers reference a DTD as
// "... DTD <type> <version> <strictness>//...". The version and strictness
// tokens may be absent.
var doctypePattern = regexp.MustCompile(`DTD\s+([^\s]+)\s*([^\s]*)\s*([^\s]*)\s*//`)

// translateDoctype converts a DOCTYPE public identifier into the Haml "!!!"
// shorthand. Defaults (XHTML 1.0 Transitional) collapse to the bare marker;
// legacy HTML 4 identifiers carry their version where XHTML ones carry a DTD
// version, so type "html" pins the version to the default.
func translateDoctype(publicID string) (string, error) {
	m := doctypePattern.FindStringSubmatch(publicID)
	if m == nil {
		return "", NewSyntaxError("invalid doctype public identifier: " + publicID)
	}

	docType := strings.ToLower(m[1])
	version := strings.ToLower(m[2])
	strictness := strings.ToLower(m[3])

	if docType == "html" {
		version = "1.0"
	}
	if version == "1.0" {
		version = ""
	}
	if strictness == "transitional" {
		strictness = ""
	}

	out := "!!!"
	if version != "" {
		out += " " + version
	}
	if strictness != "" {
		out += " " + strings.ToUpper(strictness[:1]) + strictness[1:]
	}
	return out, nil
}
