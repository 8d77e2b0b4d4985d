package haml

import (
	"testing"
)

func TestRenderAttributesStatic(t *testing.T) {
	attrs := []Attribute{
		{Name: "href", Value: "/x"},
		{Name: "title", Value: "t"},
	}
	got := renderAttributes(attrs, nil, NewDefaultOptions())
	want := `{:href => "/x", :title => "t"}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesPreservesDocumentOrder(t *testing.T) {
	attrs := []Attribute{
		{Name: "z", Value: "1"},
		{Name: "a", Value: "2"},
	}
	got := renderAttributes(attrs, nil, NewDefaultOptions())
	want := `{:z => "1", :a => "2"}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributesSkipsEmptyAndConsumed(t *testing.T) {
	attrs := []Attribute{
		{Name: "id", Value: "x"},
		{Name: "hidden", Value: ""},
		{Name: "title", Value: "t"},
	}
	consumed := map[string]bool{"id": true}
	got := renderAttributes(attrs, consumed, NewDefaultOptions())
	want := `{:title => "t"}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := renderAttributes([]Attribute{{Name: "hidden", Value: ""}}, nil, NewDefaultOptions()); got != "" {
		t.Errorf("expected empty rendering, got %q", got)
	}
}

func TestRenderAttributesQuotesNonIdentifierKeys(t *testing.T) {
	attrs := []Attribute{{Name: "data-foo", Value: "1"}}
	got := renderAttributes(attrs, nil, NewDefaultOptions())
	want := `{"data-foo" => "1"}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributeValuePureDynamic(t *testing.T) {
	opts := &Options{TemplatingTags: true}
	got := renderAttributeValue("<haml:loud> x </haml:loud>", opts)
	if got != "x" {
		t.Errorf("got %q, want bare expression x", got)
	}
}

func TestRenderAttributeValueInterpolated(t *testing.T) {
	opts := &Options{TemplatingTags: true}
	got := renderAttributeValue("prefix <haml:loud> x </haml:loud> suffix", opts)
	want := `"prefix #{x} suffix"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributeValueInterpolatedEscapesStaticText(t *testing.T) {
	opts := &Options{TemplatingTags: true}

	got := renderAttributeValue(`say "hi" <haml:loud> x </haml:loud>`, opts)
	want := `"say \"hi\" #{x}"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = renderAttributeValue(`a\b #{no} <haml:loud> x </haml:loud>`, opts)
	want = `"a\\b \#{no} #{x}"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAttributeValueStaticWithoutTemplatingMode(t *testing.T) {
	// Outside templating mode a wrapper-shaped value is literal text.
	got := renderAttributeValue("<haml:loud> x </haml:loud>", NewDefaultOptions())
	want := `"<haml:loud> x </haml:loud>"`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStaticAttributeRejectsDynamicShorthand(t *testing.T) {
	opts := &Options{TemplatingTags: true}
	n := &Node{
		Kind: KindElement,
		Tag:  "div",
		Attr: []Attribute{
			{Name: "id", Value: "<haml:loud> dyn </haml:loud>"},
			{Name: "class", Value: "box"},
		},
	}

	if _, ok := staticAttribute(n, "id", opts); ok {
		t.Error("dynamic id must not qualify for shorthand")
	}
	if v, ok := staticAttribute(n, "class", opts); !ok || v != "box" {
		t.Errorf("static class should qualify, got %q, %v", v, ok)
	}
	if _, ok := staticAttribute(n, "missing", opts); ok {
		t.Error("absent attribute must not qualify")
	}
	empty := &Node{Kind: KindElement, Tag: "div", Attr: []Attribute{{Name: "id", Value: ""}}}
	if _, ok := staticAttribute(empty, "id", opts); ok {
		t.Error("empty attribute must not qualify")
	}
}
