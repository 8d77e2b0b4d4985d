package haml

import (
	"testing"
)

func TestFormatTextEmpty(t *testing.T) {
	for _, depth := range []int{0, 1, 5} {
		if got := formatText("", depth); got != "" {
			t.Errorf("formatText(\"\", %d) = %q, want empty", depth, got)
		}
		if got := formatText("  \n\t ", depth); got != "" {
			t.Errorf("formatText(whitespace, %d) = %q, want empty", depth, got)
		}
	}
}

func TestFormatTextTrimsAndIndents(t *testing.T) {
	if got, want := formatText("  hello  ", 0), "hello\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := formatText("hello\n  world", 1), "  hello\n  world\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatTextEscapesReservedMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"%foo", "\\%foo\n"},
		{".cls", "\\.cls\n"},
		{"#frag", "\\#frag\n"},
		{"- item", "\\- item\n"},
		{"= sum", "\\= sum\n"},
		{"plain", "plain\n"},
	}
	for _, tt := range tests {
		if got := formatText(tt.in, 0); got != tt.want {
			t.Errorf("formatText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTextEscapesInterpolation(t *testing.T) {
	got := formatText("#{foo}", 0)
	want := "\\#{foo}\n"
	if got != want {
		t.Errorf("formatText(%q) = %q, want %q", "#{foo}", got, want)
	}

	got = formatText("value is #{x} here", 0)
	want = "value is \\#{x} here\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTabulate(t *testing.T) {
	if got := tabulate(0); got != "" {
		t.Errorf("tabulate(0) = %q", got)
	}
	if got := tabulate(3); got != "      " {
		t.Errorf("tabulate(3) = %q", got)
	}
}
