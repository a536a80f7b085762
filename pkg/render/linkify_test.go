package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestEscape(t *testing.T) {
	got := Escape(`<b>"hi" & 'bye'</b>`)
	want := "&lt;b&gt;&#34;hi&#34; &amp; &#39;bye&#39;&lt;/b&gt;"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEnrich(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text",
			in:   "hello there",
			want: "hello there",
		},
		{
			name: "url and email",
			in:   "hello https://a.b/c bob@x.com",
			want: `hello <a href="https://a.b/c" target="_blank" rel="noopener noreferrer">https://a.b/c</a> ` +
				`<a href="mailto:bob@x.com">bob@x.com</a>`,
		},
		{
			name: "markup is escaped",
			in:   "1 < 2",
			want: "1 &lt; 2",
		},
		{
			name: "trailing punctuation stays outside",
			in:   "see https://example.com/docs.",
			want: `see <a href="https://example.com/docs" target="_blank" rel="noopener noreferrer">https://example.com/docs</a>.`,
		},
		{
			name: "url in angle brackets",
			in:   "<https://example.com>",
			want: `&lt;<a href="https://example.com" target="_blank" rel="noopener noreferrer">https://example.com</a>&gt;`,
		},
		{
			name: "query string keeps escaped ampersand",
			in:   "https://x.io/?a=1&b=2",
			want: `<a href="https://x.io/?a=1&amp;b=2" target="_blank" rel="noopener noreferrer">https://x.io/?a=1&amp;b=2</a>`,
		},
		{
			name: "bare scheme is not linked",
			in:   "try https:// later",
			want: "try https:// later",
		},
		{
			name: "email at end of sentence",
			in:   "mail hello@cyberpunkmonk.com.",
			want: `mail <a href="mailto:hello@cyberpunkmonk.com">hello@cyberpunkmonk.com</a>.`,
		},
		{
			name: "email inside url is left to the url anchor",
			in:   "https://x.io/u/bob@x.com",
			want: `<a href="https://x.io/u/bob@x.com" target="_blank" rel="noopener noreferrer">https://x.io/u/bob@x.com</a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enrich(tt.in); got != tt.want {
				t.Errorf("Enrich(%q)\n got: %s\nwant: %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnrich_ScriptNeverSurvives(t *testing.T) {
	got := Enrich(`<script>alert("x")</script> https://evil.io"onmouseover="x`)
	if strings.Contains(got, "<script") {
		t.Errorf("Expected script tag to be escaped, got %q", got)
	}
	if strings.Contains(got, `"onmouseover`) {
		t.Errorf("Expected quote to end the URL, got %q", got)
	}
}

func TestLinkifyIdempotent(t *testing.T) {
	inputs := []string{
		"hello https://a.b/c bob@x.com",
		"contact https://cyberpunkmonk.com/contact or hello@cyberpunkmonk.com",
		"nothing to link",
	}
	for _, in := range inputs {
		once := Enrich(in)
		twice := Linkify(once)
		if once != twice {
			t.Errorf("Linkify not idempotent for %q\nonce:  %s\ntwice: %s", in, once, twice)
		}
	}
}

func TestFindLinks(t *testing.T) {
	raw := "go to https://a.io/x, or mail me@b.io"
	links := FindLinks(raw)
	if len(links) != 2 {
		t.Fatalf("Expected 2 links, got %d: %+v", len(links), links)
	}
	if links[0].Href != "https://a.io/x" || raw[links[0].Start:links[0].End] != "https://a.io/x" {
		t.Errorf("Unexpected first link: %+v", links[0])
	}
	if links[1].Href != "mailto:me@b.io" || raw[links[1].Start:links[1].End] != "me@b.io" {
		t.Errorf("Unexpected second link: %+v", links[1])
	}
}

func TestHyperlink(t *testing.T) {
	got := Hyperlink("see https://a.io now")
	want := "see " + ansi.SetHyperlink("https://a.io") + "https://a.io" + ansi.ResetHyperlink() + " now"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	if got := Hyperlink("no links"); got != "no links" {
		t.Errorf("Expected text unchanged, got %q", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello", want: "hello"},
		{name: "newlines and tabs kept", in: "a\n\tb", want: "a\n\tb"},
		{name: "clipboard write", in: "x\x1b]52;c;cm0gLXJmIH4=\x07y", want: "xy"},
		{name: "clear screen", in: "\x1b[2Jtext", want: "text"},
		{name: "forged hyperlink", in: "\x1b]8;;https://evil.test\x07click\x1b]8;;\x07", want: "click"},
		{name: "bare controls", in: "a\x00b\x07c\rd\x7f", want: "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
