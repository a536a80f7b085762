package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"cpmonk/pkg/chat"

	"github.com/charmbracelet/x/ansi"
)

// Link is a URL or email found in raw text. Start and End are byte offsets.
type Link struct {
	Start int
	End   int
	Href  string
}

// FindLinks locates the same URLs and emails that Enrich would wrap, in
// unescaped text.
func FindLinks(raw string) []Link {
	var links []Link
	for _, loc := range urlPattern.FindAllStringIndex(raw, -1) {
		u := trimURL(raw[loc[0]:loc[1]])
		if u == "" {
			continue
		}
		links = append(links, Link{Start: loc[0], End: loc[0] + len(u), Href: u})
	}

	for _, loc := range emailPattern.FindAllStringIndex(raw, -1) {
		if overlaps(links, loc[0], loc[1]) {
			continue
		}
		addr := raw[loc[0]:loc[1]]
		links = append(links, Link{Start: loc[0], End: loc[1], Href: "mailto:" + addr})
	}

	sort.Slice(links, func(i, j int) bool { return links[i].Start < links[j].Start })
	return links
}

func overlaps(links []Link, start, end int) bool {
	for _, l := range links {
		if start < l.End && end > l.Start {
			return true
		}
	}
	return false
}

// Hyperlink wraps every link in raw with OSC 8 sequences so terminals that
// support them make the text clickable.
func Hyperlink(raw string) string {
	links := FindLinks(raw)
	if len(links) == 0 {
		return raw
	}

	var sb strings.Builder
	last := 0
	for _, l := range links {
		sb.WriteString(raw[last:l.Start])
		sb.WriteString(ansi.SetHyperlink(l.Href))
		sb.WriteString(raw[l.Start:l.End])
		sb.WriteString(ansi.ResetHyperlink())
		last = l.End
	}
	sb.WriteString(raw[last:])
	return sb.String()
}

// Sanitize strips escape sequences and control characters from text bound
// for a terminal. Newlines and tabs are kept.
func Sanitize(text string) string {
	if text == "" {
		return text
	}
	text = ansi.Strip(text)
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\n', '\t':
			sb.WriteRune(r)
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// LineRenderer writes messages as plain lines, for pipes and one-shot commands.
type LineRenderer struct {
	mu    sync.Mutex
	w     io.Writer
	links bool
	name  string
}

// NewLineRenderer creates a line renderer. When links is true, URLs and
// emails in replies are emitted as OSC 8 hyperlinks.
func NewLineRenderer(w io.Writer, name string, links bool) *LineRenderer {
	if name == "" {
		name = "CP Monk"
	}
	return &LineRenderer{w: w, name: name, links: links}
}

// Render writes msg as one "who> text" line. Text is sanitized first so
// replies cannot drive the terminal.
func (r *LineRenderer) Render(msg chat.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()

	text := Sanitize(msg.Text)
	switch msg.Role {
	case chat.RoleSender:
		fmt.Fprintf(r.w, "you> %s\n", text)
	default:
		if r.links {
			text = Hyperlink(text)
		}
		fmt.Fprintf(r.w, "%s> %s\n", r.name, text)
	}
}

// Clear prints a separator; lines already written stay on screen.
func (r *LineRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, "--- conversation cleared ---")
}

// Multi fans every call out to each renderer in order.
type Multi []chat.Renderer

// Render passes msg to every renderer.
func (m Multi) Render(msg chat.Message) {
	for _, r := range m {
		r.Render(msg)
	}
}

// Clear clears every renderer.
func (m Multi) Clear() {
	for _, r := range m {
		r.Clear()
	}
}
