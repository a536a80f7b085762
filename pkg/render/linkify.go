package render

import (
	"html"
	"regexp"
	"strings"
)

var (
	// urlPattern stops at whitespace, brackets and quotes. Trailing
	// punctuation and escaped delimiters are trimmed afterwards by trimURL.
	urlPattern = regexp.MustCompile(`https?://[^\s<>"'()\[\]{}]+`)

	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// anchorPattern finds anchors produced by an earlier linkify pass.
	// Escaped text never contains a raw '<', so only generated markup matches.
	anchorPattern = regexp.MustCompile(`(?is)<a\s[^>]*>.*?</a>`)

	trailingEntity = regexp.MustCompile(`&#?[A-Za-z0-9]+;$`)
)

// escapedStops are escaped characters that end a URL in escaped text.
var escapedStops = []string{"&lt;", "&gt;", "&#34;", "&#39;", "&quot;"}

const trailingPunct = ".,;:!?"

// Escape HTML-escapes &, <, >, " and '.
func Escape(text string) string {
	return html.EscapeString(text)
}

// Enrich turns raw recipient text into safe markup: escape first, then
// wrap URLs, then wrap emails that are not already inside an anchor.
func Enrich(text string) string {
	return Linkify(Escape(text))
}

// Linkify wraps URLs and emails in already-escaped text. Existing anchors
// are left untouched, so Linkify(Linkify(s)) == Linkify(s).
func Linkify(escaped string) string {
	return LinkifyEmails(LinkifyURLs(escaped))
}

// LinkifyURLs wraps http(s) URLs in anchors that open in a new context
// without opener or referrer leakage.
func LinkifyURLs(escaped string) string {
	return outsideAnchors(escaped, func(seg string) string {
		return replaceMatches(seg, urlPattern, trimURL, func(u string) string {
			return `<a href="` + u + `" target="_blank" rel="noopener noreferrer">` + u + `</a>`
		})
	})
}

// LinkifyEmails wraps email addresses in mailto: anchors.
func LinkifyEmails(escaped string) string {
	return outsideAnchors(escaped, func(seg string) string {
		return emailPattern.ReplaceAllStringFunc(seg, func(addr string) string {
			return `<a href="mailto:` + addr + `">` + addr + `</a>`
		})
	})
}

// outsideAnchors applies fn to every segment of s that lies outside an anchor.
func outsideAnchors(s string, fn func(string) string) string {
	locs := anchorPattern.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return fn(s)
	}

	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(fn(s[last:loc[0]]))
		sb.WriteString(s[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(fn(s[last:]))
	return sb.String()
}

// replaceMatches wraps the trimmed part of every match and keeps the
// trimmed-off tail as plain text.
func replaceMatches(s string, re *regexp.Regexp, trim func(string) string, wrap func(string) string) string {
	locs := re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}

	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(s[last:loc[0]])
		match := s[loc[0]:loc[1]]
		if kept := trim(match); kept != "" {
			sb.WriteString(wrap(kept))
			sb.WriteString(match[len(kept):])
		} else {
			sb.WriteString(match)
		}
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// trimURL cuts a URL match at the first escaped delimiter and drops
// trailing punctuation. It returns "" when nothing but the scheme is left.
func trimURL(match string) string {
	u := match
	for _, stop := range escapedStops {
		if i := strings.Index(u, stop); i >= 0 {
			u = u[:i]
		}
	}

	for len(u) > 0 {
		if loc := trailingEntity.FindStringIndex(u); loc != nil && strings.HasSuffix(u, ";") {
			// a dangling entity such as "&amp;" is never part of the link
			u = u[:loc[0]]
			continue
		}
		if strings.ContainsRune(trailingPunct, rune(u[len(u)-1])) {
			u = u[:len(u)-1]
			continue
		}
		break
	}

	if strings.HasSuffix(u, "://") || !strings.Contains(u, "://") {
		return ""
	}
	return u
}
