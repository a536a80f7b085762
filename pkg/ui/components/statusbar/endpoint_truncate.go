package statusbar

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncateEndpoint shortens an endpoint URL for display. The scheme is
// dropped first, then middle path segments collapse to "..", and only then
// is the host itself cut.
func truncateEndpoint(endpoint string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	display := endpoint
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		display = u.Host + u.EscapedPath()
	}
	if ansi.StringWidth(display) <= maxWidth {
		return display
	}

	host, rest, found := strings.Cut(display, "/")
	if !found || rest == "" {
		return ansi.Truncate(display, maxWidth, "..")
	}

	segments := strings.Split(rest, "/")
	last := segments[len(segments)-1]
	if len(segments) > 1 {
		candidate := host + "/../" + last
		if ansi.StringWidth(candidate) <= maxWidth {
			return candidate
		}
	}

	candidate := host + "/" + last
	if ansi.StringWidth(candidate) <= maxWidth {
		return candidate
	}
	return ansi.Truncate(host, maxWidth, "..")
}
