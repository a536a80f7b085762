package chat

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

const (
	ChatPath       = "/api/chat"
	LegacyChatPath = "/monk"
	ResetPath      = "/api/reset"

	// DefaultDevPort is where the backend listens when the page is not
	// served from a standard port.
	DefaultDevPort = 5000
)

// Endpoints holds the absolute URLs the client talks to.
// Reset is empty when the deployment has no reset endpoint.
type Endpoints struct {
	Chat  string
	Reset string
}

// ResolveEndpoints derives the chat and reset URLs from the origin the page
// is served from. A standard port (none, 80 or 443) keeps requests on the
// same origin; any other port targets devPort on the same hostname.
// The legacy variant posts to /monk and has no reset endpoint.
func ResolveEndpoints(origin string, devPort int, legacy bool) (Endpoints, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return Endpoints{}, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return Endpoints{}, fmt.Errorf("origin must be absolute, got %q", origin)
	}
	if devPort <= 0 {
		devPort = DefaultDevPort
	}

	base := &url.URL{Scheme: u.Scheme, Host: u.Host}
	switch u.Port() {
	case "", "80", "443":
	default:
		base = &url.URL{
			Scheme: "http",
			Host:   net.JoinHostPort(u.Hostname(), strconv.Itoa(devPort)),
		}
	}

	chatPath := ChatPath
	if legacy {
		chatPath = LegacyChatPath
	}

	eps := Endpoints{
		Chat: base.ResolveReference(&url.URL{Path: chatPath}).String(),
	}
	if !legacy {
		eps.Reset = base.ResolveReference(&url.URL{Path: ResetPath}).String()
	}
	return eps, nil
}
