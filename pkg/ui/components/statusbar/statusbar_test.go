package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestNewStatusBarView(t *testing.T) {
	sb := NewStatusBarView()

	if sb == nil {
		t.Fatal("NewStatusBarView() returned nil")
	}

	if sb.width != 80 {
		t.Errorf("Expected default width 80, got %d", sb.width)
	}
}

func TestStatusBarView_ShowsEndpoint(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetEndpoint("https://monk.example.com/api/chat")

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "monk.example.com/api/chat") {
		t.Errorf("Expected endpoint in rendered output, got %q", rendered)
	}
	if strings.Contains(rendered, "https://") {
		t.Error("Expected scheme to be dropped")
	}
}

func TestStatusBarView_MessageReplacesEndpoint(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetEndpoint("https://monk.example.com/api/chat")
	sb.SetMessage("Copied reply")

	rendered := ansi.Strip(sb.Render())
	if !strings.Contains(rendered, "Copied reply") {
		t.Error("Expected message in rendered output")
	}
	if strings.Contains(rendered, "monk.example.com") {
		t.Error("Expected message to replace endpoint")
	}
}

func TestStatusBarView_Pending(t *testing.T) {
	sb := NewStatusBarView()
	sb.SetWidth(100)
	sb.SetPending(2)

	if rendered := ansi.Strip(sb.Render()); !strings.Contains(rendered, "waiting on 2") {
		t.Errorf("Expected pending count, got %q", rendered)
	}

	sb.SetPending(-1)
	if rendered := ansi.Strip(sb.Render()); strings.Contains(rendered, "waiting") {
		t.Errorf("Expected no pending count, got %q", rendered)
	}
}

func TestStatusBarView_FillsWidth(t *testing.T) {
	for _, width := range []int{20, 60, 120} {
		sb := NewStatusBarView()
		sb.SetWidth(width)
		sb.SetEndpoint("http://localhost:5000/api/chat")

		if got := ansi.StringWidth(sb.Render()); got != width {
			t.Errorf("width %d: expected rendered width %d, got %d", width, width, got)
		}
	}
}

func TestTruncateEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		max      int
		want     string
	}{
		{"fits", "https://a.io/api/chat", 40, "a.io/api/chat"},
		{"collapse middle", "https://monk.example.com/v1/api/chat", 26, "monk.example.com/../chat"},
		{"last segment only", "https://monk.example.com/v1/api/chat", 21, "monk.example.com/chat"},
		{"zero width", "https://a.io", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateEndpoint(tt.endpoint, tt.max); got != tt.want {
				t.Errorf("truncateEndpoint(%q, %d) = %q, want %q", tt.endpoint, tt.max, got, tt.want)
			}
		})
	}
}
