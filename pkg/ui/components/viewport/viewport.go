package viewport

import (
	"strings"

	"cpmonk/pkg/chat"
	"cpmonk/pkg/render"
	"cpmonk/pkg/ui/components/utils"
	"cpmonk/pkg/ui/components/welcome"
	"cpmonk/pkg/ui/styles"

	"charm.land/bubbles/v2/viewport"
	"github.com/charmbracelet/x/ansi"
)

const senderLabel = "you"

// ChatViewport wraps Bubble Tea's viewport for displaying the transcript
type ChatViewport struct {
	Viewport viewport.Model
	nodes    []render.Node
	service  string
	links    bool
	ready    bool
}

// NewChatViewport creates a transcript viewport. service labels replies;
// links enables OSC 8 hyperlinks for URLs and emails in replies.
func NewChatViewport(service string, links bool) ChatViewport {
	if service == "" {
		service = "CP Monk"
	}
	return ChatViewport{
		Viewport: viewport.New(),
		service:  service,
		links:    links,
	}
}

// SetSize updates the viewport dimensions and re-wraps the transcript
func (v *ChatViewport) SetSize(width, height int) {
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(height)
	v.ready = true
	v.refresh(v.IsAtBottom())
}

// SetNodes replaces the transcript. The view follows the newest message
// unless the user has scrolled up and the newest message is a reply.
func (v *ChatViewport) SetNodes(nodes []render.Node) {
	follow := !v.ready || len(v.nodes) == 0 || v.IsAtBottom()
	if n := len(nodes); n > 0 && nodes[n-1].Role == chat.RoleSender {
		follow = true
	}
	v.nodes = nodes
	v.refresh(follow)
}

// Len returns the number of messages shown.
func (v *ChatViewport) Len() int {
	return len(v.nodes)
}

func (v *ChatViewport) refresh(follow bool) {
	width := v.Viewport.Width()
	if len(v.nodes) == 0 {
		v.Viewport.SetContent(welcome.WelcomeMessage(v.service))
		v.Viewport.GotoTop()
		return
	}
	v.Viewport.SetContent(RenderNodes(v.nodes, width, v.service, v.links))
	if follow {
		v.Viewport.GotoBottom()
	}
}

// RenderNodes lays out nodes as labelled, wrapped terminal lines with a
// blank line between messages. Escape sequences in node text are dropped.
func RenderNodes(nodes []render.Node, width int, service string, links bool) string {
	labelWidth := ansi.StringWidth(service)
	if w := ansi.StringWidth(senderLabel); w > labelWidth {
		labelWidth = w
	}
	indent := labelWidth + 2 // label plus ": "

	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		label, style := senderLabel, styles.SenderLabelStyle
		text := render.Sanitize(n.Text)
		if n.Role == chat.RoleRecipient {
			label, style = service, styles.RecipientLabelStyle
			if n.Failed {
				style = styles.ErrorLabelStyle
			}
			if links {
				text = render.Hyperlink(text)
			}
		}

		lines := utils.WrapIndented(text, width, indent)
		head := style.Render(label+":") + strings.Repeat(" ", indent-ansi.StringWidth(label)-1)
		lines[0] = head + styles.TextStyle.Render(lines[0])
		for i := 1; i < len(lines); i++ {
			lines[i] = styles.TextStyle.Render(lines[i])
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the viewport
func (v *ChatViewport) View() string {
	if !v.ready {
		return "Loading..."
	}

	return v.Viewport.View()
}

// PageUp scrolls up one page
func (v *ChatViewport) PageUp() {
	v.Viewport.PageUp()
}

// PageDown scrolls down one page
func (v *ChatViewport) PageDown() {
	v.Viewport.PageDown()
}

// IsAtBottom returns true if scrolled to bottom
func (v *ChatViewport) IsAtBottom() bool {
	return v.Viewport.AtBottom()
}
