package render

import (
	"time"

	"cpmonk/pkg/chat"

	"github.com/google/uuid"
)

// HTMLRenderer renders chat messages into a History.
type HTMLRenderer struct {
	history *History
	newID   func() string
	now     func() time.Time
}

// NewHTMLRenderer creates a renderer that appends to h.
func NewHTMLRenderer(h *History) *HTMLRenderer {
	return &HTMLRenderer{
		history: h,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

// History returns the container the renderer appends to.
func (r *HTMLRenderer) History() *History {
	return r.history
}

// Render appends msg as a new node. Rendering the same message twice
// yields two nodes.
func (r *HTMLRenderer) Render(msg chat.Message) {
	r.history.Append(Node{
		ID:        r.newID(),
		Role:      msg.Role,
		Text:      msg.Text,
		HTML:      MessageHTML(msg),
		Failed:    msg.Failed,
		CreatedAt: r.now(),
	})
}

// Clear empties the history container.
func (r *HTMLRenderer) Clear() {
	r.history.Clear()
}

// MessageHTML returns the inner markup for msg. Sender text is only
// escaped, never interpreted; recipient text is escaped and linkified.
func MessageHTML(msg chat.Message) string {
	if msg.Role == chat.RoleRecipient {
		return Enrich(msg.Text)
	}
	return Escape(msg.Text)
}
