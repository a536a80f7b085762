package render

import (
	"strings"
	"sync"
	"time"

	"cpmonk/pkg/chat"
)

// Node is one rendered entry of the conversation.
type Node struct {
	ID        string
	Role      chat.Role
	Text      string // literal text as received or typed
	HTML      string // inner markup: escaped for senders, enriched for recipients
	Failed    bool
	CreatedAt time.Time
}

// Fragment returns the node's markup as it appears in the history container.
func (n Node) Fragment() string {
	return `<div class="message ` + string(n.Role) + `">` + n.HTML + `</div>`
}

// History is the append-only, bottom-anchored container that holds the
// visible conversation. It is safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	nodes   []Node
	scroll  int
	changes chan struct{}
}

// NewHistory creates an empty history container.
func NewHistory() *History {
	return &History{
		scroll:  -1,
		changes: make(chan struct{}, 1),
	}
}

// Append adds a node at the bottom and moves the scroll anchor to it.
func (h *History) Append(n Node) {
	h.mu.Lock()
	h.nodes = append(h.nodes, n)
	h.scroll = len(h.nodes) - 1
	h.mu.Unlock()
	h.notify()
}

// Clear removes every node.
func (h *History) Clear() {
	h.mu.Lock()
	h.nodes = nil
	h.scroll = -1
	h.mu.Unlock()
	h.notify()
}

// Nodes returns a snapshot of the container, oldest first.
func (h *History) Nodes() []Node {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Node, len(h.nodes))
	copy(out, h.nodes)
	return out
}

// Len returns the number of nodes.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.nodes)
}

// ScrollIndex returns the index of the node the view is anchored to,
// always the newest one, or -1 when the history is empty.
func (h *History) ScrollIndex() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.scroll
}

// Last returns the newest node with the given role.
func (h *History) Last(role chat.Role) (Node, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for i := len(h.nodes) - 1; i >= 0; i-- {
		if h.nodes[i].Role == role {
			return h.nodes[i], true
		}
	}
	return Node{}, false
}

// HTML returns the markup of the whole container.
func (h *History) HTML() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var sb strings.Builder
	for _, n := range h.nodes {
		sb.WriteString(n.Fragment())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Changes delivers a signal after every append or clear. Bursts are
// coalesced into a single pending signal.
func (h *History) Changes() <-chan struct{} {
	return h.changes
}

func (h *History) notify() {
	select {
	case h.changes <- struct{}{}:
	default:
	}
}
