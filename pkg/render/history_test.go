package render

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"cpmonk/pkg/chat"

	"github.com/charmbracelet/x/exp/golden"
)

func newTestRenderer() (*HTMLRenderer, *History) {
	h := NewHistory()
	r := NewHTMLRenderer(h)
	n := 0
	r.newID = func() string {
		n++
		return fmt.Sprintf("n%d", n)
	}
	r.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return r, h
}

func TestHTMLRenderer_SenderIsEscaped(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "<script>alert(1)</script>", Role: chat.RoleSender})

	nodes := h.Nodes()
	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Text != "<script>alert(1)</script>" {
		t.Errorf("Expected literal text preserved, got %q", nodes[0].Text)
	}
	if nodes[0].HTML != "&lt;script&gt;alert(1)&lt;/script&gt;" {
		t.Errorf("Expected escaped markup, got %q", nodes[0].HTML)
	}
	if got := nodes[0].Fragment(); got != `<div class="message sender">&lt;script&gt;alert(1)&lt;/script&gt;</div>` {
		t.Errorf("Unexpected fragment: %q", got)
	}
}

func TestHTMLRenderer_SenderLinksAreNotEnriched(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "https://a.io", Role: chat.RoleSender})
	if got := h.Nodes()[0].HTML; got != "https://a.io" {
		t.Errorf("Expected sender text without anchors, got %q", got)
	}
}

func TestHTMLRenderer_RecipientIsEnriched(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "hello https://a.b/c bob@x.com", Role: chat.RoleRecipient})

	got := h.Nodes()[0].HTML
	if !strings.Contains(got, `<a href="https://a.b/c" target="_blank" rel="noopener noreferrer">https://a.b/c</a>`) {
		t.Errorf("Expected URL anchor, got %q", got)
	}
	if !strings.Contains(got, `<a href="mailto:bob@x.com">bob@x.com</a>`) {
		t.Errorf("Expected mailto anchor, got %q", got)
	}
}

func TestHTMLRenderer_RenderTwiceAppendsTwice(t *testing.T) {
	r, h := newTestRenderer()
	msg := chat.Message{Text: "same", Role: chat.RoleRecipient}
	r.Render(msg)
	r.Render(msg)

	nodes := h.Nodes()
	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}
	if nodes[0].ID == nodes[1].ID {
		t.Errorf("Expected distinct node IDs, got %q twice", nodes[0].ID)
	}
	if h.ScrollIndex() != 1 {
		t.Errorf("Expected scroll anchored to newest node, got %d", h.ScrollIndex())
	}
}

func TestHTMLRenderer_Clear(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "one", Role: chat.RoleSender})
	r.Render(chat.Message{Text: "two", Role: chat.RoleRecipient})
	r.Clear()

	if h.Len() != 0 {
		t.Errorf("Expected empty history, got %d nodes", h.Len())
	}
	if h.ScrollIndex() != -1 {
		t.Errorf("Expected scroll index -1, got %d", h.ScrollIndex())
	}
	if h.HTML() != "" {
		t.Errorf("Expected empty markup, got %q", h.HTML())
	}
}

func TestHistory_Last(t *testing.T) {
	r, h := newTestRenderer()
	if _, ok := h.Last(chat.RoleRecipient); ok {
		t.Fatal("Expected no recipient node in empty history")
	}
	r.Render(chat.Message{Text: "first", Role: chat.RoleRecipient})
	r.Render(chat.Message{Text: "question", Role: chat.RoleSender})

	n, ok := h.Last(chat.RoleRecipient)
	if !ok || n.Text != "first" {
		t.Errorf("Expected last recipient node 'first', got %+v (ok=%v)", n, ok)
	}
}

func TestHistory_ChangesCoalesce(t *testing.T) {
	h := NewHistory()
	h.Append(Node{ID: "a"})
	h.Append(Node{ID: "b"})

	select {
	case <-h.Changes():
	default:
		t.Fatal("Expected a pending change signal")
	}
	select {
	case <-h.Changes():
		t.Fatal("Expected bursts to coalesce into one signal")
	default:
	}
}

func TestHistory_ConcurrentAppend(t *testing.T) {
	r, h := newTestRenderer()
	r.newID = func() string { return "x" }

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Render(chat.Message{Text: fmt.Sprintf("m%d", i), Role: chat.RoleRecipient})
		}(i)
	}
	wg.Wait()

	if h.Len() != 50 {
		t.Errorf("Expected 50 nodes, got %d", h.Len())
	}
}

func TestWriteTranscriptGolden(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "hi <b>", Role: chat.RoleSender})
	r.Render(chat.Message{Text: "see https://a.io, or mail x@y.io", Role: chat.RoleRecipient})

	var buf bytes.Buffer
	if err := WriteTranscript(&buf, "CP Monk transcript", h); err != nil {
		t.Fatalf("WriteTranscript failed: %v", err)
	}
	golden.RequireEqual(t, buf.Bytes())
}

func TestLineRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineRenderer(&buf, "", false)
	r.Render(chat.Message{Text: "hi", Role: chat.RoleSender})
	r.Render(chat.Message{Text: "see https://a.io", Role: chat.RoleRecipient})
	r.Clear()

	want := "you> hi\nCP Monk> see https://a.io\n--- conversation cleared ---\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestLineRenderer_DropsEscapeSequences(t *testing.T) {
	var buf bytes.Buffer
	r := NewLineRenderer(&buf, "Monk", false)
	r.Render(chat.Message{Text: "typed \x1b[2J", Role: chat.RoleSender})
	r.Render(chat.Message{Text: "hi \x1b]52;c;cm0gLXJmIH4=\x07there\x1b[2J", Role: chat.RoleRecipient})

	want := "you> typed \nMonk> hi there\n"
	if buf.String() != want {
		t.Errorf("Expected %q, got %q", want, buf.String())
	}
}

func TestHTMLRenderer_KeepsFailedFlag(t *testing.T) {
	r, h := newTestRenderer()
	r.Render(chat.Message{Text: "Error: boom", Role: chat.RoleRecipient, Failed: true})

	node, ok := h.Last(chat.RoleRecipient)
	if !ok || !node.Failed {
		t.Errorf("Expected failed node, got %+v", node)
	}
}

func TestMultiFansOut(t *testing.T) {
	r1, h1 := newTestRenderer()
	r2, h2 := newTestRenderer()
	m := Multi{r1, r2}

	m.Render(chat.Message{Text: "x", Role: chat.RoleSender})
	if h1.Len() != 1 || h2.Len() != 1 {
		t.Errorf("Expected both histories to receive the message, got %d and %d", h1.Len(), h2.Len())
	}
	m.Clear()
	if h1.Len() != 0 || h2.Len() != 0 {
		t.Errorf("Expected both histories cleared, got %d and %d", h1.Len(), h2.Len())
	}
}
