package render

import (
	"fmt"
	"html/template"
	"io"
)

var transcriptTemplate = template.Must(template.New("transcript").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { background: #0f0f1a; color: #e5e7eb; font-family: monospace; }
#chat-history { max-width: 48rem; margin: 2rem auto; }
.message { white-space: pre-wrap; margin: 0.5rem 0; padding: 0.5rem 0.75rem; border-radius: 0.5rem; }
.sender { background: #1e3a5f; text-align: right; }
.recipient { background: #2d1b3d; }
.recipient a { color: #f472b6; }
</style>
</head>
<body>
<div id="chat-history">
{{range .Nodes}}<div class="message {{.Role}}" id="msg-{{.ID}}">{{.Body}}</div>
{{end}}</div>
</body>
</html>
`))

type transcriptNode struct {
	ID   string
	Role string
	Body template.HTML
}

// WriteTranscript writes the history as a standalone HTML document.
func WriteTranscript(w io.Writer, title string, h *History) error {
	nodes := h.Nodes()
	data := struct {
		Title string
		Nodes []transcriptNode
	}{
		Title: title,
		Nodes: make([]transcriptNode, 0, len(nodes)),
	}
	for _, n := range nodes {
		data.Nodes = append(data.Nodes, transcriptNode{
			ID:   n.ID,
			Role: string(n.Role),
			// node markup was escaped when it was rendered
			Body: template.HTML(n.HTML),
		})
	}

	if err := transcriptTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render transcript: %w", err)
	}
	return nil
}
