package chat

import "context"

// Role identifies who a rendered message belongs to.
type Role string

const (
	RoleSender    Role = "sender"
	RoleRecipient Role = "recipient"
)

// Message is one entry of the conversation as handed to a Renderer.
type Message struct {
	Text   string
	Role   Role
	Failed bool // reply describes a failed request
}

// ChatRequest is the JSON body posted to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success envelope returned by the chat endpoint.
type ChatResponse struct {
	Response string `json:"response"`
}

// Renderer receives every message the client produces.
// Render is a pure append; Clear empties the history container.
// Implementations must be safe for concurrent use since overlapping
// submits render from their own goroutines.
type Renderer interface {
	Render(msg Message)
	Clear()
}

// Handler is the surface a UI adapter drives. *Client implements it.
type Handler interface {
	OnSubmit(ctx context.Context, text string)
	OnReset(ctx context.Context)
}
