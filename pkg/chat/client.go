package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"cpmonk/pkg/logging"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
)

const (
	DefaultTimeout   = 60 * time.Second
	DefaultUserAgent = "cpmonk/1.0"

	// NoResponseText is rendered when a 2xx body carries no reply.
	NoResponseText = "No response from CP Monk"

	ResetConfirmText  = "Session reset. The Monk is ready for a fresh conversation."
	ResetDegradedText = "Could not reach the server to reset the session. " +
		"The conversation was cleared on this device only."

	maxResponseBytes = 1 << 20
)

// ServiceInfo names the service and its contact links in friendly messages.
type ServiceInfo struct {
	Name         string
	ContactURL   string
	ContactEmail string
}

// Config is fixed at construction and never changes for the client's lifetime.
type Config struct {
	Endpoint      string
	ResetEndpoint string
	Service       ServiceInfo
	Timeout       time.Duration
	UserAgent     string

	// SessionAffinity attaches a cookie jar so the backend can tie the
	// chat and reset calls to one session.
	SessionAffinity bool

	// HTTPClient overrides the client built from Timeout and SessionAffinity.
	HTTPClient *http.Client
}

// Client submits user input to the chat endpoint and renders every outcome.
type Client struct {
	cfg        Config
	httpClient *http.Client
	renderer   Renderer
}

// NewClient creates a chat client that renders through r.
func NewClient(cfg Config, r Renderer) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("chat endpoint is required")
	}
	if r == nil {
		return nil, errors.New("renderer is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = "CP Monk"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
		if cfg.SessionAffinity {
			jar, err := cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("failed to create cookie jar: %w", err)
			}
			httpClient.Jar = jar
		}
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		renderer:   r,
	}, nil
}

// Endpoint returns the chat endpoint the client posts to.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// OnSubmit implements Handler.
func (c *Client) OnSubmit(ctx context.Context, text string) {
	c.Submit(ctx, text)
}

// OnReset implements Handler.
func (c *Client) OnReset(ctx context.Context) {
	c.Reset(ctx)
}

// Submit echoes the trimmed input as a sender message, posts it, and renders
// exactly one recipient message for the outcome. Blank input is ignored.
// Submit blocks until the outcome is rendered; callers that must stay
// responsive run it on their own goroutine.
func (c *Client) Submit(ctx context.Context, rawInput string) {
	text := strings.TrimSpace(rawInput)
	if text == "" {
		slog.Debug("chat_submit_empty")
		return
	}

	c.renderer.Render(Message{Text: text, Role: RoleSender})

	reply, err := c.Send(ctx, text)
	if err != nil {
		c.renderer.Render(Message{Text: c.Describe(err), Role: RoleRecipient, Failed: true})
		return
	}
	c.renderer.Render(Message{Text: reply, Role: RoleRecipient})
}

// Send performs one POST to the chat endpoint and returns the reply text.
// Failures are *NetworkError, *ServerError or *QuotaError.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyInput
	}

	payload, err := json.Marshal(ChatRequest{Message: text})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()
	logger := slog.With("request_id", requestID)
	logger.Info("chat_submit_start",
		"endpoint", c.cfg.Endpoint,
		"message_length", len(text))
	logger.Log(ctx, logging.LevelTrace, "chat_request_body", "json", string(payload))

	start := time.Now()
	status, header, body, err := c.post(ctx, c.cfg.Endpoint, requestID, payload)
	if err != nil {
		logger.Error("chat_request_failed", "error", err)
		return "", &NetworkError{Err: err}
	}

	logger.Debug("chat_response_received",
		"status_code", status,
		"response_size", len(body),
		"latency_ms", time.Since(start).Milliseconds())
	logger.Log(ctx, logging.LevelTrace, "chat_response_body", "body", string(body))

	if status < 200 || status > 299 {
		classified := Classify(NewServerError(status, header, body))
		var quota *QuotaError
		if errors.As(classified, &quota) {
			logger.Warn("chat_quota_exceeded",
				"status_code", status,
				"retry_after", quota.RetryAfter().String())
		} else {
			logger.Error("chat_server_error",
				"status_code", status,
				"detail", truncate(classified.(*ServerError).Detail, 200))
		}
		return "", classified
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.Error("chat_response_invalid", "error", err)
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if strings.TrimSpace(resp.Response) == "" {
		logger.Warn("chat_response_empty")
		return NoResponseText, nil
	}

	logger.Info("chat_submit_done", "reply_length", len(resp.Response))
	return resp.Response, nil
}

// Reset asks the backend to drop the session, then clears the history.
// A missing or failing reset endpoint degrades to a local clear; either way
// the history ends empty apart from a single notice, and nothing is returned.
func (c *Client) Reset(ctx context.Context) {
	err := c.resetRemote(ctx)

	c.renderer.Clear()
	if err != nil {
		slog.Warn("chat_reset_degraded", "error", err)
		c.renderer.Render(Message{Text: ResetDegradedText, Role: RoleRecipient})
		return
	}

	slog.Info("chat_reset_done")
	c.renderer.Render(Message{Text: ResetConfirmText, Role: RoleRecipient})
}

func (c *Client) resetRemote(ctx context.Context) error {
	if c.cfg.ResetEndpoint == "" {
		return fmt.Errorf("%w: no reset endpoint configured", ErrResetUnavailable)
	}

	status, _, _, err := c.post(ctx, c.cfg.ResetEndpoint, uuid.NewString(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResetUnavailable, err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("%w: HTTP %d", ErrResetUnavailable, status)
	}
	return nil
}

// post sends a POST with an optional JSON payload and reads the whole body.
func (c *Client) post(ctx context.Context, endpoint, requestID string, payload []byte) (int, http.Header, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, reader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

// Describe turns a Send failure into the text rendered for the user.
func (c *Client) Describe(err error) string {
	var quota *QuotaError
	if errors.As(err, &quota) {
		return QuotaMessage(c.cfg.Service, quota.RetryAfter())
	}
	var server *ServerError
	if errors.As(err, &server) {
		return server.Error()
	}
	return "Error: " + err.Error()
}

func truncate(s string, n int) string {
	return ansi.Truncate(s, n, "...")
}
