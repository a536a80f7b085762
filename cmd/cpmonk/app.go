package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"cpmonk/pkg/chat"
	"cpmonk/pkg/config"
	"cpmonk/pkg/logging"
	"cpmonk/pkg/render"
	"cpmonk/pkg/version"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries flag values, the loaded config and the process streams.
type app struct {
	configPath string
	origin     string
	legacy     bool

	cfg config.Config

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

// setup loads the config file, applies env and flag overrides, validates
// the result and starts logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cmd.Flags().Changed("origin") {
		cfg.Origin = a.origin
		// an explicit origin wins over a configured endpoint
		cfg.ChatEndpoint = ""
	}
	if cmd.Flags().Changed("legacy") {
		cfg.Legacy = a.legacy
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	a.cfg = cfg

	if _, err := logging.Init(cfg); err != nil {
		fmt.Fprintf(a.stderr, "Warning: logging disabled: %v\n", err)
	}
	slog.Info("cpmonk_start",
		"version", version.Summary(),
		"config", path,
		"command", cmd.Name(),
	)
	return nil
}

// endpoints returns the configured endpoints, deriving them from the origin
// unless a chat endpoint is set explicitly.
func endpoints(cfg config.Config) (chat.Endpoints, error) {
	var eps chat.Endpoints
	if cfg.ChatEndpoint != "" {
		eps.Chat = cfg.ChatEndpoint
	} else {
		resolved, err := chat.ResolveEndpoints(cfg.Origin, cfg.DevPort, cfg.Legacy)
		if err != nil {
			return chat.Endpoints{}, err
		}
		eps = resolved
	}
	if cfg.ResetEndpoint != "" {
		eps.Reset = cfg.ResetEndpoint
	}
	return eps, nil
}

// newClient builds a chat client for the loaded config that renders through r.
func (a *app) newClient(r chat.Renderer) (*chat.Client, error) {
	eps, err := endpoints(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving endpoints: %w", err)
	}
	slog.Debug("endpoints_resolved", "chat", eps.Chat, "reset", eps.Reset)

	return chat.NewClient(chat.Config{
		Endpoint:      eps.Chat,
		ResetEndpoint: eps.Reset,
		Service: chat.ServiceInfo{
			Name:         a.cfg.Service.Name,
			ContactURL:   a.cfg.Service.ContactURL,
			ContactEmail: a.cfg.Service.ContactEmail,
		},
		Timeout:         time.Duration(a.cfg.TimeoutSeconds) * time.Second,
		UserAgent:       version.UserAgent(),
		SessionAffinity: a.cfg.SessionAffinity,
	}, r)
}

// lineRenderer writes plain lines to stdout, with hyperlinks only on a terminal.
func (a *app) lineRenderer() *render.LineRenderer {
	return render.NewLineRenderer(a.stdout, a.cfg.Service.Name, isTerminal(a.stdout))
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
