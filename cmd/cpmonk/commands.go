package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"cpmonk/pkg/chat"
	"cpmonk/pkg/render"
	"cpmonk/pkg/ui"
	"cpmonk/pkg/version"

	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "cpmonk",
		Short:             "Chat with CP Monk from the terminal",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runChat,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ~/.cpmonk/config.json)")
	flags.StringVar(&a.origin, "origin", "", "origin the chat is served from, e.g. https://cyberpunkmonk.com")
	flags.BoolVar(&a.legacy, "legacy", false, "use the legacy /monk endpoint without reset")

	root.AddCommand(
		&cobra.Command{
			Use:   "chat",
			Short: "Start an interactive chat (default)",
			Args:  cobra.NoArgs,
			RunE:  a.runChat,
		},
		&cobra.Command{
			Use:   "send <message...>",
			Short: "Send one message and print the reply",
			Args:  cobra.MinimumNArgs(1),
			RunE:  a.runSend,
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the server-side conversation",
			Args:  cobra.NoArgs,
			RunE:  a.runReset,
		},
		newTranscriptCmd(a),
		newVersionCmd(a),
	)
	return root
}

func newTranscriptCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "transcript -o file.html <message...>",
		Short: "Send messages and save the conversation as HTML",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTranscript(cmd, args, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "transcript.html", "file to write the HTML transcript to")
	return cmd
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// overrides the root setup: printing the version needs no config
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Fprint(a.stdout, version.Details())
		},
	}
}

// runChat starts the TUI on a terminal and falls back to one submit per
// stdin line otherwise.
func (a *app) runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if !isTerminal(a.stdin) || !isTerminal(a.stdout) {
		client, err := a.newClient(a.lineRenderer())
		if err != nil {
			return err
		}
		scanner := bufio.NewScanner(a.stdin)
		for scanner.Scan() {
			client.Submit(ctx, scanner.Text())
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return scanner.Err()
	}

	history := render.NewHistory()
	client, err := a.newClient(render.NewHTMLRenderer(history))
	if err != nil {
		return err
	}
	return ui.Run(ctx, client, history, ui.Options{
		Service:  a.cfg.Service.Name,
		Endpoint: client.Endpoint(),
		Links:    true,
	})
}

// runSend prints only the outcome and exits non-zero when the request failed.
func (a *app) runSend(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return chat.ErrEmptyInput
	}

	out := a.lineRenderer()
	client, err := a.newClient(out)
	if err != nil {
		return err
	}

	reply, err := client.Send(cmd.Context(), text)
	if err != nil {
		out.Render(chat.Message{Text: client.Describe(err), Role: chat.RoleRecipient, Failed: true})
		return silentError{err: err}
	}
	out.Render(chat.Message{Text: reply, Role: chat.RoleRecipient})
	return nil
}

func (a *app) runReset(cmd *cobra.Command, _ []string) error {
	client, err := a.newClient(a.lineRenderer())
	if err != nil {
		return err
	}
	client.Reset(cmd.Context())
	return nil
}

// runTranscript submits each argument as its own message, echoing the
// conversation to stdout, then writes the rendered history to output.
func (a *app) runTranscript(cmd *cobra.Command, args []string, output string) error {
	history := render.NewHistory()
	client, err := a.newClient(render.Multi{render.NewHTMLRenderer(history), a.lineRenderer()})
	if err != nil {
		return err
	}

	for _, text := range args {
		client.Submit(cmd.Context(), text)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating transcript: %w", err)
	}
	if err := render.WriteTranscript(f, a.cfg.Service.Name+" transcript", history); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing transcript: %w", err)
	}
	fmt.Fprintf(a.stderr, "Transcript saved to %s\n", output)
	return nil
}
