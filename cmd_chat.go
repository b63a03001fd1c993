package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"artdirector/internal/llm/prompt"
	"artdirector/internal/llm/reply"
	"artdirector/internal/models"
	"artdirector/internal/services"
	"artdirector/internal/settings"
)

var chatSessionKey string

// chatCmd runs the interactive art director conversation.
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start or resume an interactive session",
	Long: `Free text is sent as creative direction. Commands:

  /json <file>          load a STEP 1 payload (raw or fenced json)
  /set field=value ...  edit settings (room_types takes a comma list)
  /settings             show the current settings
  /model <name>         switch chat model
  /models               list selectable models
  /reset                clear the conversation, keep settings
  /quit                 leave`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			return runChat(app, cmd.InOrStdin(), chatSessionKey)
		})
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatSessionKey, "session", "s", "", "Resume a stored session")
}

type chatREPL struct {
	app *App
	key string
}

func runChat(app *App, in io.Reader, sessionKey string) error {
	sessions := app.services.Sessions

	var (
		state *services.SessionState
		err   error
	)
	if strings.TrimSpace(sessionKey) != "" {
		state, err = sessions.Get(app.ctx, sessionKey)
	} else {
		state, err = sessions.Create(app.ctx)
	}
	if err != nil {
		return err
	}

	repl := &chatREPL{app: app, key: state.Key}
	fmt.Fprintf(app.out, "%s v%s  (session %s, model %s)\n", prompt.SystemTitle, prompt.SystemVersion, state.Key, state.Model)
	fmt.Fprintln(app.out, settings.ContextSummary(state.Settings))
	fmt.Fprintln(app.out, rule)
	repl.printTranscript(state.Messages)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(app.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(app.out)
			return scanner.Err()
		}
		if quit := repl.handle(strings.TrimSpace(scanner.Text())); quit {
			return nil
		}
	}
}

func (r *chatREPL) printTranscript(messages []models.ChatMessage) {
	for _, msg := range messages {
		if msg.Role == models.RoleUser {
			fmt.Fprintf(r.app.out, "you> %s\n", msg.Content)
			continue
		}
		printReply(r.app.out, reply.Parse(msg.Content))
	}
}

// handle processes one input line and reports whether the loop should end.
// Errors are shown and the session stays usable.
func (r *chatREPL) handle(line string) bool {
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	var err error
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/json":
		err = r.loadJSON(rest)
	case "/set":
		err = r.set(settings.SplitAssignments(rest))
	case "/settings":
		err = r.showSettings()
	case "/model":
		err = r.selectModel(rest)
	case "/models":
		err = r.listModels()
	case "/reset":
		err = r.reset()
	default:
		if strings.HasPrefix(cmd, "/") {
			err = fmt.Errorf("unknown command %s", cmd)
		} else {
			err = r.submit(line)
		}
	}

	if err != nil {
		fmt.Fprintf(r.app.out, "! %s\n", err)
	}
	return false
}

func (r *chatREPL) loadJSON(path string) error {
	if path == "" {
		return errors.New("usage: /json <file>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	changed, err := r.app.services.Sessions.LoadUpstream(r.app.ctx, r.key, string(data))
	if err != nil {
		return err
	}
	fmt.Fprintln(r.app.out, "STEP 1 payload applied.")
	return r.contextUpdate(changed)
}

func (r *chatREPL) set(pairs []string) error {
	if len(pairs) == 0 {
		return fmt.Errorf("usage: /set field=value ... (fields: %s)", strings.Join(settings.Fields, ", "))
	}
	state, err := r.app.services.Sessions.Get(r.app.ctx, r.key)
	if err != nil {
		return err
	}
	edit, err := settings.Assign(state.Settings, pairs)
	if err != nil {
		return err
	}
	changed, err := r.app.services.Sessions.EditSettings(r.app.ctx, r.key, edit)
	if err != nil {
		return err
	}
	return r.contextUpdate(changed)
}

func (r *chatREPL) contextUpdate(changed bool) error {
	if !changed {
		fmt.Fprintln(r.app.out, "Settings unchanged.")
		return nil
	}
	state, err := r.app.services.Sessions.Get(r.app.ctx, r.key)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.app.out, "Context changed:")
	fmt.Fprintln(r.app.out, settings.ContextSummary(state.Settings))
	return nil
}

func (r *chatREPL) showSettings() error {
	state, err := r.app.services.Sessions.Get(r.app.ctx, r.key)
	if err != nil {
		return err
	}
	printSettings(r.app.out, state.Settings)
	return nil
}

func (r *chatREPL) selectModel(name string) error {
	if name == "" {
		return errors.New("usage: /model <name>")
	}
	key, _ := r.app.apiKey()
	options := r.app.services.Catalog.Options(r.app.ctx, key)
	if !slices.Contains(options, name) {
		return fmt.Errorf("model %s is not available (see /models)", name)
	}
	if err := r.app.services.Sessions.SelectModel(r.app.ctx, r.key, name); err != nil {
		return err
	}
	fmt.Fprintf(r.app.out, "Model: %s\n", name)
	return nil
}

func (r *chatREPL) listModels() error {
	state, err := r.app.services.Sessions.Get(r.app.ctx, r.key)
	if err != nil {
		return err
	}
	key, _ := r.app.apiKey()
	for _, name := range r.app.services.Catalog.Options(r.app.ctx, key) {
		marker := "  "
		if name == state.Model {
			marker = "* "
		}
		fmt.Fprintln(r.app.out, marker+name)
	}
	return nil
}

func (r *chatREPL) reset() error {
	state, err := r.app.services.Sessions.Reset(r.app.ctx, r.key)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.app.out, "Conversation cleared.")
	r.printTranscript(state.Messages)
	return nil
}

func (r *chatREPL) submit(direction string) error {
	res, err := r.app.services.Sessions.Submit(r.app.ctx, r.key, direction, apiKeyFlag)
	if errors.Is(err, services.ErrNoCredential) {
		return err
	}
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	printReply(r.app.out, res.Reply)
	return nil
}
