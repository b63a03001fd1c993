package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"artdirector/internal/llm/prompt"
	"artdirector/internal/settings"
)

var (
	promptJSONFile  string
	promptDirection string
	promptSets      []string
	promptSystem    bool
)

// promptCmd renders the message a turn would send without contacting a model.
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the composed prompt for a direction",
	Long: `Builds the outbound message from the default settings, an optional
STEP 1 payload (--json) and field assignments (--set field=value).

With --system the assembled system instruction is printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	promptCmd.Flags().StringVar(&promptJSONFile, "json", "", "STEP 1 payload file (raw or fenced json)")
	promptCmd.Flags().StringVarP(&promptDirection, "direction", "d", "", "Creative direction text")
	promptCmd.Flags().StringArrayVar(&promptSets, "set", nil, "Settings assignment field=value (repeatable)")
	promptCmd.Flags().BoolVar(&promptSystem, "system", false, "Print the system instruction")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	app := NewApp(cmd.OutOrStdout())
	if err := app.configure(cmd.Context()); err != nil {
		return err
	}

	if promptSystem {
		system, err := app.loadSystemInstruction()
		if err != nil {
			return err
		}
		fmt.Fprintln(app.out, system)
		return nil
	}

	record, upstream, err := buildPromptInputs(cmd.InOrStdin(), promptJSONFile, promptSets)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out, prompt.Compose(record, upstream, promptDirection))
	return nil
}

// buildPromptInputs layers defaults, the payload file and assignments the way
// a chat session does.
func buildPromptInputs(stdin io.Reader, jsonFile string, sets []string) (settings.Record, json.RawMessage, error) {
	record := settings.Defaults()

	var upstream json.RawMessage
	if jsonFile != "" {
		text, err := readInput(stdin, []string{jsonFile})
		if err != nil {
			return record, nil, err
		}
		upstream, err = settings.ParseUpstream(text)
		if err != nil {
			return record, nil, err
		}
		record = settings.ApplyOverrides(record, settings.ExtractOverrides(upstream))
	}

	if len(sets) > 0 {
		edit, err := settings.Assign(record, sets)
		if err != nil {
			return record, nil, err
		}
		record = settings.ApplyUserEdit(record, edit)
	}
	return record, upstream, nil
}
