package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"artdirector/internal/llm/reply"
)

var extractFormat string

// extractCmd splits a saved model reply into its JSON handoff and prose.
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract the JSON handoff from a model reply",
	Long: `Reads a model reply from file (or stdin) and prints the first fenced json
block that parses, followed by the remaining text.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractFormat, "format", "text", "Output format: text or json")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	parsed := reply.Parse(text)
	out := cmd.OutOrStdout()
	switch extractFormat {
	case "json":
		fmt.Fprintln(out, prettyJSON(parsed))
	case "text", "":
		printReply(out, parsed)
	default:
		return fmt.Errorf("unknown format %q", extractFormat)
	}
	return nil
}

// readInput reads args[0] when given ("-" means stdin), else stdin.
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), nil
}
