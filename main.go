// Command artdirector is a terminal console for the STEP 2 art director: it
// merges styling settings with a STEP 1 payload, sends the composed prompt to
// a chat model and splits the reply into a JSON handoff and prose.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	apiKeyFlag string
)

var rootCmd = &cobra.Command{
	Use:   "artdirector",
	Short: "Interior and background prompt generator",
	Long: `artdirector collects styling settings, merges them with a STEP 1 JSON
payload and asks a chat model for the STEP 2 interior prompt set.

Run "artdirector chat" for an interactive session.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./artdirector.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key, used when the secret store has none")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// withApp runs fn against a fully started App and shuts it down afterwards.
func withApp(cmd *cobra.Command, fn func(*App) error) error {
	app := NewApp(cmd.OutOrStdout())
	if err := app.startup(cmd.Context()); err != nil {
		return err
	}
	defer app.shutdown()
	return fn(app)
}
