package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"artdirector/internal/utils"
)

var keyName string

// keyCmd manages the API key kept in the platform secret store.
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store an API key (read from the terminal or stdin)",
	Args:  cobra.NoArgs,
	RunE:  runKeySet,
}

var keyDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE:  runKeyDelete,
}

var keyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which credential source would be used",
	Args:  cobra.NoArgs,
	RunE:  runKeyStatus,
}

func init() {
	keyCmd.PersistentFlags().StringVar(&keyName, "name", "", "Credential name (default: from config)")
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyDeleteCmd)
	keyCmd.AddCommand(keyStatusCmd)
}

func keyApp(cmd *cobra.Command) (*App, string, error) {
	app := NewApp(cmd.OutOrStdout())
	if err := app.configure(cmd.Context()); err != nil {
		return nil, "", err
	}
	app.openKeys()
	name := strings.TrimSpace(keyName)
	if name == "" {
		name = app.keys.CredentialName()
	}
	return app, name, nil
}

func runKeySet(cmd *cobra.Command, args []string) error {
	app, name, err := keyApp(cmd)
	if err != nil {
		return err
	}

	secret, err := readSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), name)
	if err != nil {
		return err
	}
	if err := app.keys.StoreAPIKey(name, []byte(secret)); err != nil {
		return fmt.Errorf("store %s: %w", name, err)
	}
	fmt.Fprintf(app.out, "Stored %s (%s)\n", name, utils.MaskKey(secret))
	return nil
}

func runKeyDelete(cmd *cobra.Command, args []string) error {
	app, name, err := keyApp(cmd)
	if err != nil {
		return err
	}
	if err := app.keys.DeleteAPIKey(name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}
	fmt.Fprintf(app.out, "Deleted %s\n", name)
	return nil
}

func runKeyStatus(cmd *cobra.Command, args []string) error {
	app, name, err := keyApp(cmd)
	if err != nil {
		return err
	}

	key, source := app.apiKey()
	if key == "" {
		fmt.Fprintf(app.out, "%s: not configured\n", name)
	} else {
		fmt.Fprintf(app.out, "%s: %s (source: %s)\n", name, utils.MaskKey(key), source)
	}

	stored, err := app.keys.ListAPIKeys()
	if err != nil {
		return err
	}
	for _, item := range stored {
		fmt.Fprintf(app.out, "  stored %s %s\n", item["name"], item["masked"])
	}
	return nil
}

// readSecret reads without echo from a terminal, otherwise the first line of
// stdin.
func readSecret(stdin io.Reader, prompt io.Writer, name string) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(prompt, "%s: ", name)
		data, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", err
		}
		return validSecret(string(data))
	}

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return validSecret(line)
}

func validSecret(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errors.New("API key is empty")
	}
	return s, nil
}
