package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"artdirector/internal/models"
)

// sessionsCmd manages stored chat sessions
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage stored chat sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, runSessionsList)
	},
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, runSessionsList)
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-key>",
	Short: "Delete a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *App) error {
			if err := app.services.Sessions.Delete(app.ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Deleted %s\n", args[0])
			return nil
		})
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}

func runSessionsList(app *App) error {
	sessions, err := app.services.Sessions.List(app.ctx)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(app.out, "No saved sessions found.")
		return nil
	}

	fmt.Fprintln(app.out, rule)
	for _, s := range sessions {
		turns := 0
		for _, m := range s.Messages {
			if m.Role == models.RoleUser {
				turns++
			}
		}
		fmt.Fprintf(app.out, "%s  %s  %s  turns=%d\n", s.Key, s.UpdatedAt.Local().Format("2006-01-02 15:04"), s.Model, turns)
		fmt.Fprintf(app.out, "  %s / %s / %s\n", s.Settings.City, s.Settings.HousingType, s.Settings.InteriorStyle)
	}
	fmt.Fprintln(app.out, rule)
	fmt.Fprintf(app.out, "Total: %d sessions\n", len(sessions))
	fmt.Fprintln(app.out, "\nResume with: artdirector chat --session <session-key>")
	return nil
}
