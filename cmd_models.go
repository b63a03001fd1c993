package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsLive bool

// modelsCmd lists the chat models available to the resolved credential.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List selectable chat models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, runModels)
	},
}

func init() {
	modelsCmd.Flags().BoolVar(&modelsLive, "live", false, "Query the catalog directly and report failures")
}

func runModels(app *App) error {
	key, _ := app.apiKey()

	if modelsLive {
		res := app.services.Catalog.Query(app.ctx, key)
		if res.Err != nil {
			return fmt.Errorf("model catalog: %w", res.Err)
		}
		for _, name := range res.Value {
			fmt.Fprintln(app.out, name)
		}
		return nil
	}

	for _, name := range app.services.Catalog.Options(app.ctx, key) {
		marker := "  "
		if name == app.cfg.Model {
			marker = "* "
		}
		fmt.Fprintln(app.out, marker+name)
	}
	return nil
}
