// ABOUTME: CLI command for exporting journey history.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export journey history",
	Long: `Export the current journey's day-by-day history.

FORMATS:

  json       Full JSON export
  yaml       YAML export (human-readable)
  markdown   Markdown report (for documentation/sharing)

EXAMPLES:

  recomp export json                  # Export as JSON
  recomp export json -o backup.json   # Save to file
  recomp export markdown -u alice     # Alice's journey as Markdown`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, err := ensureCurrentUser(ctx)
		if err != nil {
			return err
		}
		// Refreshes the current day before reading history.
		if _, err := svc.Journey(ctx, userID); err != nil {
			return err
		}

		var data []byte
		switch args[0] {
		case "json":
			data, err = db.ExportJSON(ctx, userID)
		case "yaml":
			data, err = db.ExportYAML(ctx, userID)
		case "markdown":
			var md string
			md, err = db.ExportMarkdown(ctx, userID)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(exportCmd)
}
