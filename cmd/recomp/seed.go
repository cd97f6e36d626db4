// ABOUTME: CLI command for loading reference content.
// ABOUTME: Upserts lessons, quotes and courses from the built-in catalog or a YAML file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/catalog"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load mindset lessons, quotes and brain courses",
	Long: `Upsert reference content into the store.

Rows keep stable ids derived from their titles, so seeding again refreshes
content without duplicating it or breaking saved quotes and course progress.

EXAMPLES:

  recomp seed                     # Load the built-in catalog
  recomp seed --file extra.yaml   # Load a custom catalog file`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			c   *catalog.Catalog
			err error
		)
		if seedFile != "" {
			data, readErr := os.ReadFile(seedFile)
			if readErr != nil {
				return fmt.Errorf("failed to read file: %w", readErr)
			}
			c, err = catalog.Parse(data)
		} else {
			c, err = catalog.Builtin()
		}
		if err != nil {
			return err
		}

		n, err := c.Seed(cmd.Context(), db)
		if err != nil {
			return err
		}
		color.Green("✓ Seeded %d lessons, %d quotes, %d courses (%d modules)", n.Lessons, n.Quotes, n.Courses, n.Modules)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "catalog YAML file (default: built-in)")
	rootCmd.AddCommand(seedCmd)
}
