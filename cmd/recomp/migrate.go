// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves a SQLite journey history to PostgreSQL or another SQLite file.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/config"
	"github.com/harperreed/recomp/internal/storage"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <destination>",
	Short: "Copy all data to another database",
	Long: `Copy every user, journey, log and catalog row from the configured
database into another one.

The destination is a PostgreSQL connection string (postgres:// or
postgresql://) or a SQLite file path. Rows that already exist in the
destination are skipped, so the command is safe to rerun.

EXAMPLES:

  recomp migrate "postgres://recomp@localhost/recomp?sslmode=disable"
  recomp migrate ~/backup/recomp.db

AFTER MIGRATION:

  Point recomp at the new database:
    recomp config init --force   # then set backend and database_url`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dst, err := openDestination(args[0])
		if err != nil {
			return err
		}
		defer func() { _ = dst.Close() }()

		summary, err := storage.MigrateData(cmd.Context(), db, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		faint := color.New(color.Faint)
		for _, t := range summary.Tables {
			if t.Rows > 0 {
				fmt.Printf("  %s %d\n", padRight(t.Table, 20), t.Rows)
			}
		}
		color.Green("✓ Copied %d rows to %s", summary.Total(), dst.Dialect())
		fmt.Println(faint.Sprint("  existing rows were left untouched"))
		return nil
	},
}

func openDestination(target string) (*storage.DB, error) {
	if strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://") {
		return storage.OpenPostgres(target)
	}
	return storage.Open(config.ExpandPath(target))
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
