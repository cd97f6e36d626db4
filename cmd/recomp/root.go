// ABOUTME: Root Cobra command for the recomp CLI.
// ABOUTME: Loads config, logging and storage via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/harperreed/recomp/internal/config"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/harperreed/recomp/internal/storage"
	"github.com/harperreed/recomp/internal/today"
	"github.com/spf13/cobra"
)

const defaultUser = "local"

var (
	cfg *config.Config
	db  *storage.DB
	svc *today.Service

	userFlag  string
	debugFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "recomp",
	Short: "90-day body recomposition program tracker",
	Long: `Recomp runs a 90-day body recomposition program: a workout, a nutrition
plan, a dopamine habit score and mindset lessons for every day of the journey.

THE PROGRAM:

  Days 1-30    foundation   moderate deficit, learning the lifts
  Days 31-60   build        higher protein, heavier training
  Days 61-90   optimize     tighter deficit, peak conditioning

QUICK START:

  $ recomp config init                  # Write a config with a fresh JWT secret
  $ recomp seed                         # Load lessons, quotes and courses
  $ recomp today                        # See today's plan
  $ recomp habit log "Morning Workout"  # Score a good habit
  $ recomp log meal lunch --calories 650 --protein 45
  $ recomp log water 0.5

SERVER:

  $ recomp serve                        # HTTP API on :8080
  $ recomp token --user alice           # Issue a bearer token for alice

MCP INTEGRATION:

  Run 'recomp mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants.

CONFIGURATION:

  Settings live in ~/.config/recomp/config.json and can be overridden with
  RECOMP_* environment variables or a .env file in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if skipsStorage(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if debugFlag {
			cfg.Debug = true
		}

		if err := logging.Init(logging.Config{Debug: cfg.Debug, DataDir: cfg.GetDataDir(), Console: cmd.Name() == "serve"}); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		db, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		svc = today.New(db, today.WithLocation(loc))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			err := db.Close()
			db = nil
			_ = logging.Close()
			return err
		}
		return nil
	},
}

// skipsStorage reports whether cmd runs without config or storage.
func skipsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "init", "path", "show", "config", "install-skill":
		return true
	}
	return false
}

// currentUser resolves the acting user: --user, then RECOMP_USER, then "local".
func currentUser() string {
	if userFlag != "" {
		return userFlag
	}
	if u := os.Getenv("RECOMP_USER"); u != "" {
		return u
	}
	return defaultUser
}

// ensureCurrentUser registers the acting user and returns its id.
func ensureCurrentUser(ctx context.Context) (string, error) {
	userID := currentUser()
	if err := svc.EnsureUser(ctx, userID, nil, nil); err != nil {
		return "", fmt.Errorf("failed to register user %s: %w", userID, err)
	}
	return userID, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "acting user id (default $RECOMP_USER or \"local\")")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging to stderr")
}
