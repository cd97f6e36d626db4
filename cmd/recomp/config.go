// ABOUTME: CLI commands for the recomp config file.
// ABOUTME: Writes a starter config with a generated JWT secret and prints settings.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/config"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Manage ~/.config/recomp/config.json.

FIELDS:

  backend        sqlite (default) or postgres
  data_dir       directory for recomp.db and logs (default ~/.local/share/recomp)
  database_url   postgres connection string
  listen_addr    API listen address (default :8080)
  jwt_secret     HS256 secret for API tokens
  timezone       IANA zone for day boundaries (default: local zone)
  debug          log at debug level to stderr

Every field can be overridden with RECOMP_<FIELD> in the environment.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config with a fresh JWT secret",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.GetConfigPath()
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		secret, err := newSecret()
		if err != nil {
			return err
		}
		c := &config.Config{Backend: "sqlite", JWTSecret: secret}
		if err := c.Save(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		color.Green("✓ Wrote %s", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigPath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config",
	Long:  `Print the config after .env and RECOMP_* overrides. The JWT secret is masked.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return err
		}
		shown := *c
		shown.Backend = c.GetBackend()
		shown.DataDir = c.GetDataDir()
		shown.ListenAddr = c.GetListenAddr()
		if shown.JWTSecret != "" {
			shown.JWTSecret = "********"
		}
		data, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// newSecret returns 32 random bytes, hex encoded.
func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config")
	configCmd.AddCommand(configInitCmd, configPathCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
