// ABOUTME: RECOMP configuration with backend selection and environment overrides.
// ABOUTME: Reads a JSON file, an optional .env file and RECOMP_* variables, and opens storage.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/harperreed/recomp/internal/storage"
	"github.com/joho/godotenv"
)

// DefaultListenAddr is the API listen address when none is configured.
const DefaultListenAddr = ":8080"

// Config stores RECOMP configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default) or "postgres".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for the SQLite database and logs.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/recomp.
	DataDir string `json:"data_dir,omitempty"`

	// DatabaseURL is the PostgreSQL connection string.
	DatabaseURL string `json:"database_url,omitempty"`

	ListenAddr string `json:"listen_addr,omitempty"`

	// JWTSecret verifies API bearer tokens and signs tokens issued by the CLI.
	JWTSecret string `json:"jwt_secret,omitempty"`

	// Timezone is the IANA zone whose midnights bound a program day. Defaults to the
	// process local time zone.
	Timezone string `json:"timezone,omitempty"`

	Debug bool `json:"debug,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetListenAddr returns the API listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the configured backend.
func (c *Config) OpenStorage() (*storage.DB, error) {
	switch backend := c.GetBackend(); backend {
	case "sqlite":
		return storage.Open(filepath.Join(c.GetDataDir(), "recomp.db"))
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres backend requires database_url")
		}
		return storage.OpenPostgres(c.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "recomp", "config.json")
}

// Load reads config from disk, then applies environment overrides. A .env
// file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the config file without environment overrides.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"RECOMP_BACKEND":      &c.Backend,
		"RECOMP_DATA_DIR":     &c.DataDir,
		"RECOMP_DATABASE_URL": &c.DatabaseURL,
		"RECOMP_LISTEN_ADDR":  &c.ListenAddr,
		"RECOMP_JWT_SECRET":   &c.JWTSecret,
		"RECOMP_TIMEZONE":     &c.Timezone,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*field = v
		}
	}

	if v, ok := os.LookupEnv("RECOMP_DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("RECOMP_DEBUG: %w", err)
		}
		c.Debug = debug
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
