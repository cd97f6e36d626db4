// ABOUTME: Tests for CLI helpers, command wiring and command execution.
// ABOUTME: Commands run against a temp data dir and config dir per test.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/auth"
	"github.com/harperreed/recomp/internal/storage"
	"github.com/harperreed/recomp/internal/today"
	"github.com/spf13/pflag"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "short string no truncation", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact length", input: "hello", maxLen: 5, want: "hello"},
		{name: "needs truncation", input: "hello world this is long", maxLen: 10, want: "hello w..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input  string
		length int
		want   string
	}{
		{"abc", 6, "abc   "},
		{"abcdef", 3, "abcdef"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := padRight(tt.input, tt.length); got != tt.want {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.want)
		}
	}
}

func TestScoreColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	tests := []struct {
		score int
		want  string
	}{
		{15, "+15"},
		{-5, "-5"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := scoreColor(tt.score); got != tt.want {
			t.Errorf("scoreColor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestRootCmdFlags(t *testing.T) {
	if rootCmd.Use != "recomp" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "recomp")
	}
	for _, name := range []string{"user", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("Expected --%s persistent flag", name)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	for _, want := range []string{"serve", "seed", "today", "habit", "log", "token", "mcp", "export", "version", "config", "migrate", "install-skill"} {
		if !names[want] {
			t.Errorf("Expected %q command to be registered", want)
		}
	}

	sub := make(map[string]bool)
	for _, cmd := range habitCmd.Commands() {
		sub[cmd.Name()] = true
	}
	for _, want := range []string{"list", "log", "add", "rm"} {
		if !sub[want] {
			t.Errorf("Expected habit subcommand %q", want)
		}
	}
}

func TestCommandFlags(t *testing.T) {
	tests := []struct {
		where string
		flags *pflag.FlagSet
		flag  string
		def   string
	}{
		{"serve", serveCmd.Flags(), "addr", ""},
		{"serve", serveCmd.Flags(), "no-seed", "false"},
		{"serve", serveCmd.Flags(), "sweep-interval", "1h0m0s"},
		{"token", tokenCmd.Flags(), "ttl", "720h0m0s"},
		{"habit log", habitLogCmd.Flags(), "swap", ""},
		{"habit add", habitAddCmd.Flags(), "type", "good"},
		{"log meal", logMealCmd.Flags(), "protein", "0"},
		{"export", exportCmd.Flags(), "output", ""},
	}
	for _, tt := range tests {
		f := tt.flags.Lookup(tt.flag)
		if f == nil {
			t.Errorf("Expected --%s flag on %s", tt.flag, tt.where)
			continue
		}
		if f.DefValue != tt.def {
			t.Errorf("%s --%s default = %q, want %q", tt.where, tt.flag, f.DefValue, tt.def)
		}
	}
}

func TestExportCmdValidArgs(t *testing.T) {
	want := map[string]bool{"json": true, "yaml": true, "markdown": true}
	if len(exportCmd.ValidArgs) != len(want) {
		t.Fatalf("ValidArgs = %v", exportCmd.ValidArgs)
	}
	for _, a := range exportCmd.ValidArgs {
		if !want[a] {
			t.Errorf("unexpected export format %q", a)
		}
	}
}

// setupTestCLI points config and data at temp dirs and clears RECOMP_*.
// It returns the data dir.
func setupTestCLI(t *testing.T) string {
	t.Helper()

	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, key := range []string{
		"RECOMP_BACKEND", "RECOMP_DATA_DIR", "RECOMP_DATABASE_URL", "RECOMP_LISTEN_ADDR",
		"RECOMP_JWT_SECRET", "RECOMP_TIMEZONE", "RECOMP_DEBUG", "RECOMP_USER",
	} {
		t.Setenv(key, "")
	}

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)

	t.Cleanup(func() {
		if db != nil {
			_ = db.Close()
			db = nil
		}
		userFlag = ""
		debugFlag = false
		habitNotes, habitSwap, habitDesc = "", "", ""
		habitType = "good"
		mealCalories, mealProtein, mealCarbs, mealFat = 0, 0, 0, 0
		mealDesc = ""
		exportOutput = ""
		configForce = false
		seedFile = ""
		tokenEmail, tokenName = "", ""
		tokenTTL = 30 * 24 * time.Hour
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	return filepath.Join(dataHome, "recomp")
}

// execute runs the CLI with args and returns what it wrote to its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// openService opens the CLI's database after a command has closed it.
func openService(t *testing.T, dataDir string) *today.Service {
	t.Helper()
	store, err := storage.Open(filepath.Join(dataDir, "recomp.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return today.New(store, today.WithLocation(time.Local))
}

func TestVersionCmd(t *testing.T) {
	setupTestCLI(t)

	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "recomp ") {
		t.Errorf("output = %q", out)
	}
}

func TestHabitLogCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if _, err := execute(t, "habit", "log", "morning workout", "--notes", "felt strong"); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}

	svc := openService(t, dataDir)
	v, err := svc.DopamineToday(context.Background(), defaultUser)
	if err != nil {
		t.Fatalf("DopamineToday failed: %v", err)
	}
	if v.Daily.GoodCount != 1 || !v.Daily.FirstWin {
		t.Errorf("daily = %+v, want one good log with first win", v.Daily)
	}
	if len(v.Daily.Logs) != 1 || v.Daily.Logs[0].Notes == nil || *v.Daily.Logs[0].Notes != "felt strong" {
		t.Errorf("logs = %+v", v.Daily.Logs)
	}
}

func TestHabitLogCmdUnknownHabit(t *testing.T) {
	setupTestCLI(t)

	_, err := execute(t, "habit", "log", "Juggling")
	if err == nil || !strings.Contains(err.Error(), "Habit not found") {
		t.Errorf("error = %v, want Habit not found", err)
	}
}

func TestHabitAddCmdInvalidType(t *testing.T) {
	setupTestCLI(t)

	if _, err := execute(t, "habit", "add", "Walk", "--type", "neutral"); err == nil {
		t.Error("Expected error for invalid habit type")
	}
}

func TestLogCmds(t *testing.T) {
	dataDir := setupTestCLI(t)

	if _, err := execute(t, "--user", "alice", "log", "meal", "lunch", "--calories", "650", "--protein", "45"); err != nil {
		t.Fatalf("log meal failed: %v", err)
	}
	if _, err := execute(t, "--user", "alice", "log", "water", "0.5"); err != nil {
		t.Fatalf("log water failed: %v", err)
	}
	if _, err := execute(t, "log", "water", "lots"); err == nil {
		t.Error("Expected error for non-numeric water amount")
	}
	if _, err := execute(t, "log", "meal", "brunch"); err == nil {
		t.Error("Expected error for invalid meal type")
	}

	svc := openService(t, dataDir)
	ctx := context.Background()
	plan, err := svc.NutritionToday(ctx, "alice")
	if err != nil {
		t.Fatalf("NutritionToday failed: %v", err)
	}
	if len(plan.Logs) != 1 || plan.Logs[0].Calories != 650 {
		t.Errorf("meal logs = %+v", plan.Logs)
	}
	w, err := svc.Water(ctx, "alice")
	if err != nil {
		t.Fatalf("Water failed: %v", err)
	}
	if w.TotalLiters != 0.5 {
		t.Errorf("TotalLiters = %v, want 0.5", w.TotalLiters)
	}
}

func TestLogMealCmdAcceptsValidArgs(t *testing.T) {
	dataDir := setupTestCLI(t)

	if len(logMealCmd.ValidArgs) == 0 {
		t.Fatal("log meal has no ValidArgs")
	}
	for _, mealType := range logMealCmd.ValidArgs {
		if _, err := execute(t, "--user", "alice", "log", "meal", mealType, "--calories", "100"); err != nil {
			t.Errorf("log meal %s failed: %v", mealType, err)
		}
	}

	plan, err := openService(t, dataDir).NutritionToday(context.Background(), "alice")
	if err != nil {
		t.Fatalf("NutritionToday failed: %v", err)
	}
	if len(plan.Logs) != len(logMealCmd.ValidArgs) {
		t.Errorf("meal logs = %d, want %d", len(plan.Logs), len(logMealCmd.ValidArgs))
	}
}

func TestTodayCmdJSON(t *testing.T) {
	setupTestCLI(t)

	out, err := execute(t, "today", "--json")
	todayJSON = false
	if err != nil {
		t.Fatalf("today failed: %v", err)
	}

	var bundle struct {
		Journey struct {
			CurrentDay int    `json:"currentDay"`
			Phase      string `json:"phase"`
		} `json:"journey"`
	}
	if err := json.Unmarshal([]byte(out), &bundle); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if bundle.Journey.CurrentDay != 1 || bundle.Journey.Phase != "foundation" {
		t.Errorf("journey = %+v", bundle.Journey)
	}
}

func TestTokenCmd(t *testing.T) {
	setupTestCLI(t)
	t.Setenv("RECOMP_JWT_SECRET", "cli-secret")

	out, err := execute(t, "token", "--user", "alice", "--email", "alice@example.com")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	signer, err := auth.NewSigner("cli-secret")
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}
	id, err := signer.Verify(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.UserID != "alice" {
		t.Errorf("UserID = %q, want alice", id.UserID)
	}
	if id.Email == nil || *id.Email != "alice@example.com" {
		t.Errorf("Email = %v", id.Email)
	}
}

func TestTokenCmdWithoutSecret(t *testing.T) {
	setupTestCLI(t)

	_, err := execute(t, "token")
	if err == nil || !strings.Contains(err.Error(), "jwt secret") {
		t.Errorf("error = %v, want missing jwt secret", err)
	}
}

func TestConfigInitCmd(t *testing.T) {
	setupTestCLI(t)

	if _, err := execute(t, "config", "init"); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := execute(t, "config", "init"); err == nil {
		t.Error("Expected error when config already exists")
	}
	if _, err := execute(t, "config", "init", "--force"); err != nil {
		t.Fatalf("config init --force failed: %v", err)
	}

	out, err := execute(t, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	data, err := os.ReadFile(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	var written struct {
		JWTSecret string `json:"jwt_secret"`
	}
	if err := json.Unmarshal(data, &written); err != nil {
		t.Fatalf("config is not JSON: %v", err)
	}
	if len(written.JWTSecret) != 64 {
		t.Errorf("secret length = %d, want 64 hex chars", len(written.JWTSecret))
	}

	shown, err := execute(t, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(shown, written.JWTSecret) {
		t.Error("config show leaked the jwt secret")
	}
}

func TestSeedCmd(t *testing.T) {
	dataDir := setupTestCLI(t)

	if _, err := execute(t, "seed"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := openService(t, dataDir)
	courses, err := svc.Courses(context.Background(), defaultUser, nil)
	if err != nil {
		t.Fatalf("Courses failed: %v", err)
	}
	if len(courses) != 3 {
		t.Errorf("courses = %d, want 3", len(courses))
	}
}

func TestExportCmdToFile(t *testing.T) {
	setupTestCLI(t)
	path := filepath.Join(t.TempDir(), "export.json")

	if _, err := execute(t, "habit", "log", "10K Steps"); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}
	if _, err := execute(t, "export", "json", "-o", path); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !json.Valid(data) {
		t.Errorf("export is not valid JSON: %s", data)
	}

	if _, err := execute(t, "export", "csv"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestMigrateCmd(t *testing.T) {
	setupTestCLI(t)
	dstPath := filepath.Join(t.TempDir(), "copy.db")

	if _, err := execute(t, "habit", "log", "Morning Workout"); err != nil {
		t.Fatalf("habit log failed: %v", err)
	}
	if _, err := execute(t, "migrate", dstPath); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	store, err := storage.Open(dstPath)
	if err != nil {
		t.Fatalf("Open destination failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	habits, err := store.ListActiveHabits(context.Background(), defaultUser)
	if err != nil {
		t.Fatalf("ListActiveHabits failed: %v", err)
	}
	if len(habits) != 10 {
		t.Errorf("habits = %d, want 10", len(habits))
	}
}
