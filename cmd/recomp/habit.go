// ABOUTME: CLI commands for the habit catalog and habit logging.
// ABOUTME: Habits can be referenced by name, full id or id prefix.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/today"
	"github.com/spf13/cobra"
)

var (
	habitNotes string
	habitSwap  string
	habitType  string
	habitDesc  string
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"h"},
	Short:   "Manage and log habits",
	Long: `Manage the habit catalog and log habits against today's dopamine score.

Good habits add +10 and bad habits subtract 5. The first good habit of the
day earns +5, replacing a bad habit logged within the last hour (--swap) earns
+15, and a running streak earns +10. Each bonus is awarded once per day.`,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List active habits",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := ensureCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		// Seeds presets for a new journey.
		if _, err := svc.DopamineToday(cmd.Context(), userID); err != nil {
			return fmt.Errorf("failed to load habits: %w", err)
		}
		habits, err := svc.ListHabits(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}
		if len(habits) == 0 {
			fmt.Println("No habits found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, h := range habits {
			kind := color.GreenString("good")
			if h.Type == models.HabitBad {
				kind = color.RedString("bad ")
			}
			preset := ""
			if !h.IsPreset {
				preset = faint.Sprint(" (custom)")
			}
			fmt.Printf("%s %s %s%s\n", faint.Sprint(h.ID.String()[:8]), kind, h.Name, preset)
		}
		return nil
	},
}

var habitLogCmd = &cobra.Command{
	Use:   "log <habit>",
	Short: "Log a habit for today",
	Long: `Log a habit against today's dopamine record.

EXAMPLES:

  recomp habit log "Morning Workout"
  recomp habit log "social media scrolling" --notes "after lunch"
  recomp habit log "10K Steps" --swap 3f2a91c0-...   # Replace a bad habit log`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, err := ensureCurrentUser(ctx)
		if err != nil {
			return err
		}
		h, err := svc.FindHabit(ctx, userID, args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		in := today.LogHabitInput{HabitID: h.ID}
		if habitNotes != "" {
			in.Notes = &habitNotes
		}
		if habitSwap != "" {
			ref, err := uuid.Parse(habitSwap)
			if err != nil {
				return fmt.Errorf("invalid swap log id: %s", habitSwap)
			}
			in.SwapFromLogID = &ref
		}

		v, err := svc.LogHabit(ctx, userID, in)
		if err != nil {
			return fmt.Errorf("failed to log habit: %w", err)
		}
		d := v.Daily
		logID := ""
		if len(d.Logs) > 0 {
			logID = d.Logs[0].ID.String()
		}
		color.Green("✓ Logged %s", h.Name)
		fmt.Printf("  score %s  good %d  bad %d  streak %d\n", scoreColor(d.Score), d.GoodCount, d.BadCount, d.StreakDays)
		if logID != "" {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("log %s", logID))
		}
		return nil
	},
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom habit",
	Long: `Add a custom habit to your catalog.

EXAMPLES:

  recomp habit add "Evening Walk" --type good
  recomp habit add "Late Night Snacking" --type bad -d "after 10pm"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := ensureCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		in := today.HabitInput{Name: args[0], Type: habitType}
		if habitDesc != "" {
			in.Description = &habitDesc
		}
		h, err := svc.CreateHabit(cmd.Context(), userID, in)
		if err != nil {
			return err
		}
		color.Green("✓ Added %s habit %s (%s)", h.Type, h.Name, h.ID.String()[:8])
		return nil
	},
}

var habitRemoveCmd = &cobra.Command{
	Use:     "rm <habit>",
	Aliases: []string{"delete"},
	Short:   "Deactivate a habit",
	Long: `Deactivate a habit. Past logs keep its name.

EXAMPLES:

  recomp habit rm "Evening Walk"
  recomp habit rm 3f2a91c0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		userID, err := ensureCurrentUser(ctx)
		if err != nil {
			return err
		}
		h, err := svc.FindHabit(ctx, userID, args[0])
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		if err := svc.DeleteHabit(ctx, userID, h.ID); err != nil {
			return err
		}
		color.Green("✓ Removed %s", h.Name)
		return nil
	},
}

func init() {
	habitLogCmd.Flags().StringVar(&habitNotes, "notes", "", "notes for this log")
	habitLogCmd.Flags().StringVar(&habitSwap, "swap", "", "id of the bad-habit log this replaces")
	habitAddCmd.Flags().StringVarP(&habitType, "type", "t", "good", "habit type: good or bad")
	habitAddCmd.Flags().StringVarP(&habitDesc, "description", "d", "", "habit description")

	habitCmd.AddCommand(habitListCmd, habitLogCmd, habitAddCmd, habitRemoveCmd)
	rootCmd.AddCommand(habitCmd)
}
