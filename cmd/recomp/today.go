// ABOUTME: CLI command for showing the current program day.
// ABOUTME: Prints the workout, nutrition targets, dopamine score and unlocked lesson.
package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/dto"
	"github.com/spf13/cobra"
)

var todayJSON bool

var todayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"t"},
	Short:   "Show today's plan",
	Long: `Show everything for the current program day.

The first call starts a journey. Each call provisions the day's workout,
nutrition plan and dopamine record if they do not exist yet.

EXAMPLES:

  recomp today            # Human-readable summary
  recomp today --json     # Full bundle as JSON`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := ensureCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		b, err := svc.Today(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("failed to load today: %w", err)
		}
		bundle := dto.TodayBundle(b)

		if todayJSON {
			out, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		printToday(bundle)
		return nil
	},
}

func printToday(b dto.TodayBundleDTO) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	cyan := color.New(color.FgCyan)

	j := b.Journey
	bold.Printf("Day %d of 90", j.CurrentDay)
	fmt.Printf("  %s  %s\n\n", cyan.Sprint(j.Phase), faint.Sprintf("%d%% · %d days left", j.ProgressPercent, j.DaysRemaining))

	w := b.Workout
	bold.Print("Workout  ")
	fmt.Printf("%s  %s  %d/%d exercises\n", w.WorkoutType, statusColor(w.Status), w.CompletedExercises, w.TotalExercises)
	for _, e := range w.Exercises {
		mark := " "
		if e.IsComplete {
			mark = color.GreenString("✓")
		}
		fmt.Printf("  %s %s %s\n", mark, padRight(e.Name, 28), faint.Sprintf("%dx%s  %d/%d sets", e.TargetSets, e.TargetReps, e.CompletedSets, e.TargetSets))
	}
	fmt.Println()

	n := b.Nutrition
	bold.Print("Nutrition  ")
	fmt.Printf("%.0f/%.0f kcal  P %.0f/%.0fg  C %.0f/%.0fg  F %.0f/%.0fg\n\n",
		n.Totals.Calories, n.TargetCalories,
		n.Totals.Protein, n.TargetProtein,
		n.Totals.Carbs, n.TargetCarbs,
		n.Totals.Fat, n.TargetFat)

	d := b.Dopamine
	bold.Print("Dopamine  ")
	fmt.Printf("score %s  good %d  bad %d  streak %d\n", scoreColor(d.Score), d.GoodCount, d.BadCount, d.StreakDays)
	var bonuses []string
	if d.FirstWin {
		bonuses = append(bonuses, "first win")
	}
	if d.SwapBonus {
		bonuses = append(bonuses, "swap")
	}
	if d.StreakBonus {
		bonuses = append(bonuses, "streak")
	}
	if d.PerfectDay {
		bonuses = append(bonuses, "perfect day")
	}
	if len(bonuses) > 0 {
		fmt.Printf("  %s\n", faint.Sprintf("bonuses: %s", strings.Join(bonuses, ", ")))
	}
	fmt.Println()

	m := b.Mindset
	bold.Print("Mindset  ")
	fmt.Printf("%d/%d lessons completed\n", m.CompletedCount, m.TotalAvailable)
	if l := m.CurrentDayLesson; l != nil {
		mark := " "
		if l.IsCompleted {
			mark = color.GreenString("✓")
		}
		fmt.Printf("  %s %s %s\n", mark, l.Title, faint.Sprintf("(%d min)", l.Duration))
	}
}

func statusColor(status string) string {
	switch status {
	case "completed":
		return color.GreenString(status)
	case "in_progress":
		return color.YellowString(status)
	case "skipped":
		return color.RedString(status)
	}
	return color.New(color.Faint).Sprint(status)
}

func scoreColor(score int) string {
	switch {
	case score > 0:
		return color.GreenString("%+d", score)
	case score < 0:
		return color.RedString("%d", score)
	}
	return "0"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func init() {
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "print the full bundle as JSON")
	rootCmd.AddCommand(todayCmd)
}
