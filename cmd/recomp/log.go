// ABOUTME: CLI commands for logging meals and water.
// ABOUTME: Meals are logged against today's nutrition plan.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/recomp/internal/models"
	"github.com/harperreed/recomp/internal/today"
	"github.com/spf13/cobra"
)

var (
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealDesc     string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Log meals and water",
}

var logMealCmd = &cobra.Command{
	Use:   "meal <type>",
	Short: "Log a meal",
	Long: `Log a meal against today's nutrition plan.

MEAL TYPES:

  breakfast, lunch, dinner, snack

EXAMPLES:

  recomp log meal breakfast --calories 520 --protein 40 --carbs 45 --fat 18
  recomp log meal snack --calories 200 -d "greek yogurt"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: mealTypeArgs(),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := ensureCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		in := today.MealInput{
			MealType: args[0],
			Macros: models.Macros{
				Calories: mealCalories,
				Protein:  mealProtein,
				Carbs:    mealCarbs,
				Fat:      mealFat,
			},
		}
		if mealDesc != "" {
			in.Description = &mealDesc
		}
		p, err := svc.LogMeal(cmd.Context(), userID, in)
		if err != nil {
			return err
		}

		var total models.Macros
		for _, l := range p.Logs {
			total.Calories += l.Calories
			total.Protein += l.Protein
		}
		color.Green("✓ Logged %s", args[0])
		fmt.Printf("  %.0f/%.0f kcal  protein %.0f/%.0fg\n", total.Calories, p.Target.Calories, total.Protein, p.Target.Protein)
		return nil
	},
}

var logWaterCmd = &cobra.Command{
	Use:   "water <liters>",
	Short: "Log water intake",
	Long: `Log water intake in liters.

EXAMPLES:

  recomp log water 0.5
  recomp log water 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		liters, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %s", args[0])
		}
		userID, err := ensureCurrentUser(cmd.Context())
		if err != nil {
			return err
		}
		_, total, err := svc.LogWater(cmd.Context(), userID, liters)
		if err != nil {
			return err
		}
		color.Green("✓ Logged %.2fL (%.2fL today)", liters, total)
		return nil
	},
}

func mealTypeArgs() []string {
	args := make([]string, len(models.AllMealTypes))
	for i, mt := range models.AllMealTypes {
		args[i] = string(mt)
	}
	return args
}

func init() {
	f := logMealCmd.Flags()
	f.Float64Var(&mealCalories, "calories", 0, "calories (kcal)")
	f.Float64Var(&mealProtein, "protein", 0, "protein (g)")
	f.Float64Var(&mealCarbs, "carbs", 0, "carbohydrates (g)")
	f.Float64Var(&mealFat, "fat", 0, "fat (g)")
	f.StringVarP(&mealDesc, "description", "d", "", "what was eaten")

	logCmd.AddCommand(logMealCmd, logWaterCmd)
	rootCmd.AddCommand(logCmd)
}
