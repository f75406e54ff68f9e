package biolink

import (
	"context"
	"fmt"
	"strings"

	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Log food",
}

var (
	foodName      string
	foodCategory  string
	foodDate      string
	foodTime      string
	foodNutrients model.Nutrients
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(foodName) == "" {
			return fmt.Errorf("--name is required")
		}
		category, err := service.ParseMealCategory(foodCategory)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, foodDate)
			if err != nil {
				return err
			}
			at, err := entryTime(rt.session, dateKey, foodTime)
			if err != nil {
				return err
			}
			entry := model.FoodEntry{
				ID:        service.NewEntryID(),
				Name:      strings.TrimSpace(foodName),
				Category:  category,
				Timestamp: at.UnixMilli(),
				Nutrients: foodNutrients,
			}
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.AddFoodEntry(st, dateKey, entry)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food entry %s\n", entry.ID)
			return nil
		})
	},
}

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log exercise",
}

var (
	exerciseName     string
	exerciseCalories float64
	exerciseDuration float64
	exerciseDate     string
	exerciseTime     string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exerciseName) == "" {
			return fmt.Errorf("--name is required")
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, exerciseDate)
			if err != nil {
				return err
			}
			at, err := entryTime(rt.session, dateKey, exerciseTime)
			if err != nil {
				return err
			}
			entry := model.ExerciseEntry{
				ID:             service.NewEntryID(),
				Name:           strings.TrimSpace(exerciseName),
				Timestamp:      at.UnixMilli(),
				CaloriesBurned: exerciseCalories,
			}
			if cmd.Flags().Changed("duration") {
				d := exerciseDuration
				entry.DurationMinutes = &d
			}
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.AddExerciseEntry(st, dateKey, entry)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added exercise entry %s\n", entry.ID)
			return nil
		})
	},
}

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Log water",
}

var waterDate string

var waterAddCmd = &cobra.Command{
	Use:   "add <ml>",
	Short: "Add water in ml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseInt64Arg("water amount", args[0])
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, waterDate)
			if err != nil {
				return err
			}
			next, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.AddWater(st, dateKey, int(amount))
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Water on %s: %d ml\n", dateKey, next.Logs[dateKey].WaterMl)
			return nil
		})
	},
}

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "List or delete logged food and exercise",
}

var (
	entryDate string
	entryJSON bool
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a day's entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, entryDate)
			if err != nil {
				return err
			}
			items := service.Timeline(rt.session.State().Logs[dateKey])
			if entryJSON {
				return printJSON(cmd, items)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tTIME\tTYPE\tCATEGORY\tNAME\tKCAL")
			for _, it := range items {
				kcal := fmt.Sprintf("%.0f", it.Calories)
				if it.Type == model.EntryTypeExercise {
					kcal = "-" + kcal
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\t%s\n", it.ID, formatTimestamp(it.Timestamp), it.Type, it.Category, it.Name, kcal)
			}
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food or exercise entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, entryDate)
			if err != nil {
				return err
			}
			_, err = rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				next, err := service.DeleteEntry(st, dateKey, args[0])
				if err != nil {
					return st, err
				}
				if entryCount(next.Logs[dateKey]) == entryCount(st.Logs[dateKey]) {
					return st, fmt.Errorf("entry %s not found on %s", args[0], dateKey)
				}
				return next, nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		})
	},
}

var dayCmd = &cobra.Command{
	Use:   "day",
	Short: "Manage whole days",
}

var (
	dayDate    string
	dayConfirm bool
)

var dayResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every entry, water and weight of a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !dayConfirm {
			return fmt.Errorf("refusing to reset without --yes")
		}
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, dayDate)
			if err != nil {
				return err
			}
			if _, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.ResetLog(st, dateKey)
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", dateKey)
			return nil
		})
	},
}

func entryCount(log model.DailyLog) int {
	return len(log.Entries) + len(log.Exercises)
}

func addNutrientFlags(cmd *cobra.Command, n *model.Nutrients) {
	cmd.Flags().Float64Var(&n.Calories, "calories", 0, "Calories (kcal)")
	cmd.Flags().Float64Var(&n.ProteinG, "protein", 0, "Protein grams")
	cmd.Flags().Float64Var(&n.CarbsG, "carbs", 0, "Carbs grams")
	cmd.Flags().Float64Var(&n.FatG, "fat", 0, "Fat grams")
	cmd.Flags().Float64Var(&n.FiberG, "fiber", 0, "Fiber grams")
	cmd.Flags().Float64Var(&n.SodiumMg, "sodium", 0, "Sodium mg")
	cmd.Flags().Float64Var(&n.PotassiumMg, "potassium", 0, "Potassium mg")
}

func init() {
	rootCmd.AddCommand(foodCmd, exerciseCmd, waterCmd, entryCmd, dayCmd)
	foodCmd.AddCommand(foodAddCmd)
	exerciseCmd.AddCommand(exerciseAddCmd)
	waterCmd.AddCommand(waterAddCmd)
	entryCmd.AddCommand(entryListCmd, entryDeleteCmd)
	dayCmd.AddCommand(dayResetCmd)

	foodAddCmd.Flags().StringVar(&foodName, "name", "", "Food name")
	foodAddCmd.Flags().StringVar(&foodCategory, "category", "snack", "breakfast|lunch|dinner|snack")
	foodAddCmd.Flags().StringVar(&foodDate, "date", "", "Date YYYY-MM-DD (default today)")
	foodAddCmd.Flags().StringVar(&foodTime, "time", "", "Time HH:MM")
	addNutrientFlags(foodAddCmd, &foodNutrients)

	exerciseAddCmd.Flags().StringVar(&exerciseName, "name", "", "Exercise name")
	exerciseAddCmd.Flags().Float64Var(&exerciseCalories, "calories", 0, "Calories burned")
	exerciseAddCmd.Flags().Float64Var(&exerciseDuration, "duration", 0, "Duration in minutes")
	exerciseAddCmd.Flags().StringVar(&exerciseDate, "date", "", "Date YYYY-MM-DD (default today)")
	exerciseAddCmd.Flags().StringVar(&exerciseTime, "time", "", "Time HH:MM")

	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")

	for _, c := range []*cobra.Command{entryListCmd, entryDeleteCmd} {
		c.Flags().StringVar(&entryDate, "date", "", "Date YYYY-MM-DD (default today)")
	}
	entryListCmd.Flags().BoolVar(&entryJSON, "json", false, "Output as JSON")

	dayResetCmd.Flags().StringVar(&dayDate, "date", "", "Date YYYY-MM-DD (default today)")
	dayResetCmd.Flags().BoolVar(&dayConfirm, "yes", false, "Confirm the reset")
}
