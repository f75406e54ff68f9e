package biolink

import (
	"context"
	"fmt"
	"io"

	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update body metrics",
}

var profileJSON bool

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			p := rt.session.State().Profile
			if profileJSON {
				return printJSON(cmd, p)
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var (
	profileWeight   float64
	profileHeight   float64
	profileAge      int
	profileGender   string
	profileActivity string
	profileManual   bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the profile, recompute targets and record today's weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			state := rt.session.State()
			p, err := profileFromFlags(cmd, state.Profile)
			if err != nil {
				return err
			}
			targets := service.ResolveTargets(p, state.Targets)
			today := rt.session.Today()
			next, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.SaveProfileAndTargets(st, today, p, targets)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated profile")
			printProfile(cmd.OutOrStdout(), next.Profile)
			printTargets(cmd.OutOrStdout(), next.Targets)
			return nil
		})
	},
}

func profileFromFlags(cmd *cobra.Command, p model.Profile) (model.Profile, error) {
	flags := cmd.Flags()
	if flags.Changed("weight") {
		p.WeightKg = profileWeight
	}
	if flags.Changed("height") {
		p.HeightCm = profileHeight
	}
	if flags.Changed("age") {
		p.Age = profileAge
	}
	if flags.Changed("gender") {
		g, err := service.ParseGender(profileGender)
		if err != nil {
			return p, err
		}
		p.Gender = g
	}
	if flags.Changed("activity") {
		a, err := service.ParseActivityLevel(profileActivity)
		if err != nil {
			return p, err
		}
		p.ActivityLevel = a
	}
	if flags.Changed("manual-targets") {
		p.ManualTargets = profileManual
	}
	return p, nil
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show, set or recompute daily targets",
}

var targetsJSON bool

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show daily targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			t := rt.session.State().Targets
			if targetsJSON {
				return printJSON(cmd, t)
			}
			printTargets(cmd.OutOrStdout(), t)
			return nil
		})
	},
}

var (
	targetCalories  float64
	targetProtein   float64
	targetCarbs     float64
	targetFat       float64
	targetWater     float64
	targetFiber     float64
	targetSodium    float64
	targetPotassium float64
)

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set targets manually (switches the profile to manual targets)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			state := rt.session.State()
			t := state.Targets
			flags := cmd.Flags()
			for _, f := range []struct {
				name string
				dst  *float64
				src  float64
			}{
				{"calories", &t.Calories, targetCalories},
				{"protein", &t.ProteinG, targetProtein},
				{"carbs", &t.CarbsG, targetCarbs},
				{"fat", &t.FatG, targetFat},
				{"water", &t.WaterMl, targetWater},
				{"fiber", &t.FiberG, targetFiber},
				{"sodium", &t.SodiumMg, targetSodium},
				{"potassium", &t.PotassiumMg, targetPotassium},
			} {
				if flags.Changed(f.name) {
					*f.dst = f.src
				}
			}
			p := state.Profile
			p.ManualTargets = true
			next, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.UpdateProfile(st, p, t)
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated targets")
			printTargets(cmd.OutOrStdout(), next.Targets)
			return nil
		})
	},
}

var targetsComputeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Recompute targets from the profile (switches back to computed targets)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			p := rt.session.State().Profile
			p.ManualTargets = false
			targets := service.ComputeTargets(p)
			next, err := rt.session.Apply(ctx, func(st model.AppState) (model.AppState, error) {
				return service.UpdateProfile(st, p, targets)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "BMR: %.0f kcal | TDEE: %.0f kcal\n", service.BMR(p), service.TDEE(p))
			printTargets(cmd.OutOrStdout(), next.Targets)
			return nil
		})
	},
}

func printProfile(out io.Writer, p model.Profile) {
	mode := "computed"
	if p.ManualTargets {
		mode = "manual"
	}
	fmt.Fprintf(out, "Weight: %.1f kg\n", p.WeightKg)
	fmt.Fprintf(out, "Height: %.1f cm\n", p.HeightCm)
	fmt.Fprintf(out, "Age: %d\n", p.Age)
	fmt.Fprintf(out, "Gender: %s\n", p.Gender)
	fmt.Fprintf(out, "Activity: %s\n", p.ActivityLevel)
	fmt.Fprintf(out, "Targets: %s\n", mode)
}

func printTargets(out io.Writer, t model.Targets) {
	fmt.Fprintf(out, "Calories: %.0f kcal\n", t.Calories)
	fmt.Fprintf(out, "Macros: P %.0fg | C %.0fg | F %.0fg\n", t.ProteinG, t.CarbsG, t.FatG)
	fmt.Fprintf(out, "Water: %.0f ml | Fiber: %.0f g\n", t.WaterMl, t.FiberG)
	fmt.Fprintf(out, "Sodium: %.0f mg | Potassium: %.0f mg\n", t.SodiumMg, t.PotassiumMg)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)
	rootCmd.AddCommand(targetsCmd)
	targetsCmd.AddCommand(targetsShowCmd, targetsSetCmd, targetsComputeCmd)

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Output as JSON")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Weight in kg")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "male|female")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "sedentary|light|moderate|active|very_active")
	profileSetCmd.Flags().BoolVar(&profileManual, "manual-targets", false, "Keep current targets instead of recomputing them")

	targetsShowCmd.Flags().BoolVar(&targetsJSON, "json", false, "Output as JSON")
	targetsSetCmd.Flags().Float64Var(&targetCalories, "calories", 0, "Daily calories")
	targetsSetCmd.Flags().Float64Var(&targetProtein, "protein", 0, "Protein grams")
	targetsSetCmd.Flags().Float64Var(&targetCarbs, "carbs", 0, "Carbs grams")
	targetsSetCmd.Flags().Float64Var(&targetFat, "fat", 0, "Fat grams")
	targetsSetCmd.Flags().Float64Var(&targetWater, "water", 0, "Water ml")
	targetsSetCmd.Flags().Float64Var(&targetFiber, "fiber", 0, "Fiber grams")
	targetsSetCmd.Flags().Float64Var(&targetSodium, "sodium", 0, "Sodium mg")
	targetsSetCmd.Flags().Float64Var(&targetPotassium, "potassium", 0, "Potassium mg")
}
