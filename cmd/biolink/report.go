package biolink

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/saadjs/biolink/internal/service"
	"github.com/spf13/cobra"
)

var (
	todayDate string
	todayJSON bool
)

type todayReport struct {
	Date       string                   `json:"date"`
	Totals     service.Totals           `json:"totals"`
	Net        float64                  `json:"net_calories"`
	Balance    float64                  `json:"balance"`
	Progress   service.MacroProgress    `json:"progress"`
	Categories []service.CategoryTotals `json:"categories"`
	Timeline   []service.TimelineItem   `json:"timeline"`
	WeightKg   *float64                 `json:"weight_kg,omitempty"`
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show a day's intake, exercise, water and target progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			dateKey, err := resolveDateKey(rt.session, todayDate)
			if err != nil {
				return err
			}
			state := rt.session.State()
			log := state.Logs[dateKey]
			totals := service.DailyTotals(log)
			r := todayReport{
				Date:       dateKey,
				Totals:     totals,
				Net:        totals.NetCalories(),
				Balance:    totals.Balance(state.Targets),
				Progress:   service.Progress(totals, state.Targets),
				Categories: service.CategoryBreakdown(log),
				Timeline:   service.Timeline(log),
				WeightKg:   log.WeightKg,
			}
			if todayJSON {
				return printJSON(cmd, r)
			}

			out := cmd.OutOrStdout()
			t := state.Targets
			fmt.Fprintf(out, "Date: %s\n", r.Date)
			fmt.Fprintf(out, "Intake: %.0f / %.0f kcal\n", totals.FoodCalories(), t.Calories)
			fmt.Fprintf(out, "Exercise: %.0f kcal\n", totals.ExerciseCalories)
			fmt.Fprintf(out, "Net: %.0f kcal | Balance: %+.0f kcal\n", r.Net, r.Balance)
			fmt.Fprintf(out, "Macros: P %.1f/%.0fg | C %.1f/%.0fg | F %.1f/%.0fg\n",
				totals.Food.ProteinG, t.ProteinG, totals.Food.CarbsG, t.CarbsG, totals.Food.FatG, t.FatG)
			fmt.Fprintf(out, "Water: %d / %.0f ml\n", totals.WaterMl, t.WaterMl)
			fmt.Fprintf(out, "Micros: fiber %.1f/%.0fg | sodium %.0f/%.0fmg | potassium %.0f/%.0fmg\n",
				totals.Food.FiberG, t.FiberG, totals.Food.SodiumMg, t.SodiumMg, totals.Food.PotassiumMg, t.PotassiumMg)
			if r.WeightKg != nil {
				fmt.Fprintf(out, "Weight: %.1f kg\n", *r.WeightKg)
			}
			printProgress(out, r.Progress)
			for _, c := range r.Categories {
				fmt.Fprintf(out, "%s: %d entries, %.0f kcal\n", c.Category, c.Entries, c.Nutrients.Calories)
			}
			return nil
		})
	},
}

var (
	seriesDays int
	seriesJSON bool
)

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show daily calorie balance for recent days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			state := rt.session.State()
			series := service.Series(state.Logs, state.Targets, seriesDays)
			if seriesJSON {
				return printJSON(cmd, series)
			}
			out := cmd.OutOrStdout()
			if len(series) == 0 {
				fmt.Fprintln(out, "No logged days yet")
				return nil
			}
			fmt.Fprintln(out, "DATE\tINTAKE\tBURNED\tNET\tTARGET\tBALANCE")
			for _, d := range series {
				fmt.Fprintf(out, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%+.0f\n", d.Date, d.FoodCalories, d.ExerciseCalories, d.NetCalories, d.TargetCalories, d.Balance)
			}
			printBalanceBars(out, series)
			return nil
		})
	},
}

var (
	trendDays int
	trendJSON bool
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show recorded weight over recent days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			state := rt.session.State()
			points := service.WeightTrend(service.Series(state.Logs, state.Targets, trendDays))
			if trendJSON {
				return printJSON(cmd, points)
			}
			out := cmd.OutOrStdout()
			if len(points) == 0 {
				fmt.Fprintln(out, "No weigh-ins yet (use `biolink profile set --weight`)")
				return nil
			}
			for _, p := range points {
				fmt.Fprintf(out, "%s\t%.1f kg\n", p.Date, p.WeightKg)
			}
			first, last := points[0], points[len(points)-1]
			fmt.Fprintf(out, "Change: %+.1f kg\n", last.WeightKg-first.WeightKg)
			fmt.Fprintf(out, "Trend: %s\n", sparkline(points))
			return nil
		})
	},
}

var insightDays int

var insightCmd = &cobra.Command{
	Use:   "insight",
	Short: "Ask the AI for a one-line comment on recent days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, rt *runtime) error {
			fmt.Fprintln(cmd.OutOrStdout(), rt.session.Insight(ctx, rt.ai(), insightDays))
			return nil
		})
	},
}

func printProgress(out io.Writer, p service.MacroProgress) {
	rows := []struct {
		label string
		pct   float64
	}{
		{"calories", p.Calories},
		{"protein", p.ProteinG},
		{"carbs", p.CarbsG},
		{"fat", p.FatG},
		{"water", p.WaterMl},
		{"fiber", p.FiberG},
		{"sodium", p.SodiumMg},
		{"potassium", p.PotassiumMg},
	}
	for _, r := range rows {
		bars := int(math.Round(r.pct / 100 * 20))
		fmt.Fprintf(out, "  %-10s [%-20s] %3.0f%%\n", r.label, strings.Repeat("#", bars), r.pct)
	}
}

func printBalanceBars(out io.Writer, series []service.DaySummary) {
	fmt.Fprintln(out, "Balance:")
	maxAbs := 0.0
	for _, d := range series {
		maxAbs = math.Max(maxAbs, math.Abs(d.Balance))
	}
	if maxAbs == 0 {
		fmt.Fprintln(out, "  (all on target)")
		return
	}
	for _, d := range series {
		fmt.Fprintf(out, "  %-10s %s %+.0f\n", d.Date, horizontalBar(d.Balance, maxAbs, 24), d.Balance)
	}
}

func horizontalBar(value, maxAbs float64, width int) string {
	if width <= 0 || maxAbs <= 0 {
		return ""
	}
	bars := int(math.Round(math.Abs(value) / maxAbs * float64(width)))
	if bars == 0 && value != 0 {
		bars = 1
	}
	prefix := ""
	if value < 0 {
		prefix = "-"
	}
	return prefix + strings.Repeat("#", bars)
}

func sparkline(points []service.WeightPoint) string {
	if len(points) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV, maxV := points[0].WeightKg, points[0].WeightKg
	for _, p := range points[1:] {
		minV = math.Min(minV, p.WeightKg)
		maxV = math.Max(maxV, p.WeightKg)
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(points))
	}
	var b strings.Builder
	for _, p := range points {
		idx := int(math.Round((p.WeightKg - minV) / (maxV - minV) * float64(len(chars)-1)))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func init() {
	rootCmd.AddCommand(todayCmd, seriesCmd, trendCmd, insightCmd)

	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
	seriesCmd.Flags().IntVar(&seriesDays, "days", service.DefaultSeriesWindow, "Number of logged days (0 = all)")
	seriesCmd.Flags().BoolVar(&seriesJSON, "json", false, "Output as JSON")
	trendCmd.Flags().IntVar(&trendDays, "days", service.DefaultSeriesWindow, "Number of logged days (0 = all)")
	trendCmd.Flags().BoolVar(&trendJSON, "json", false, "Output as JSON")
	insightCmd.Flags().IntVar(&insightDays, "days", service.DefaultInsightWindow, "Number of recent logged days to send")
}
