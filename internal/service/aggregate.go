package service

import (
	"sort"

	"github.com/saadjs/biolink/internal/model"
)

const (
	DefaultSeriesWindow  = 14
	DefaultInsightWindow = 7
)

type Totals struct {
	Food             model.Nutrients `json:"food"`
	ExerciseCalories float64         `json:"exercise_calories"`
	WaterMl          int             `json:"water_ml"`
}

func (t Totals) FoodCalories() float64 {
	return t.Food.Calories
}

func (t Totals) NetCalories() float64 {
	return t.Food.Calories - t.ExerciseCalories
}

// Balance is net calories minus the calorie target: positive is a surplus,
// negative a deficit.
func (t Totals) Balance(targets model.Targets) float64 {
	return t.NetCalories() - targets.Calories
}

func DailyTotals(log model.DailyLog) Totals {
	out := Totals{WaterMl: log.WaterMl}
	for _, e := range log.Entries {
		out.Food = out.Food.Add(e.Nutrients)
	}
	for _, e := range log.Exercises {
		out.ExerciseCalories += e.CaloriesBurned
	}
	return out
}

type DaySummary struct {
	Date             string   `json:"date"`
	FoodCalories     float64  `json:"food_calories"`
	ExerciseCalories float64  `json:"exercise_calories"`
	NetCalories      float64  `json:"net_calories"`
	Balance          float64  `json:"balance"`
	TargetCalories   float64  `json:"target_calories"`
	ProteinG         float64  `json:"protein_g"`
	CarbsG           float64  `json:"carbs_g"`
	FatG             float64  `json:"fat_g"`
	WaterMl          int      `json:"water_ml"`
	WeightKg         *float64 `json:"weight_kg,omitempty"`
}

func SortedDateKeys(logs map[string]model.DailyLog) []string {
	keys := make([]string, 0, len(logs))
	for k := range logs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Series summarizes the most recent window days that have a log, oldest
// first. A window <= 0 selects every day.
func Series(logs map[string]model.DailyLog, targets model.Targets, window int) []DaySummary {
	keys := SortedDateKeys(logs)
	if window > 0 && len(keys) > window {
		keys = keys[len(keys)-window:]
	}
	out := make([]DaySummary, 0, len(keys))
	for _, k := range keys {
		log := logs[k]
		totals := DailyTotals(log)
		day := DaySummary{
			Date:             k,
			FoodCalories:     totals.FoodCalories(),
			ExerciseCalories: totals.ExerciseCalories,
			NetCalories:      totals.NetCalories(),
			Balance:          totals.Balance(targets),
			TargetCalories:   targets.Calories,
			ProteinG:         totals.Food.ProteinG,
			CarbsG:           totals.Food.CarbsG,
			FatG:             totals.Food.FatG,
			WaterMl:          totals.WaterMl,
		}
		if log.WeightKg != nil {
			w := *log.WeightKg
			day.WeightKg = &w
		}
		out = append(out, day)
	}
	return out
}

type WeightPoint struct {
	Date     string  `json:"date"`
	WeightKg float64 `json:"weight_kg"`
}

// WeightTrend keeps the days of series with a recorded, non-zero weight.
func WeightTrend(series []DaySummary) []WeightPoint {
	out := make([]WeightPoint, 0)
	for _, d := range series {
		if d.WeightKg == nil || *d.WeightKg == 0 {
			continue
		}
		out = append(out, WeightPoint{Date: d.Date, WeightKg: *d.WeightKg})
	}
	return out
}

type MacroProgress struct {
	Calories    float64 `json:"calories_pct"`
	ProteinG    float64 `json:"protein_pct"`
	CarbsG      float64 `json:"carbs_pct"`
	FatG        float64 `json:"fat_pct"`
	WaterMl     float64 `json:"water_pct"`
	FiberG      float64 `json:"fiber_pct"`
	SodiumMg    float64 `json:"sodium_pct"`
	PotassiumMg float64 `json:"potassium_pct"`
}

// Progress is how far the day is towards each target, in percent clamped to
// [0, 100]. A zero target reports 0.
func Progress(t Totals, targets model.Targets) MacroProgress {
	return MacroProgress{
		Calories:    percentOf(t.Food.Calories, targets.Calories),
		ProteinG:    percentOf(t.Food.ProteinG, targets.ProteinG),
		CarbsG:      percentOf(t.Food.CarbsG, targets.CarbsG),
		FatG:        percentOf(t.Food.FatG, targets.FatG),
		WaterMl:     percentOf(float64(t.WaterMl), targets.WaterMl),
		FiberG:      percentOf(t.Food.FiberG, targets.FiberG),
		SodiumMg:    percentOf(t.Food.SodiumMg, targets.SodiumMg),
		PotassiumMg: percentOf(t.Food.PotassiumMg, targets.PotassiumMg),
	}
}

func percentOf(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

type CategoryTotals struct {
	Category  model.MealCategory `json:"category"`
	Entries   int                `json:"entries"`
	Nutrients model.Nutrients    `json:"nutrients"`
}

// CategoryBreakdown groups the day's food by meal, in meal order. Meals
// without entries are omitted.
func CategoryBreakdown(log model.DailyLog) []CategoryTotals {
	byCategory := map[model.MealCategory]*CategoryTotals{}
	for _, e := range log.Entries {
		c := e.Category
		if !c.Valid() {
			c = model.CategorySnack
		}
		ct, ok := byCategory[c]
		if !ok {
			ct = &CategoryTotals{Category: c}
			byCategory[c] = ct
		}
		ct.Entries++
		ct.Nutrients = ct.Nutrients.Add(e.Nutrients)
	}
	out := make([]CategoryTotals, 0, len(byCategory))
	for _, c := range model.MealCategories {
		if ct, ok := byCategory[c]; ok {
			out = append(out, *ct)
		}
	}
	return out
}

type TimelineItem struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Timestamp       int64    `json:"timestamp"`
	Calories        float64  `json:"calories"`
	Category        string   `json:"category,omitempty"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
}

// Timeline merges food and exercise of a day, newest first.
func Timeline(log model.DailyLog) []TimelineItem {
	items := make([]TimelineItem, 0, len(log.Entries)+len(log.Exercises))
	for _, e := range log.Entries {
		items = append(items, TimelineItem{
			ID:        e.ID,
			Type:      model.EntryTypeFood,
			Name:      e.Name,
			Timestamp: e.Timestamp,
			Calories:  e.Nutrients.Calories,
			Category:  string(e.Category),
		})
	}
	for _, e := range log.Exercises {
		items = append(items, TimelineItem{
			ID:              e.ID,
			Type:            model.EntryTypeExercise,
			Name:            e.Name,
			Timestamp:       e.Timestamp,
			Calories:        e.CaloriesBurned,
			DurationMinutes: e.DurationMinutes,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items
}

func RecentLogs(logs map[string]model.DailyLog, n int) []model.DailyLog {
	keys := SortedDateKeys(logs)
	if n > 0 && len(keys) > n {
		keys = keys[len(keys)-n:]
	}
	out := make([]model.DailyLog, 0, len(keys))
	for _, k := range keys {
		out = append(out, logs[k])
	}
	return out
}
