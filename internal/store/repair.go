package store

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/saadjs/biolink/internal/model"
)

// Repair builds a canonical AppState from a decoded blob. Persisted fields
// win over defaults; missing or unusable fields fall back to them.
func Repair(p PartialState) model.AppState {
	state := model.AppState{
		Profile:   RepairProfile(p.Profile),
		Targets:   RepairTargets(p.Targets),
		Favorites: make([]model.FavoriteEntry, 0, len(p.Favorites)),
		Logs:      make(map[string]model.DailyLog, len(p.Logs)),
	}
	for _, f := range p.Favorites {
		state.Favorites = append(state.Favorites, RepairFavorite(f))
	}
	for key, l := range p.Logs {
		state.Logs[key] = RepairLog(key, l)
	}
	return state
}

func RepairProfile(p *PartialProfile) model.Profile {
	out := model.DefaultProfile
	if p == nil {
		return out
	}
	if p.WeightKg != nil && usable(*p.WeightKg) {
		out.WeightKg = *p.WeightKg
	}
	if p.HeightCm != nil && usable(*p.HeightCm) {
		out.HeightCm = *p.HeightCm
	}
	if p.Age != nil && usable(*p.Age) {
		out.Age = int(math.Round(*p.Age))
	}
	if p.Gender != nil {
		switch g := model.Gender(strings.ToLower(strings.TrimSpace(*p.Gender))); g {
		case model.GenderMale, model.GenderFemale:
			out.Gender = g
		}
	}
	if p.ActivityLevel != nil {
		if a := model.ActivityLevel(strings.ToLower(strings.TrimSpace(*p.ActivityLevel))); a.Valid() {
			out.ActivityLevel = a
		}
	}
	if p.ManualTargets != nil {
		out.ManualTargets = *p.ManualTargets
	}
	return out
}

func RepairTargets(t *PartialTargets) model.Targets {
	out := model.DefaultTargets
	if t == nil {
		return out
	}
	mergeFloat(&out.Calories, t.Calories)
	mergeFloat(&out.ProteinG, t.ProteinG)
	mergeFloat(&out.CarbsG, t.CarbsG)
	mergeFloat(&out.FatG, t.FatG)
	mergeFloat(&out.WaterMl, t.WaterMl)
	mergeFloat(&out.FiberG, t.FiberG)
	mergeFloat(&out.SodiumMg, t.SodiumMg)
	mergeFloat(&out.PotassiumMg, t.PotassiumMg)
	return out
}

func RepairNutrients(n *PartialNutrients) model.Nutrients {
	if n == nil {
		return model.Nutrients{}
	}
	return model.Nutrients{
		Calories:    nonNegative(n.Calories),
		ProteinG:    nonNegative(n.ProteinG),
		CarbsG:      nonNegative(n.CarbsG),
		FatG:        nonNegative(n.FatG),
		FiberG:      nonNegative(n.FiberG),
		SodiumMg:    nonNegative(n.SodiumMg),
		PotassiumMg: nonNegative(n.PotassiumMg),
	}
}

// RepairLog fills in the collections and fields older blobs lack: the
// exercises list, a meal category on every food entry (snack when absent or
// unknown) and the date, which always matches the key the log is stored under.
func RepairLog(key string, l PartialLog) model.DailyLog {
	out := model.NewDailyLog(key)
	out.Entries = make([]model.FoodEntry, 0, len(l.Entries))
	for _, e := range l.Entries {
		out.Entries = append(out.Entries, RepairFoodEntry(e))
	}
	out.Exercises = make([]model.ExerciseEntry, 0, len(l.Exercises))
	for _, e := range l.Exercises {
		out.Exercises = append(out.Exercises, RepairExerciseEntry(e))
	}
	out.WaterMl = int(wholeNonNegative(l.WaterMl, float64(math.MaxInt)))
	if l.WeightKg != nil && usable(*l.WeightKg) {
		w := *l.WeightKg
		out.WeightKg = &w
	}
	return out
}

func RepairFoodEntry(e PartialFoodEntry) model.FoodEntry {
	out := model.FoodEntry{
		ID:        stringOr(e.ID, ""),
		Type:      model.EntryTypeFood,
		Name:      stringOr(e.Name, ""),
		Category:  model.CategorySnack,
		Timestamp: wholeNonNegative(e.Timestamp, float64(math.MaxInt64)),
		Nutrients: RepairNutrients(e.Nutrients),
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if e.Category != nil {
		if c := model.MealCategory(strings.ToLower(strings.TrimSpace(*e.Category))); c.Valid() {
			out.Category = c
		}
	}
	return out
}

func RepairExerciseEntry(e PartialExerciseEntry) model.ExerciseEntry {
	out := model.ExerciseEntry{
		ID:             stringOr(e.ID, ""),
		Type:           model.EntryTypeExercise,
		Name:           stringOr(e.Name, ""),
		Timestamp:      wholeNonNegative(e.Timestamp, float64(math.MaxInt64)),
		CaloriesBurned: nonNegative(e.CaloriesBurned),
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	if e.DurationMinutes != nil && usable(*e.DurationMinutes) {
		d := *e.DurationMinutes
		out.DurationMinutes = &d
	}
	return out
}

func RepairFavorite(f PartialFavorite) model.FavoriteEntry {
	out := model.FavoriteEntry{
		ID:        stringOr(f.ID, ""),
		Name:      stringOr(f.Name, ""),
		Nutrients: RepairNutrients(f.Nutrients),
	}
	if out.ID == "" {
		out.ID = uuid.NewString()
	}
	return out
}

func usable(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func mergeFloat(dst *float64, src *float64) {
	if src != nil && usable(*src) {
		*dst = *src
	}
}

func nonNegative(v *float64) float64 {
	if v == nil || !usable(*v) {
		return 0
	}
	return *v
}

// wholeNonNegative rounds v to an integer below limit. Values that do not fit
// are unusable and become 0.
func wholeNonNegative(v *float64, limit float64) int64 {
	f := math.Round(nonNegative(v))
	if f >= limit {
		return 0
	}
	return int64(f)
}

func stringOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
