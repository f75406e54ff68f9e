package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/biolink/internal/model"
)

// Ledger operations never modify their input state. Each returns a new
// AppState that shares untouched logs and favorites with the old one, and on
// error returns the input state unchanged.

func NewEntryID() string {
	return uuid.NewString()
}

func AddFoodEntry(state model.AppState, dateKey string, entry model.FoodEntry) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return state, fmt.Errorf("entry id is required")
	}
	if err := validateNutrients(entry.Nutrients); err != nil {
		return state, err
	}
	entry.Type = model.EntryTypeFood
	if entry.Category == "" {
		entry.Category = model.CategorySnack
	}
	if !entry.Category.Valid() {
		return state, fmt.Errorf("invalid category %q (use breakfast, lunch, dinner or snack)", entry.Category)
	}

	return withLog(state, dateKey, func(log model.DailyLog) model.DailyLog {
		entries := make([]model.FoodEntry, 0, len(log.Entries)+1)
		entries = append(entries, log.Entries...)
		log.Entries = append(entries, entry)
		return log
	}), nil
}

func AddExerciseEntry(state model.AppState, dateKey string, entry model.ExerciseEntry) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if strings.TrimSpace(entry.ID) == "" {
		return state, fmt.Errorf("entry id is required")
	}
	if err := validateNonNegativeFloat("calories burned", entry.CaloriesBurned); err != nil {
		return state, err
	}
	if entry.DurationMinutes != nil {
		if err := validateNonNegativeFloat("duration", *entry.DurationMinutes); err != nil {
			return state, err
		}
	}
	entry.Type = model.EntryTypeExercise

	return withLog(state, dateKey, func(log model.DailyLog) model.DailyLog {
		exercises := make([]model.ExerciseEntry, 0, len(log.Exercises)+1)
		exercises = append(exercises, log.Exercises...)
		log.Exercises = append(exercises, entry)
		return log
	}), nil
}

// DeleteEntry removes id from both the food and the exercise sequences of
// the day. A date without a log is left as is.
func DeleteEntry(state model.AppState, dateKey, entryID string) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if strings.TrimSpace(entryID) == "" {
		return state, fmt.Errorf("entry id is required")
	}
	if _, ok := state.Logs[dateKey]; !ok {
		return state, nil
	}

	return withLog(state, dateKey, func(log model.DailyLog) model.DailyLog {
		entries := make([]model.FoodEntry, 0, len(log.Entries))
		for _, e := range log.Entries {
			if e.ID != entryID {
				entries = append(entries, e)
			}
		}
		exercises := make([]model.ExerciseEntry, 0, len(log.Exercises))
		for _, e := range log.Exercises {
			if e.ID != entryID {
				exercises = append(exercises, e)
			}
		}
		log.Entries = entries
		log.Exercises = exercises
		return log
	}), nil
}

// AddWater only ever increases the day's water; ResetLog is the way back down.
func AddWater(state model.AppState, dateKey string, amountMl int) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if amountMl <= 0 {
		return state, fmt.Errorf("water amount must be > 0")
	}
	if current := state.Logs[dateKey].WaterMl; current > math.MaxInt-amountMl {
		return state, fmt.Errorf("water amount too large (day already has %d ml)", current)
	}
	return withLog(state, dateKey, func(log model.DailyLog) model.DailyLog {
		log.WaterMl += amountMl
		return log
	}), nil
}

func ResetLog(state model.AppState, dateKey string) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if _, ok := state.Logs[dateKey]; !ok {
		return state, nil
	}
	next := state
	next.Logs = make(map[string]model.DailyLog, len(state.Logs))
	for k, v := range state.Logs {
		if k != dateKey {
			next.Logs[k] = v
		}
	}
	return next, nil
}

// AddFavorite saves a template of entry. Only name and nutrients are kept;
// the favorite gets its own id.
func AddFavorite(state model.AppState, entry model.FoodEntry) (model.AppState, model.FavoriteEntry, error) {
	name := strings.TrimSpace(entry.Name)
	if name == "" {
		return state, model.FavoriteEntry{}, fmt.Errorf("favorite name is required")
	}
	if err := validateNutrients(entry.Nutrients); err != nil {
		return state, model.FavoriteEntry{}, err
	}
	fav := model.FavoriteEntry{
		ID:        NewEntryID(),
		Name:      name,
		Nutrients: entry.Nutrients,
	}
	next := state
	next.Favorites = make([]model.FavoriteEntry, 0, len(state.Favorites)+1)
	next.Favorites = append(next.Favorites, state.Favorites...)
	next.Favorites = append(next.Favorites, fav)
	return next, fav, nil
}

func RemoveFavorite(state model.AppState, favoriteID string) (model.AppState, error) {
	idx := -1
	for i, f := range state.Favorites {
		if f.ID == favoriteID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return state, fmt.Errorf("favorite %q not found", favoriteID)
	}
	next := state
	next.Favorites = make([]model.FavoriteEntry, 0, len(state.Favorites)-1)
	next.Favorites = append(next.Favorites, state.Favorites[:idx]...)
	next.Favorites = append(next.Favorites, state.Favorites[idx+1:]...)
	return next, nil
}

func ResolveFavorite(state model.AppState, idOrName string) (model.FavoriteEntry, error) {
	idOrName = strings.TrimSpace(idOrName)
	if idOrName == "" {
		return model.FavoriteEntry{}, fmt.Errorf("favorite identifier is required")
	}
	for _, f := range state.Favorites {
		if f.ID == idOrName {
			return f, nil
		}
	}
	for _, f := range state.Favorites {
		if normalizeName(f.Name) == normalizeName(idOrName) {
			return f, nil
		}
	}
	return model.FavoriteEntry{}, fmt.Errorf("favorite %q not found", idOrName)
}

// InstantiateFavorite turns a favorite into a fresh snack entry. Callers may
// change the category before adding it.
func InstantiateFavorite(fav model.FavoriteEntry, now time.Time) model.FoodEntry {
	return model.FoodEntry{
		ID:        NewEntryID(),
		Type:      model.EntryTypeFood,
		Name:      fav.Name,
		Category:  model.CategorySnack,
		Timestamp: now.UnixMilli(),
		Nutrients: fav.Nutrients,
	}
}

func UpdateProfile(state model.AppState, profile model.Profile, targets model.Targets) (model.AppState, error) {
	if err := validatePositiveFloat("weight", profile.WeightKg); err != nil {
		return state, err
	}
	if err := validatePositiveFloat("height", profile.HeightCm); err != nil {
		return state, err
	}
	if profile.Age < 0 {
		return state, fmt.Errorf("age must be >= 0")
	}
	if profile.Gender != model.GenderMale && profile.Gender != model.GenderFemale {
		return state, fmt.Errorf("invalid gender %q (use male or female)", profile.Gender)
	}
	if !profile.ActivityLevel.Valid() {
		return state, fmt.Errorf("invalid activity level %q", profile.ActivityLevel)
	}
	if err := validateTargets(targets); err != nil {
		return state, err
	}
	next := state
	next.Profile = profile
	next.Targets = targets
	return next, nil
}

func RecordDailyWeight(state model.AppState, dateKey string, weightKg float64) (model.AppState, error) {
	if err := ValidateDateKey(dateKey); err != nil {
		return state, err
	}
	if err := validatePositiveFloat("weight", weightKg); err != nil {
		return state, err
	}
	return withLog(state, dateKey, func(log model.DailyLog) model.DailyLog {
		w := weightKg
		log.WeightKg = &w
		return log
	}), nil
}

// SaveProfileAndTargets is the settings save: UpdateProfile followed by a
// weigh-in for today taken from the new profile.
func SaveProfileAndTargets(state model.AppState, todayKey string, profile model.Profile, targets model.Targets) (model.AppState, error) {
	next, err := UpdateProfile(state, profile, targets)
	if err != nil {
		return state, err
	}
	next, err = RecordDailyWeight(next, todayKey, profile.WeightKg)
	if err != nil {
		return state, err
	}
	return next, nil
}

func validateTargets(t model.Targets) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"calorie target", t.Calories},
		{"protein target", t.ProteinG},
		{"carbs target", t.CarbsG},
		{"fat target", t.FatG},
		{"water target", t.WaterMl},
		{"fiber target", t.FiberG},
		{"sodium target", t.SodiumMg},
		{"potassium target", t.PotassiumMg},
	}
	for _, f := range fields {
		if err := validateNonNegativeFloat(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

// withLog copies the logs map and replaces the day's log with fn applied to
// it, creating an empty log first when the day has none.
func withLog(state model.AppState, dateKey string, fn func(model.DailyLog) model.DailyLog) model.AppState {
	current, ok := state.Logs[dateKey]
	if !ok {
		current = model.NewDailyLog(dateKey)
	}
	next := state
	next.Logs = make(map[string]model.DailyLog, len(state.Logs)+1)
	for k, v := range state.Logs {
		next.Logs[k] = v
	}
	next.Logs[dateKey] = fn(current)
	return next
}

// ParseMealCategory accepts the four meal names, with "snacks" as an alias.
func ParseMealCategory(value string) (model.MealCategory, error) {
	name := normalizeName(value)
	switch name {
	case "":
		return model.CategorySnack, nil
	case "snacks":
		return model.CategorySnack, nil
	}
	c := model.MealCategory(name)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (use breakfast, lunch, dinner or snack)", value)
	}
	return c, nil
}

func ParseActivityLevel(value string) (model.ActivityLevel, error) {
	name := strings.ReplaceAll(normalizeName(value), "-", "_")
	a := model.ActivityLevel(name)
	if !a.Valid() {
		return "", fmt.Errorf("invalid activity level %q (use sedentary, light, moderate, active or very_active)", value)
	}
	return a, nil
}

func ParseGender(value string) (model.Gender, error) {
	switch g := model.Gender(normalizeName(value)); g {
	case model.GenderMale, model.GenderFemale:
		return g, nil
	}
	return "", fmt.Errorf("invalid gender %q (use male or female)", value)
}
