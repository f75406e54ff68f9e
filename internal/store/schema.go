package store

// SchemaVersion is written into every saved blob. Blobs without a version
// field predate versioning and are treated as version 1.
const SchemaVersion = 2

// The Partial types mirror the persisted layout with every field optional so
// that blobs written by older releases decode without error. Repair turns
// them into canonical model values.

type PartialState struct {
	Version   *int                  `json:"version"`
	Profile   *PartialProfile       `json:"profile"`
	Targets   *PartialTargets       `json:"targets"`
	Favorites []PartialFavorite     `json:"favorites"`
	Logs      map[string]PartialLog `json:"logs"`
}

type PartialProfile struct {
	WeightKg      *float64 `json:"weight_kg"`
	HeightCm      *float64 `json:"height_cm"`
	Age           *float64 `json:"age"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activityLevel"`
	ManualTargets *bool    `json:"manualTargets"`
}

type PartialTargets struct {
	Calories    *float64 `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	WaterMl     *float64 `json:"water_ml"`
	FiberG      *float64 `json:"fiber_g"`
	SodiumMg    *float64 `json:"sodium_mg"`
	PotassiumMg *float64 `json:"potassium_mg"`
}

type PartialNutrients struct {
	Calories    *float64 `json:"calories"`
	ProteinG    *float64 `json:"protein_g"`
	CarbsG      *float64 `json:"carbs_g"`
	FatG        *float64 `json:"fat_g"`
	FiberG      *float64 `json:"fiber_g"`
	SodiumMg    *float64 `json:"sodium_mg"`
	PotassiumMg *float64 `json:"potassium_mg"`
}

type PartialFoodEntry struct {
	ID        *string           `json:"id"`
	Type      *string           `json:"type"`
	Name      *string           `json:"name"`
	Category  *string           `json:"category"`
	Timestamp *float64          `json:"timestamp"`
	Nutrients *PartialNutrients `json:"nutrients"`
}

type PartialExerciseEntry struct {
	ID              *string  `json:"id"`
	Type            *string  `json:"type"`
	Name            *string  `json:"name"`
	Timestamp       *float64 `json:"timestamp"`
	CaloriesBurned  *float64 `json:"calories_burned"`
	DurationMinutes *float64 `json:"duration_minutes"`
}

type PartialFavorite struct {
	ID        *string           `json:"id"`
	Name      *string           `json:"name"`
	Nutrients *PartialNutrients `json:"nutrients"`
}

type PartialLog struct {
	Date      *string                `json:"date"`
	Entries   []PartialFoodEntry     `json:"entries"`
	Exercises []PartialExerciseEntry `json:"exercises"`
	WaterMl   *float64               `json:"water_ml"`
	WeightKg  *float64               `json:"weight_kg"`
}
