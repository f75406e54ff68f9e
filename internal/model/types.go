package model

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

type MealCategory string

const (
	CategoryBreakfast MealCategory = "breakfast"
	CategoryLunch     MealCategory = "lunch"
	CategoryDinner    MealCategory = "dinner"
	CategorySnack     MealCategory = "snack"
)

// MealCategories is the closed set of meal categories in display order.
var MealCategories = []MealCategory{CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack}

func (c MealCategory) Valid() bool {
	for _, known := range MealCategories {
		if c == known {
			return true
		}
	}
	return false
}

func (a ActivityLevel) Valid() bool {
	for _, known := range ActivityLevels {
		if a == known {
			return true
		}
	}
	return false
}

const (
	EntryTypeFood     = "food"
	EntryTypeExercise = "exercise"
)

type Profile struct {
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	ManualTargets bool          `json:"manualTargets"`
}

type Targets struct {
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	WaterMl     float64 `json:"water_ml"`
	FiberG      float64 `json:"fiber_g"`
	SodiumMg    float64 `json:"sodium_mg"`
	PotassiumMg float64 `json:"potassium_mg"`
}

type Nutrients struct {
	Calories    float64 `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	FiberG      float64 `json:"fiber_g"`
	SodiumMg    float64 `json:"sodium_mg"`
	PotassiumMg float64 `json:"potassium_mg"`
}

func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories:    n.Calories + o.Calories,
		ProteinG:    n.ProteinG + o.ProteinG,
		CarbsG:      n.CarbsG + o.CarbsG,
		FatG:        n.FatG + o.FatG,
		FiberG:      n.FiberG + o.FiberG,
		SodiumMg:    n.SodiumMg + o.SodiumMg,
		PotassiumMg: n.PotassiumMg + o.PotassiumMg,
	}
}

type FoodEntry struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	Name      string       `json:"name"`
	Category  MealCategory `json:"category"`
	Timestamp int64        `json:"timestamp"`
	Nutrients Nutrients    `json:"nutrients"`
}

type ExerciseEntry struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Name            string   `json:"name"`
	Timestamp       int64    `json:"timestamp"`
	CaloriesBurned  float64  `json:"calories_burned"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
}

type FavoriteEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nutrients Nutrients `json:"nutrients"`
}

type DailyLog struct {
	Date      string          `json:"date"`
	Entries   []FoodEntry     `json:"entries"`
	Exercises []ExerciseEntry `json:"exercises"`
	WaterMl   int             `json:"water_ml"`
	WeightKg  *float64        `json:"weight_kg,omitempty"`
}

func NewDailyLog(dateKey string) DailyLog {
	return DailyLog{
		Date:      dateKey,
		Entries:   []FoodEntry{},
		Exercises: []ExerciseEntry{},
	}
}

type AppState struct {
	Profile   Profile             `json:"profile"`
	Targets   Targets             `json:"targets"`
	Favorites []FavoriteEntry     `json:"favorites"`
	Logs      map[string]DailyLog `json:"logs"`
}
