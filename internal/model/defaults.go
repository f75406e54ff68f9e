package model

import "time"

const DateKeyLayout = "2006-01-02"

var DefaultProfile = Profile{
	WeightKg:      70,
	HeightCm:      175,
	Age:           25,
	Gender:        GenderMale,
	ActivityLevel: ActivityModerate,
	ManualTargets: false,
}

var DefaultTargets = Targets{
	Calories:    2000,
	ProteinG:    160,
	CarbsG:      220,
	FatG:        70,
	WaterMl:     3500,
	FiberG:      30,
	SodiumMg:    2300,
	PotassiumMg: 3500,
}

func DefaultAppState() AppState {
	return AppState{
		Profile:   DefaultProfile,
		Targets:   DefaultTargets,
		Favorites: []FavoriteEntry{},
		Logs:      map[string]DailyLog{},
	}
}

// DateKey formats t as a log key in the local time zone.
func DateKey(t time.Time) string {
	return t.Local().Format(DateKeyLayout)
}
