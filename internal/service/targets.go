package service

import (
	"math"

	"github.com/saadjs/biolink/internal/model"
)

const (
	proteinGramsPerKg = 2.0
	fatGramsPerKg     = 0.9
	waterMlPerKg      = 35.0
	fiberGramsPer1000 = 14.0
	sodiumTargetMg    = 2300
	potassiumTargetMg = 3500

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityActive:     1.725,
	model.ActivityVeryActive: 1.9,
}

// BMR is the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMR(p model.Profile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Gender == model.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales BMR by the activity multiplier and rounds to whole kcal.
// Unknown activity levels use the moderate multiplier.
func TDEE(p model.Profile) float64 {
	mult, ok := activityMultipliers[p.ActivityLevel]
	if !ok {
		mult = activityMultipliers[model.ActivityModerate]
	}
	return roundHalfUp(BMR(p) * mult)
}

// ComputeTargets derives daily targets from body metrics. Carbs fill whatever
// energy protein and fat leave over, so they can be 0 but never negative.
func ComputeTargets(p model.Profile) model.Targets {
	tdee := TDEE(p)
	protein := roundHalfUp(p.WeightKg * proteinGramsPerKg)
	fat := roundHalfUp(p.WeightKg * fatGramsPerKg)

	consumed := protein*kcalPerGramProtein + fat*kcalPerGramFat
	remaining := math.Max(0, tdee-consumed)

	return model.Targets{
		Calories:    tdee,
		ProteinG:    protein,
		CarbsG:      roundHalfUp(remaining / kcalPerGramCarbs),
		FatG:        fat,
		WaterMl:     roundHalfUp(p.WeightKg * waterMlPerKg),
		FiberG:      roundHalfUp(tdee / 1000 * fiberGramsPer1000),
		SodiumMg:    sodiumTargetMg,
		PotassiumMg: potassiumTargetMg,
	}
}

// ResolveTargets keeps manual targets verbatim when the profile says so and
// recomputes them otherwise.
func ResolveTargets(p model.Profile, manual model.Targets) model.Targets {
	if p.ManualTargets {
		return manual
	}
	return ComputeTargets(p)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
