package service_test

import (
	"testing"

	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
)

func TestComputeTargetsDefaultProfile(t *testing.T) {
	t.Parallel()

	got := service.ComputeTargets(model.Profile{
		WeightKg:      70,
		HeightCm:      175,
		Age:           25,
		Gender:        model.GenderMale,
		ActivityLevel: model.ActivityModerate,
	})
	want := model.Targets{
		Calories:    2594,
		ProteinG:    140,
		CarbsG:      367,
		FatG:        63,
		WaterMl:     2450,
		FiberG:      36,
		SodiumMg:    2300,
		PotassiumMg: 3500,
	}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestComputeTargetsFemaleAndUnknownActivity(t *testing.T) {
	t.Parallel()

	female := model.Profile{WeightKg: 60, HeightCm: 165, Age: 30, Gender: model.GenderFemale, ActivityLevel: model.ActivitySedentary}
	// 600 + 1031.25 - 150 - 161 = 1320.25, * 1.2 = 1584.3
	if got := service.TDEE(female); got != 1584 {
		t.Fatalf("expected tdee 1584, got %v", got)
	}

	unknown := female
	unknown.ActivityLevel = "couch"
	moderate := female
	moderate.ActivityLevel = model.ActivityModerate
	if service.TDEE(unknown) != service.TDEE(moderate) {
		t.Fatalf("unknown activity should use the moderate multiplier")
	}
}

func TestComputeTargetsIsDeterministicAndBounded(t *testing.T) {
	t.Parallel()

	profiles := []model.Profile{
		model.DefaultProfile,
		{WeightKg: 55, HeightCm: 160, Age: 40, Gender: model.GenderFemale, ActivityLevel: model.ActivityLight},
		{WeightKg: 95, HeightCm: 190, Age: 35, Gender: model.GenderMale, ActivityLevel: model.ActivityVeryActive},
		{WeightKg: 80, HeightCm: 180, Age: 50, Gender: model.GenderMale, ActivityLevel: model.ActivityActive},
	}
	for _, p := range profiles {
		a := service.ComputeTargets(p)
		b := service.ComputeTargets(p)
		if a != b {
			t.Fatalf("targets differ for identical profile %+v", p)
		}
		if a.ProteinG*4+a.FatG*9 > a.Calories {
			t.Fatalf("protein and fat exceed calories for %+v: %+v", p, a)
		}
		if a.CarbsG < 0 {
			t.Fatalf("negative carbs for %+v", p)
		}
	}
}

func TestComputeTargetsClampsCarbsAtZero(t *testing.T) {
	t.Parallel()

	heavy := model.Profile{WeightKg: 200, HeightCm: 100, Age: 90, Gender: model.GenderFemale, ActivityLevel: model.ActivitySedentary}
	got := service.ComputeTargets(heavy)
	if got.CarbsG != 0 {
		t.Fatalf("expected carbs clamped to 0, got %v", got.CarbsG)
	}
	if got.Calories != 2417 || got.ProteinG != 400 || got.FatG != 180 {
		t.Fatalf("unexpected targets %+v", got)
	}
}

func TestResolveTargetsHonorsManualFlag(t *testing.T) {
	t.Parallel()

	manual := model.Targets{Calories: 1800, ProteinG: 120}
	p := model.DefaultProfile
	p.ManualTargets = true
	if got := service.ResolveTargets(p, manual); got != manual {
		t.Fatalf("expected manual targets kept, got %+v", got)
	}
	p.ManualTargets = false
	if got := service.ResolveTargets(p, manual); got != service.ComputeTargets(p) {
		t.Fatalf("expected computed targets, got %+v", got)
	}
}
