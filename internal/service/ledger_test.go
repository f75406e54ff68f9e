package service_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
)

func TestAddAndDeleteFoodEntryRoundTrip(t *testing.T) {
	t.Parallel()

	s0 := model.DefaultAppState()
	s0 = must(t)(service.AddWater(s0, "2026-03-01", 250))

	entry := food("Oats", 300)
	s1 := must(t)(service.AddFoodEntry(s0, "2026-03-01", entry))
	if len(s1.Logs["2026-03-01"].Entries) != 1 {
		t.Fatalf("expected one entry, got %+v", s1.Logs["2026-03-01"])
	}
	if got := s1.Logs["2026-03-01"].Entries[0]; got.Category != model.CategorySnack || got.Type != model.EntryTypeFood {
		t.Fatalf("expected snack food entry, got %+v", got)
	}
	if len(s0.Logs["2026-03-01"].Entries) != 0 {
		t.Fatalf("input state was modified")
	}

	s2 := must(t)(service.DeleteEntry(s1, "2026-03-01", entry.ID))
	if !reflect.DeepEqual(s2.Logs["2026-03-01"], s0.Logs["2026-03-01"]) {
		t.Fatalf("expected delete to undo add, got %+v", s2.Logs["2026-03-01"])
	}
}

func TestAddFoodEntryCreatesLogLazily(t *testing.T) {
	t.Parallel()

	s := must(t)(service.AddFoodEntry(model.DefaultAppState(), "2026-03-02", food("Toast", 120)))
	log, ok := s.Logs["2026-03-02"]
	if !ok {
		t.Fatalf("expected log to be created")
	}
	if log.Date != "2026-03-02" || log.Exercises == nil || log.WaterMl != 0 {
		t.Fatalf("unexpected new log %+v", log)
	}
}

func TestLedgerRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	s := model.DefaultAppState()
	bad := food("Bad", -5)
	if got, err := service.AddFoodEntry(s, "2026-03-01", bad); err == nil || len(got.Logs) != 0 {
		t.Fatalf("expected negative calories to be rejected")
	}
	cat := food("Cake", 400)
	cat.Category = "dessert"
	if _, err := service.AddFoodEntry(s, "2026-03-01", cat); err == nil {
		t.Fatalf("expected unknown category to be rejected")
	}
	if _, err := service.AddFoodEntry(s, "03/01/2026", food("Toast", 1)); err == nil {
		t.Fatalf("expected malformed date to be rejected")
	}
	if _, err := service.AddWater(s, "2026-03-01", 0); err == nil {
		t.Fatalf("expected zero water to be rejected")
	}
	if _, err := service.AddExerciseEntry(s, "2026-03-01", exercise("Run", -1)); err == nil {
		t.Fatalf("expected negative burn to be rejected")
	}
}

func TestAddWaterIsAdditive(t *testing.T) {
	t.Parallel()

	s := model.DefaultAppState()
	s = must(t)(service.AddWater(s, "2026-03-01", 250))
	s = must(t)(service.AddWater(s, "2026-03-01", 500))
	if got := s.Logs["2026-03-01"].WaterMl; got != 750 {
		t.Fatalf("expected 750ml, got %d", got)
	}
}

func TestAddWaterRejectsOverflow(t *testing.T) {
	t.Parallel()

	s := must(t)(service.AddWater(model.DefaultAppState(), "2026-03-01", math.MaxInt))
	got, err := service.AddWater(s, "2026-03-01", 1)
	if err == nil {
		t.Fatalf("expected overflow to be rejected")
	}
	if got.Logs["2026-03-01"].WaterMl != math.MaxInt {
		t.Fatalf("expected unchanged water, got %d", got.Logs["2026-03-01"].WaterMl)
	}
}

func TestDeleteUnknownEntryAndDateAreNoOps(t *testing.T) {
	t.Parallel()

	s := must(t)(service.AddExerciseEntry(model.DefaultAppState(), "2026-03-01", exercise("Row", 200)))
	same := must(t)(service.DeleteEntry(s, "2026-03-01", "missing"))
	if !reflect.DeepEqual(same, s) {
		t.Fatalf("deleting a missing id changed state")
	}
	other := must(t)(service.DeleteEntry(s, "2026-04-01", "missing"))
	if _, ok := other.Logs["2026-04-01"]; ok {
		t.Fatalf("delete on an absent date created a log")
	}
}

func TestDeleteEntryRemovesExercise(t *testing.T) {
	t.Parallel()

	ex := exercise("Swim", 350)
	s := must(t)(service.AddExerciseEntry(model.DefaultAppState(), "2026-03-01", ex))
	s = must(t)(service.DeleteEntry(s, "2026-03-01", ex.ID))
	if n := len(s.Logs["2026-03-01"].Exercises); n != 0 {
		t.Fatalf("expected exercise removed, %d left", n)
	}
}

func TestResetLogIsIdempotent(t *testing.T) {
	t.Parallel()

	s := must(t)(service.AddWater(model.DefaultAppState(), "2026-03-01", 300))
	s = must(t)(service.AddWater(s, "2026-03-02", 300))
	once := must(t)(service.ResetLog(s, "2026-03-01"))
	twice := must(t)(service.ResetLog(once, "2026-03-01"))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("reset is not idempotent")
	}
	if _, ok := once.Logs["2026-03-01"]; ok {
		t.Fatalf("expected day removed")
	}
	if _, ok := once.Logs["2026-03-02"]; !ok {
		t.Fatalf("other days must be kept")
	}
}

func TestFavoritesLifecycle(t *testing.T) {
	t.Parallel()

	entry := food("Greek Yogurt", 150)
	entry.Nutrients.ProteinG = 15
	s, fav, err := service.AddFavorite(model.DefaultAppState(), entry)
	if err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if fav.ID == entry.ID || fav.Name != "Greek Yogurt" || fav.Nutrients != entry.Nutrients {
		t.Fatalf("unexpected favorite %+v", fav)
	}

	byName, err := service.ResolveFavorite(s, "greek yogurt")
	if err != nil || byName.ID != fav.ID {
		t.Fatalf("resolve by name: %+v %v", byName, err)
	}

	now := time.Date(2026, 3, 1, 8, 30, 0, 0, time.Local)
	a := service.InstantiateFavorite(fav, now)
	b := service.InstantiateFavorite(fav, now)
	if a.ID == b.ID || a.ID == fav.ID {
		t.Fatalf("instantiated entries must get fresh ids")
	}
	if a.Category != model.CategorySnack || a.Timestamp != now.UnixMilli() || a.Nutrients != fav.Nutrients {
		t.Fatalf("unexpected instantiated entry %+v", a)
	}

	s = must(t)(service.RemoveFavorite(s, fav.ID))
	if len(s.Favorites) != 0 {
		t.Fatalf("expected favorite removed")
	}
	if _, err := service.RemoveFavorite(s, fav.ID); err == nil {
		t.Fatalf("expected error removing a missing favorite")
	}
}

func TestSaveProfileAndTargetsRecordsWeight(t *testing.T) {
	t.Parallel()

	p := model.DefaultProfile
	p.WeightKg = 82.5
	targets := service.ComputeTargets(p)
	s := must(t)(service.SaveProfileAndTargets(model.DefaultAppState(), "2026-03-01", p, targets))
	if s.Profile != p || s.Targets != targets {
		t.Fatalf("profile and targets not replaced: %+v", s)
	}
	w := s.Logs["2026-03-01"].WeightKg
	if w == nil || *w != 82.5 {
		t.Fatalf("expected weigh-in 82.5, got %v", w)
	}

	p.WeightKg = 0
	if _, err := service.SaveProfileAndTargets(s, "2026-03-01", p, targets); err == nil {
		t.Fatalf("expected zero weight to be rejected")
	}
}

func TestParseEnums(t *testing.T) {
	t.Parallel()

	if c, err := service.ParseMealCategory("Snacks"); err != nil || c != model.CategorySnack {
		t.Fatalf("expected snacks alias, got %q %v", c, err)
	}
	if c, err := service.ParseMealCategory(""); err != nil || c != model.CategorySnack {
		t.Fatalf("expected empty category to default to snack")
	}
	if _, err := service.ParseMealCategory("brunch"); err == nil {
		t.Fatalf("expected brunch to be rejected")
	}
	if a, err := service.ParseActivityLevel("very-active"); err != nil || a != model.ActivityVeryActive {
		t.Fatalf("expected very_active, got %q %v", a, err)
	}
	if _, err := service.ParseGender("other"); err == nil {
		t.Fatalf("expected unknown gender to be rejected")
	}
}

func TestSaveProfileAndTargetsIsIdempotent(t *testing.T) {
	t.Parallel()

	p := model.DefaultProfile
	p.WeightKg = 74
	targets := service.ComputeTargets(p)
	once := must(t)(service.SaveProfileAndTargets(model.DefaultAppState(), "2026-03-01", p, targets))
	twice := must(t)(service.SaveProfileAndTargets(once, "2026-03-01", p, targets))
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second identical save changed state")
	}
}
