package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/biolink/internal/db"
	"github.com/saadjs/biolink/internal/logging"
	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/service"
	"github.com/saadjs/biolink/internal/store"
)

func newSQLiteStorage(t *testing.T) *store.SQLiteStorage {
	t.Helper()
	path := filepath.Join(t.TempDir(), "biolink.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.NewSQLiteStorage(sqldb, store.DefaultStateKey)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newSession(t *testing.T, storage store.Storage, now time.Time) *service.Session {
	t.Helper()
	s := service.OpenSession(context.Background(), storage, logging.Discard())
	s.SetClock(fixedClock(now))
	return s
}

func food(name string, calories float64) model.FoodEntry {
	return model.FoodEntry{
		ID:        service.NewEntryID(),
		Name:      name,
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local).UnixMilli(),
		Nutrients: model.Nutrients{Calories: calories},
	}
}

func exercise(name string, burned float64) model.ExerciseEntry {
	return model.ExerciseEntry{
		ID:             service.NewEntryID(),
		Name:           name,
		Timestamp:      time.Date(2026, 3, 1, 18, 0, 0, 0, time.Local).UnixMilli(),
		CaloriesBurned: burned,
	}
}

// must unwraps the (state, error) result of a ledger operation.
func must(t *testing.T) func(model.AppState, error) model.AppState {
	t.Helper()
	return func(state model.AppState, err error) model.AppState {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return state
	}
}
