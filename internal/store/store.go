package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/saadjs/biolink/internal/model"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by a Storage that has nothing persisted yet.
var ErrNotFound = errors.New("no persisted state")

// Storage is the load/save capability the ledger host is given.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

type envelope struct {
	Version int `json:"version"`
	model.AppState
}

// Decode parses a persisted blob and repairs it into a canonical state.
func Decode(data []byte) (model.AppState, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.AppState{}, ErrNotFound
	}
	var partial PartialState
	if err := json.Unmarshal(data, &partial); err != nil {
		return model.AppState{}, fmt.Errorf("decode state: %w", err)
	}
	version := 1
	if partial.Version != nil {
		version = *partial.Version
	}
	if version < 1 || version > SchemaVersion {
		return model.AppState{}, fmt.Errorf("unsupported state schema version %d", version)
	}
	return Repair(partial), nil
}

func Encode(state model.AppState) ([]byte, error) {
	if state.Favorites == nil {
		state.Favorites = []model.FavoriteEntry{}
	}
	if state.Logs == nil {
		state.Logs = map[string]model.DailyLog{}
	}
	data, err := json.Marshal(envelope{Version: SchemaVersion, AppState: state})
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return data, nil
}

// Load never fails: nothing persisted, unreadable storage and corrupt blobs
// all yield the first-run defaults.
func Load(ctx context.Context, s Storage, logger logrus.FieldLogger) model.AppState {
	data, err := s.Load(ctx)
	if errors.Is(err, ErrChecksumMismatch) && len(data) > 0 {
		logger.WithError(err).Warn("persisted state was modified outside biolink, decoding it anyway")
		err = nil
	}
	if errors.Is(err, ErrNotFound) {
		logger.Debug("no persisted state, starting from defaults")
		return model.DefaultAppState()
	}
	if err != nil {
		logger.WithError(err).Warn("load persisted state failed, starting from defaults")
		return model.DefaultAppState()
	}
	state, err := Decode(data)
	if errors.Is(err, ErrNotFound) {
		return model.DefaultAppState()
	}
	if err != nil {
		logger.WithError(err).WithField("bytes", len(data)).Warn("persisted state is malformed, starting from defaults")
		return model.DefaultAppState()
	}
	return state
}

// Save persists state and reports whether it worked. Failures are logged;
// the in-memory state stays authoritative either way.
func Save(ctx context.Context, s Storage, state model.AppState, logger logrus.FieldLogger) bool {
	data, err := Encode(state)
	if err != nil {
		logger.WithError(err).Error("save state failed")
		return false
	}
	if err := s.Save(ctx, data); err != nil {
		logger.WithError(err).Error("save state failed")
		return false
	}
	return true
}
