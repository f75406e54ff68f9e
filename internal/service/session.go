package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/saadjs/biolink/internal/classifier"
	"github.com/saadjs/biolink/internal/model"
	"github.com/saadjs/biolink/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	ErrClassificationPending = errors.New("this input is already being classified")
	ErrUnrecognizedInput     = errors.New("input not recognized as food or exercise; say whether it is a meal or a workout")
)

const photoEntryName = "Photo entry"

// Mutation derives the next state from the current one. It must not modify
// its argument.
type Mutation func(model.AppState) (model.AppState, error)

// Session owns the in-memory state of one user. Mutations run one at a time
// and every successful one is persisted; a failed save is logged and the
// in-memory state stays authoritative.
type Session struct {
	mu      sync.Mutex
	state   model.AppState
	storage store.Storage
	logger  logrus.FieldLogger
	now     func() time.Time

	pendingMu sync.Mutex
	pending   map[string]struct{}
}

func OpenSession(ctx context.Context, storage store.Storage, logger logrus.FieldLogger) *Session {
	return &Session{
		state:   store.Load(ctx, storage, logger),
		storage: storage,
		logger:  logger,
		now:     time.Now,
		pending: map[string]struct{}{},
	}
}

func (s *Session) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Session) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

func (s *Session) Today() string {
	return model.DateKey(s.Now())
}

func (s *Session) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Apply(ctx context.Context, m Mutation) (model.AppState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := m(s.state)
	if err != nil {
		return s.state, err
	}
	s.state = next
	store.Save(ctx, s.storage, next, s.logger)
	return next, nil
}

type LogOutcome struct {
	Date     string               `json:"date"`
	Food     *model.FoodEntry     `json:"food,omitempty"`
	Exercise *model.ExerciseEntry `json:"exercise,omitempty"`
}

// LogInput classifies free text or an image and records the result on
// today's log. The classifier runs without holding the state lock. The same
// input cannot be classified twice concurrently.
func (s *Session) LogInput(ctx context.Context, c classifier.Classifier, in classifier.Input) (LogOutcome, error) {
	if err := in.Validate(); err != nil {
		return LogOutcome{}, err
	}
	key := in.Key()
	if !s.beginClassification(key) {
		return LogOutcome{}, ErrClassificationPending
	}
	defer s.endClassification(key)

	result := c.Classify(ctx, in)

	now := s.Now()
	out := LogOutcome{Date: model.DateKey(now)}
	switch r := result.(type) {
	case classifier.Food:
		category := r.Category
		if category == "" {
			category = model.CategorySnack
		}
		entry := model.FoodEntry{
			ID:        NewEntryID(),
			Name:      inputName(in, ""),
			Category:  category,
			Timestamp: now.UnixMilli(),
			Nutrients: r.Nutrients,
		}
		_, err := s.Apply(ctx, func(st model.AppState) (model.AppState, error) {
			return AddFoodEntry(st, out.Date, entry)
		})
		if err != nil {
			return LogOutcome{}, fmt.Errorf("record classified food: %w", err)
		}
		entry.Type = model.EntryTypeFood
		out.Food = &entry
	case classifier.Exercise:
		entry := model.ExerciseEntry{
			ID:              NewEntryID(),
			Name:            inputName(in, r.Name),
			Timestamp:       now.UnixMilli(),
			CaloriesBurned:  r.CaloriesBurned,
			DurationMinutes: r.DurationMinutes,
		}
		_, err := s.Apply(ctx, func(st model.AppState) (model.AppState, error) {
			return AddExerciseEntry(st, out.Date, entry)
		})
		if err != nil {
			return LogOutcome{}, fmt.Errorf("record classified exercise: %w", err)
		}
		entry.Type = model.EntryTypeExercise
		out.Exercise = &entry
	case classifier.Failure:
		return LogOutcome{}, r
	default:
		return LogOutcome{}, ErrUnrecognizedInput
	}
	return out, nil
}

func (s *Session) Insight(ctx context.Context, gen classifier.InsightGenerator, window int) string {
	if window <= 0 {
		window = DefaultInsightWindow
	}
	return gen.Insight(ctx, RecentLogs(s.State().Logs, window))
}

func (s *Session) beginClassification(key string) bool {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if _, busy := s.pending[key]; busy {
		return false
	}
	s.pending[key] = struct{}{}
	return true
}

func (s *Session) endClassification(key string) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	delete(s.pending, key)
}

func inputName(in classifier.Input, preferred string) string {
	if name := strings.TrimSpace(preferred); name != "" {
		return name
	}
	if text := strings.TrimSpace(in.Text); text != "" {
		return text
	}
	return photoEntryName
}
