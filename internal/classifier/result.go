package classifier

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/saadjs/biolink/internal/model"
)

// Result is one of Food, Exercise, Unknown or Failure.
type Result interface {
	isResult()
}

type Food struct {
	Nutrients model.Nutrients
	// Category is empty when the classifier did not pick a meal.
	Category model.MealCategory
}

type Exercise struct {
	Name            string
	CaloriesBurned  float64
	DurationMinutes *float64
}

// Unknown means the input was understood as neither food nor exercise.
type Unknown struct{}

// Failure means classification could not be performed at all.
type Failure struct {
	Err error
}

func (Food) isResult()     {}
func (Exercise) isResult() {}
func (Unknown) isResult()  {}
func (Failure) isResult()  {}

func (f Failure) Error() string {
	if f.Err == nil {
		return "classification failed"
	}
	return "classification failed: " + f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Input is free text or an image, never both empty.
type Input struct {
	Text     string
	Image    []byte
	MIMEType string
}

func (in Input) IsImage() bool {
	return len(in.Image) > 0
}

func (in Input) Validate() error {
	if in.IsImage() {
		if strings.TrimSpace(in.MIMEType) == "" {
			return fmt.Errorf("image mime type is required")
		}
		return nil
	}
	if strings.TrimSpace(in.Text) == "" {
		return fmt.Errorf("input text is required")
	}
	return nil
}

// Key identifies an input for duplicate detection.
func (in Input) Key() string {
	if in.IsImage() {
		sum := sha256.Sum256(in.Image)
		return "image:" + hex.EncodeToString(sum[:])
	}
	return "text:" + strings.TrimSpace(in.Text)
}

type Classifier interface {
	Classify(ctx context.Context, in Input) Result
}

type InsightGenerator interface {
	Insight(ctx context.Context, recent []model.DailyLog) string
}

const (
	InsightNoData  = "Status nominal. Keep logging to generate insights."
	InsightFailure = "System optimization in progress..."
)
