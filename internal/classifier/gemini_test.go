package classifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saadjs/biolink/internal/classifier"
	"github.com/saadjs/biolink/internal/model"
)

func geminiReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"parts": []any{map[string]any{"text": text}}}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode reply: %v", err)
	}
}

func newGemini(baseURL string) *classifier.Gemini {
	return classifier.NewGemini(classifier.GeminiOptions{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestClassifyFood(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/test-model:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := body["generationConfig"]; !ok {
			t.Errorf("expected generationConfig with response schema")
		}
		geminiReply(t, w, `{"type":"food","category":"lunch","food_data":{"calories":520,"protein_g":35,"carbs_g":40,"fat_g":22,"fiber_g":4,"sodium_mg":900,"potassium_mg":600}}`)
	}))
	defer srv.Close()

	res := newGemini(srv.URL).Classify(context.Background(), classifier.Input{Text: "chicken burrito bowl"})
	food, ok := res.(classifier.Food)
	if !ok {
		t.Fatalf("expected Food, got %T", res)
	}
	if food.Category != model.CategoryLunch || food.Nutrients.Calories != 520 || food.Nutrients.SodiumMg != 900 {
		t.Fatalf("unexpected food result: %+v", food)
	}
}

func TestClassifyExerciseFromImage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					InlineData *struct {
						MIMEType string `json:"mimeType"`
						Data     string `json:"data"`
					} `json:"inlineData"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Contents) == 0 || body.Contents[0].Parts[0].InlineData == nil || body.Contents[0].Parts[0].InlineData.MIMEType != "image/png" {
			t.Errorf("expected inline image part, got %+v", body)
		}
		geminiReply(t, w, "```json\n{\"type\":\"exercise\",\"exercise_data\":{\"name\":\"Run\",\"calories_burned\":300,\"duration_minutes\":30}}\n```")
	}))
	defer srv.Close()

	res := newGemini(srv.URL).Classify(context.Background(), classifier.Input{Image: []byte{0x89, 'P', 'N', 'G'}, MIMEType: "image/png"})
	ex, ok := res.(classifier.Exercise)
	if !ok {
		t.Fatalf("expected Exercise, got %T", res)
	}
	if ex.Name != "Run" || ex.CaloriesBurned != 300 || ex.DurationMinutes == nil || *ex.DurationMinutes != 30 {
		t.Fatalf("unexpected exercise result: %+v", ex)
	}
}

func TestClassifyUnknownAndFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		status  int
		text    string
		failure bool
	}{
		{name: "unknown", status: http.StatusOK, text: `{"type":"unknown"}`},
		{name: "food without data", status: http.StatusOK, text: `{"type":"food"}`},
		{name: "server error", status: http.StatusInternalServerError, failure: true},
		{name: "not json", status: http.StatusOK, text: "I think that is a sandwich", failure: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.status != http.StatusOK {
					http.Error(w, "boom", tc.status)
					return
				}
				geminiReply(t, w, tc.text)
			}))
			defer srv.Close()

			res := newGemini(srv.URL).Classify(context.Background(), classifier.Input{Text: "something"})
			if tc.failure {
				if _, ok := res.(classifier.Failure); !ok {
					t.Fatalf("expected Failure, got %T", res)
				}
				return
			}
			if _, ok := res.(classifier.Unknown); !ok {
				t.Fatalf("expected Unknown, got %T", res)
			}
		})
	}
}

func TestClassifyTimeoutIsFailure(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := classifier.NewGemini(classifier.GeminiOptions{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	res := g.Classify(context.Background(), classifier.Input{Text: "slow"})
	if _, ok := res.(classifier.Failure); !ok {
		t.Fatalf("expected Failure on timeout, got %T", res)
	}
}

func TestClassifyWithoutAPIKey(t *testing.T) {
	t.Parallel()

	g := classifier.NewGemini(classifier.GeminiOptions{})
	res := g.Classify(context.Background(), classifier.Input{Text: "apple"})
	f, ok := res.(classifier.Failure)
	if !ok || !errors.Is(f, classifier.ErrMissingAPIKey) {
		t.Fatalf("expected missing key failure, got %#v", res)
	}
}

func TestInsightFallbacks(t *testing.T) {
	t.Parallel()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer empty.Close()
	if got := newGemini(empty.URL).Insight(context.Background(), nil); got != classifier.InsightNoData {
		t.Fatalf("expected no-data insight, got %q", got)
	}

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer failing.Close()
	if got := newGemini(failing.URL).Insight(context.Background(), nil); got != classifier.InsightFailure {
		t.Fatalf("expected failure insight, got %q", got)
	}

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, " Sodium ran high three days in a row. ")
	}))
	defer ok.Close()
	logs := []model.DailyLog{model.NewDailyLog("2026-01-01")}
	got := newGemini(ok.URL).Insight(context.Background(), logs)
	if !strings.HasPrefix(got, "Sodium") {
		t.Fatalf("unexpected insight %q", got)
	}
}

func TestInputKeyAndValidate(t *testing.T) {
	t.Parallel()

	if err := (classifier.Input{Text: "  "}).Validate(); err == nil {
		t.Fatalf("expected blank text to be rejected")
	}
	if err := (classifier.Input{Image: []byte{1}}).Validate(); err == nil {
		t.Fatalf("expected image without mime type to be rejected")
	}
	a := classifier.Input{Text: "oats "}
	b := classifier.Input{Text: " oats"}
	if a.Key() != b.Key() {
		t.Fatalf("expected trimmed text to share a key")
	}
	img := classifier.Input{Image: []byte{1, 2}, MIMEType: "image/jpeg"}
	if img.Key() == a.Key() {
		t.Fatalf("image and text keys should differ")
	}
}
