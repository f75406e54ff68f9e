package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/saadjs/biolink/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultTimeout       = 30 * time.Second

	maxResponseBytes  = 1 << 20
	insightMaxTokens  = 60
	systemInstruction = `You analyze what a user logs in a nutrition diary. The input is either FOOD they ate or PHYSICAL EXERCISE they did.
If it is food, estimate its nutrients and pick a meal category (breakfast, lunch, dinner or snack).
If it is exercise, estimate the calories burned from intensity and duration.
If it is neither, answer with type "unknown".
Return only a JSON object.`
)

var ErrMissingAPIKey = errors.New("gemini api key is not configured")

type GeminiOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// Gemini classifies inputs and writes insights through the Gemini
// generateContent REST API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
	logger  logrus.FieldLogger
}

func NewGemini(opts GeminiOptions) *Gemini {
	g := &Gemini{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   strings.TrimSpace(opts.Model),
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}
	if g.model == "" {
		g.model = DefaultGeminiModel
	}
	if g.baseURL == "" {
		g.baseURL = DefaultGeminiBaseURL
	}
	if g.timeout <= 0 {
		g.timeout = DefaultTimeout
	}
	if g.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		g.logger = l
	}
	g.client = &http.Client{Timeout: g.timeout}
	return g
}

type geminiRequest struct {
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	Contents          []geminiContent         `json:"contents"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	MaxOutputTokens  int            `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// analysis is the JSON document the model is asked to return.
type analysis struct {
	Type         string           `json:"type"`
	Category     string           `json:"category"`
	FoodData     *model.Nutrients `json:"food_data"`
	ExerciseData *struct {
		Name            string   `json:"name"`
		CaloriesBurned  float64  `json:"calories_burned"`
		DurationMinutes *float64 `json:"duration_minutes"`
	} `json:"exercise_data"`
}

func analysisSchema() map[string]any {
	number := map[string]any{"type": "NUMBER"}
	return map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"type":     map[string]any{"type": "STRING", "enum": []string{"food", "exercise", "unknown"}},
			"category": map[string]any{"type": "STRING", "enum": []string{"breakfast", "lunch", "dinner", "snack"}},
			"food_data": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"calories":     number,
					"protein_g":    number,
					"carbs_g":      number,
					"fat_g":        number,
					"fiber_g":      number,
					"sodium_mg":    number,
					"potassium_mg": number,
				},
			},
			"exercise_data": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"name":             map[string]any{"type": "STRING"},
					"calories_burned":  number,
					"duration_minutes": number,
				},
			},
		},
		"required": []string{"type"},
	}
}

func (g *Gemini) Classify(ctx context.Context, in Input) Result {
	if err := in.Validate(); err != nil {
		return Failure{Err: err}
	}

	var parts []geminiPart
	if in.IsImage() {
		parts = []geminiPart{
			{InlineData: &geminiInlineData{MIMEType: in.MIMEType, Data: base64.StdEncoding.EncodeToString(in.Image)}},
			{Text: "Analyze this image. If it shows food, estimate nutrients and category. If it is an exercise screenshot, estimate the burn."},
		}
	} else {
		parts = []geminiPart{{Text: fmt.Sprintf("Analyze this input: %q", strings.TrimSpace(in.Text))}}
	}

	text, err := g.generate(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemInstruction}}},
		Contents:          []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: &geminiGenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   analysisSchema(),
		},
	})
	if err != nil {
		g.logger.WithError(err).Warn("classification request failed")
		return Failure{Err: err}
	}

	result, err := parseAnalysis(text)
	if err != nil {
		g.logger.WithError(err).Warn("classification response unreadable")
		return Failure{Err: err}
	}
	return result
}

func parseAnalysis(text string) (Result, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var a analysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &a); err != nil {
		return nil, fmt.Errorf("decode classification: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(a.Type)) {
	case model.EntryTypeFood:
		if a.FoodData == nil {
			return Unknown{}, nil
		}
		category := model.MealCategory(strings.ToLower(strings.TrimSpace(a.Category)))
		if !category.Valid() {
			category = ""
		}
		return Food{Nutrients: *a.FoodData, Category: category}, nil
	case model.EntryTypeExercise:
		if a.ExerciseData == nil {
			return Unknown{}, nil
		}
		return Exercise{
			Name:            strings.TrimSpace(a.ExerciseData.Name),
			CaloriesBurned:  a.ExerciseData.CaloriesBurned,
			DurationMinutes: a.ExerciseData.DurationMinutes,
		}, nil
	default:
		return Unknown{}, nil
	}
}

// Insight returns a one-sentence comment on recent logs. It never fails:
// an empty answer and an error map to fixed messages.
func (g *Gemini) Insight(ctx context.Context, recent []model.DailyLog) string {
	data, err := json.Marshal(recent)
	if err != nil {
		g.logger.WithError(err).Warn("encode recent logs")
		return InsightFailure
	}
	prompt := "Analyze these recent daily logs and give a single, short, impactful one-sentence insight or warning " +
		"for the user (for example about sodium, hydration or protein timing). Data: " + string(data)

	text, err := g.generate(ctx, geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: &geminiGenerationConfig{MaxOutputTokens: insightMaxTokens},
	})
	if err != nil {
		g.logger.WithError(err).Warn("insight request failed")
		return InsightFailure
	}
	if text = strings.TrimSpace(text); text == "" {
		return InsightNoData
	}
	return text
}

func (g *Gemini) generate(ctx context.Context, body geminiRequest) (string, error) {
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	started := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read gemini response: %w", err)
	}
	g.logger.WithFields(logrus.Fields{
		"model":    g.model,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("gemini request")

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded geminiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(decoded.Candidates) == 0 {
		return "", nil
	}
	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
