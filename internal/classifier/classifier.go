// Package classifier turns a clothing photo into form pre-fill attributes
// using a hosted vision model.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"closet-backend/internal/metrics"
	"closet-backend/internal/models"
)

// SystemPrompt pins the model to the closet's closed vocabulary.
const SystemPrompt = `You are a fashion expert that analyzes clothing images.
Analyze the clothing item and return a JSON object with the following fields:
- category: One of "Top", "Bottom", "Outerwear", "Shoes", "Accessory", "Other"
- color: Primary color (e.g., "Black", "White", "Navy", "Blue", "Green", "Brown", "Beige", "Gray")
- season: One of "All", "Spring", "Summer", "Autumn", "Winter"
- description: Brief description of the item in Japanese (e.g., "ボーダー柄の長袖Tシャツ")
- brand_guess: Guessed brand name if recognizable, otherwise null

Respond ONLY with valid JSON, no additional text.`

const (
	UserPrompt = "Analyze this clothing item."
	MaxTokens  = 500
)

var ErrNotConfigured = errors.New("classifier is not configured")

var (
	codeFence     = regexp.MustCompile("```json\\n?|\\n?```")
	dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)
)

// Classifier sends a base64 JPEG to a vision model and returns the model's
// raw text answer.
type Classifier interface {
	Classify(ctx context.Context, base64Image string) (string, error)
}

type unconfigured struct {
	envKey string
}

// Unconfigured stands in for a provider whose credential is missing. Every
// call fails, which surfaces as a server error on analyze.
func Unconfigured(envKey string) Classifier {
	return unconfigured{envKey: envKey}
}

func (u unconfigured) Classify(ctx context.Context, base64Image string) (string, error) {
	return "", fmt.Errorf("%w: %s not set", ErrNotConfigured, u.envKey)
}

// Fallback is returned whenever the model's answer cannot be parsed.
func Fallback() models.AnalysisResult {
	return models.AnalysisResult{
		Category:    "Other",
		Color:       "Unknown",
		Season:      "All",
		Description: "Unable to analyze",
		BrandGuess:  nil,
	}
}

// Parse decodes the model's answer after removing markdown code fences.
// An answer without a category (empty, null or {}) counts as unparseable.
// ok is false when the fallback was used.
func Parse(text string) (result models.AnalysisResult, ok bool) {
	if text == "" {
		text = "{}"
	}

	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(text, ""))
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil || result.Category == "" {
		return Fallback(), false
	}
	return result, true
}

// Analyzer runs the classifier and parses its answer.
type Analyzer struct {
	classifier Classifier
	metrics    *metrics.Collector
}

func NewAnalyzer(classifier Classifier, collector *metrics.Collector) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		metrics:    collector,
	}
}

// Analyze accepts a base64 image, with or without a data URL header.
// Classifier failures are returned; unparseable answers are not.
func (a *Analyzer) Analyze(ctx context.Context, image string) (*models.AnalysisResult, error) {
	base64Image := dataURLPrefix.ReplaceAllString(image, "")

	text, err := a.classifier.Classify(ctx, base64Image)
	if err != nil {
		return nil, fmt.Errorf("failed to classify image: %w", err)
	}

	result, ok := Parse(text)
	if !ok {
		log.Printf("Warning: unparseable classifier response, using fallback: %.200q", text)
		a.metrics.AnalyzeFallback()
	}

	return &result, nil
}
