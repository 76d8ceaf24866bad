package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"taskpilot/internal/model"
)

// ErrResponseMalformed marks completion text that failed schema validation.
// The caller substitutes a fallback instead of propagating it.
var ErrResponseMalformed = fmt.Errorf("completion response malformed")

// stripFences removes a surrounding markdown code fence the model may have
// wrapped the JSON in, e.g. ```json ... ``` or a bare ``` pair.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// 去掉 ```json 这种语言标签，带不带换行都可能出现
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrResponseMalformed, fmt.Sprintf(format, args...))
}

func inSet(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

// validScore checks the 0-100 integer contract. Scores arrive as JSON
// numbers, so 72.5 is possible and rejected.
func validScore(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, malformed("priority_score %v is not an integer", v)
	}
	if v < 0 || v > 100 {
		return 0, malformed("priority_score %v out of range [0,100]", v)
	}
	return int(v), nil
}

type taskWire struct {
	PriorityScore     *float64 `json:"priority_score"`
	PriorityLevel     string   `json:"priority_level"`
	AISummary         string   `json:"ai_summary"`
	SuggestedCategory string   `json:"suggested_category"`
}

// ParseTaskInsight validates raw completion text against the task schema.
func ParseTaskInsight(raw string) (model.TaskInsight, error) {
	var w taskWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &w); err != nil {
		return model.TaskInsight{}, malformed("invalid JSON: %v", err)
	}
	if w.PriorityScore == nil {
		return model.TaskInsight{}, malformed("priority_score missing")
	}
	score, err := validScore(*w.PriorityScore)
	if err != nil {
		return model.TaskInsight{}, err
	}
	if !inSet(w.PriorityLevel, model.PriorityLevels) {
		return model.TaskInsight{}, malformed("priority_level %q not in enum", w.PriorityLevel)
	}
	if w.AISummary == "" {
		return model.TaskInsight{}, malformed("ai_summary missing")
	}
	if !inSet(w.SuggestedCategory, model.TaskCategories) {
		return model.TaskInsight{}, malformed("suggested_category %q not in enum", w.SuggestedCategory)
	}
	return model.TaskInsight{
		PriorityScore:     score,
		PriorityLevel:     w.PriorityLevel,
		AISummary:         w.AISummary,
		SuggestedCategory: w.SuggestedCategory,
	}, nil
}

type eventWire struct {
	PriorityScore  *float64 `json:"priority_score"`
	AISummary      string   `json:"ai_summary"`
	SuggestedReply *string  `json:"suggested_reply"`
}

// ParseEventInsight validates raw completion text against the event schema.
// suggested_reply must be null or a non-empty string.
func ParseEventInsight(raw string) (model.EventInsight, error) {
	var w eventWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &w); err != nil {
		return model.EventInsight{}, malformed("invalid JSON: %v", err)
	}
	if w.PriorityScore == nil {
		return model.EventInsight{}, malformed("priority_score missing")
	}
	score, err := validScore(*w.PriorityScore)
	if err != nil {
		return model.EventInsight{}, err
	}
	if w.AISummary == "" {
		return model.EventInsight{}, malformed("ai_summary missing")
	}
	if w.SuggestedReply != nil && *w.SuggestedReply == "" {
		return model.EventInsight{}, malformed("suggested_reply is empty, expected null or text")
	}
	return model.EventInsight{
		PriorityScore:  score,
		AISummary:      w.AISummary,
		SuggestedReply: w.SuggestedReply,
	}, nil
}

type recommendationWire struct {
	Recommendations []model.RecommendationItem `json:"recommendations"`
}

// ParseRecommendations validates raw completion text against the
// recommendation schema: 2-5 items, each with a known type and non-empty text.
func ParseRecommendations(raw string) ([]model.RecommendationItem, error) {
	var w recommendationWire
	if err := json.Unmarshal([]byte(stripFences(raw)), &w); err != nil {
		return nil, malformed("invalid JSON: %v", err)
	}
	if len(w.Recommendations) < 2 || len(w.Recommendations) > 5 {
		return nil, malformed("expected 2-5 recommendations, got %d", len(w.Recommendations))
	}
	for i, item := range w.Recommendations {
		if !inSet(item.Type, model.RecommendationTypes) {
			return nil, malformed("recommendations[%d].type %q not in enum", i, item.Type)
		}
		if item.Title == "" {
			return nil, malformed("recommendations[%d].title missing", i)
		}
		if item.Description == "" {
			return nil, malformed("recommendations[%d].description missing", i)
		}
	}
	return w.Recommendations, nil
}
