package ai

import (
	"context"
	"strings"

	"taskpilot/internal/model"
)

const (
	kindTask           = "task"
	kindEvent          = "event"
	kindRecommendation = "recommendation"
	kindBrief          = "brief"
)

// PrioritizeTask annotates a task with a priority score, level, summary and
// category. Upstream or validation failures return the static fallback with
// a non-nil Degradation; the error return is reserved for internal bugs.
func (a *Annotator) PrioritizeTask(ctx context.Context, req TaskRequest) (model.TaskInsight, *Degradation, error) {
	prompt := TaskPrompt(req, a.now())

	text, deg, err := a.complete(ctx, kindTask, prompt, a.params(2000))
	if err != nil {
		return FallbackTaskInsight(), nil, err
	}
	if deg != nil {
		a.degrade(ctx, kindTask, deg)
		return FallbackTaskInsight(), deg, nil
	}

	insight, parseErr := ParseTaskInsight(text)
	if parseErr != nil {
		return FallbackTaskInsight(), a.malformedDegradation(ctx, kindTask, text, parseErr), nil
	}
	return insight, nil, nil
}

// AnalyzeEvent annotates a calendar event with a priority score, preparation
// insight and an optional suggested reply.
func (a *Annotator) AnalyzeEvent(ctx context.Context, req EventRequest) (model.EventInsight, *Degradation, error) {
	prompt := EventPrompt(req, a.now())

	text, deg, err := a.complete(ctx, kindEvent, prompt, a.params(2000))
	if err != nil {
		return FallbackEventInsight(), nil, err
	}
	if deg != nil {
		a.degrade(ctx, kindEvent, deg)
		return FallbackEventInsight(), deg, nil
	}

	insight, parseErr := ParseEventInsight(text)
	if parseErr != nil {
		return FallbackEventInsight(), a.malformedDegradation(ctx, kindEvent, text, parseErr), nil
	}
	return insight, nil, nil
}

// GenerateRecommendations turns a free-text workload summary into 2-5
// ordered recommendation items.
func (a *Annotator) GenerateRecommendations(ctx context.Context, req RecommendationRequest) ([]model.RecommendationItem, *Degradation, error) {
	prompt := RecommendationPrompt(req, a.now())

	text, deg, err := a.complete(ctx, kindRecommendation, prompt, a.params(2000))
	if err != nil {
		return FallbackRecommendations(), nil, err
	}
	if deg != nil {
		a.degrade(ctx, kindRecommendation, deg)
		return FallbackRecommendations(), deg, nil
	}

	items, parseErr := ParseRecommendations(text)
	if parseErr != nil {
		return FallbackRecommendations(), a.malformedDegradation(ctx, kindRecommendation, text, parseErr), nil
	}
	return items, nil, nil
}

// DailyBrief renders a free-text morning brief. The brief has no JSON schema;
// the only validation is that the completion is non-empty.
func (a *Annotator) DailyBrief(ctx context.Context, req BriefRequest) (string, *Degradation, error) {
	prompt := BriefPrompt(req, a.now())

	text, deg, err := a.complete(ctx, kindBrief, prompt, a.params(600))
	if err != nil {
		return FallbackBrief(), nil, err
	}
	if deg != nil {
		a.degrade(ctx, kindBrief, deg)
		return FallbackBrief(), deg, nil
	}

	brief := strings.TrimSpace(text)
	if brief == "" {
		return FallbackBrief(), a.malformedDegradation(ctx, kindBrief, text, malformed("empty brief")), nil
	}
	return brief, nil, nil
}
