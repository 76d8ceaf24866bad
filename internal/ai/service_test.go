package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"taskpilot/pkg/trace"
)

// scriptedBackend returns every completion with the given content, encoded
// the way a chat-completions endpoint would.
func scriptedBackend(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestAnnotator(backendURL string) *Annotator {
	a := NewAnnotator(NewClient(backendURL, "test-key"), "test-model", zap.NewNop())
	a.now = func() time.Time { return time.Date(2024, 4, 14, 8, 0, 0, 0, time.UTC) }
	return a
}

func TestPrioritizeTaskOK(t *testing.T) {
	srv := scriptedBackend(t, `{"priority_score": 85, "priority_level": "high", "ai_summary": "File before midnight.", "suggested_category": "Finance"}`)
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	insight, deg, err := a.PrioritizeTask(context.Background(), TaskRequest{
		Title:   "Submit tax filing",
		DueDate: "2024-04-14T23:59:00Z",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deg != nil {
		t.Fatalf("unexpected degradation: %+v", deg)
	}
	// Urgent input analyzed within 24h of deadline: the banding relationship
	// must hold for what the backend handed back.
	if insight.PriorityScore < 70 || insight.PriorityLevel != "high" {
		t.Errorf("urgent task got score %d level %q", insight.PriorityScore, insight.PriorityLevel)
	}
	if insight.PriorityScore < 0 || insight.PriorityScore > 100 {
		t.Errorf("score %d out of [0,100]", insight.PriorityScore)
	}
}

func TestPrioritizeTaskGarbageFallsBack(t *testing.T) {
	srv := scriptedBackend(t, "sure! that task sounds pretty important to me")
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	insight, deg, err := a.PrioritizeTask(context.Background(), TaskRequest{Title: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deg == nil || deg.Reason != ReasonResponseMalformed {
		t.Fatalf("want response_malformed degradation, got %+v", deg)
	}
	if insight != FallbackTaskInsight() {
		t.Errorf("expected fallback insight, got %+v", insight)
	}
}

func TestPrioritizeTaskOutOfRangeScoreFallsBack(t *testing.T) {
	srv := scriptedBackend(t, `{"priority_score": 150, "priority_level": "high", "ai_summary": "x", "suggested_category": "Work"}`)
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	insight, deg, _ := a.PrioritizeTask(context.Background(), TaskRequest{Title: "x"})
	if deg == nil || deg.Reason != ReasonResponseMalformed {
		t.Fatalf("want response_malformed degradation, got %+v", deg)
	}
	if insight.PriorityScore != 50 || insight.PriorityLevel != "medium" {
		t.Errorf("expected the documented fallback, got %+v", insight)
	}
}

func TestPrioritizeTaskUpstreamDownFallsBack(t *testing.T) {
	srv := scriptedBackend(t, "")
	srv.Close()

	a := newTestAnnotator(srv.URL)
	insight, deg, err := a.PrioritizeTask(context.Background(), TaskRequest{Title: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deg == nil || deg.Reason != ReasonUpstreamUnavailable {
		t.Fatalf("want upstream_unavailable degradation, got %+v", deg)
	}
	if insight != FallbackTaskInsight() {
		t.Errorf("expected fallback insight, got %+v", insight)
	}
}

func TestAnalyzeEventGarbageFallsBack(t *testing.T) {
	srv := scriptedBackend(t, "not json")
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	insight, deg, _ := a.AnalyzeEvent(context.Background(), EventRequest{Title: "standup"})
	if deg == nil {
		t.Fatal("expected degradation")
	}
	if insight.PriorityScore != 60 || insight.SuggestedReply != nil {
		t.Errorf("expected the documented event fallback, got %+v", insight)
	}
}

func TestGenerateRecommendationsOK(t *testing.T) {
	srv := scriptedBackend(t, `{"recommendations": [
		{"type": "time_block", "title": "Morning focus", "description": "Block 9-11 for the report."},
		{"type": "batch", "title": "Batch errands", "description": "Group the pharmacy and grocery runs."},
		{"type": "break", "title": "Take a walk", "description": "20 minutes after lunch."}
	]}`)
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	items, deg, err := a.GenerateRecommendations(context.Background(), RecommendationRequest{Tasks: "report (high)"})
	if err != nil || deg != nil {
		t.Fatalf("unexpected outcome: err=%v deg=%+v", err, deg)
	}
	if len(items) != 3 {
		t.Errorf("got %d items", len(items))
	}
}

func TestGenerateRecommendationsTooFewFallsBack(t *testing.T) {
	srv := scriptedBackend(t, `{"recommendations": [{"type": "priority", "title": "a", "description": "b"}]}`)
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	items, deg, _ := a.GenerateRecommendations(context.Background(), RecommendationRequest{})
	if deg == nil || deg.Reason != ReasonResponseMalformed {
		t.Fatalf("want response_malformed degradation, got %+v", deg)
	}
	if len(items) < 2 || len(items) > 5 {
		t.Errorf("fallback must still hold 2-5 items, got %d", len(items))
	}
}

func TestDailyBriefOK(t *testing.T) {
	srv := scriptedBackend(t, "Good morning! Start with the tax filing, then clear your inbox.")
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	brief, deg, err := a.DailyBrief(context.Background(), BriefRequest{Tasks: "tax filing (high)"})
	if err != nil || deg != nil {
		t.Fatalf("unexpected outcome: err=%v deg=%+v", err, deg)
	}
	if brief == "" {
		t.Error("empty brief")
	}
}

func TestDailyBriefEmptyCompletionFallsBack(t *testing.T) {
	srv := scriptedBackend(t, "   ")
	defer srv.Close()

	a := newTestAnnotator(srv.URL)
	brief, deg, _ := a.DailyBrief(context.Background(), BriefRequest{})
	if deg == nil || deg.Reason != ReasonResponseMalformed {
		t.Fatalf("want response_malformed degradation, got %+v", deg)
	}
	if brief != FallbackBrief() {
		t.Errorf("expected fallback brief, got %q", brief)
	}
}

func TestDegradedAnnotationLogCarriesTraceID(t *testing.T) {
	srv := scriptedBackend(t, "not json")
	defer srv.Close()

	core, logs := observer.New(zap.WarnLevel)
	a := NewAnnotator(NewClient(srv.URL, "test-key"), "test-model", zap.New(core))

	ctx := trace.WithContext(context.Background(), "trace-42")
	_, deg, err := a.PrioritizeTask(ctx, TaskRequest{Title: "x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deg == nil {
		t.Fatal("expected degradation")
	}

	entries := logs.All()
	if len(entries) == 0 {
		t.Fatal("expected a warn entry for the degraded annotation")
	}
	if got := entries[0].ContextMap()["trace_id"]; got != "trace-42" {
		t.Errorf("trace_id = %v, want trace-42", got)
	}
}

func TestAnnotatorCircuitOpensAfterRepeatedFailures(t *testing.T) {
	srv := scriptedBackend(t, "")
	srv.Close()

	a := newTestAnnotator(srv.URL)
	// 默认阈值是连续失败5次
	for i := 0; i < 6; i++ {
		_, deg, err := a.PrioritizeTask(context.Background(), TaskRequest{Title: "x"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if deg == nil {
			t.Fatal("expected degradation while backend is down")
		}
		if i >= 5 && deg.Reason != ReasonCircuitOpen {
			t.Errorf("call %d: want circuit_open, got %s", i, deg.Reason)
		}
	}
}
