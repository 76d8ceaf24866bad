package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskpilot/internal/ai"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// aiBackend serves every completion request with the given content string.
func aiBackend(t *testing.T, content string) *httptest.Server {
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

func insightsRouter(backendURL string) *gin.Engine {
	annotator := ai.NewAnnotator(ai.NewClient(backendURL, "test-key"), "test-model", zap.NewNop())
	h := NewInsightsHandler(annotator, zap.NewNop())

	r := gin.New()
	aiGroup := r.Group("/api/ai")
	{
		aiGroup.POST("/prioritize-task", h.PrioritizeTask)
		aiGroup.POST("/analyze-event", h.AnalyzeEvent)
		aiGroup.POST("/generate-recommendations", h.GenerateRecommendations)
		aiGroup.POST("/daily-brief", h.DailyBrief)
	}
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPrioritizeTaskEndpointOK(t *testing.T) {
	srv := aiBackend(t, `{"priority_score": 85, "priority_level": "high", "ai_summary": "Do it today.", "suggested_category": "Finance"}`)
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/prioritize-task",
		`{"title": "Submit tax filing", "due_date": "2024-04-14T23:59:00Z"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get(DegradedHeader); got != "" {
		t.Errorf("healthy path should not set %s, got %q", DegradedHeader, got)
	}

	var resp struct {
		PriorityScore int    `json:"priority_score"`
		PriorityLevel string `json:"priority_level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.PriorityScore != 85 || resp.PriorityLevel != "high" {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestPrioritizeTaskEndpointDegradesTo200(t *testing.T) {
	srv := aiBackend(t, "definitely not json")
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/prioritize-task", `{"title": "x"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded path must still answer 200, got %d", w.Code)
	}
	if got := w.Header().Get(DegradedHeader); got != "response_malformed" {
		t.Errorf("want %s: response_malformed, got %q", DegradedHeader, got)
	}

	var resp struct {
		PriorityScore     int    `json:"priority_score"`
		PriorityLevel     string `json:"priority_level"`
		SuggestedCategory string `json:"suggested_category"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.PriorityScore != 50 || resp.PriorityLevel != "medium" || resp.SuggestedCategory != "Work" {
		t.Errorf("unexpected fallback payload: %+v", resp)
	}
}

func TestPrioritizeTaskEndpointUpstreamDown(t *testing.T) {
	srv := aiBackend(t, "")
	srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/prioritize-task", `{"title": "x"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("degraded path must still answer 200, got %d", w.Code)
	}
	if got := w.Header().Get(DegradedHeader); got != "upstream_unavailable" {
		t.Errorf("want %s: upstream_unavailable, got %q", DegradedHeader, got)
	}
}

func TestPrioritizeTaskEndpointMissingTitle(t *testing.T) {
	srv := aiBackend(t, "")
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/prioritize-task", `{"description": "no title here"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestAnalyzeEventEndpointMissingTitle(t *testing.T) {
	srv := aiBackend(t, "")
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/analyze-event", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}

func TestGenerateRecommendationsEndpointReturnsArray(t *testing.T) {
	srv := aiBackend(t, `{"recommendations": [
		{"type": "priority", "title": "a", "description": "b"},
		{"type": "break", "title": "c", "description": "d"}
	]}`)
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/generate-recommendations",
		`{"tasks": "report (high)", "events": "standup"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var items []struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("body is not a bare array: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items", len(items))
	}
}

func TestGenerateRecommendationsEndpointFallbackShape(t *testing.T) {
	srv := aiBackend(t, "nope")
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/generate-recommendations", `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if got := w.Header().Get(DegradedHeader); got != "response_malformed" {
		t.Errorf("want %s: response_malformed, got %q", DegradedHeader, got)
	}
	// 形状必须和正常响应一致：裸数组
	var items []struct {
		Type  string `json:"type"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("fallback body is not a bare array: %v", err)
	}
	if len(items) < 2 || len(items) > 5 {
		t.Errorf("fallback must hold 2-5 items, got %d", len(items))
	}
}

func TestDailyBriefEndpoint(t *testing.T) {
	srv := aiBackend(t, "Good morning! Knock out the report first.")
	defer srv.Close()

	w := postJSON(insightsRouter(srv.URL), "/api/ai/daily-brief",
		`{"tasks": "report (high)", "events": "standup", "user_timezone": "Europe/Helsinki"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Brief string `json:"brief"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Brief == "" {
		t.Error("empty brief")
	}
}
