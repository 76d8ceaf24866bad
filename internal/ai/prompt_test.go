package ai

import (
	"strings"
	"testing"
	"time"
)

var promptClock = time.Date(2024, 4, 14, 8, 0, 0, 0, time.UTC)

func TestTaskPromptPlaceholders(t *testing.T) {
	prompt := TaskPrompt(TaskRequest{Title: "Submit tax filing"}, promptClock)

	if !strings.Contains(prompt, "Submit tax filing") {
		t.Fatal("prompt missing title")
	}
	if !strings.Contains(prompt, "No description provided") {
		t.Error("omitted description should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "No deadline set") {
		t.Error("omitted due date should render the placeholder phrase")
	}
	if strings.Contains(prompt, "- Description: \n") {
		t.Error("prompt contains a raw empty description field")
	}
}

func TestTaskPromptInjectsClock(t *testing.T) {
	prompt := TaskPrompt(TaskRequest{Title: "x"}, promptClock)
	if !strings.Contains(prompt, "2024-04-14T08:00:00Z") {
		t.Error("prompt should contain the render-time timestamp in RFC 3339")
	}

	later := TaskPrompt(TaskRequest{Title: "x"}, promptClock.Add(time.Hour))
	if prompt == later {
		t.Error("prompts rendered at different times should differ")
	}
}

func TestTaskPromptSchemaBlock(t *testing.T) {
	prompt := TaskPrompt(TaskRequest{Title: "x"}, promptClock)
	for _, field := range []string{"priority_score", "priority_level", "ai_summary", "suggested_category"} {
		if !strings.Contains(prompt, field) {
			t.Errorf("format instructions missing field %q", field)
		}
	}
}

func TestTaskPromptRubricMentionsUrgencyBand(t *testing.T) {
	// A deadline within 24h of the clock lands in the 90-100 band per the
	// rubric prose; verify the band and the deadline both reach the model.
	prompt := TaskPrompt(TaskRequest{
		Title:   "Submit tax filing",
		DueDate: "2024-04-14T23:59:00Z",
	}, promptClock)

	if !strings.Contains(prompt, "90-100: Critical/urgent, deadline within 24h") {
		t.Error("scoring rubric missing critical band")
	}
	if !strings.Contains(prompt, "2024-04-14T23:59:00Z") {
		t.Error("due date not rendered into prompt")
	}
}

func TestEventPromptPlaceholders(t *testing.T) {
	prompt := EventPrompt(EventRequest{Title: "1:1 with manager"}, promptClock)

	if !strings.Contains(prompt, "No description provided") {
		t.Error("omitted description should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "Time not specified") {
		t.Error("omitted context should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "suggested_reply") {
		t.Error("format instructions missing suggested_reply")
	}
}

func TestRecommendationPromptPlaceholders(t *testing.T) {
	prompt := RecommendationPrompt(RecommendationRequest{}, promptClock)

	if !strings.Contains(prompt, "No active tasks") {
		t.Error("empty tasks summary should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "No upcoming events") {
		t.Error("empty events summary should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "between 2 and 5 items") {
		t.Error("format instructions missing item count bounds")
	}
}

func TestBriefPromptPlaceholders(t *testing.T) {
	prompt := BriefPrompt(BriefRequest{}, promptClock)

	if !strings.Contains(prompt, "No tasks scheduled") {
		t.Error("empty tasks should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "No events today") {
		t.Error("empty events should render the placeholder phrase")
	}
	if !strings.Contains(prompt, "Timezone: UTC") {
		t.Error("empty timezone should default to UTC")
	}
}
