package service

import (
	"testing"

	"taskpilot/internal/model"
)

func TestSummarizeTasks(t *testing.T) {
	if got := SummarizeTasks(nil); got != "" {
		t.Errorf("empty input should summarize to empty string, got %q", got)
	}

	tasks := []model.Task{
		{Title: "Submit tax filing", PriorityLevel: "high"},
		{Title: "Water plants", PriorityLevel: "low"},
	}
	want := "Submit tax filing (high), Water plants (low)"
	if got := SummarizeTasks(tasks); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSummarizeTasksCapsAtFive(t *testing.T) {
	tasks := make([]model.Task, 8)
	for i := range tasks {
		tasks[i] = model.Task{Title: "t", PriorityLevel: "medium"}
	}
	got := SummarizeTasks(tasks)
	want := "t (medium), t (medium), t (medium), t (medium), t (medium)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSummarizeEvents(t *testing.T) {
	if got := SummarizeEvents(nil); got != "" {
		t.Errorf("empty input should summarize to empty string, got %q", got)
	}

	events := []model.Event{{Title: "Standup"}, {Title: "1:1 with manager"}}
	if got := SummarizeEvents(events); got != "Standup, 1:1 with manager" {
		t.Errorf("got %q", got)
	}
}
