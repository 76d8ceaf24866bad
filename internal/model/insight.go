package model

// TaskInsight is the AI annotation attached to a task at creation time.
type TaskInsight struct {
	PriorityScore     int    `json:"priority_score"`
	PriorityLevel     string `json:"priority_level"` // low | medium | high
	AISummary         string `json:"ai_summary"`
	SuggestedCategory string `json:"suggested_category"`
}

// EventInsight is the AI annotation attached to a calendar event.
// SuggestedReply is nil when no reply is warranted.
type EventInsight struct {
	PriorityScore  int     `json:"priority_score"`
	AISummary      string  `json:"ai_summary"`
	SuggestedReply *string `json:"suggested_reply"`
}

// RecommendationItem is one AI-generated workload recommendation.
type RecommendationItem struct {
	Type        string `json:"type"` // reschedule | delegation | priority | time_block | batch | break
	Title       string `json:"title"`
	Description string `json:"description"`
}

// PriorityLevels and TaskCategories are the closed enum sets the parser
// accepts; anything outside them is a validation failure.
var (
	PriorityLevels = []string{"low", "medium", "high"}

	TaskCategories = []string{
		"Work", "Personal", "Health", "Finance",
		"Learning", "Errands", "Creative", "Social",
	}

	RecommendationTypes = []string{
		"reschedule", "delegation", "priority", "time_block", "batch", "break",
	}
)
