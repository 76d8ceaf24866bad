package ai

import "taskpilot/internal/model"

// Static fallbacks, substituted whenever the completion backend fails or its
// response does not validate. Shape-identical to a successful result so
// callers consume one type regardless of path; constructors return fresh
// values because callers may hold onto them.

func FallbackTaskInsight() model.TaskInsight {
	return model.TaskInsight{
		PriorityScore:     50,
		PriorityLevel:     "medium",
		AISummary:         "Added to your task list. Consider setting a deadline for better prioritization.",
		SuggestedCategory: "Work",
	}
}

func FallbackEventInsight() model.EventInsight {
	return model.EventInsight{
		PriorityScore:  60,
		AISummary:      "Event scheduled. Review your calendar for potential conflicts.",
		SuggestedReply: nil,
	}
}

func FallbackRecommendations() []model.RecommendationItem {
	return []model.RecommendationItem{
		{
			Type:        "priority",
			Title:       "Review your task priorities",
			Description: "Take 5 minutes to review your current tasks and ensure the most important ones are at the top of your list. Focus on impact over urgency.",
		},
		{
			Type:        "time_block",
			Title:       "Schedule a focus block",
			Description: "Block out 2 hours tomorrow morning for deep work on your highest priority task. Turn off notifications and close unnecessary tabs.",
		},
	}
}

func FallbackBrief() string {
	return "Your schedule is ready for you. Start with the task that matters most, take breaks when you need them, and check in on your calendar before the day picks up."
}
