package model

import "time"

type Event struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       *string   `json:"location"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	PriorityScore  int       `json:"priority_score"`
	AISummary      string    `json:"ai_summary"`
	SuggestedReply *string   `json:"suggested_reply"`
	CreatedAt      time.Time `json:"created_at"`
}
