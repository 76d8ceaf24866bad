package model

import "time"

type Task struct {
	ID            int        `json:"id"`
	UserID        int        `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        string     `json:"status"` // pending | completed
	PriorityScore int        `json:"priority_score"`
	PriorityLevel string     `json:"priority_level"`
	AISummary     string     `json:"ai_summary"`
	Category      string     `json:"category"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
