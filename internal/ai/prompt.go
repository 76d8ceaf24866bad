package ai

import (
	"fmt"
	"time"
)

// Request value types for the four annotation kinds. All fields are plain
// strings; optional fields left empty are replaced by a readable placeholder
// when the prompt is rendered, never by an empty token.

type TaskRequest struct {
	Title       string
	Description string
	DueDate     string // RFC 3339, empty when no deadline
}

type EventRequest struct {
	Title       string
	Description string
	Context     string // free-text time/location description
}

type RecommendationRequest struct {
	Tasks  string // free-text summary of active tasks
	Events string // free-text summary of upcoming events
}

type BriefRequest struct {
	Tasks    string
	Events   string
	Timezone string // IANA zone, empty means UTC
}

func orPlaceholder(v, placeholder string) string {
	if v == "" {
		return placeholder
	}
	return v
}

const taskPromptTemplate = `You are an expert productivity coach and task prioritization specialist with deep knowledge of time management frameworks like Eisenhower Matrix, GTD, and Priority Matrix.

Analyze this task comprehensively and provide intelligent prioritization:

TASK DETAILS:
- Title: %s
- Description: %s
- Due Date: %s
- Current Date/Time: %s

PRIORITIZATION CRITERIA (consider all factors):
1. URGENCY: How close is the deadline? Is it time-sensitive?
2. IMPORTANCE: How impactful is completing this task? Does it block other work?
3. EFFORT: Is this a quick win or a major undertaking?
4. CONTEXT: Work vs personal, recurring vs one-time, dependencies
5. CONSEQUENCE: What happens if this isn't done on time?

SCORING GUIDE:
- 90-100: Critical/urgent, deadline within 24h, high-impact, blocks other work
- 70-89: Important, deadline within 3 days, significant impact
- 50-69: Moderate priority, deadline within a week, meaningful work
- 30-49: Low priority, flexible deadline, nice-to-have
- 0-29: Very low priority, no deadline, minimal impact

Provide actionable insights that help the user understand WHY this task has this priority and WHAT they should do about it.

%s`

const taskFormatInstructions = `Respond ONLY with a JSON object (no prose, no markdown fences) matching exactly:
{
  "priority_score": <integer 0-100>,
  "priority_level": <"low" | "medium" | "high">,
  "ai_summary": <string, 1-2 sentence actionable insight>,
  "suggested_category": <"Work" | "Personal" | "Health" | "Finance" | "Learning" | "Errands" | "Creative" | "Social">
}`

// TaskPrompt renders the task prioritization prompt. Pure function of
// (req, now); the caller injects the clock so prompts stay time-sensitive.
func TaskPrompt(req TaskRequest, now time.Time) string {
	return fmt.Sprintf(taskPromptTemplate,
		orPlaceholder(req.Title, "Untitled Task"),
		orPlaceholder(req.Description, "No description provided"),
		orPlaceholder(req.DueDate, "No deadline set"),
		now.UTC().Format(time.RFC3339),
		taskFormatInstructions,
	)
}

const eventPromptTemplate = `You are an executive assistant specializing in calendar management and meeting preparation with expertise in professional communication and time management.

Analyze this calendar event and provide intelligent insights:

EVENT DETAILS:
- Title: %s
- Description: %s
- Time/Context: %s
- Current Date/Time: %s

ANALYSIS CRITERIA:
1. PREPARATION NEEDED: What should they prepare beforehand? (agenda, materials, questions)
2. IMPORTANCE: Is this a key meeting, casual catch-up, or routine event?
3. RESPONSE NEEDED: Would a professional reply be appropriate?
4. TIME MANAGEMENT: Any scheduling insights or optimization opportunities?
5. MEETING TYPE: Interview, 1:1, team meeting, presentation, social, personal?

PRIORITY SCORING:
- 90-100: Critical meetings (interviews, executive presentations, client calls)
- 70-89: Important meetings (team standups, planning sessions, key 1:1s)
- 50-69: Standard meetings (routine check-ins, casual meetings)
- 30-49: Optional events (social gatherings, informal coffee chats)
- 0-29: Low priority events (optional webinars, FYI calendar blocks)

Provide preparation tips that are specific and actionable. If it's a meeting invite, suggest a professional reply.

%s`

const eventFormatInstructions = `Respond ONLY with a JSON object (no prose, no markdown fences) matching exactly:
{
  "priority_score": <integer 0-100>,
  "ai_summary": <string, preparation tip or meeting insight>,
  "suggested_reply": <string professional reply, or null when no reply is warranted>
}`

// EventPrompt renders the event analysis prompt.
func EventPrompt(req EventRequest, now time.Time) string {
	return fmt.Sprintf(eventPromptTemplate,
		orPlaceholder(req.Title, "Untitled Event"),
		orPlaceholder(req.Description, "No description provided"),
		orPlaceholder(req.Context, "Time not specified"),
		now.UTC().Format(time.RFC3339),
		eventFormatInstructions,
	)
}

const recommendationPromptTemplate = `You are a world-class productivity coach with expertise in time management, work-life balance, and personal effectiveness. You've helped thousands of professionals optimize their schedules.

Based on the user's current workload, generate highly specific and actionable recommendations that feel personalized and valuable.

CURRENT WORKLOAD:
- Active Tasks: %s
- Upcoming Events: %s
- Current Date: %s

RECOMMENDATION TYPES TO CONSIDER:
1. RESCHEDULE: Suggest moving tasks/events for better time management or energy alignment
2. DELEGATION: Identify tasks that could be delegated, automated, or eliminated
3. PRIORITY: Highlight which tasks need immediate attention and why
4. TIME_BLOCK: Suggest dedicated focus time blocks for deep work
5. BATCH: Group similar tasks together for efficiency (emails, calls, errands)
6. BREAK: Recommend breaks or self-care if overloaded (prevent burnout)

QUALITY CRITERIA:
- Be SPECIFIC: Reference actual task/event names from their list when possible
- Be ACTIONABLE: Tell them exactly what to do with clear next steps
- Be REALISTIC: Consider their actual schedule and constraints
- Add VALUE: Don't state the obvious - provide insights they wouldn't think of themselves
- PRIORITIZE IMPACT: Focus on recommendations that will make the biggest difference

Generate 2-5 recommendations that will genuinely help them be more productive and balanced.

%s`

const recommendationFormatInstructions = `Respond ONLY with a JSON object (no prose, no markdown fences) matching exactly:
{
  "recommendations": [
    {
      "type": <"reschedule" | "delegation" | "priority" | "time_block" | "batch" | "break">,
      "title": <string, short action-oriented title>,
      "description": <string, specific actionable steps>
    }
  ]
}
The recommendations array must contain between 2 and 5 items.`

// RecommendationPrompt renders the workload recommendation prompt.
func RecommendationPrompt(req RecommendationRequest, now time.Time) string {
	return fmt.Sprintf(recommendationPromptTemplate,
		orPlaceholder(req.Tasks, "No active tasks"),
		orPlaceholder(req.Events, "No upcoming events"),
		now.UTC().Format(time.RFC3339),
		recommendationFormatInstructions,
	)
}

const briefPromptTemplate = `You are a personal productivity assistant creating a morning brief for your user.

TODAY'S SCHEDULE:
Tasks: %s
Events: %s
Timezone: %s
Current Time: %s

Create a concise, motivating daily brief that includes:
1. Key priorities for today (top 3 tasks)
2. Time management tips based on their schedule
3. One motivational insight or productivity tip

Keep it under 200 words, conversational, and encouraging. Respond with plain text only.`

// BriefPrompt renders the daily brief prompt. The brief is free text, so no
// format-instructions block is appended.
func BriefPrompt(req BriefRequest, now time.Time) string {
	return fmt.Sprintf(briefPromptTemplate,
		orPlaceholder(req.Tasks, "No tasks scheduled"),
		orPlaceholder(req.Events, "No events today"),
		orPlaceholder(req.Timezone, "UTC"),
		now.UTC().Format(time.RFC3339),
	)
}
