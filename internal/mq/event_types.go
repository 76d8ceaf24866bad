package mq

import "time"

// Routing keys of the per-record-type change feed. Every create, update or
// delete on a record publishes one of these.
const (
	RoutingKeyTaskChanged           = "task.changed"
	RoutingKeyEventChanged          = "event.changed"
	RoutingKeyRecommendationChanged = "recommendation.changed"
)

// RecordChangedPayload notifies consumers that a record was written.
type RecordChangedPayload struct {
	RecordID   int       `json:"record_id"`
	UserID     int       `json:"user_id"`
	Action     string    `json:"action"` // created | updated | deleted
	OccurredAt time.Time `json:"occurred_at"`
}
