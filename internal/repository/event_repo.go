package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskpilot/internal/model"
)

type EventRepository struct {
	db *pgxpool.Pool
}

func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create inserts an event with its annotation columns.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	query := `
        INSERT INTO events (user_id, title, description, location,
                            start_time, end_time,
                            priority_score, ai_summary, suggested_reply, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		e.UserID, e.Title, e.Description, e.Location,
		e.StartTime, e.EndTime,
		e.PriorityScore, e.AISummary, e.SuggestedReply,
	).Scan(&e.ID, &e.CreatedAt)
}

// ListByUser returns all events for a user in start order.
func (r *EventRepository) ListByUser(ctx context.Context, userID int) ([]model.Event, error) {
	query := `
        SELECT id, user_id, title, description, location, start_time, end_time,
               priority_score, ai_summary, suggested_reply, created_at
        FROM events
        WHERE user_id = $1
        ORDER BY start_time ASC
    `
	return r.list(ctx, query, userID)
}

// ListUpcomingByUser returns events that have not ended yet.
func (r *EventRepository) ListUpcomingByUser(ctx context.Context, userID int, now time.Time) ([]model.Event, error) {
	query := `
        SELECT id, user_id, title, description, location, start_time, end_time,
               priority_score, ai_summary, suggested_reply, created_at
        FROM events
        WHERE user_id = $1 AND end_time >= $2
        ORDER BY start_time ASC
    `
	return r.list(ctx, query, userID, now)
}

func (r *EventRepository) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.Event{}
	for rows.Next() {
		var e model.Event
		err := rows.Scan(
			&e.ID, &e.UserID, &e.Title, &e.Description, &e.Location,
			&e.StartTime, &e.EndTime,
			&e.PriorityScore, &e.AISummary, &e.SuggestedReply, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Delete removes an event scoped to its owner. Returns pgx.ErrNoRows when
// the id does not exist or belongs to someone else.
func (r *EventRepository) Delete(ctx context.Context, id, userID int) error {
	query := `
        DELETE FROM events
        WHERE id = $1 AND user_id = $2
    `
	return requireRow(r.db.Exec(ctx, query, id, userID))
}
