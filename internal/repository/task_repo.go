package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskpilot/internal/model"
)

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task with its annotation columns.
func (r *TaskRepository) Create(ctx context.Context, t *model.Task) error {
	query := `
        INSERT INTO tasks (user_id, title, description, due_date, status,
                           priority_score, priority_level, ai_summary, category,
                           created_at, updated_at)
        VALUES ($1, $2, $3, $4, 'pending', $5, $6, $7, $8, NOW(), NOW())
        RETURNING id, status, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		t.UserID, t.Title, t.Description, t.DueDate,
		t.PriorityScore, t.PriorityLevel, t.AISummary, t.Category,
	).Scan(&t.ID, &t.Status, &t.CreatedAt, &t.UpdatedAt)
}

// FindByID returns a task scoped to its owner.
func (r *TaskRepository) FindByID(ctx context.Context, id, userID int) (*model.Task, error) {
	query := `
        SELECT id, user_id, title, description, due_date, status,
               priority_score, priority_level, ai_summary, category,
               created_at, updated_at
        FROM tasks
        WHERE id = $1 AND user_id = $2
    `
	var t model.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status,
		&t.PriorityScore, &t.PriorityLevel, &t.AISummary, &t.Category,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByUser returns all tasks for a user, highest priority first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int) ([]model.Task, error) {
	query := `
        SELECT id, user_id, title, description, due_date, status,
               priority_score, priority_level, ai_summary, category,
               created_at, updated_at
        FROM tasks
        WHERE user_id = $1
        ORDER BY priority_score DESC, created_at DESC
    `
	return r.list(ctx, query, userID)
}

// ListPendingByUser returns the user's open tasks, highest priority first.
func (r *TaskRepository) ListPendingByUser(ctx context.Context, userID int) ([]model.Task, error) {
	query := `
        SELECT id, user_id, title, description, due_date, status,
               priority_score, priority_level, ai_summary, category,
               created_at, updated_at
        FROM tasks
        WHERE user_id = $1 AND status = 'pending'
        ORDER BY priority_score DESC, created_at DESC
    `
	return r.list(ctx, query, userID)
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Status,
			&t.PriorityScore, &t.PriorityLevel, &t.AISummary, &t.Category,
			&t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update rewrites the editable fields of a task.
func (r *TaskRepository) Update(ctx context.Context, t *model.Task) error {
	query := `
        UPDATE tasks
        SET title = $1, description = $2, due_date = $3, status = $4,
            category = $5, updated_at = NOW()
        WHERE id = $6 AND user_id = $7
    `
	_, err := r.db.Exec(ctx, query,
		t.Title, t.Description, t.DueDate, t.Status, t.Category, t.ID, t.UserID,
	)
	return err
}

// UpdateStatus sets task status (e.g. completed).
func (r *TaskRepository) UpdateStatus(ctx context.Context, id, userID int, status string) error {
	query := `
        UPDATE tasks
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND user_id = $3
    `
	_, err := r.db.Exec(ctx, query, status, id, userID)
	return err
}

// Delete removes a task scoped to its owner. Returns pgx.ErrNoRows when the
// id does not exist or belongs to someone else.
func (r *TaskRepository) Delete(ctx context.Context, id, userID int) error {
	query := `
        DELETE FROM tasks
        WHERE id = $1 AND user_id = $2
    `
	return requireRow(r.db.Exec(ctx, query, id, userID))
}
