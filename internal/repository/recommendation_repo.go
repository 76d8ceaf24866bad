package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskpilot/internal/model"
)

type RecommendationRepository struct {
	db *pgxpool.Pool
}

func NewRecommendationRepository(db *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

// ReplaceForUser swaps the user's stored recommendations for a fresh set in
// one transaction, preserving the generated order.
func (r *RecommendationRepository) ReplaceForUser(ctx context.Context, userID int, items []model.RecommendationItem) ([]model.Recommendation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	insert := `
        INSERT INTO recommendations (user_id, type, title, description, created_at)
        VALUES ($1, $2, $3, $4, NOW())
        RETURNING id, created_at
    `
	recs := make([]model.Recommendation, 0, len(items))
	for _, item := range items {
		rec := model.Recommendation{
			UserID:      userID,
			Type:        item.Type,
			Title:       item.Title,
			Description: item.Description,
		}
		err := tx.QueryRow(ctx, insert, userID, item.Type, item.Title, item.Description).
			Scan(&rec.ID, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return recs, nil
}

// ListByUser returns the user's stored recommendations in generated order.
func (r *RecommendationRepository) ListByUser(ctx context.Context, userID int) ([]model.Recommendation, error) {
	query := `
        SELECT id, user_id, type, title, description, created_at
        FROM recommendations
        WHERE user_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := []model.Recommendation{}
	for rows.Next() {
		var rec model.Recommendation
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.Type, &rec.Title, &rec.Description, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
