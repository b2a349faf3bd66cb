package insights

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitpulse/profitpulse/internal/platform/db"
	"github.com/profitpulse/profitpulse/internal/shared"
)

// Repository defines storage access for insights and weekly briefs.
type Repository interface {
	InsertInsights(ctx context.Context, list []Insight) error
	ListInsights(ctx context.Context, cafeID uuid.UUID, status *Status, limit int) ([]Insight, error)
	FindInsightStatus(ctx context.Context, cafeID, id uuid.UUID) (Status, error)
	UpdateInsightStatus(ctx context.Context, cafeID, id uuid.UUID, status Status) error
	ReplaceBrief(ctx context.Context, brief Brief) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// InsertInsights stores a generated batch.
func (r *PGRepository) InsertInsights(ctx context.Context, list []Insight) error {
	const query = `
		INSERT INTO ai_insights
			(id, cafe_id, title, summary, detailed_analysis, recommended_action,
			 category, priority, potential_impact, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		for _, in := range list {
			_, err := tx.Exec(ctx, query, in.ID, in.CafeID, in.Title, in.Summary,
				in.DetailedAnalysis, in.RecommendedAction, in.Category, in.Priority,
				in.PotentialImpact, in.Status, in.CreatedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListInsights lists the cafe's insights newest first, optionally filtered
// by status.
func (r *PGRepository) ListInsights(ctx context.Context, cafeID uuid.UUID, status *Status, limit int) ([]Insight, error) {
	query := `
		SELECT id, cafe_id, title, summary, detailed_analysis, recommended_action,
		       category, priority, potential_impact, status, created_at
		FROM ai_insights
		WHERE cafe_id = $1
	`
	args := []any{cafeID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC LIMIT ` + strconv.Itoa(limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Insight
	for rows.Next() {
		var in Insight
		if err := rows.Scan(&in.ID, &in.CafeID, &in.Title, &in.Summary, &in.DetailedAnalysis,
			&in.RecommendedAction, &in.Category, &in.Priority, &in.PotentialImpact,
			&in.Status, &in.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// FindInsightStatus fetches the current status of one of the cafe's
// insights.
func (r *PGRepository) FindInsightStatus(ctx context.Context, cafeID, id uuid.UUID) (Status, error) {
	const query = `SELECT status FROM ai_insights WHERE id = $1 AND cafe_id = $2`
	var status Status
	err := r.pool.QueryRow(ctx, query, id, cafeID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

// UpdateInsightStatus stores a new status.
func (r *PGRepository) UpdateInsightStatus(ctx context.Context, cafeID, id uuid.UUID, status Status) error {
	const query = `UPDATE ai_insights SET status = $3 WHERE id = $1 AND cafe_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, cafeID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceBrief swaps out any existing brief for the same cafe and week in
// a single transaction, so readers never observe a gap.
func (r *PGRepository) ReplaceBrief(ctx context.Context, brief Brief) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`DELETE FROM weekly_briefs WHERE cafe_id = $1 AND week_starting = $2`,
			brief.CafeID, brief.WeekStarting)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO weekly_briefs
				(id, cafe_id, week_starting, summary, highlights, concerns,
				 recommendations, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, brief.ID, brief.CafeID, brief.WeekStarting, brief.Summary,
			brief.Highlights, brief.Concerns, brief.Recommendations, brief.CreatedAt)
		return err
	})
}

var _ Repository = (*PGRepository)(nil)
