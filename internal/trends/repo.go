package trends

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the reads the trends builder needs.
type Repository interface {
	SummariesSince(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]Summary, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// SummariesSince lists daily summaries for the cafe from the given date
// onward, ordered by date ascending.
func (r *PGRepository) SummariesSince(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]Summary, error) {
	const query = `
		SELECT date, total_revenue, food_cost, labour_cost, other_costs,
		       customer_count, transaction_count
		FROM daily_summaries
		WHERE cafe_id = $1 AND date >= $2
		ORDER BY date
	`
	rows, err := r.pool.Query(ctx, query, cafeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Date, &s.TotalRevenue, &s.FoodCost, &s.LabourCost,
			&s.OtherCosts, &s.CustomerCount, &s.TransactionCount); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
