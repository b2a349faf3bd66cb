package summaries

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitpulse/profitpulse/internal/shared"
)

// Repository defines storage access for daily summaries.
type Repository interface {
	Insert(ctx context.Context, cafeID uuid.UUID, summary DailySummary) error
	ListSince(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]DailySummary, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert stores a day's summary. A second row for the same cafe and date
// is rejected.
func (r *PGRepository) Insert(ctx context.Context, cafeID uuid.UUID, s DailySummary) error {
	const query = `
		INSERT INTO daily_summaries
			(id, cafe_id, date, total_revenue, food_cost, labour_cost,
			 other_costs, customer_count, transaction_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query, s.ID, cafeID, s.Date, s.TotalRevenue,
		s.FoodCost, s.LabourCost, s.OtherCosts, s.CustomerCount, s.TransactionCount)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

// ListSince lists the cafe's summaries from the given date onward,
// ordered by date ascending.
func (r *PGRepository) ListSince(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]DailySummary, error) {
	const query = `
		SELECT id, date, total_revenue, food_cost, labour_cost, other_costs,
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

	var list []DailySummary
	for rows.Next() {
		var s DailySummary
		if err := rows.Scan(&s.ID, &s.Date, &s.TotalRevenue, &s.FoodCost, &s.LabourCost,
			&s.OtherCosts, &s.CustomerCount, &s.TransactionCount); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
