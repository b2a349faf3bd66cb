package menu

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitpulse/profitpulse/internal/shared"
)

// Repository defines storage access for menu performance and sale entry.
type Repository interface {
	ItemAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]ItemAggregate, error)
	InsertSale(ctx context.Context, cafeID uuid.UUID, sale Sale) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ItemAggregates lists active items with sales totals from the given date
// onward, ordered by window revenue descending.
func (r *PGRepository) ItemAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]ItemAggregate, error) {
	const query = `
		SELECT m.id, m.name, m.category, m.price, m.cost_to_make,
		       COALESCE(SUM(s.quantity_sold), 0) AS total_sold,
		       COALESCE(SUM(s.quantity_sold), 0) * m.price AS revenue,
		       COALESCE(SUM(s.quantity_sold), 0) * m.cost_to_make AS total_cost
		FROM menu_items m
		LEFT JOIN menu_item_sales s ON s.menu_item_id = m.id AND s.date >= $2
		WHERE m.cafe_id = $1 AND m.is_active
		GROUP BY m.id, m.name, m.category, m.price, m.cost_to_make
		ORDER BY revenue DESC
	`
	rows, err := r.pool.Query(ctx, query, cafeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ItemAggregate
	for rows.Next() {
		var it ItemAggregate
		if err := rows.Scan(&it.ID, &it.Name, &it.Category, &it.Price, &it.CostToMake,
			&it.TotalSold, &it.Revenue, &it.TotalCost); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// InsertSale records a day's sale quantity. The item must belong to the
// cafe; a second entry for the same item and date is rejected.
func (r *PGRepository) InsertSale(ctx context.Context, cafeID uuid.UUID, sale Sale) error {
	const query = `
		INSERT INTO menu_item_sales (id, menu_item_id, date, quantity_sold)
		SELECT $1, m.id, $3, $4
		FROM menu_items m
		WHERE m.id = $2 AND m.cafe_id = $5
	`
	tag, err := r.pool.Exec(ctx, query, sale.ID, sale.MenuItemID, sale.Date, sale.QuantitySold, cafeID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrDuplicate
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
