package staff

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/profitpulse/profitpulse/internal/shared"
)

// PayRef is the pay detail needed to cost a shift at write time.
type PayRef struct {
	PayType    string
	HourlyRate float64
}

// Repository defines storage access for staff costs and shift entry.
type Repository interface {
	MemberAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]MemberAggregate, error)
	WindowRevenue(ctx context.Context, cafeID uuid.UUID, since time.Time) (float64, error)
	FindPay(ctx context.Context, cafeID, staffID uuid.UUID) (PayRef, error)
	InsertShift(ctx context.Context, shift Shift) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// MemberAggregates lists active members with shift totals from the given
// date onward, ordered by window shift cost descending.
func (r *PGRepository) MemberAggregates(ctx context.Context, cafeID uuid.UUID, since time.Time) ([]MemberAggregate, error) {
	const query = `
		SELECT sm.id, sm.name, sm.role, sm.pay_type, sm.hourly_rate, sm.annual_salary,
		       COALESCE(SUM(sh.hours_worked), 0) AS total_hours,
		       COALESCE(SUM(sh.overtime_hours), 0) AS overtime_hours,
		       COALESCE(SUM(sh.total_cost), 0) AS shift_cost,
		       COUNT(sh.id) AS days_worked
		FROM staff_members sm
		LEFT JOIN staff_shifts sh ON sh.staff_member_id = sm.id AND sh.date >= $2
		WHERE sm.cafe_id = $1 AND sm.is_active
		GROUP BY sm.id, sm.name, sm.role, sm.pay_type, sm.hourly_rate, sm.annual_salary
		ORDER BY shift_cost DESC
	`
	rows, err := r.pool.Query(ctx, query, cafeID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []MemberAggregate
	for rows.Next() {
		var m MemberAggregate
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.PayType, &m.HourlyRate, &m.AnnualSalary,
			&m.TotalHours, &m.OvertimeHours, &m.ShiftCost, &m.DaysWorked); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// WindowRevenue sums daily summary revenue from the given date onward.
func (r *PGRepository) WindowRevenue(ctx context.Context, cafeID uuid.UUID, since time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(total_revenue), 0)
		FROM daily_summaries
		WHERE cafe_id = $1 AND date >= $2
	`
	var revenue float64
	if err := r.pool.QueryRow(ctx, query, cafeID, since).Scan(&revenue); err != nil {
		return 0, err
	}
	return revenue, nil
}

// FindPay fetches pay details for one of the cafe's staff members.
func (r *PGRepository) FindPay(ctx context.Context, cafeID, staffID uuid.UUID) (PayRef, error) {
	const query = `
		SELECT pay_type, hourly_rate
		FROM staff_members
		WHERE id = $1 AND cafe_id = $2
	`
	var ref PayRef
	err := r.pool.QueryRow(ctx, query, staffID, cafeID).Scan(&ref.PayType, &ref.HourlyRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PayRef{}, shared.ErrNotFound
		}
		return PayRef{}, err
	}
	return ref, nil
}

// InsertShift records a logged shift. A second shift for the same member
// and date is rejected.
func (r *PGRepository) InsertShift(ctx context.Context, shift Shift) error {
	const query = `
		INSERT INTO staff_shifts (id, staff_member_id, date, hours_worked, overtime_hours, total_cost)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query, shift.ID, shift.StaffMemberID, shift.Date,
		shift.HoursWorked, shift.OvertimeHours, shift.TotalCost)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return shared.ErrDuplicate
		}
		return err
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
