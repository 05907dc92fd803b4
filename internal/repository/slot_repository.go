package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorbook-app/backend/internal/model"
)

const slotColumns = `id, start_time, end_time, is_booked, student_id, booked_at, is_paid, topic, location_type, travel_minutes, price, created_at`

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	err := row.Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsBooked,
		&slot.StudentID,
		&slot.BookedAt,
		&slot.IsPaid,
		&slot.Topic,
		&slot.LocationType,
		&slot.TravelMinutes,
		&slot.Price,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new slot
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (start_time, end_time, is_booked, student_id, booked_at, is_paid, topic, location_type, travel_minutes, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.StartTime,
		slot.EndTime,
		slot.IsBooked,
		slot.StudentID,
		slot.BookedAt,
		slot.IsPaid,
		slot.Topic,
		slot.LocationType,
		slot.TravelMinutes,
		slot.Price,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// GetByID returns the slot or nil when it does not exist
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `SELECT ` + slotColumns + ` FROM slots WHERE id = $1`

	slot, err := scanSlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return slot, nil
}

// GetByRange returns all slots whose start time falls in [from, to)
func (r *SlotRepository) GetByRange(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get slots by range: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// Update rewrites the editable fields of a slot
func (r *SlotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET start_time = $1, end_time = $2, is_booked = $3, student_id = $4, booked_at = $5,
		    is_paid = $6, topic = $7, location_type = $8, travel_minutes = $9, price = $10
		WHERE id = $11
	`

	result, err := r.pool.Exec(
		ctx, query,
		slot.StartTime,
		slot.EndTime,
		slot.IsBooked,
		slot.StudentID,
		slot.BookedAt,
		slot.IsPaid,
		slot.Topic,
		slot.LocationType,
		slot.TravelMinutes,
		slot.Price,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Book claims a free slot for a student. The WHERE clause is the
// server-side check-and-set that closes the double-booking race: of two
// concurrent attempts exactly one sees is_booked = false.
func (r *SlotRepository) Book(ctx context.Context, slotID, studentID int64, topic string) (bool, error) {
	query := `
		UPDATE slots
		SET is_booked = TRUE, student_id = $1, topic = $2, booked_at = now()
		WHERE id = $3 AND is_booked = FALSE
	`

	result, err := r.pool.Exec(ctx, query, studentID, topic, slotID)
	if err != nil {
		return false, fmt.Errorf("book slot: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// ClearBooking resets a slot back to free: booking fields, topic and the
// paid flag are all cleared.
func (r *SlotRepository) ClearBooking(ctx context.Context, slotID int64) error {
	query := `
		UPDATE slots
		SET is_booked = FALSE, student_id = NULL, booked_at = NULL, topic = '', is_paid = FALSE
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("clear booking: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// SetPaid flips the paid flag
func (r *SlotRepository) SetPaid(ctx context.Context, slotID int64, paid bool) error {
	query := `UPDATE slots SET is_paid = $1 WHERE id = $2`

	result, err := r.pool.Exec(ctx, query, paid, slotID)
	if err != nil {
		return fmt.Errorf("set slot paid: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// Delete removes the slot row entirely
func (r *SlotRepository) Delete(ctx context.Context, slotID int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM slots WHERE id = $1`, slotID)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("slot not found")
	}

	return nil
}

// ExistsAt checks whether a slot already starts at the given time,
// used to keep template expansion idempotent.
func (r *SlotRepository) ExistsAt(ctx context.Context, startTime time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM slots WHERE start_time = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, startTime).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slot exists: %w", err)
	}

	return exists, nil
}

// UnpaidPast returns a student's booked, unpaid slots that already started
func (r *SlotRepository) UnpaidPast(ctx context.Context, studentID int64, now time.Time) ([]*model.Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM slots
		WHERE student_id = $1 AND is_booked AND NOT is_paid AND start_time < $2
		ORDER BY start_time
	`

	rows, err := r.pool.Query(ctx, query, studentID, now)
	if err != nil {
		return nil, fmt.Errorf("get unpaid slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// SettleAll marks all of a student's unpaid past slots as paid. A single
// UPDATE statement, so the bulk transition is atomic.
func (r *SlotRepository) SettleAll(ctx context.Context, studentID int64, now time.Time) (int64, error) {
	query := `
		UPDATE slots
		SET is_paid = TRUE
		WHERE student_id = $1 AND is_booked AND NOT is_paid AND start_time < $2
	`

	result, err := r.pool.Exec(ctx, query, studentID, now)
	if err != nil {
		return 0, fmt.Errorf("settle all: %w", err)
	}

	return result.RowsAffected(), nil
}
