package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorbook-app/backend/internal/model"
)

const templateColumns = `id, day_of_week, start_time, duration_minutes, price, location_type, travel_minutes, student_id, created_at`

type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

func scanTemplateItem(row pgx.Row) (*model.WeeklyTemplateItem, error) {
	var item model.WeeklyTemplateItem
	err := row.Scan(
		&item.ID,
		&item.DayOfWeek,
		&item.StartTime,
		&item.DurationMinutes,
		&item.Price,
		&item.LocationType,
		&item.TravelMinutes,
		&item.StudentID,
		&item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new weekly template item
func (r *TemplateRepository) Create(ctx context.Context, item *model.WeeklyTemplateItem) error {
	query := `
		INSERT INTO weekly_template_items (day_of_week, start_time, duration_minutes, price, location_type, travel_minutes, student_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		item.DayOfWeek,
		item.StartTime,
		item.DurationMinutes,
		item.Price,
		item.LocationType,
		item.TravelMinutes,
		item.StudentID,
	).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return fmt.Errorf("create template item: %w", err)
	}

	return nil
}

// GetByID returns the template item or nil when it does not exist
func (r *TemplateRepository) GetByID(ctx context.Context, id int64) (*model.WeeklyTemplateItem, error) {
	query := `SELECT ` + templateColumns + ` FROM weekly_template_items WHERE id = $1`

	item, err := scanTemplateItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get template item by id: %w", err)
	}

	return item, nil
}

// GetAll returns every template item ordered by weekday and start time
func (r *TemplateRepository) GetAll(ctx context.Context) ([]*model.WeeklyTemplateItem, error) {
	query := `SELECT ` + templateColumns + ` FROM weekly_template_items ORDER BY day_of_week, start_time`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all template items: %w", err)
	}
	defer rows.Close()

	var items []*model.WeeklyTemplateItem
	for rows.Next() {
		item, err := scanTemplateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Update rewrites a template item
func (r *TemplateRepository) Update(ctx context.Context, item *model.WeeklyTemplateItem) error {
	query := `
		UPDATE weekly_template_items
		SET day_of_week = $1, start_time = $2, duration_minutes = $3, price = $4,
		    location_type = $5, travel_minutes = $6, student_id = $7
		WHERE id = $8
	`

	result, err := r.pool.Exec(
		ctx, query,
		item.DayOfWeek,
		item.StartTime,
		item.DurationMinutes,
		item.Price,
		item.LocationType,
		item.TravelMinutes,
		item.StudentID,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update template item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template item not found")
	}

	return nil
}

// Delete removes a template item
func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM weekly_template_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template item: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("template item not found")
	}

	return nil
}
