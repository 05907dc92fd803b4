package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorbook-app/backend/internal/model"
)

type WaitlistRepository struct {
	pool *pgxpool.Pool
}

func NewWaitlistRepository(pool *pgxpool.Pool) *WaitlistRepository {
	return &WaitlistRepository{pool: pool}
}

// Create inserts a new contact request
func (r *WaitlistRepository) Create(ctx context.Context, entry *model.WaitlistEntry) error {
	query := `
		INSERT INTO waitlist_entries (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		entry.Name,
		entry.Email,
		entry.Phone,
		entry.Message,
	).Scan(&entry.ID, &entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create waitlist entry: %w", err)
	}

	return nil
}

// GetAll returns every contact request, newest first
func (r *WaitlistRepository) GetAll(ctx context.Context) ([]*model.WaitlistEntry, error) {
	query := `
		SELECT id, name, email, phone, message, created_at
		FROM waitlist_entries
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get waitlist entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.WaitlistEntry
	for rows.Next() {
		var entry model.WaitlistEntry
		err := rows.Scan(
			&entry.ID,
			&entry.Name,
			&entry.Email,
			&entry.Phone,
			&entry.Message,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan waitlist entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// Delete removes a contact request
func (r *WaitlistRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM waitlist_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete waitlist entry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("waitlist entry not found")
	}

	return nil
}
