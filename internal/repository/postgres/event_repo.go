package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, e.StartDate, e.EndDate, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT id, title, description, date, location, start_date, end_date, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	var dateNull, startNull, endNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &dateNull, &e.Location, &startNull, &endNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyNullTimes(e, dateNull, startNull, endNull)
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, location, start_date, end_date, created_at, updated_at
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListStartingBetween selects events whose date falls inside [from, to].
// BETWEEN is inclusive on both bounds; rows with a NULL date never match.
func (r *eventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, date, location, start_date, end_date, created_at, updated_at
		FROM events
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, domain.NewDatabaseError("list events in window", err)
	}
	defer rows.Close()
	events, err := scanEvents(rows)
	if err != nil {
		return nil, domain.NewDatabaseError("scan events in window", err)
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id int64, title, description, location *string, date *time.Time) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *title)
		n++
	}
	if description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *description)
		n++
	}
	if location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *location)
		n++
	}
	if date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *date)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING id, title, description, date, location, start_date, end_date, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	e := &domain.Event{}
	var dateNull, startNull, endNull sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, args...).Scan(
		&e.ID, &e.Title, &e.Description, &dateNull, &e.Location, &startNull, &endNull, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	applyNullTimes(e, dateNull, startNull, endNull)
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var dateNull, startNull, endNull sql.NullTime
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &dateNull, &e.Location, &startNull, &endNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		applyNullTimes(e, dateNull, startNull, endNull)
		events = append(events, e)
	}
	return events, rows.Err()
}

func applyNullTimes(e *domain.Event, date, start, end sql.NullTime) {
	if date.Valid {
		e.Date = &date.Time
	}
	if start.Valid {
		e.StartDate = &start.Time
	}
	if end.Valid {
		e.EndDate = &end.Time
	}
}
