package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventrsvp/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{
		DB: db,
	}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (user_id, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, rsvp.UserID, rsvp.EventID, rsvp.Status, rsvp.CreatedAt, rsvp.UpdatedAt).Scan(&rsvp.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateRSVP
		}
		return err
	}
	return nil
}

func (r *rsvpRepository) GetByID(ctx context.Context, id int64) (*domain.RSVP, error) {
	query := `
		SELECT id, user_id, event_id, status, created_at, updated_at
		FROM rsvps
		WHERE id = $1
	`
	rsvp := &domain.RSVP{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return rsvp, nil
}

func (r *rsvpRepository) List(ctx context.Context) ([]*domain.RSVP, error) {
	query := `
		SELECT id, user_id, event_id, status, created_at, updated_at
		FROM rsvps
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp := &domain.RSVP{}
		if err := rows.Scan(&rsvp.ID, &rsvp.UserID, &rsvp.EventID, &rsvp.Status, &rsvp.CreatedAt, &rsvp.UpdatedAt); err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}

func (r *rsvpRepository) GetStatus(ctx context.Context, userID, eventID int64) (string, error) {
	query := `SELECT status FROM rsvps WHERE user_id = $1 AND event_id = $2`
	var status string
	err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", err
	}
	return status, nil
}

func (r *rsvpRepository) ListAttendeesByEventID(ctx context.Context, eventID int64) ([]*domain.EventAttendee, error) {
	query := `
		SELECT users.username, rsvps.status
		FROM rsvps JOIN users ON rsvps.user_id = users.id
		WHERE rsvps.event_id = $1
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.EventAttendee, 0)
	for rows.Next() {
		a := &domain.EventAttendee{}
		if err := rows.Scan(&a.Username, &a.Status); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

// ListConfirmedRecipients projects the email of every user with a confirmed
// RSVP for the event. Result order follows the storage layer.
func (r *rsvpRepository) ListConfirmedRecipients(ctx context.Context, eventID int64) ([]*domain.Recipient, error) {
	query := `
		SELECT users.email
		FROM rsvps JOIN users ON rsvps.user_id = users.id
		WHERE rsvps.event_id = $1 AND rsvps.status = $2
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID, domain.RSVPStatusConfirmed)
	if err != nil {
		return nil, domain.NewDatabaseError("list confirmed recipients", err)
	}
	defer rows.Close()
	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		rec := &domain.Recipient{}
		if err := rows.Scan(&rec.Email); err != nil {
			return nil, domain.NewDatabaseError("scan confirmed recipient", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewDatabaseError("iterate confirmed recipients", err)
	}
	return recipients, nil
}
