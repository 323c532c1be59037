package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventrsvp/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	date := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:       "Launch",
				Description: "Product launch party",
				Date:        &date,
				Location:    "HQ",
				CreatedAt:   created,
				UpdatedAt:   created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, date, location, start_date, end_date, created_at, updated_at\)`).
					WithArgs("Launch", "Product launch party", &date, "HQ", nil, nil, created, created).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID:  7,
			wantErr: false,
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:     "Launch",
				CreatedAt: created,
				UpdatedAt: created,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eventColumns := []string{"id", "title", "description", "date", "location", "start_date", "end_date", "created_at", "updated_at"}

	t.Run("success with null date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, start_date, end_date, created_at, updated_at`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(3), "Meetup", "", nil, "Cafe", nil, nil, created, created))

		repo := NewEventRepository(db)
		event, err := repo.GetByID(ctx, 3)
		require.NoError(t, err)
		require.Equal(t, int64(3), event.ID)
		require.Equal(t, "Meetup", event.Title)
		require.Nil(t, event.Date)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, title, description, date, location, start_date, end_date, created_at, updated_at`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, 99)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_ListStartingBetween(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	to := from.Add(time.Hour)
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eventColumns := []string{"id", "title", "description", "date", "location", "start_date", "end_date", "created_at", "updated_at"}

	t.Run("returns events in window", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		atLower := from
		atUpper := to
		mock.ExpectQuery(`WHERE date BETWEEN \$1 AND \$2`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(1), "Launch", "party", atLower, "HQ", nil, nil, created, created).
				AddRow(int64(2), "Demo", "", atUpper, "Lab", nil, nil, created, created))

		repo := NewEventRepository(db)
		events, err := repo.ListStartingBetween(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, events, 2)
		require.Equal(t, "Launch", events[0].Title)
		require.True(t, events[0].Date.Equal(from))
		require.True(t, events[1].Date.Equal(to))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty window", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE date BETWEEN \$1 AND \$2`).
			WithArgs(from, to).
			WillReturnRows(sqlmock.NewRows(eventColumns))

		repo := NewEventRepository(db)
		events, err := repo.ListStartingBetween(ctx, from, to)
		require.NoError(t, err)
		require.Empty(t, events)
	})

	t.Run("query failure wraps database error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE date BETWEEN \$1 AND \$2`).
			WithArgs(from, to).
			WillReturnError(sql.ErrConnDone)

		repo := NewEventRepository(db)
		_, err = repo.ListStartingBetween(ctx, from, to)
		require.Error(t, err)
		var dbErr *domain.DatabaseError
		require.True(t, errors.As(err, &dbErr))
		require.ErrorIs(t, err, sql.ErrConnDone)
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	eventColumns := []string{"id", "title", "description", "date", "location", "start_date", "end_date", "created_at", "updated_at"}

	t.Run("updates provided fields only", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "New title"
		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), title = \$1`).
			WithArgs("New title", int64(5)).
			WillReturnRows(sqlmock.NewRows(eventColumns).
				AddRow(int64(5), "New title", "", nil, "", nil, nil, created, created))

		repo := NewEventRepository(db)
		event, err := repo.Update(ctx, 5, &title, nil, nil, nil)
		require.NoError(t, err)
		require.Equal(t, "New title", event.Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		title := "x"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, 404, &title, nil, nil, nil)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, 2))
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		require.ErrorIs(t, repo.Delete(ctx, 404), domain.ErrNotFound)
	})
}
