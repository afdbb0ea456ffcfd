package db

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	md "github.com/JMURv/session-guard/internal/models"
	"github.com/JMURv/session-guard/internal/repo"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var accountRowColumns = []string{
	"id", "email", "password", "role", "org_id", "failed_attempts",
	"lock_until", "last_login_at", "max_devices", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	return &Repository{conn: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestRepository_GetAccountByEmail(t *testing.T) {
	r, mock := newMockRepo(t)

	now := time.Now().Truncate(time.Second)
	expected := &md.Account{
		ID:         uuid.New(),
		Email:      "user@example.com",
		Password:   "$2a$10$hash",
		Role:       "user",
		OrgID:      uuid.New(),
		MaxDevices: 3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tests := []struct {
		name        string
		mock        func()
		expected    *md.Account
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				rows := sqlmock.NewRows(accountRowColumns).AddRow(
					expected.ID.String(),
					expected.Email,
					expected.Password,
					expected.Role,
					expected.OrgID.String(),
					0,
					nil,
					nil,
					expected.MaxDevices,
					now,
					now,
				)
				mock.ExpectQuery(regexp.QuoteMeta(accountGetByEmailQ)).
					WithArgs(expected.Email).
					WillReturnRows(rows)
			},
			expected: expected,
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(accountGetByEmailQ)).
					WithArgs(expected.Email).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr: repo.ErrNotFound,
		},
		{
			name: "DatabaseError",
			mock: func() {
				mock.ExpectQuery(regexp.QuoteMeta(accountGetByEmailQ)).
					WithArgs(expected.Email).
					WillReturnError(errors.New("database error"))
			},
			expectedErr: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()

			res, err := r.GetAccountByEmail(context.Background(), expected.Email)
			if tt.expectedErr != nil {
				assert.EqualError(t, err, tt.expectedErr.Error())
				assert.Nil(t, res)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, res)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAccountByEmail_IgnoresCase(t *testing.T) {
	r, mock := newMockRepo(t)
	id := uuid.New()
	now := time.Now().Truncate(time.Second)

	rows := sqlmock.NewRows(accountRowColumns).AddRow(
		id.String(), "user@example.com", "$2a$10$hash", "user", uuid.Nil.String(),
		0, nil, nil, 0, now, now,
	)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(a.email) = lower($1)")).
		WithArgs("User@Example.COM").
		WillReturnRows(rows)

	res, err := r.GetAccountByEmail(context.Background(), "User@Example.COM")
	require.NoError(t, err)
	assert.Equal(t, id, res.ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	schema, err := migrationFS.ReadFile("migration/000001_accounts.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(schema), "ON accounts (lower(email))")
}

func TestRepository_UpdatePassword(t *testing.T) {
	r, mock := newMockRepo(t)
	id := uuid.New()

	tests := []struct {
		name        string
		mock        func()
		expectedErr error
	}{
		{
			name: "Success",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(accountUpdatePasswordQ)).
					WithArgs("hashed", id).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "NotFound",
			mock: func() {
				mock.ExpectExec(regexp.QuoteMeta(accountUpdatePasswordQ)).
					WithArgs("hashed", id).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: repo.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mock()
			err := r.UpdatePassword(context.Background(), id, "hashed")
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncrementFailedAttempts(t *testing.T) {
	r, mock := newMockRepo(t)
	id := uuid.New()
	lockUntil := time.Now().Add(time.Minute * 30).Truncate(time.Second)

	t.Run("BelowThreshold", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(accountIncrementFailuresQ)).
			WithArgs(id, 5, lockUntil).
			WillReturnRows(sqlmock.NewRows([]string{"failed_attempts", "lock_until"}).AddRow(2, nil))

		count, until, err := r.IncrementFailedAttempts(context.Background(), id, 5, lockUntil)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		assert.Nil(t, until)
	})

	t.Run("ReachesThreshold", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(accountIncrementFailuresQ)).
			WithArgs(id, 5, lockUntil).
			WillReturnRows(sqlmock.NewRows([]string{"failed_attempts", "lock_until"}).AddRow(5, lockUntil))

		count, until, err := r.IncrementFailedAttempts(context.Background(), id, 5, lockUntil)
		require.NoError(t, err)
		assert.Equal(t, 5, count)
		require.NotNil(t, until)
		assert.True(t, lockUntil.Equal(*until))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(accountIncrementFailuresQ)).
			WithArgs(id, 5, lockUntil).
			WillReturnError(sql.ErrNoRows)

		_, _, err := r.IncrementFailedAttempts(context.Background(), id, 5, lockUntil)
		assert.ErrorIs(t, err, repo.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ResetFailedAttempts(t *testing.T) {
	r, mock := newMockRepo(t)
	id := uuid.New()
	at := time.Now()

	mock.ExpectExec(regexp.QuoteMeta(accountResetFailuresQ)).
		WithArgs(id, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, r.ResetFailedAttempts(context.Background(), id, at))
	assert.NoError(t, mock.ExpectationsWereMet())
}
