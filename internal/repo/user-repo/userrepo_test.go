package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expectErr bool
		result    *domain.User
	}{
		{
			name:  "User exists",
			login: "alice",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "referral_code", "referred_by"}).
					AddRow(1, "alice", "hashed", "client", "ABCD1234", (*int)(nil))
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1")).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			result: &domain.User{ID: 1, Login: "alice", PasswordHash: "hashed", Role: "client", ReferralCode: "ABCD1234"},
		},
		{
			name:  "User does not exist",
			login: "ghost",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1")).
					WithArgs("ghost").
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name:  "Database error",
			login: "alice",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE login = $1")).
					WithArgs("alice").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindByReferralCode(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "referral_code", "referred_by"}).
		AddRow(7, "referrer", "hashed", "client", "ABCD1234", (*int)(nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE referral_code = $1")).
		WithArgs("ABCD1234").
		WillReturnRows(rows)

	user, err := repo.FindByReferralCode(context.Background(), "ABCD1234")
	assert.NoError(t, err)
	assert.Equal(t, 7, user.ID)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE referral_code = $1")).
		WithArgs("NOPE0000").
		WillReturnError(pgx.ErrNoRows)

	user, err = repo.FindByReferralCode(context.Background(), "NOPE0000")
	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	referrerID := 7

	user := &domain.User{
		Login:        "bob",
		PasswordHash: "hashed",
		Role:         "client",
		ReferralCode: "EFGH5678",
		ReferredBy:   &referrerID,
	}

	rows := pgxmock.NewRows([]string{"id"}).AddRow(2)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "hashed", "client", "EFGH5678", &referrerID).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), user)
	assert.NoError(t, err)
	assert.Equal(t, 2, created.ID)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("bob", "hashed", "client", "EFGH5678", &referrerID).
		WillReturnError(errors.New("database error"))

	_, err = repo.Create(context.Background(), user)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindReferredBy(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	referrerID := 7

	rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "referral_code", "referred_by", "created_at"}).
		AddRow(1, "alice", "hashed", "client", "AAAA1111", &referrerID, now).
		AddRow(2, "bob", "hashed", "client", "BBBB2222", &referrerID, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE referred_by = $1")).
		WithArgs(7).
		WillReturnRows(rows)

	users, err := repo.FindReferredBy(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "login", "password_hash", "role", "referral_code", "referred_by", "created_at"}).
		AddRow(1, "alice", "hashed", "client", "AAAA1111", (*int)(nil), now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(rows)

	users, err := repo.FindAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
