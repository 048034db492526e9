package merchantrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	merchant := &domain.Merchant{UserID: 100, StoreName: "My Store", BonusRate: 0.0, Active: true}

	rows := pgxmock.NewRows([]string{"id"}).AddRow(10)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO merchants")).
		WithArgs(100, "My Store", 0.0, true).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), merchant)
	assert.NoError(t, err)
	assert.Equal(t, 10, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Merchant
	}{
		{
			name: "Merchant exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "store_name", "bonus_rate", "active"}).
					AddRow(10, 100, "My Store", 0.05, true)
				mock.ExpectQuery(regexp.QuoteMeta("FROM merchants")).
					WithArgs(10).
					WillReturnRows(rows)
			},
			result: &domain.Merchant{ID: 10, UserID: 100, StoreName: "My Store", BonusRate: 0.05, Active: true},
		},
		{
			name: "Merchant does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM merchants")).
					WithArgs(10).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM merchants")).
					WithArgs(10).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), 10)
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

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "store_name", "bonus_rate", "active"}).
		AddRow(10, 100, "My Store", 0.05, true)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(100).
		WillReturnRows(rows)

	merchant, err := repo.FindByUserID(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, 10, merchant.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)

	merchant := &domain.Merchant{ID: 10, UserID: 100, StoreName: "Renamed", BonusRate: 0.10, Active: false}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE merchants")).
		WithArgs("Renamed", 0.10, false, 10).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.Update(context.Background(), merchant))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE merchants")).
		WithArgs("Renamed", 0.10, false, 10).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.Update(context.Background(), merchant))

	assert.NoError(t, mock.ExpectationsWereMet())
}
