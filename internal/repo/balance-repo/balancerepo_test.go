package balancerepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB, mockTxManager)
	defer mockDB.Close()
	defer ctrl.Finish()

	return repo, mockDB, mockTxManager
}

func TestRepository_GetUserBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Balance
	}{
		{
			name: "Balance exists",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "current_balance", "total_earned", "total_spent"}).
					AddRow(1, 1, 12.40, 15.00, 210.00)
				mock.ExpectQuery(regexp.QuoteMeta("FROM balances")).
					WithArgs(1).
					WillReturnRows(rows)
			},
			result: &domain.Balance{ID: 1, UserID: 1, CurrentBalance: 12.40, TotalEarned: 15.00, TotalSpent: 210.00},
		},
		{
			name: "Balance does not exist",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM balances")).
					WithArgs(1).
					WillReturnError(pgx.ErrNoRows)
			},
			result: nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("FROM balances")).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetUserBalance(context.Background(), 1)
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

func TestRepository_CreateUserBalance(t *testing.T) {
	repo, mock, _ := NewMock(t)

	rows := pgxmock.NewRows([]string{"id", "user_id", "current_balance", "total_earned", "total_spent"}).
		AddRow(1, 1, 0.0, 0.0, 0.0)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO balances")).
		WithArgs(1).
		WillReturnRows(rows)

	balance, err := repo.CreateUserBalance(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, &domain.Balance{ID: 1, UserID: 1}, balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Credit(t *testing.T) {
	repo, mock, txManager := NewMock(t)

	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	).AnyTimes()

	tests := []struct {
		name      string
		delta     float64
		mockSetup func()
		expectErr bool
		result    *domain.Balance
	}{
		{
			name:  "Positive credit raises balance and lifetime earnings",
			delta: 2.40,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "current_balance", "total_earned", "total_spent"}).
					AddRow(1, 1, 14.80, 17.40, 210.00)
				mock.ExpectQuery(regexp.QuoteMeta("UPDATE balances")).
					WithArgs(2.40, 1).
					WillReturnRows(rows)
			},
			result: &domain.Balance{ID: 1, UserID: 1, CurrentBalance: 14.80, TotalEarned: 17.40, TotalSpent: 210.00},
		},
		{
			name:  "Reversal may drive the balance negative",
			delta: -2.40,
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "user_id", "current_balance", "total_earned", "total_spent"}).
					AddRow(1, 1, -1.10, 17.40, 210.00)
				mock.ExpectQuery(regexp.QuoteMeta("UPDATE balances")).
					WithArgs(-2.40, 1).
					WillReturnRows(rows)
			},
			result: &domain.Balance{ID: 1, UserID: 1, CurrentBalance: -1.10, TotalEarned: 17.40, TotalSpent: 210.00},
		},
		{
			name:  "Database error",
			delta: 2.40,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("UPDATE balances")).
					WithArgs(2.40, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Credit(context.Background(), 1, tt.delta)
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

func TestRepository_AddSpent(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("SET total_spent = total_spent + $1")).
		WithArgs(80.0, 1).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.AddSpent(context.Background(), 1, 80.0))

	mock.ExpectExec(regexp.QuoteMeta("SET total_spent = total_spent + $1")).
		WithArgs(80.0, 1).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.AddSpent(context.Background(), 1, 80.0))

	assert.NoError(t, mock.ExpectationsWereMet())
}
