package ledgerrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/developeragencia/valecash/internal/domain"
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
	now := time.Now()
	userID := 1

	entry := &domain.LedgerEntry{
		SaleID:    "s-1",
		UserID:    &userID,
		EntryType: domain.CashbackEntry,
		Amount:    2.40,
		Reversal:  false,
		CreatedAt: now,
	}

	rows := pgxmock.NewRows([]string{"id"}).AddRow(1)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ledger_entries")).
		WithArgs("s-1", &userID, domain.CashbackEntry, 2.40, false, now).
		WillReturnRows(rows)

	created, err := repo.Create(context.Background(), entry)
	assert.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO ledger_entries")).
		WithArgs("s-1", &userID, domain.CashbackEntry, 2.40, false, now).
		WillReturnError(errors.New("database error"))
	_, err = repo.Create(context.Background(), entry)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	userID := 1

	rows := pgxmock.NewRows([]string{"id", "sale_id", "user_id", "entry_type", "amount", "reversal", "created_at"}).
		AddRow(1, "s-1", &userID, domain.CashbackEntry, 2.40, false, now).
		AddRow(2, "s-1", &userID, domain.CashbackEntry, -2.40, true, now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
		WithArgs(1).
		WillReturnRows(rows)

	entries, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.True(t, entries[1].Reversal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "sale_id", "user_id", "entry_type", "amount", "reversal", "created_at"}).
		AddRow(1, "s-1", (*int)(nil), domain.PlatformFeeEntry, 4.00, false, now)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $1")).
		WithArgs(500).
		WillReturnRows(rows)

	entries, err := repo.FindAll(context.Background(), 500)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Nil(t, entries[0].UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SumCommission(t *testing.T) {
	repo, mock := NewMock(t)

	rows := pgxmock.NewRows([]string{"sum"}).AddRow(1.60)
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
		WithArgs(7, domain.ReferralCommissionEntry).
		WillReturnRows(rows)

	total, err := repo.SumCommission(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, 1.60, total)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
		WithArgs(7, domain.ReferralCommissionEntry).
		WillReturnError(errors.New("database error"))
	_, err = repo.SumCommission(context.Background(), 7)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
