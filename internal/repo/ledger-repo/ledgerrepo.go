package ledgerrepo

import (
	"context"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
        INSERT INTO ledger_entries (sale_id, user_id, entry_type, amount, reversal, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, entry.SaleID, entry.UserID, entry.EntryType, entry.Amount, entry.Reversal, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		zap.L().Error("failed to create ledger entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, sale_id, user_id, entry_type, amount, reversal, created_at
        FROM ledger_entries
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, userID)
}

func (r *Repository) FindAll(ctx context.Context, limit uint32) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, sale_id, user_id, entry_type, amount, reversal, created_at
        FROM ledger_entries
        ORDER BY created_at DESC
        LIMIT $1
    `
	return r.findMany(ctx, query, int(limit))
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.SaleID, &entry.UserID, &entry.EntryType, &entry.Amount, &entry.Reversal, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("can't scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SumCommission totals the referral commission credited to a referrer,
// used by referral stats. Reversal entries are negative, so cancelled
// sales net themselves out of the lifetime total.
func (r *Repository) SumCommission(ctx context.Context, userID int) (float64, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM ledger_entries
        WHERE user_id = $1 AND entry_type = $2
    `
	var total float64
	err := r.db.QueryRow(ctx, query, userID, domain.ReferralCommissionEntry).Scan(&total)
	if err != nil {
		zap.L().Error("can't sum referral commission", zap.Error(err))
		return 0, err
	}
	return total, nil
}
