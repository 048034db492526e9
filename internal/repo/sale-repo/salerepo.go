package salerepo

import (
	"context"
	"errors"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const saleColumns = `id, client_id, merchant_id, gross_amount, discount, payment_method, status,
       net_amount, platform_fee, cashback_amount, merchant_receives, referral_commission, referrer_id, created_at`

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var sale domain.Sale
	err := row.Scan(
		&sale.ID, &sale.ClientID, &sale.MerchantID, &sale.GrossAmount, &sale.Discount,
		&sale.PaymentMethod, &sale.Status,
		&sale.Breakdown.NetAmount, &sale.Breakdown.PlatformFee, &sale.Breakdown.CashbackAmount,
		&sale.Breakdown.MerchantReceives, &sale.Breakdown.ReferralCommission, &sale.Breakdown.ReferrerID,
		&sale.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Sale, error) {
	query := `
        SELECT ` + saleColumns + `
        FROM sales
        WHERE id = $1
    `
	sale, err := scanSale(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find sale", zap.Error(err))
		return nil, err
	}
	return sale, nil
}

func (r *Repository) Save(ctx context.Context, sale *domain.Sale) error {
	query := `
        INSERT INTO sales (id, client_id, merchant_id, gross_amount, discount, payment_method, status,
                           net_amount, platform_fee, cashback_amount, merchant_receives, referral_commission, referrer_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		_, err := r.db.Exec(ctx, query,
			sale.ID, sale.ClientID, sale.MerchantID, sale.GrossAmount, sale.Discount,
			sale.PaymentMethod, sale.Status,
			sale.Breakdown.NetAmount, sale.Breakdown.PlatformFee, sale.Breakdown.CashbackAmount,
			sale.Breakdown.MerchantReceives, sale.Breakdown.ReferralCommission, sale.Breakdown.ReferrerID,
			sale.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't save sale", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

// UpdateStatus transitions a sale between statuses. It reports whether a
// row matched, so callers can detect a lost race on the same sale.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to string) (bool, error) {
	query := `
        UPDATE sales
        SET status = $1
        WHERE id = $2 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to update sale status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) FindByMerchantID(ctx context.Context, merchantID int) ([]domain.Sale, error) {
	query := `
        SELECT ` + saleColumns + `
        FROM sales
        WHERE merchant_id = $1
        ORDER BY created_at DESC
    `
	return r.findMany(ctx, query, merchantID)
}

func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Sale, error) {
	query := `
        SELECT ` + saleColumns + `
        FROM sales
        WHERE status = 'PENDING' AND payment_method = 'gateway'
        ORDER BY created_at ASC
        LIMIT $1
    `
	return r.findMany(ctx, query, int(limit))
}

func (r *Repository) findMany(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't get sales", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			zap.L().Error("can't scan sale row", zap.Error(err))
			return nil, err
		}
		sales = append(sales, *sale)
	}
	return sales, nil
}

type MerchantReport struct {
	SalesCount       int     `db:"sales_count"`
	GrossTotal       float64 `db:"gross_total"`
	NetTotal         float64 `db:"net_total"`
	CashbackTotal    float64 `db:"cashback_total"`
	MerchantReceives float64 `db:"merchant_receives_total"`
}

func (r *Repository) MerchantReport(ctx context.Context, merchantID int) (*MerchantReport, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(gross_amount), 0),
               COALESCE(SUM(net_amount), 0),
               COALESCE(SUM(cashback_amount), 0),
               COALESCE(SUM(merchant_receives), 0)
        FROM sales
        WHERE merchant_id = $1 AND status = 'COMPLETED'
    `
	var report MerchantReport
	err := r.db.QueryRow(ctx, query, merchantID).Scan(
		&report.SalesCount, &report.GrossTotal, &report.NetTotal,
		&report.CashbackTotal, &report.MerchantReceives,
	)
	if err != nil {
		zap.L().Error("can't build merchant report", zap.Error(err))
		return nil, err
	}
	return &report, nil
}

type PlatformReport struct {
	SalesCount     int     `db:"sales_count"`
	GrossTotal     float64 `db:"gross_total"`
	NetTotal       float64 `db:"net_total"`
	FeeTotal       float64 `db:"fee_total"`
	CashbackTotal  float64 `db:"cashback_total"`
	CommissionPaid float64 `db:"commission_paid"`
}

func (r *Repository) PlatformReport(ctx context.Context) (*PlatformReport, error) {
	query := `
        SELECT COUNT(*),
               COALESCE(SUM(gross_amount), 0),
               COALESCE(SUM(net_amount), 0),
               COALESCE(SUM(platform_fee), 0),
               COALESCE(SUM(cashback_amount), 0),
               COALESCE(SUM(referral_commission), 0)
        FROM sales
        WHERE status = 'COMPLETED'
    `
	var report PlatformReport
	err := r.db.QueryRow(ctx, query).Scan(
		&report.SalesCount, &report.GrossTotal, &report.NetTotal,
		&report.FeeTotal, &report.CashbackTotal, &report.CommissionPaid,
	)
	if err != nil {
		zap.L().Error("can't build platform report", zap.Error(err))
		return nil, err
	}
	return &report, nil
}
