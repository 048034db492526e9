package merchantrepo

import (
	"context"
	"errors"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"github.com/jackc/pgx/v5"
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

func (r *Repository) Create(ctx context.Context, merchant *domain.Merchant) (*domain.Merchant, error) {
	query := `
        INSERT INTO merchants (user_id, store_name, bonus_rate, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, merchant.UserID, merchant.StoreName, merchant.BonusRate, merchant.Active).Scan(&merchant.ID)
	if err != nil {
		zap.L().Error("can't save merchant", zap.Error(err))
		return nil, err
	}
	return merchant, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Merchant, error) {
	query := `
        SELECT id, user_id, store_name, bonus_rate, active
        FROM merchants
        WHERE id = $1
    `
	return r.findOne(ctx, query, id)
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) (*domain.Merchant, error) {
	query := `
        SELECT id, user_id, store_name, bonus_rate, active
        FROM merchants
        WHERE user_id = $1
    `
	return r.findOne(ctx, query, userID)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.Merchant, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var merchant domain.Merchant
	err := row.Scan(&merchant.ID, &merchant.UserID, &merchant.StoreName, &merchant.BonusRate, &merchant.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find merchant", zap.Error(err))
		return nil, err
	}
	return &merchant, nil
}

func (r *Repository) Update(ctx context.Context, merchant *domain.Merchant) error {
	query := `
        UPDATE merchants
        SET store_name = $1, bonus_rate = $2, active = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, merchant.StoreName, merchant.BonusRate, merchant.Active, merchant.ID)
	if err != nil {
		zap.L().Error("failed to update merchant", zap.Error(err))
		return err
	}
	return nil
}
