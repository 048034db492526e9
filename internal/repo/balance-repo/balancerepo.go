package balancerepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, TxManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: TxManager,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        SELECT id, user_id, current_balance, total_earned, total_spent
        FROM balances
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.CurrentBalance, &balance.TotalEarned, &balance.TotalSpent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	query := `
        INSERT INTO balances (user_id, current_balance, total_earned, total_spent)
        VALUES ($1, 0, 0, 0)
        RETURNING id, user_id, current_balance, total_earned, total_spent
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.Balance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.CurrentBalance, &balance.TotalEarned, &balance.TotalSpent)
	if err != nil {
		zap.L().Error("failed to create user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// Credit adjusts the balance by delta in a single statement, so
// concurrent settlements never race on a read-modify-write. Negative
// deltas (reversals) may drive the balance below zero; the shortfall is
// carried until offset by future credits.
func (r *Repository) Credit(ctx context.Context, userID int, delta float64) (*domain.Balance, error) {
	var updatedBalance domain.Balance
	query := `
		UPDATE balances
		SET current_balance = current_balance + $1,
		    total_earned = total_earned + GREATEST($1, 0)
		WHERE user_id = $2
		RETURNING id, user_id, current_balance, total_earned, total_spent
	`
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		row := r.db.QueryRow(ctx, query, delta, userID)
		err := row.Scan(&updatedBalance.ID, &updatedBalance.UserID, &updatedBalance.CurrentBalance, &updatedBalance.TotalEarned, &updatedBalance.TotalSpent)
		if err != nil {
			zap.L().Error("failed to credit user balance", zap.Error(err))
			return err
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &updatedBalance, nil
}

// AddSpent accumulates the client's lifetime purchase volume.
func (r *Repository) AddSpent(ctx context.Context, userID int, amount float64) error {
	query := `
		UPDATE balances
		SET total_spent = total_spent + $1
		WHERE user_id = $2
	`
	_, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		zap.L().Error("failed to update total spent", zap.Error(err))
		return err
	}
	return nil
}
