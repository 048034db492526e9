package balanceservice

import (
	"context"

	"github.com/developeragencia/valecash/internal/domain"
	"go.uber.org/zap"
)

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	CreateUserBalance(ctx context.Context, userID int) (*domain.Balance, error)
	Credit(ctx context.Context, userID int, delta float64) (*domain.Balance, error)
	AddSpent(ctx context.Context, userID int, amount float64) error
}

type LedgerRepo interface {
	FindByUserID(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

type Service struct {
	balanceRepo BalanceRepo
	ledgerRepo  LedgerRepo
}

func New(balanceRepo BalanceRepo, ledgerRepo LedgerRepo) *Service {
	return &Service{
		balanceRepo: balanceRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *Service) CreateBalance(ctx context.Context, userID int) (*domain.Balance, error) {
	balance, err := s.balanceRepo.CreateUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to create balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}

func (s *Service) GetLedger(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
