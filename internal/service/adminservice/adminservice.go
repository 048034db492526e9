package adminservice

import (
	"context"

	"github.com/developeragencia/valecash/internal/domain"
	"go.uber.org/zap"
)

const ledgerPageLimit = 500

type UserRepo interface {
	FindAll(ctx context.Context) ([]domain.User, error)
}

type LedgerRepo interface {
	FindAll(ctx context.Context, limit uint32) ([]domain.LedgerEntry, error)
}

type Service struct {
	userRepo   UserRepo
	ledgerRepo LedgerRepo
}

func New(userRepo UserRepo, ledgerRepo LedgerRepo) *Service {
	return &Service{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *Service) ListLedger(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindAll(ctx, ledgerPageLimit)
	if err != nil {
		zap.L().Error("failed to list ledger entries", zap.Error(err))
		return nil, err
	}
	return entries, nil
}
