package merchantservice

import (
	"context"
	"errors"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/settlement"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id int) (*domain.Merchant, error)
	FindByUserID(ctx context.Context, userID int) (*domain.Merchant, error)
	Update(ctx context.Context, merchant *domain.Merchant) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var ErrMerchantNotFound = errors.New("merchant not found")

const maxBonusRate = 0.10

func (s *Service) GetSettings(ctx context.Context, userID int) (*domain.Merchant, error) {
	merchant, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get merchant settings", zap.Error(err))
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}
	return merchant, nil
}

// UpdateSettings rejects bonus rates outside [0, 0.10]; clamping would
// silently change what the merchant asked for.
func (s *Service) UpdateSettings(ctx context.Context, userID int, storeName string, bonusRate float64) (*domain.Merchant, error) {
	if bonusRate < 0 || bonusRate > maxBonusRate {
		return nil, &settlement.ValidationError{Err: settlement.ErrInvalidBonusRate, Field: "bonusRate", Value: bonusRate}
	}

	merchant, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}

	merchant.StoreName = storeName
	merchant.BonusRate = bonusRate
	if err := s.repo.Update(ctx, merchant); err != nil {
		zap.L().Error("failed to update merchant settings", zap.Error(err))
		return nil, err
	}

	zap.L().Info("merchant settings updated", zap.Int("merchant_id", merchant.ID), zap.Float64("bonus_rate", bonusRate))
	return merchant, nil
}

func (s *Service) SetActive(ctx context.Context, merchantID int, active bool) (*domain.Merchant, error) {
	merchant, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}

	merchant.Active = active
	if err := s.repo.Update(ctx, merchant); err != nil {
		zap.L().Error("failed to update merchant state", zap.Error(err))
		return nil, err
	}
	return merchant, nil
}
