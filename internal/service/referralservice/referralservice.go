package referralservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/developeragencia/valecash/internal/domain"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindReferredBy(ctx context.Context, referrerID int) ([]domain.User, error)
}

type LedgerRepo interface {
	SumCommission(ctx context.Context, userID int) (float64, error)
}

type Service struct {
	userRepo   UserRepo
	ledgerRepo LedgerRepo
	baseURL    string
}

func New(userRepo UserRepo, ledgerRepo LedgerRepo, baseURL string) *Service {
	return &Service{
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		baseURL:    baseURL,
	}
}

var ErrUserNotFound = errors.New("user not found")

type Stats struct {
	ReferralCode  string
	ReferralLink  string
	ReferredCount int
	TotalEarned   float64
}

func (s *Service) GetStats(ctx context.Context, userID int) (*Stats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get user for referral stats", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	referred, err := s.userRepo.FindReferredBy(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list referred users", zap.Error(err))
		return nil, err
	}

	total, err := s.ledgerRepo.SumCommission(ctx, userID)
	if err != nil {
		zap.L().Error("failed to sum referral commission", zap.Error(err))
		return nil, err
	}

	return &Stats{
		ReferralCode:  user.ReferralCode,
		ReferralLink:  s.Link(user.ReferralCode),
		ReferredCount: len(referred),
		TotalEarned:   total,
	}, nil
}

func (s *Service) Link(code string) string {
	return fmt.Sprintf("%s/signup?ref=%s", s.baseURL, code)
}

// QRCode renders the referral link as a 256px PNG.
func (s *Service) QRCode(ctx context.Context, userID int) ([]byte, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	png, err := qrcode.Encode(s.Link(user.ReferralCode), qrcode.Medium, 256)
	if err != nil {
		zap.L().Error("failed to encode referral qr code", zap.Error(err))
		return nil, err
	}
	return png, nil
}
