package saleservice

import (
	"context"
	"errors"
	"time"

	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/internal/pg"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	"github.com/developeragencia/valecash/internal/settlement"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SaleRepo interface {
	FindByID(ctx context.Context, id string) (*domain.Sale, error)
	Save(ctx context.Context, sale *domain.Sale) error
	UpdateStatus(ctx context.Context, id string, from, to string) (bool, error)
	FindByMerchantID(ctx context.Context, merchantID int) ([]domain.Sale, error)
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Sale, error)
	MerchantReport(ctx context.Context, merchantID int) (*salerepo.MerchantReport, error)
	PlatformReport(ctx context.Context) (*salerepo.PlatformReport, error)
}

type BalanceRepo interface {
	Credit(ctx context.Context, userID int, delta float64) (*domain.Balance, error)
	AddSpent(ctx context.Context, userID int, amount float64) error
}

type UserRepo interface {
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type MerchantRepo interface {
	FindByID(ctx context.Context, id int) (*domain.Merchant, error)
	FindByUserID(ctx context.Context, userID int) (*domain.Merchant, error)
}

type LedgerRepo interface {
	Create(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// CacheInvalidator is notified after every mutating sale operation, so
// cached reports never serve stale totals.
type CacheInvalidator interface {
	InvalidateReports(ctx context.Context, merchantID int)
}

type Service struct {
	saleRepo     SaleRepo
	balanceRepo  BalanceRepo
	userRepo     UserRepo
	merchantRepo MerchantRepo
	ledgerRepo   LedgerRepo
	txManager    pg.TXManager
	invalidator  CacheInvalidator
}

func New(saleRepo SaleRepo, balanceRepo BalanceRepo, userRepo UserRepo, merchantRepo MerchantRepo, ledgerRepo LedgerRepo, txManager pg.TXManager) *Service {
	return &Service{
		saleRepo:     saleRepo,
		balanceRepo:  balanceRepo,
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
		ledgerRepo:   ledgerRepo,
		txManager:    txManager,
	}
}

// SetInvalidator breaks the service/report construction cycle; the
// report service is built after the sale service.
func (s *Service) SetInvalidator(invalidator CacheInvalidator) {
	s.invalidator = invalidator
}

var (
	ErrSaleNotFound         = errors.New("sale not found")
	ErrClientNotFound       = errors.New("client not found")
	ErrMerchantNotFound     = errors.New("merchant not found")
	ErrMerchantInactive     = errors.New("merchant is inactive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidTransition    = errors.New("invalid sale status transition")
)

type RegisterSaleRequest struct {
	SaleID        string
	MerchantID    int
	ClientID      int
	GrossAmount   float64
	Discount      float64
	PaymentMethod string
}

// RegisterSale computes the settlement once and persists the breakdown
// with the sale. Cash and card sales settle immediately; gateway sales
// stay pending until the settler confirms the payment. A retried call
// with the same sale id returns the stored sale without re-applying any
// effect.
func (s *Service) RegisterSale(ctx context.Context, req RegisterSaleRequest) (*domain.Sale, error) {
	switch req.PaymentMethod {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodGateway:
	default:
		return nil, ErrInvalidPaymentMethod
	}

	if req.SaleID != "" {
		existing, err := s.saleRepo.FindByID(ctx, req.SaleID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			zap.L().Info("sale already registered", zap.String("sale_id", req.SaleID))
			return existing, nil
		}
	} else {
		req.SaleID = uuid.NewString()
	}

	merchant, err := s.merchantRepo.FindByID(ctx, req.MerchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}
	if !merchant.Active {
		return nil, ErrMerchantInactive
	}

	client, err := s.userRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.Role != domain.RoleClient {
		return nil, ErrClientNotFound
	}

	result, err := settlement.Compute(req.GrossAmount, req.Discount, merchant.BonusRate, client.ReferredBy != nil)
	if err != nil {
		zap.L().Info("sale rejected by settlement validation", zap.Error(err))
		return nil, err
	}

	sale := &domain.Sale{
		ID:            req.SaleID,
		ClientID:      client.ID,
		MerchantID:    merchant.ID,
		GrossAmount:   req.GrossAmount,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.PendingSaleStatus,
		CreatedAt:     time.Now(),
		Breakdown: domain.SettlementBreakdown{
			NetAmount:          result.NetAmount,
			PlatformFee:        result.PlatformFee,
			CashbackAmount:     result.CashbackAmount,
			MerchantReceives:   result.MerchantReceives,
			ReferralCommission: result.ReferralCommission,
			ReferrerID:         client.ReferredBy,
		},
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if req.PaymentMethod == domain.PaymentMethodGateway {
			return s.saleRepo.Save(ctx, sale)
		}
		sale.Status = domain.CompletedSaleStatus
		if err := s.saleRepo.Save(ctx, sale); err != nil {
			return err
		}
		return s.applyEffects(ctx, sale)
	})
	if err != nil {
		zap.L().Error("can't register sale: ", zap.Error(err))
		return nil, err
	}

	s.invalidateReports(ctx, sale.MerchantID)
	zap.L().Info("sale registered",
		zap.String("sale_id", sale.ID),
		zap.String("status", sale.Status),
		zap.Float64("net", sale.Breakdown.NetAmount),
	)
	return sale, nil
}

// CompleteSale moves a pending sale to completed and applies its stored
// breakdown. The guarded status update makes the transition, and with it
// every balance effect, happen exactly once even under concurrent
// settler workers.
func (s *Service) CompleteSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	var sale *domain.Sale
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}
		if sale.Status != domain.PendingSaleStatus {
			return ErrInvalidTransition
		}

		moved, err := s.saleRepo.UpdateStatus(ctx, saleID, domain.PendingSaleStatus, domain.CompletedSaleStatus)
		if err != nil {
			return err
		}
		if !moved {
			return ErrInvalidTransition
		}
		sale.Status = domain.CompletedSaleStatus
		return s.applyEffects(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, sale.MerchantID)
	zap.L().Info("sale completed", zap.String("sale_id", saleID))
	return sale, nil
}

// CancelSale cancels a sale. A completed sale has exactly the persisted
// breakdown reversed; the amounts are never recomputed, so rate changes
// made after the sale cannot alter the reversal. A pending sale is
// cancelled with no balance effects. Cancelled is terminal.
func (s *Service) CancelSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	var sale *domain.Sale
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		sale, err = s.saleRepo.FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return ErrSaleNotFound
		}

		switch sale.Status {
		case domain.PendingSaleStatus:
			moved, err := s.saleRepo.UpdateStatus(ctx, saleID, domain.PendingSaleStatus, domain.CancelledSaleStatus)
			if err != nil {
				return err
			}
			if !moved {
				return ErrInvalidTransition
			}
			sale.Status = domain.CancelledSaleStatus
			return nil
		case domain.CompletedSaleStatus:
			moved, err := s.saleRepo.UpdateStatus(ctx, saleID, domain.CompletedSaleStatus, domain.CancelledSaleStatus)
			if err != nil {
				return err
			}
			if !moved {
				return ErrInvalidTransition
			}
			sale.Status = domain.CancelledSaleStatus
			return s.reverseEffects(ctx, sale)
		default:
			return ErrInvalidTransition
		}
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReports(ctx, sale.MerchantID)
	zap.L().Info("sale cancelled", zap.String("sale_id", saleID))
	return sale, nil
}

// applyEffects credits every party from the persisted breakdown and
// writes the matching ledger entries. Runs inside the caller's
// transaction.
func (s *Service) applyEffects(ctx context.Context, sale *domain.Sale) error {
	b := sale.Breakdown

	if _, err := s.balanceRepo.Credit(ctx, sale.ClientID, b.CashbackAmount); err != nil {
		return err
	}
	if err := s.balanceRepo.AddSpent(ctx, sale.ClientID, b.NetAmount); err != nil {
		return err
	}
	if err := s.writeEntry(ctx, sale, &sale.ClientID, domain.CashbackEntry, b.CashbackAmount, false); err != nil {
		return err
	}

	if b.ReferrerID != nil && b.ReferralCommission > 0 {
		if _, err := s.balanceRepo.Credit(ctx, *b.ReferrerID, b.ReferralCommission); err != nil {
			return err
		}
		if err := s.writeEntry(ctx, sale, b.ReferrerID, domain.ReferralCommissionEntry, b.ReferralCommission, false); err != nil {
			return err
		}
	}

	merchant, err := s.merchantRepo.FindByID(ctx, sale.MerchantID)
	if err != nil {
		return err
	}
	if merchant == nil {
		return ErrMerchantNotFound
	}
	if _, err := s.balanceRepo.Credit(ctx, merchant.UserID, b.MerchantReceives); err != nil {
		return err
	}
	if err := s.writeEntry(ctx, sale, &merchant.UserID, domain.MerchantPayoutEntry, b.MerchantReceives, false); err != nil {
		return err
	}

	// Platform fee revenue is not tied to a user balance.
	return s.writeEntry(ctx, sale, nil, domain.PlatformFeeEntry, b.PlatformFee, false)
}

// reverseEffects mirrors applyEffects with negated amounts. The client
// balance may go negative here; the shortfall is carried until future
// cashback offsets it.
func (s *Service) reverseEffects(ctx context.Context, sale *domain.Sale) error {
	b := sale.Breakdown

	if _, err := s.balanceRepo.Credit(ctx, sale.ClientID, -b.CashbackAmount); err != nil {
		return err
	}
	if err := s.writeEntry(ctx, sale, &sale.ClientID, domain.CashbackEntry, -b.CashbackAmount, true); err != nil {
		return err
	}

	if b.ReferrerID != nil && b.ReferralCommission > 0 {
		if _, err := s.balanceRepo.Credit(ctx, *b.ReferrerID, -b.ReferralCommission); err != nil {
			return err
		}
		if err := s.writeEntry(ctx, sale, b.ReferrerID, domain.ReferralCommissionEntry, -b.ReferralCommission, true); err != nil {
			return err
		}
	}

	merchant, err := s.merchantRepo.FindByID(ctx, sale.MerchantID)
	if err != nil {
		return err
	}
	if merchant == nil {
		return ErrMerchantNotFound
	}
	if _, err := s.balanceRepo.Credit(ctx, merchant.UserID, -b.MerchantReceives); err != nil {
		return err
	}
	if err := s.writeEntry(ctx, sale, &merchant.UserID, domain.MerchantPayoutEntry, -b.MerchantReceives, true); err != nil {
		return err
	}

	return s.writeEntry(ctx, sale, nil, domain.PlatformFeeEntry, -b.PlatformFee, true)
}

func (s *Service) writeEntry(ctx context.Context, sale *domain.Sale, userID *int, entryType string, amount float64, reversal bool) error {
	_, err := s.ledgerRepo.Create(ctx, &domain.LedgerEntry{
		SaleID:    sale.ID,
		UserID:    userID,
		EntryType: entryType,
		Amount:    amount,
		Reversal:  reversal,
		CreatedAt: time.Now(),
	})
	return err
}

func (s *Service) invalidateReports(ctx context.Context, merchantID int) {
	if s.invalidator != nil {
		s.invalidator.InvalidateReports(ctx, merchantID)
	}
}

func (s *Service) GetSales(ctx context.Context, merchantID int) ([]domain.Sale, error) {
	sales, err := s.saleRepo.FindByMerchantID(ctx, merchantID)
	if err != nil {
		zap.L().Error("failed to get sales", zap.Error(err))
		return nil, err
	}
	return sales, nil
}

func (s *Service) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Sale, error) {
	return s.saleRepo.FindForProcessing(ctx, limit)
}

func (s *Service) MerchantByUserID(ctx context.Context, userID int) (*domain.Merchant, error) {
	merchant, err := s.merchantRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}
	return merchant, nil
}
