package settler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/developeragencia/valecash/internal/config"
	"github.com/developeragencia/valecash/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/developeragencia/valecash/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

// Gateway payment statuses.
const (
	statusConfirmed  = "CONFIRMED"
	statusDeclined   = "DECLINED"
	statusProcessing = "PROCESSING"
)

var processingSales sync.Map

type Response struct {
	SaleID string `json:"sale_id"`
	Status string `json:"status"`
}

type SaleService interface {
	FindForProcessing(ctx context.Context, limit uint32) ([]domain.Sale, error)
	CompleteSale(ctx context.Context, saleID string) (*domain.Sale, error)
	CancelSale(ctx context.Context, saleID string) (*domain.Sale, error)
}

// Service polls the payment gateway for pending gateway sales and
// drives them to completed or cancelled.
type Service struct {
	url            string
	saleService    SaleService
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, saleService SaleService, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.GatewayAddress,
		saleService:    saleService,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settler service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settler")
			return
		case <-ticker.C:
			s.processSales(ctx)
		}
	}
}

func (s *Service) processSales(ctx context.Context) {
	sales, err := s.saleService.FindForProcessing(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch pending sales", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, sale := range sales {
		sale := sale

		if _, loaded := processingSales.LoadOrStore(sale.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingSales.Delete(sale.ID)
				return s.handleSale(ctx, sale)
			})
			if err != nil {
				processingSales.Delete(sale.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error processing pending sales", zap.Error(err))
	}
}

func (s *Service) handleSale(ctx context.Context, sale domain.Sale) error {
	url := s.url + "/api/payments/" + sale.ID
	var err error
	var statusCode int
	var respHeaders http.Header
	var response Response

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respHeaders, err = s.client.GetJSON(url, nil, &response)
			if err != nil {
				if attempt < maxRetries {
					retryAfter := retryInterval * time.Duration(attempt)
					time.Sleep(retryAfter)
					continue
				}
				return fmt.Errorf("failed to check payment for sale %s after %d retries: %w", sale.ID, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				return s.handleRateLimit(sale, respHeaders, attempt)
			case http.StatusNoContent:
				zap.L().Warn("Payment not found in gateway, retrying", zap.String("saleID", sale.ID), zap.Int("attempt", attempt))
				if attempt < maxRetries {
					retryAfter := retryInterval * time.Duration(attempt)
					time.Sleep(retryAfter)
					continue
				}
				return fmt.Errorf("payment for sale %s not found after %d retries", sale.ID, maxRetries)

			case http.StatusOK:
				return s.processPayment(ctx, sale, response)

			default:
				zap.L().Error("Unexpected status code", zap.Int("status", statusCode), zap.String("saleID", sale.ID))
				return errors.New("unexpected status code")
			}
		}
	}
	return nil
}

func (s *Service) processPayment(ctx context.Context, sale domain.Sale, response Response) error {
	if response.SaleID != sale.ID {
		return fmt.Errorf("sale id mismatch: expected %s, got %s", sale.ID, response.SaleID)
	}

	switch response.Status {
	case statusConfirmed:
		if _, err := s.saleService.CompleteSale(ctx, sale.ID); err != nil {
			return fmt.Errorf("failed to complete sale %s: %w", sale.ID, err)
		}
		zap.L().Info("Gateway sale settled", zap.String("saleID", sale.ID))
	case statusDeclined:
		if _, err := s.saleService.CancelSale(ctx, sale.ID); err != nil {
			return fmt.Errorf("failed to cancel declined sale %s: %w", sale.ID, err)
		}
		zap.L().Info("Gateway sale declined and cancelled", zap.String("saleID", sale.ID))
	case statusProcessing:
		zap.L().Info("Payment still processing", zap.String("saleID", sale.ID))
	default:
		zap.L().Warn("Unrecognized payment status received", zap.String("saleID", sale.ID), zap.String("status", response.Status))
	}

	return nil
}

func (s *Service) handleRateLimit(sale domain.Sale, respHeaders http.Header, attempt int) error {
	retryAfterHeader := respHeaders.Get("Retry-After")
	retryAfter := retryInterval * time.Duration(attempt)

	if retryAfterHeader != "" {
		if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn(
		"Rate limit detected, retrying",
		zap.String("saleID", sale.ID),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
	return nil
}
