package settler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/developeragencia/valecash/internal/config"
	"github.com/developeragencia/valecash/internal/domain"
	"github.com/developeragencia/valecash/pkg/clients"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockSaleService, *clients.MockHTTPClientI) {
	cfg := &config.Config{GatewayAddress: "http://localhost:8081"}
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleService := NewMockSaleService(ctrl)
	client := clients.NewMockHTTPClientI(ctrl)
	service := New(cfg, saleService, client)
	return service, saleService, client
}

func TestService_Start(t *testing.T) {
	service, _, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go service.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestService_processSales(t *testing.T) {
	tests := []struct {
		name          string
		mockFindSales func(ctx context.Context, limit uint32) ([]domain.Sale, error)
		mockAddTask   func(ctx context.Context, task Task) error
		saleCount     int
	}{
		{
			name: "successfully schedules pending sales",
			mockFindSales: func(ctx context.Context, limit uint32) ([]domain.Sale, error) {
				return []domain.Sale{
					{ID: "sale-a1", Status: domain.PendingSaleStatus},
					{ID: "sale-a2", Status: domain.PendingSaleStatus},
				}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return nil
			},
			saleCount: 2,
		},
		{
			name: "fails when fetching pending sales",
			mockFindSales: func(ctx context.Context, limit uint32) ([]domain.Sale, error) {
				return nil, fmt.Errorf("failed to fetch pending sales")
			},
			saleCount: 0,
		},
		{
			name: "error in workerPool AddTask",
			mockFindSales: func(ctx context.Context, limit uint32) ([]domain.Sale, error) {
				return []domain.Sale{
					{ID: "sale-b1", Status: domain.PendingSaleStatus},
				}, nil
			},
			mockAddTask: func(ctx context.Context, task Task) error {
				return fmt.Errorf("failed to add task to worker pool")
			},
			saleCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			saleService := NewMockSaleService(ctrl)
			workerPool := NewMockWorkerPoolI(ctrl)

			saleService.EXPECT().
				FindForProcessing(gomock.Any(), gomock.Any()).
				DoAndReturn(tt.mockFindSales).
				Times(1)
			for i := 0; i < tt.saleCount; i++ {
				workerPool.EXPECT().
					AddTask(gomock.Any(), gomock.Any()).
					DoAndReturn(tt.mockAddTask).
					AnyTimes()
			}

			service := &Service{
				saleService: saleService,
				workerPool:  workerPool,
				limit:       2,
			}

			service.processSales(context.Background())
		})
	}
}

func TestService_processSales_inflightDedup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	saleService := NewMockSaleService(ctrl)
	workerPool := NewMockWorkerPoolI(ctrl)

	sales := []domain.Sale{{ID: "sale-dedup", Status: domain.PendingSaleStatus}}
	saleService.EXPECT().FindForProcessing(gomock.Any(), gomock.Any()).Return(sales, nil).Times(2)
	// The second pass must skip the sale that is still in flight.
	workerPool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	service := &Service{
		saleService: saleService,
		workerPool:  workerPool,
		limit:       1,
	}

	service.processSales(context.Background())
	service.processSales(context.Background())
	processingSales.Delete("sale-dedup")
}

func TestService_handleSale(t *testing.T) {
	sale := domain.Sale{ID: "sale-h1", Status: domain.PendingSaleStatus}

	tests := []struct {
		name        string
		prepareMock func(saleService *MockSaleService, client *clients.MockHTTPClientI)
		expectErr   bool
	}{
		{
			name: "confirmed payment completes the sale",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ string, _ http.Header, v any) (int, http.Header, error) {
						*(v.(*Response)) = Response{SaleID: "sale-h1", Status: "CONFIRMED"}
						return http.StatusOK, nil, nil
					})
				saleService.EXPECT().CompleteSale(gomock.Any(), "sale-h1").
					Return(&domain.Sale{ID: "sale-h1", Status: domain.CompletedSaleStatus}, nil)
			},
		},
		{
			name: "declined payment cancels the sale",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ string, _ http.Header, v any) (int, http.Header, error) {
						*(v.(*Response)) = Response{SaleID: "sale-h1", Status: "DECLINED"}
						return http.StatusOK, nil, nil
					})
				saleService.EXPECT().CancelSale(gomock.Any(), "sale-h1").
					Return(&domain.Sale{ID: "sale-h1", Status: domain.CancelledSaleStatus}, nil)
			},
		},
		{
			name: "processing payment leaves the sale pending",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ string, _ http.Header, v any) (int, http.Header, error) {
						*(v.(*Response)) = Response{SaleID: "sale-h1", Status: "PROCESSING"}
						return http.StatusOK, nil, nil
					})
			},
		},
		{
			name: "sale id mismatch is an error",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ string, _ http.Header, v any) (int, http.Header, error) {
						*(v.(*Response)) = Response{SaleID: "other", Status: "CONFIRMED"}
						return http.StatusOK, nil, nil
					})
			},
			expectErr: true,
		},
		{
			name: "gateway errors exhaust retries",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					Return(0, nil, errors.New("connection refused")).
					Times(maxRetries)
			},
			expectErr: true,
		},
		{
			name: "unexpected status code is an error",
			prepareMock: func(saleService *MockSaleService, client *clients.MockHTTPClientI) {
				client.EXPECT().GetJSON("http://localhost:8081/api/payments/sale-h1", gomock.Any(), gomock.Any()).
					Return(http.StatusInternalServerError, nil, nil)
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, saleService, client := NewMock(t)
			tt.prepareMock(saleService, client)

			err := service.handleSale(context.Background(), sale)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
