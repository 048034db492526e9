package reportservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/developeragencia/valecash/internal/cache"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *MockSaleRepo, *cache.MockCache) {
	ctrl := gomock.NewController(t)
	saleRepo := NewMockSaleRepo(ctrl)
	c := cache.NewMockCache(ctrl)
	service := New(saleRepo, c)
	defer ctrl.Finish()
	return service, saleRepo, c
}

func TestMerchantReport(t *testing.T) {
	service, saleRepo, c := NewMock(t)

	report := &salerepo.MerchantReport{SalesCount: 3, GrossTotal: 300, NetTotal: 280, CashbackTotal: 8.40, MerchantReceives: 257.60}
	cached, _ := json.Marshal(report)

	tests := []struct {
		name        string
		prepareMock func()
	}{
		{
			name: "Cache miss builds the report and caches it",
			prepareMock: func() {
				c.EXPECT().Get(gomock.Any(), "report:merchant:10").Return("", cache.ErrMiss)
				saleRepo.EXPECT().MerchantReport(gomock.Any(), 10).Return(report, nil)
				c.EXPECT().Set(gomock.Any(), "report:merchant:10", string(cached), gomock.Any()).Return(nil)
			},
		},
		{
			name: "Cache hit skips the database",
			prepareMock: func() {
				c.EXPECT().Get(gomock.Any(), "report:merchant:10").Return(string(cached), nil)
			},
		},
		{
			name: "Corrupt cache entry falls back to the database",
			prepareMock: func() {
				c.EXPECT().Get(gomock.Any(), "report:merchant:10").Return("{not json", nil)
				saleRepo.EXPECT().MerchantReport(gomock.Any(), 10).Return(report, nil)
				c.EXPECT().Set(gomock.Any(), "report:merchant:10", string(cached), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			got, err := service.MerchantReport(context.Background(), 10)
			assert.NoError(t, err)
			assert.Equal(t, report, got)
		})
	}
}

func TestPlatformReport(t *testing.T) {
	service, saleRepo, c := NewMock(t)

	report := &salerepo.PlatformReport{SalesCount: 5, GrossTotal: 500, NetTotal: 460, FeeTotal: 23, CashbackTotal: 13.80, CommissionPaid: 4.60}
	cached, _ := json.Marshal(report)

	c.EXPECT().Get(gomock.Any(), "report:platform").Return("", cache.ErrMiss)
	saleRepo.EXPECT().PlatformReport(gomock.Any()).Return(report, nil)
	c.EXPECT().Set(gomock.Any(), "report:platform", string(cached), gomock.Any()).Return(nil)

	got, err := service.PlatformReport(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, report, got)

	c.EXPECT().Get(gomock.Any(), "report:platform").Return("", cache.ErrMiss)
	saleRepo.EXPECT().PlatformReport(gomock.Any()).Return(nil, errors.New("some error"))
	_, err = service.PlatformReport(context.Background())
	assert.Error(t, err)
}

func TestInvalidateReports(t *testing.T) {
	service, _, c := NewMock(t)

	c.EXPECT().Del(gomock.Any(), "report:merchant:10", "report:platform").Return(nil)
	service.InvalidateReports(context.Background(), 10)

	// Cache failures must not propagate.
	c.EXPECT().Del(gomock.Any(), "report:merchant:10", "report:platform").Return(errors.New("redis down"))
	service.InvalidateReports(context.Background(), 10)
}

func TestExportPlatformReport(t *testing.T) {
	service, saleRepo, c := NewMock(t)

	report := &salerepo.PlatformReport{SalesCount: 2, GrossTotal: 200, NetTotal: 180, FeeTotal: 9, CashbackTotal: 5.40, CommissionPaid: 1.80}

	c.EXPECT().Get(gomock.Any(), "report:platform").Return("", cache.ErrMiss)
	saleRepo.EXPECT().PlatformReport(gomock.Any()).Return(report, nil)
	c.EXPECT().Set(gomock.Any(), "report:platform", gomock.Any(), gomock.Any()).Return(nil)

	data, err := service.ExportPlatformReport(context.Background())
	assert.NoError(t, err)
	// XLSX is a zip archive.
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}
