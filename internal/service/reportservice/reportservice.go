package reportservice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/developeragencia/valecash/internal/cache"
	salerepo "github.com/developeragencia/valecash/internal/repo/sale-repo"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	merchantReportKeyPrefix = "report:merchant:"
	platformReportKey       = "report:platform"
	reportTTL               = 5 * time.Minute
)

type SaleRepo interface {
	MerchantReport(ctx context.Context, merchantID int) (*salerepo.MerchantReport, error)
	PlatformReport(ctx context.Context) (*salerepo.PlatformReport, error)
}

type Service struct {
	saleRepo SaleRepo
	cache    cache.Cache
}

func New(saleRepo SaleRepo, c cache.Cache) *Service {
	return &Service{
		saleRepo: saleRepo,
		cache:    c,
	}
}

func (s *Service) MerchantReport(ctx context.Context, merchantID int) (*salerepo.MerchantReport, error) {
	key := fmt.Sprintf("%s%d", merchantReportKeyPrefix, merchantID)

	var cached salerepo.MerchantReport
	if ok := s.fromCache(ctx, key, &cached); ok {
		return &cached, nil
	}

	report, err := s.saleRepo.MerchantReport(ctx, merchantID)
	if err != nil {
		zap.L().Error("failed to build merchant report", zap.Error(err))
		return nil, err
	}
	s.toCache(ctx, key, report)
	return report, nil
}

func (s *Service) PlatformReport(ctx context.Context) (*salerepo.PlatformReport, error) {
	var cached salerepo.PlatformReport
	if ok := s.fromCache(ctx, platformReportKey, &cached); ok {
		return &cached, nil
	}

	report, err := s.saleRepo.PlatformReport(ctx)
	if err != nil {
		zap.L().Error("failed to build platform report", zap.Error(err))
		return nil, err
	}
	s.toCache(ctx, platformReportKey, report)
	return report, nil
}

// InvalidateReports drops cached reports touched by a sale mutation.
// Cache errors are logged, not propagated: the next read rebuilds from
// the database anyway.
func (s *Service) InvalidateReports(ctx context.Context, merchantID int) {
	key := fmt.Sprintf("%s%d", merchantReportKeyPrefix, merchantID)
	if err := s.cache.Del(ctx, key, platformReportKey); err != nil {
		zap.L().Warn("failed to invalidate report cache", zap.Error(err))
	}
}

// ExportPlatformReport renders the platform report as an XLSX workbook.
func (s *Service) ExportPlatformReport(ctx context.Context) ([]byte, error) {
	report, err := s.PlatformReport(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Platform Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Completed sales", report.SalesCount},
		{"Gross total", report.GrossTotal},
		{"Net total", report.NetTotal},
		{"Platform fee revenue", report.FeeTotal},
		{"Cashback credited", report.CashbackTotal},
		{"Referral commission paid", report.CommissionPaid},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		zap.L().Error("failed to write report workbook", zap.Error(err))
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Service) fromCache(ctx context.Context, key string, dst any) bool {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			zap.L().Warn("report cache read failed", zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		zap.L().Warn("corrupt cached report dropped", zap.Error(err))
		return false
	}
	return true
}

func (s *Service) toCache(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), reportTTL); err != nil {
		zap.L().Warn("report cache write failed", zap.Error(err))
	}
}
