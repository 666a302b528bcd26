package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
	"bidapos/pkg/logger"
)

var ErrReportRangeTooLarge = errors.New("report range exceeds the maximum query window")

// ReportService aggregates paid bills into revenue reports. Summaries are
// cached briefly since terminals poll the dashboard.
type ReportService interface {
	Summary(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error)
	RevenueByTable(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error)
	TopProducts(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error)
}

type reportService struct {
	billRepo interfaces.BillRepository
	cache    CacheService
	logger   *logger.Logger
}

func NewReportService(billRepo interfaces.BillRepository, cache CacheService, logger *logger.Logger) ReportService {
	return &reportService{
		billRepo: billRepo,
		cache:    cache,
		logger:   logger,
	}
}

func (s *reportService) Summary(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s%d:%d", utils.CacheReportSummaryPrefix, from.Unix(), to.Unix())
	if s.cache != nil {
		var cached models.RevenueSummary
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	summary, err := s.billRepo.Summary(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue summary: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, time.Minute); err != nil {
			s.logger.WithError(err).Warn("Failed to cache revenue summary")
		}
	}

	return summary, nil
}

func (s *reportService) RevenueByDay(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	days, err := s.billRepo.RevenueByDay(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build daily revenue: %w", err)
	}

	if days == nil {
		days = []models.DayRevenue{}
	}
	return days, nil
}

func (s *reportService) RevenueByTable(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	tables, err := s.billRepo.RevenueByTable(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to build table revenue: %w", err)
	}

	if tables == nil {
		tables = []models.TableRevenue{}
	}
	return tables, nil
}

// TopProducts ranks product lines on paid bills by quantity sold or by
// amount. The limit defaults to 10 and is capped at 50.
func (s *reportService) TopProducts(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, err
	}

	if by == "" {
		by = "qty"
	}
	if by != "qty" && by != "amount" {
		return nil, errors.New("metric must be qty or amount")
	}

	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	products, err := s.billRepo.TopProducts(ctx, from, to, by, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to build top products: %w", err)
	}

	if products == nil {
		products = []models.ProductSales{}
	}
	return products, nil
}

// normalizeRange defaults an empty range to the current day and caps the
// window at MaxBillQueryRange.
func normalizeRange(from, to time.Time) (time.Time, time.Time, error) {
	now := time.Now()
	if to.IsZero() {
		to = now
	}
	if from.IsZero() {
		from = utils.StartOfDay(to)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("range end is before range start")
	}
	if to.Sub(from) > utils.MaxBillQueryRange {
		return time.Time{}, time.Time{}, ErrReportRangeTooLarge
	}

	return from, to, nil
}
