package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
	"bidapos/pkg/logger"
)

type fakeBillRepo struct {
	createFn         func(ctx context.Context, bill *models.Bill) error
	getByIDFn        func(ctx context.Context, id primitive.ObjectID) (*models.Bill, error)
	getBySessionFn   func(ctx context.Context, sessionID primitive.ObjectID) (*models.Bill, error)
	updateFn         func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	listFn           func(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error)
	summaryFn        func(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error)
	revenueByDayFn   func(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error)
	revenueByTableFn func(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error)
	topProductsFn    func(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error)
}

func (f *fakeBillRepo) Create(ctx context.Context, bill *models.Bill) error {
	return f.createFn(ctx, bill)
}

func (f *fakeBillRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeBillRepo) GetBySession(ctx context.Context, sessionID primitive.ObjectID) (*models.Bill, error) {
	return f.getBySessionFn(ctx, sessionID)
}

func (f *fakeBillRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return f.updateFn(ctx, id, updates)
}

func (f *fakeBillRepo) List(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error) {
	return f.listFn(ctx, params, from, to, tableID)
}

func (f *fakeBillRepo) Summary(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error) {
	return f.summaryFn(ctx, from, to)
}

func (f *fakeBillRepo) RevenueByDay(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error) {
	return f.revenueByDayFn(ctx, from, to)
}

func (f *fakeBillRepo) RevenueByTable(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error) {
	return f.revenueByTableFn(ctx, from, to)
}

func (f *fakeBillRepo) TopProducts(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
	return f.topProductsFn(ctx, from, to, by, limit)
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel})
	require.NoError(t, err)
	return log
}

func TestNormalizeRangeDefaults(t *testing.T) {
	from, to, err := normalizeRange(time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, utils.StartOfDay(to), from)
	assert.WithinDuration(t, time.Now(), to, time.Second)
}

func TestNormalizeRangeDefaultsFromToStartOfDay(t *testing.T) {
	to := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)

	from, gotTo, err := normalizeRange(time.Time{}, to)
	require.NoError(t, err)

	assert.Equal(t, to, gotTo)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), from)
}

func TestNormalizeRangeEndBeforeStart(t *testing.T) {
	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)

	_, _, err := normalizeRange(from, to)
	assert.Error(t, err)
}

func TestNormalizeRangeTooLarge(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(utils.MaxBillQueryRange + time.Hour)

	_, _, err := normalizeRange(from, to)
	assert.ErrorIs(t, err, ErrReportRangeTooLarge)
}

func TestSummaryWithoutCache(t *testing.T) {
	want := &models.RevenueSummary{BillCount: 4, Revenue: 1250, AverageBill: 312.5}
	repo := &fakeBillRepo{
		summaryFn: func(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error) {
			return want, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	got, err := svc.Summary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSummaryRepoError(t *testing.T) {
	repo := &fakeBillRepo{
		summaryFn: func(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error) {
			return nil, errors.New("aggregation timed out")
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	_, err := svc.Summary(context.Background(), time.Time{}, time.Time{})
	assert.Error(t, err)
}

func TestRevenueByDayReturnsEmptySlice(t *testing.T) {
	repo := &fakeBillRepo{
		revenueByDayFn: func(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error) {
			return nil, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	days, err := svc.RevenueByDay(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.NotNil(t, days)
	assert.Empty(t, days)
}

func TestRevenueByTableReturnsEmptySlice(t *testing.T) {
	repo := &fakeBillRepo{
		revenueByTableFn: func(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error) {
			return nil, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	tables, err := svc.RevenueByTable(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.NotNil(t, tables)
	assert.Empty(t, tables)
}

func TestTopProductsDefaults(t *testing.T) {
	want := []models.ProductSales{
		{Name: "Iced tea", Qty: 42, Amount: 630},
		{Name: "Fries", Qty: 18, Amount: 540},
	}
	repo := &fakeBillRepo{
		topProductsFn: func(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
			assert.Equal(t, "qty", by)
			assert.Equal(t, 10, limit)
			return want, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	got, err := svc.TopProducts(context.Background(), time.Time{}, time.Time{}, "", 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTopProductsClampsLimit(t *testing.T) {
	repo := &fakeBillRepo{
		topProductsFn: func(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
			assert.Equal(t, "amount", by)
			assert.Equal(t, 50, limit)
			return nil, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	got, err := svc.TopProducts(context.Background(), time.Time{}, time.Time{}, "amount", 500)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTopProductsRejectsUnknownMetric(t *testing.T) {
	repo := &fakeBillRepo{
		topProductsFn: func(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
			t.Fatal("repository should not be queried for an unknown metric")
			return nil, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	_, err := svc.TopProducts(context.Background(), time.Time{}, time.Time{}, "margin", 10)
	assert.Error(t, err)
}

func TestRevenueByDayRejectsOversizedRange(t *testing.T) {
	repo := &fakeBillRepo{
		revenueByDayFn: func(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error) {
			t.Fatal("repository should not be queried for an invalid range")
			return nil, nil
		},
	}
	svc := NewReportService(repo, nil, testLogger(t))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.RevenueByDay(context.Background(), from, from.Add(utils.MaxBillQueryRange*2))
	assert.ErrorIs(t, err, ErrReportRangeTooLarge)
}
