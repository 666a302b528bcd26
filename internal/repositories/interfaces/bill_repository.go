package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error)
	GetBySession(ctx context.Context, sessionID primitive.ObjectID) (*models.Bill, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	List(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error)

	// Report aggregations over paid bills
	Summary(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error)
	RevenueByTable(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error)
	TopProducts(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error)
}
