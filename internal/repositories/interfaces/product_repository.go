package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams, category string, activeOnly bool) ([]*models.Product, int64, error)
}
