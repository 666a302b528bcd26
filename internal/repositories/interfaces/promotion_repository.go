package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type PromotionRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, promotion *models.Promotion) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// Code operations
	GetByCode(ctx context.Context, code string) (*models.Promotion, error)
	GetByCodes(ctx context.Context, codes []string) ([]*models.Promotion, error)

	// Listing
	List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error)
	GetActive(ctx context.Context) ([]*models.Promotion, error)
}
