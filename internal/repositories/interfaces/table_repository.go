package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error)
	GetByName(ctx context.Context, name string) (*models.Table, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus) error
	Reorder(ctx context.Context, orders map[primitive.ObjectID]int) error
}

type AreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Area, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context) ([]*models.Area, error)
}
