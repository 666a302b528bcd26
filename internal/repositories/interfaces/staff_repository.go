package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error)
	GetByUsername(ctx context.Context, username string) (*models.Staff, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error)
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error
}
