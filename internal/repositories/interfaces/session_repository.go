package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// GetOpenByTable returns the running session on a table, or nil when the
	// table is free.
	GetOpenByTable(ctx context.Context, tableID primitive.ObjectID) (*models.Session, error)
	List(ctx context.Context, params *utils.PaginationParams, status models.SessionStatus) ([]*models.Session, int64, error)

	// Item operations on an open session
	AddItem(ctx context.Context, sessionID primitive.ObjectID, item *models.SessionItem) error
	UpdateItem(ctx context.Context, sessionID, itemID primitive.ObjectID, updates map[string]interface{}) error
	RemoveItem(ctx context.Context, sessionID, itemID primitive.ObjectID) error
}
