package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
)

type sessionRepository struct {
	collection *mongo.Collection
}

func NewSessionRepository(db *mongo.Database) interfaces.SessionRepository {
	return &sessionRepository{
		collection: db.Collection("sessions"),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	session.ID = primitive.NewObjectID()
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()

	if session.Items == nil {
		session.Items = []models.SessionItem{}
	}

	_, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrSessionNotFound)
	}

	return nil
}

func (r *sessionRepository) GetOpenByTable(ctx context.Context, tableID primitive.ObjectID) (*models.Session, error) {
	var session models.Session
	err := r.collection.FindOne(ctx, bson.M{
		"table":  tableID,
		"status": models.SessionOpen,
	}).Decode(&session)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context, params *utils.PaginationParams, status models.SessionStatus) ([]*models.Session, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count sessions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*models.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode sessions: %w", err)
	}

	return sessions, total, nil
}

// Item operations. All of them refuse to touch a session that is not open
// via the status filter: checkout and void must win any race with waiters
// still keying in orders.
func (r *sessionRepository) AddItem(ctx context.Context, sessionID primitive.ObjectID, item *models.SessionItem) error {
	item.ID = primitive.NewObjectID()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": sessionID, "status": models.SessionOpen},
		bson.M{
			"$push": bson.M{"items": item},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add session item: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrSessionNotOpen)
	}

	return nil
}

func (r *sessionRepository) UpdateItem(ctx context.Context, sessionID, itemID primitive.ObjectID, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	for field, value := range updates {
		set["items.$."+field] = value
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": sessionID, "status": models.SessionOpen, "items._id": itemID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("failed to update session item: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrSessionNotOpen)
	}

	return nil
}

func (r *sessionRepository) RemoveItem(ctx context.Context, sessionID, itemID primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": sessionID, "status": models.SessionOpen},
		bson.M{
			"$pull": bson.M{"items": bson.M{"_id": itemID}},
			"$set":  bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to remove session item: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrSessionNotOpen)
	}

	return nil
}
