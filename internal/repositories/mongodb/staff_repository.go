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

type staffRepository struct {
	collection *mongo.Collection
}

func NewStaffRepository(db *mongo.Database) interfaces.StaffRepository {
	return &staffRepository{
		collection: db.Collection("staff"),
	}
}

func (r *staffRepository) Create(ctx context.Context, staff *models.Staff) error {
	staff.ID = primitive.NewObjectID()
	staff.CreatedAt = time.Now()
	staff.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, staff)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(utils.ErrStaffExists)
		}
		return fmt.Errorf("failed to create staff: %w", err)
	}

	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Staff, error) {
	var staff models.Staff
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrStaffNotFound)
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var staff models.Staff
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&staff)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrStaffNotFound)
		}
		return nil, fmt.Errorf("failed to get staff by username: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrStaffNotFound)
	}

	return nil
}

func (r *staffRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}
	return nil
}

func (r *staffRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Staff, int64, error) {
	filter := params.GetSearchFilter([]string{"name", "username"})

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count staff: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list staff: %w", err)
	}
	defer cursor.Close(ctx)

	var staffMembers []*models.Staff
	if err := cursor.All(ctx, &staffMembers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode staff: %w", err)
	}

	return staffMembers, total, nil
}

func (r *staffRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return r.Update(ctx, id, map[string]interface{}{"last_login_at": now})
}
