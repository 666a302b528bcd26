package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
)

type tableRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewTableRepository(db *mongo.Database, cache CacheService) interfaces.TableRepository {
	return &tableRepository{
		collection: db.Collection("tables"),
		cache:      cache,
	}
}

func (r *tableRepository) Create(ctx context.Context, table *models.Table) error {
	table.ID = primitive.NewObjectID()
	table.CreatedAt = time.Now()
	table.UpdatedAt = time.Now()

	if table.Status == "" {
		table.Status = models.TableAvailable
	}

	_, err := r.collection.InsertOne(ctx, table)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("table name already in use")
		}
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

func (r *tableRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Table, error) {
	// Try cache first
	if r.cache != nil {
		var table models.Table
		if err := r.cache.Get(ctx, utils.CacheTablePrefix+id.Hex(), &table); err == nil {
			return &table, nil
		}
	}

	var table models.Table
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&table)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheTablePrefix+id.Hex(), table, utils.PromotionCacheTTL)
	}

	return &table, nil
}

func (r *tableRepository) GetByName(ctx context.Context, name string) (*models.Table, error) {
	var table models.Table
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&table)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrTableNotFound)
		}
		return nil, fmt.Errorf("failed to get table by name: %w", err)
	}
	return &table, nil
}

func (r *tableRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update table: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrTableNotFound)
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *tableRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *tableRepository) List(ctx context.Context, params *utils.PaginationParams, areaID *primitive.ObjectID, status models.TableStatus) ([]*models.Table, int64, error) {
	filter := params.GetSearchFilter([]string{"name"})
	if areaID != nil {
		filter["area"] = *areaID
	}
	if status != "" {
		filter["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tables: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tables: %w", err)
	}
	defer cursor.Close(ctx)

	var tables []*models.Table
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tables: %w", err)
	}

	return tables, total, nil
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TableStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

// Reorder writes the floor positions for a batch of tables in one round
// trip. Unknown ids are ignored rather than failing the whole batch.
func (r *tableRepository) Reorder(ctx context.Context, orders map[primitive.ObjectID]int) error {
	if len(orders) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(orders))
	for id, order := range orders {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"order": order, "updated_at": time.Now()}}))
	}

	if _, err := r.collection.BulkWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to reorder tables: %w", err)
	}

	for id := range orders {
		r.invalidateCache(ctx, id)
	}

	return nil
}

func (r *tableRepository) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheTablePrefix+id.Hex())
}

type areaRepository struct {
	collection *mongo.Collection
}

func NewAreaRepository(db *mongo.Database) interfaces.AreaRepository {
	return &areaRepository{
		collection: db.Collection("areas"),
	}
}

func (r *areaRepository) Create(ctx context.Context, area *models.Area) error {
	area.ID = primitive.NewObjectID()
	area.CreatedAt = time.Now()
	area.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, area)
	if err != nil {
		return fmt.Errorf("failed to create area: %w", err)
	}

	return nil
}

func (r *areaRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Area, error) {
	var area models.Area
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&area)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("area not found")
		}
		return nil, fmt.Errorf("failed to get area: %w", err)
	}
	return &area, nil
}

func (r *areaRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update area: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("area not found")
	}

	return nil
}

func (r *areaRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	return nil
}

func (r *areaRepository) List(ctx context.Context) ([]*models.Area, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer cursor.Close(ctx)

	var areas []*models.Area
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, fmt.Errorf("failed to decode areas: %w", err)
	}

	return areas, nil
}
