package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bidapos/internal/models"
	"bidapos/internal/repositories/interfaces"
	"bidapos/internal/utils"
)

type promotionRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewPromotionRepository(db *mongo.Database, cache CacheService) interfaces.PromotionRepository {
	return &promotionRepository{
		collection: db.Collection("promotions"),
		cache:      cache,
	}
}

// Basic CRUD operations
func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	promotion.ID = primitive.NewObjectID()
	promotion.CreatedAt = time.Now()
	promotion.UpdatedAt = time.Now()

	// Ensure promotion code is uppercase
	promotion.Code = strings.ToUpper(promotion.Code)

	_, err := r.collection.InsertOne(ctx, promotion)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(utils.ErrPromotionCodeTaken)
		}
		return fmt.Errorf("failed to create promotion: %w", err)
	}

	r.invalidateActiveCache(ctx)

	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	// Try cache first
	if promotion := r.getPromotionFromCache(ctx, id.Hex()); promotion != nil {
		return promotion, nil
	}

	var promotion models.Promotion
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrPromotionNotFound)
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	r.cachePromotion(ctx, &promotion)

	return &promotion, nil
}

func (r *promotionRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	// Invalidate by code too, so fetch the current document first
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update promotion: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrPromotionNotFound)
	}

	r.invalidatePromotionCache(ctx, existing)

	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	r.invalidatePromotionCache(ctx, existing)

	return nil
}

// Code operations
func (r *promotionRepository) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	code = strings.ToUpper(code)

	// Try cache first
	cacheKey := utils.CachePromotionCodePrefix + code
	if r.cache != nil {
		var promotion models.Promotion
		if err := r.cache.Get(ctx, cacheKey, &promotion); err == nil {
			return &promotion, nil
		}
	}

	var promotion models.Promotion
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&promotion)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrPromotionNotFound)
		}
		return nil, fmt.Errorf("failed to get promotion by code: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, promotion, utils.PromotionCacheTTL)
	}

	return &promotion, nil
}

func (r *promotionRepository) GetByCodes(ctx context.Context, codes []string) ([]*models.Promotion, error) {
	upper := make([]string, len(codes))
	for i, code := range codes {
		upper[i] = strings.ToUpper(code)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"code": bson.M{"$in": upper}})
	if err != nil {
		return nil, fmt.Errorf("failed to get promotions by codes: %w", err)
	}
	defer cursor.Close(ctx)

	var promotions []*models.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}

	return promotions, nil
}

// Listing
func (r *promotionRepository) List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error) {
	filter := params.GetSearchFilter([]string{"code", "name"})
	if activeOnly {
		filter["active"] = true
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count promotions: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer cursor.Close(ctx)

	var promotions []*models.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, 0, fmt.Errorf("failed to decode promotions: %w", err)
	}

	return promotions, total, nil
}

func (r *promotionRepository) GetActive(ctx context.Context) ([]*models.Promotion, error) {
	if r.cache != nil {
		var promotions []*models.Promotion
		if err := r.cache.Get(ctx, utils.CacheActivePromotionsKey, &promotions); err == nil {
			return promotions, nil
		}
	}

	cursor, err := r.collection.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to get active promotions: %w", err)
	}
	defer cursor.Close(ctx)

	var promotions []*models.Promotion
	if err := cursor.All(ctx, &promotions); err != nil {
		return nil, fmt.Errorf("failed to decode promotions: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheActivePromotionsKey, promotions, utils.PromotionCacheTTL)
	}

	return promotions, nil
}

// Cache helpers
func (r *promotionRepository) cachePromotion(ctx context.Context, promotion *models.Promotion) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, utils.CachePromotionPrefix+promotion.ID.Hex(), promotion, utils.PromotionCacheTTL)
}

func (r *promotionRepository) getPromotionFromCache(ctx context.Context, promotionID string) *models.Promotion {
	if r.cache == nil {
		return nil
	}

	var promotion models.Promotion
	if err := r.cache.Get(ctx, utils.CachePromotionPrefix+promotionID, &promotion); err != nil {
		return nil
	}
	return &promotion
}

func (r *promotionRepository) invalidatePromotionCache(ctx context.Context, promotion *models.Promotion) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx,
		utils.CachePromotionPrefix+promotion.ID.Hex(),
		utils.CachePromotionCodePrefix+promotion.Code,
		utils.CacheActivePromotionsKey,
	)
}

func (r *promotionRepository) invalidateActiveCache(ctx context.Context) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, utils.CacheActivePromotionsKey)
}
