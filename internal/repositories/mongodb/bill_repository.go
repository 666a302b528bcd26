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

type billRepository struct {
	collection *mongo.Collection
}

func NewBillRepository(db *mongo.Database) interfaces.BillRepository {
	return &billRepository{
		collection: db.Collection("bills"),
	}
}

func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	bill.ID = primitive.NewObjectID()
	bill.CreatedAt = time.Now()
	bill.UpdatedAt = time.Now()

	if bill.Items == nil {
		bill.Items = []models.BillItem{}
	}
	if bill.Discounts == nil {
		bill.Discounts = []models.BillDiscount{}
	}

	_, err := r.collection.InsertOne(ctx, bill)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

func (r *billRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Bill, error) {
	var bill models.Bill
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrBillNotFound)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) GetBySession(ctx context.Context, sessionID primitive.ObjectID) (*models.Bill, error) {
	var bill models.Bill
	err := r.collection.FindOne(ctx, bson.M{"session": sessionID}).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(utils.ErrBillNotFound)
		}
		return nil, fmt.Errorf("failed to get bill by session: %w", err)
	}
	return &bill, nil
}

func (r *billRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	if result.MatchedCount == 0 {
		return errors.New(utils.ErrBillNotFound)
	}

	return nil
}

func (r *billRepository) List(ctx context.Context, params *utils.PaginationParams, from, to *time.Time, tableID *primitive.ObjectID) ([]*models.Bill, int64, error) {
	filter := bson.M{}
	if from != nil || to != nil {
		created := bson.M{}
		if from != nil {
			created["$gte"] = *from
		}
		if to != nil {
			created["$lte"] = *to
		}
		filter["created_at"] = created
	}
	if tableID != nil {
		filter["table"] = *tableID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}
	defer cursor.Close(ctx)

	var bills []*models.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bills: %w", err)
	}

	return bills, total, nil
}

func paidWindowMatch(from, to time.Time) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{
		"paid":    true,
		"paid_at": bson.M{"$gte": from, "$lte": to},
	}}}
}

// itemAmountsByType sums the amounts of items with the given type inside a
// single bill document.
func itemAmountsByType(itemType models.BillItemType) bson.M {
	return bson.M{
		"$sum": bson.M{
			"$map": bson.M{
				"input": bson.M{
					"$filter": bson.M{
						"input": "$items",
						"cond":  bson.M{"$eq": []interface{}{"$$this.type", itemType}},
					},
				},
				"in": "$$this.amount",
			},
		},
	}
}

func (r *billRepository) Summary(ctx context.Context, from, to time.Time) (*models.RevenueSummary, error) {
	pipeline := mongo.Pipeline{
		paidWindowMatch(from, to),
		{{Key: "$project", Value: bson.M{
			"total":          1,
			"play_amount":    itemAmountsByType(models.BillItemPlay),
			"service_amount": itemAmountsByType(models.BillItemProduct),
			"discount_total": bson.M{"$sum": "$discounts.amount"},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"bill_count":     bson.M{"$sum": 1},
			"revenue":        bson.M{"$sum": "$total"},
			"play_revenue":   bson.M{"$sum": "$play_amount"},
			"service_amount": bson.M{"$sum": "$service_amount"},
			"discount_total": bson.M{"$sum": "$discount_total"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bill summary: %w", err)
	}
	defer cursor.Close(ctx)

	summary := &models.RevenueSummary{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(summary); err != nil {
			return nil, fmt.Errorf("failed to decode bill summary: %w", err)
		}
	}

	if summary.BillCount > 0 {
		summary.AverageBill = summary.Revenue / float64(summary.BillCount)
	}

	return summary, nil
}

func (r *billRepository) RevenueByDay(ctx context.Context, from, to time.Time) ([]models.DayRevenue, error) {
	pipeline := mongo.Pipeline{
		paidWindowMatch(from, to),
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"$dateToString": bson.M{
					"format": "%Y-%m-%d",
					"date":   "$paid_at",
				},
			},
			"bill_count": bson.M{"$sum": 1},
			"revenue":    bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by day: %w", err)
	}
	defer cursor.Close(ctx)

	days := make([]models.DayRevenue, 0)
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode revenue by day: %w", err)
	}

	return days, nil
}

func (r *billRepository) TopProducts(ctx context.Context, from, to time.Time, by string, limit int) ([]models.ProductSales, error) {
	sortKey := "qty"
	if by == "amount" {
		sortKey = "amount"
	}

	pipeline := mongo.Pipeline{
		paidWindowMatch(from, to),
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.M{"items.type": models.BillItemProduct}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$items.name_snapshot",
			"qty":    bson.M{"$sum": "$items.qty"},
			"amount": bson.M{"$sum": "$items.amount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: sortKey, Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.ProductSales, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode top products: %w", err)
	}

	return products, nil
}

func (r *billRepository) RevenueByTable(ctx context.Context, from, to time.Time) ([]models.TableRevenue, error) {
	pipeline := mongo.Pipeline{
		paidWindowMatch(from, to),
		{{Key: "$project", Value: bson.M{
			"table_name": 1,
			"total":      1,
			"minutes": bson.M{
				"$sum": bson.M{
					"$map": bson.M{
						"input": bson.M{
							"$filter": bson.M{
								"input": "$items",
								"cond":  bson.M{"$eq": []interface{}{"$$this.type", models.BillItemPlay}},
							},
						},
						"in": "$$this.minutes",
					},
				},
			},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$table_name",
			"bill_count": bson.M{"$sum": 1},
			"revenue":    bson.M{"$sum": "$total"},
			"minutes":    bson.M{"$sum": "$minutes"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue by table: %w", err)
	}
	defer cursor.Close(ctx)

	tables := make([]models.TableRevenue, 0)
	if err := cursor.All(ctx, &tables); err != nil {
		return nil, fmt.Errorf("failed to decode revenue by table: %w", err)
	}

	return tables, nil
}
