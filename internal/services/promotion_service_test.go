package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
	"bidapos/internal/utils"
	"bidapos/internal/validators"
)

type fakePromotionRepo struct {
	createFn     func(ctx context.Context, promo *models.Promotion) error
	getByIDFn    func(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error)
	updateFn     func(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	deleteFn     func(ctx context.Context, id primitive.ObjectID) error
	getByCodeFn  func(ctx context.Context, code string) (*models.Promotion, error)
	getByCodesFn func(ctx context.Context, codes []string) ([]*models.Promotion, error)
	listFn       func(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error)
	getActiveFn  func(ctx context.Context) ([]*models.Promotion, error)
}

func (f *fakePromotionRepo) Create(ctx context.Context, promo *models.Promotion) error {
	return f.createFn(ctx, promo)
}

func (f *fakePromotionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Promotion, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePromotionRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return f.updateFn(ctx, id, updates)
}

func (f *fakePromotionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return f.deleteFn(ctx, id)
}

func (f *fakePromotionRepo) GetByCode(ctx context.Context, code string) (*models.Promotion, error) {
	return f.getByCodeFn(ctx, code)
}

func (f *fakePromotionRepo) GetByCodes(ctx context.Context, codes []string) ([]*models.Promotion, error) {
	return f.getByCodesFn(ctx, codes)
}

func (f *fakePromotionRepo) List(ctx context.Context, params *utils.PaginationParams, activeOnly bool) ([]*models.Promotion, int64, error) {
	return f.listFn(ctx, params, activeOnly)
}

func (f *fakePromotionRepo) GetActive(ctx context.Context) ([]*models.Promotion, error) {
	return f.getActiveFn(ctx)
}

func percentBillPromo(code string, value float64) *models.Promotion {
	return &models.Promotion{
		ID:        primitive.NewObjectID(),
		Code:      code,
		Name:      code,
		Scope:     models.ScopeBill,
		Active:    true,
		Stackable: true,
		Discount: models.Discount{
			Type:    models.DiscountPercentage,
			Value:   value,
			ApplyTo: models.ApplyToSubtotal,
		},
		BillRule: &models.BillRule{MinSubtotal: 0},
	}
}

func TestPromotionFromCreateMapsRules(t *testing.T) {
	minutes := 90
	maxAmount := 50.0
	req := &validators.CreatePromotionRequest{
		Code:       "HAPPYHOUR",
		Name:       "Happy Hour",
		Scope:      "time",
		ApplyOrder: 5,
		Active:     true,
		Stackable:  false,
		Discount: validators.DiscountRequest{
			Type:      "percentage",
			Value:     20,
			ApplyTo:   "playAmount",
			MaxAmount: &maxAmount,
		},
		TimeRule: &validators.TimeRuleRequest{
			DaysOfWeek: []int{1, 2, 3},
			TimeRanges: []validators.TimeRangeRequest{{From: "14:00", To: "17:00"}},
			MinMinutes: minutes,
		},
	}

	promo := promotionFromCreate(req)

	assert.Equal(t, "HAPPYHOUR", promo.Code)
	assert.Equal(t, models.ScopeTime, promo.Scope)
	assert.Equal(t, 5, promo.ApplyOrder)
	assert.False(t, promo.Stackable)
	assert.Equal(t, models.DiscountPercentage, promo.Discount.Type)
	assert.Equal(t, &maxAmount, promo.Discount.MaxAmount)

	require.NotNil(t, promo.TimeRule)
	assert.Equal(t, []int{1, 2, 3}, promo.TimeRule.DaysOfWeek)
	require.Len(t, promo.TimeRule.TimeRanges, 1)
	assert.Equal(t, "14:00", promo.TimeRule.TimeRanges[0].From)
	assert.Equal(t, minutes, promo.TimeRule.MinMinutes)
	assert.Nil(t, promo.BillRule)
	assert.Nil(t, promo.ProductRule)
}

func TestApplyPromotionUpdateMergesAndKeepsIdentity(t *testing.T) {
	promo := percentBillPromo("WELCOME10", 10)
	originalCode := promo.Code
	originalScope := promo.Scope

	name := "Welcome discount"
	active := false
	req := &validators.UpdatePromotionRequest{
		Name:   &name,
		Active: &active,
		Discount: &validators.DiscountRequest{
			Type:    "fixedAmount",
			Value:   25,
			ApplyTo: "subtotal",
		},
	}

	updates := applyPromotionUpdate(promo, req)

	assert.Equal(t, "Welcome discount", promo.Name)
	assert.False(t, promo.Active)
	assert.Equal(t, models.DiscountFixedAmount, promo.Discount.Type)
	assert.Equal(t, 25.0, promo.Discount.Value)

	assert.Equal(t, originalCode, promo.Code)
	assert.Equal(t, originalScope, promo.Scope)
	assert.NotContains(t, updates, "code")
	assert.NotContains(t, updates, "scope")

	assert.Contains(t, updates, "name")
	assert.Contains(t, updates, "active")
	assert.Contains(t, updates, "discount")
}

func TestApplyPromotionUpdateEmptyRequest(t *testing.T) {
	promo := percentBillPromo("WELCOME10", 10)
	updates := applyPromotionUpdate(promo, &validators.UpdatePromotionRequest{})
	assert.Empty(t, updates)
}

func TestCandidatesEmptyCodesUsesActiveSet(t *testing.T) {
	active := []*models.Promotion{percentBillPromo("A", 5), percentBillPromo("B", 10)}
	repo := &fakePromotionRepo{
		getActiveFn: func(ctx context.Context) ([]*models.Promotion, error) {
			return active, nil
		},
	}
	// Through the interface, the way the session checkout path calls it.
	var svc PromotionService = NewPromotionService(repo, nil, testLogger(t))

	got, err := svc.Candidates(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, active, got)
}

func TestCandidatesUnknownCode(t *testing.T) {
	repo := &fakePromotionRepo{
		getByCodesFn: func(ctx context.Context, codes []string) ([]*models.Promotion, error) {
			return []*models.Promotion{percentBillPromo("KNOWN", 5)}, nil
		},
	}
	var svc PromotionService = NewPromotionService(repo, nil, testLogger(t))

	_, err := svc.Candidates(context.Background(), []string{"KNOWN", "GHOST"})
	require.Error(t, err)
	assert.Equal(t, utils.ErrPromotionNotFound, err.Error())
}

func TestQuoteAppliesActivePromotions(t *testing.T) {
	repo := &fakePromotionRepo{
		getActiveFn: func(ctx context.Context) ([]*models.Promotion, error) {
			return []*models.Promotion{percentBillPromo("TEN", 10)}, nil
		},
	}
	svc := NewPromotionService(repo, nil, testLogger(t))

	result, err := svc.Quote(context.Background(), &validators.QuoteRequest{
		Bill: validators.BillContextRequest{Subtotal: 200},
	})
	require.NoError(t, err)
	require.Len(t, result.Applications, 1)

	assert.Equal(t, "TEN", result.Applications[0].Code)
	assert.Equal(t, 20.0, result.Applications[0].Amount)
	assert.Equal(t, 20.0, result.TotalDiscount)
}

func TestBillContextFromRequestItemsPresence(t *testing.T) {
	withEmpty := billContextFromRequest(&validators.BillContextRequest{
		Subtotal: 100,
		Items:    []validators.LineItemRequest{},
	})
	assert.NotNil(t, withEmpty.Items)
	assert.Empty(t, withEmpty.Items)

	withoutItems := billContextFromRequest(&validators.BillContextRequest{Subtotal: 100})
	assert.Nil(t, withoutItems.Items)

	withItems := billContextFromRequest(&validators.BillContextRequest{
		Subtotal: 100,
		Items: []validators.LineItemRequest{
			{Product: "cola", Category: "drinks", Qty: 2},
		},
	})
	require.Len(t, withItems.Items, 1)
	assert.Equal(t, "cola", withItems.Items[0].Product)
	assert.Equal(t, 2, withItems.Items[0].Qty)
}
