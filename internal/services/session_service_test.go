package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bidapos/internal/models"
)

func sessionWithItems(start time.Time, rate float64, items ...models.SessionItem) *models.Session {
	return &models.Session{
		ID:              primitive.NewObjectID(),
		Table:           primitive.NewObjectID(),
		Status:          models.SessionOpen,
		StartAt:         start,
		PricingSnapshot: models.PricingSnapshot{RatePerHour: rate},
		Items:           items,
	}
}

func TestBuildBillChargesStartedHours(t *testing.T) {
	start := time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)
	session := sessionWithItems(start, 60)
	table := &models.Table{ID: session.Table, Name: "T1"}

	// 61 minutes of play bills as two started hours.
	bill := buildBill(session, table, start.Add(61*time.Minute))

	require.Len(t, bill.Items, 1)
	play := bill.Items[0]
	assert.Equal(t, models.BillItemPlay, play.Type)
	assert.Equal(t, 61, play.Minutes)
	assert.Equal(t, 60.0, play.RatePerHour)
	assert.Equal(t, 120.0, play.Amount)
	assert.Equal(t, 120.0, bill.Subtotal)
	assert.Equal(t, "T1", bill.TableName)
}

func TestBuildBillUsesPinnedRateAndSnapshots(t *testing.T) {
	start := time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)
	productID := primitive.NewObjectID()
	session := sessionWithItems(start, 80, models.SessionItem{
		ID:            primitive.NewObjectID(),
		Product:       productID,
		NameSnapshot:  "Cola",
		PriceSnapshot: 15,
		Category:      "drinks",
		Qty:           3,
	})
	// The table rate changed after check-in; the bill must keep the
	// snapshot rate.
	table := &models.Table{ID: session.Table, Name: "T2", RatePerHour: 120}

	bill := buildBill(session, table, start.Add(30*time.Minute))

	require.Len(t, bill.Items, 2)
	assert.Equal(t, 80.0, bill.Items[0].RatePerHour)
	assert.Equal(t, 80.0, bill.Items[0].Amount)

	product := bill.Items[1]
	assert.Equal(t, models.BillItemProduct, product.Type)
	require.NotNil(t, product.ProductID)
	assert.Equal(t, productID, *product.ProductID)
	assert.Equal(t, "Cola", product.NameSnapshot)
	assert.Equal(t, "drinks", product.Category)
	assert.Equal(t, 45.0, product.Amount)

	assert.Equal(t, 125.0, bill.Subtotal)
}

func TestBuildBillNoPlayLineForInstantClose(t *testing.T) {
	start := time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)
	session := sessionWithItems(start, 60)
	table := &models.Table{ID: session.Table, Name: "T3"}

	bill := buildBill(session, table, start)

	assert.Empty(t, bill.Items)
	assert.Equal(t, 0.0, bill.Subtotal)
	assert.Nil(t, bill.PlayMinutes())
}

func TestBillToContextProductLines(t *testing.T) {
	productID := primitive.NewObjectID()
	bill := &models.Bill{
		Items: []models.BillItem{
			{Type: models.BillItemPlay, Minutes: 90, RatePerHour: 60, Amount: 120},
			{Type: models.BillItemProduct, ProductID: &productID, Category: "drinks", Qty: 2, Amount: 30},
		},
	}
	bill.Recalculate()

	ctx := billToContext(bill)

	assert.Equal(t, 150.0, ctx.Subtotal)
	assert.Equal(t, 120.0, ctx.PlayAmount)
	assert.Equal(t, 30.0, ctx.ServiceAmount)
	require.NotNil(t, ctx.PlayMinutes)
	assert.Equal(t, 90, *ctx.PlayMinutes)

	require.Len(t, ctx.Items, 1)
	assert.Equal(t, productID.Hex(), ctx.Items[0].Product)
	assert.Equal(t, "drinks", ctx.Items[0].Category)
	assert.Equal(t, 2, ctx.Items[0].Qty)
}

func TestBillToContextRetailOnlyBill(t *testing.T) {
	productID := primitive.NewObjectID()
	bill := &models.Bill{
		Items: []models.BillItem{
			{Type: models.BillItemProduct, ProductID: &productID, Category: "food", Qty: 1, Amount: 55},
		},
	}
	bill.Recalculate()

	ctx := billToContext(bill)

	assert.Nil(t, ctx.PlayMinutes)
	assert.Equal(t, 0.0, ctx.PlayAmount)
	assert.Equal(t, 55.0, ctx.ServiceAmount)
	require.Len(t, ctx.Items, 1)
}

func TestBillToContextEmptyBillHasItemsSlice(t *testing.T) {
	bill := &models.Bill{Items: []models.BillItem{}}
	bill.Recalculate()

	ctx := billToContext(bill)

	// Present-but-empty so product rules see "no matching lines" rather
	// than "lines unknown".
	assert.NotNil(t, ctx.Items)
	assert.Empty(t, ctx.Items)
}

func TestPlayedMinutesNeverNegative(t *testing.T) {
	start := time.Date(2025, 4, 1, 19, 0, 0, 0, time.UTC)
	session := sessionWithItems(start, 60)

	assert.Equal(t, 0, session.PlayedMinutes(start.Add(-time.Minute)))
	assert.Equal(t, 45, session.PlayedMinutes(start.Add(45*time.Minute)))
}
