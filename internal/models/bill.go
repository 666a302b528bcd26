package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillItemType string
type PaymentMethod string

const (
	BillItemPlay    BillItemType = "play"
	BillItemProduct BillItemType = "product"

	PaymentCash PaymentMethod = "cash"
	PaymentMomo PaymentMethod = "momo"
)

type Bill struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Session       primitive.ObjectID  `json:"session" bson:"session"`
	Table         primitive.ObjectID  `json:"table" bson:"table"`
	TableName     string              `json:"tableName" bson:"table_name"`
	Area          *primitive.ObjectID `json:"areaId,omitempty" bson:"area,omitempty"`
	Items         []BillItem          `json:"items" bson:"items"`
	Subtotal      float64             `json:"subtotal" bson:"subtotal"`
	Discounts     []BillDiscount      `json:"discounts" bson:"discounts"`
	Surcharge     float64             `json:"surcharge" bson:"surcharge"`
	Total         float64             `json:"total" bson:"total"`
	PaymentMethod PaymentMethod       `json:"paymentMethod" bson:"payment_method"`
	Paid          bool                `json:"paid" bson:"paid"`
	PaidAt        *time.Time          `json:"paidAt,omitempty" bson:"paid_at,omitempty"`
	Staff         *primitive.ObjectID `json:"staff,omitempty" bson:"staff,omitempty"`
	Note          string              `json:"note" bson:"note"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

type BillItem struct {
	Type BillItemType `json:"type" bson:"type"`

	// Play line
	Minutes     int     `json:"minutes,omitempty" bson:"minutes,omitempty"`
	RatePerHour float64 `json:"ratePerHour,omitempty" bson:"rate_per_hour,omitempty"`

	// Product line
	ProductID     *primitive.ObjectID `json:"productId,omitempty" bson:"product,omitempty"`
	Category      string              `json:"category,omitempty" bson:"category,omitempty"`
	NameSnapshot  string              `json:"nameSnapshot,omitempty" bson:"name_snapshot,omitempty"`
	PriceSnapshot float64             `json:"priceSnapshot,omitempty" bson:"price_snapshot,omitempty"`
	Qty           int                 `json:"qty,omitempty" bson:"qty,omitempty"`

	Amount float64 `json:"amount" bson:"amount"`
	Note   string  `json:"note" bson:"note"`
}

// BillDiscount is the applied-promotion record stored on a bill.
type BillDiscount struct {
	Promotion primitive.ObjectID `json:"promotionId" bson:"promotion"`
	Code      string             `json:"code" bson:"code"`
	Amount    float64            `json:"amount" bson:"amount"`
}

// PlayAmount charges started hours in full: 61 minutes bill as 2 hours.
func PlayAmount(minutes int, ratePerHour float64) float64 {
	if minutes <= 0 || ratePerHour <= 0 {
		return 0
	}
	return math.Ceil(float64(minutes)/60) * ratePerHour
}

// PlayMinutes sums the minutes of the play lines, or nil when the bill has
// none (retail-only sale).
func (b *Bill) PlayMinutes() *int {
	var minutes int
	found := false
	for _, item := range b.Items {
		if item.Type == BillItemPlay {
			minutes += item.Minutes
			found = true
		}
	}
	if !found {
		return nil
	}
	return &minutes
}

// PlayTotal is the sum of the play line amounts.
func (b *Bill) PlayTotal() float64 {
	var total float64
	for _, item := range b.Items {
		if item.Type == BillItemPlay {
			total += item.Amount
		}
	}
	return total
}

// ServiceTotal is the sum of the product line amounts.
func (b *Bill) ServiceTotal() float64 {
	var total float64
	for _, item := range b.Items {
		if item.Type == BillItemProduct {
			total += item.Amount
		}
	}
	return total
}

// Recalculate refreshes subtotal and total from the items, recorded
// discounts and surcharge. Total never goes below zero.
func (b *Bill) Recalculate() {
	var subtotal float64
	for _, item := range b.Items {
		subtotal += item.Amount
	}
	b.Subtotal = subtotal

	var discount float64
	for _, d := range b.Discounts {
		discount += d.Amount
	}

	total := subtotal - discount + b.Surcharge
	if total < 0 {
		total = 0
	}
	b.Total = total
}
