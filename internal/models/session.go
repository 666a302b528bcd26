package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SessionStatus string

const (
	SessionOpen   SessionStatus = "open"
	SessionClosed SessionStatus = "closed"
	SessionVoid   SessionStatus = "void"
)

// Session is one table occupation from check-in to checkout. Product items
// ordered during play are attached here and copied onto the bill at
// checkout.
type Session struct {
	ID              primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Table           primitive.ObjectID  `json:"table" bson:"table"`
	Staff           *primitive.ObjectID `json:"staff,omitempty" bson:"staff,omitempty"`
	Status          SessionStatus       `json:"status" bson:"status"`
	StartAt         time.Time           `json:"startAt" bson:"start_at"`
	EndAt           *time.Time          `json:"endAt,omitempty" bson:"end_at,omitempty"`
	PricingSnapshot PricingSnapshot     `json:"pricingSnapshot" bson:"pricing_snapshot"`
	Items           []SessionItem       `json:"items" bson:"items"`
	Note            string              `json:"note" bson:"note"`
	VoidReason      string              `json:"voidReason,omitempty" bson:"void_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" bson:"updated_at"`
}

// PricingSnapshot pins the table rate at check-in so later rate edits do not
// change a running session's price.
type PricingSnapshot struct {
	RatePerHour float64 `json:"ratePerHour" bson:"rate_per_hour"`
}

type SessionItem struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Product       primitive.ObjectID `json:"product" bson:"product"`
	NameSnapshot  string             `json:"nameSnapshot" bson:"name_snapshot"`
	PriceSnapshot float64            `json:"priceSnapshot" bson:"price_snapshot"`
	Category      string             `json:"category" bson:"category"`
	Qty           int                `json:"qty" bson:"qty"`
	Note          string             `json:"note" bson:"note"`
}

// PlayedMinutes is the whole minutes elapsed between check-in and the given
// end instant.
func (s *Session) PlayedMinutes(endAt time.Time) int {
	minutes := int(endAt.Sub(s.StartAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
