package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableOccupied    TableStatus = "occupied"
	TableReserved    TableStatus = "reserved"
	TableMaintenance TableStatus = "maintenance"
)

type Table struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Area        *primitive.ObjectID `json:"area,omitempty" bson:"area,omitempty"`
	RatePerHour float64             `json:"ratePerHour" bson:"rate_per_hour"`
	Status      TableStatus         `json:"status" bson:"status"`
	Order       int                 `json:"order" bson:"order"`
	Active      bool                `json:"active" bson:"active"`
	Note        string              `json:"note" bson:"note"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}

func ValidTableStatus(status TableStatus) bool {
	switch status {
	case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
		return true
	}
	return false
}
