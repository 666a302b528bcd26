package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StaffRole string

const (
	RoleAdmin StaffRole = "admin"
	RoleStaff StaffRole = "staff"
)

type Staff struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Username     string             `json:"username" bson:"username"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	Role         StaffRole          `json:"role" bson:"role"`
	Active       bool               `json:"active" bson:"active"`
	LastLoginAt  *time.Time         `json:"lastLoginAt,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}
