package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that owns categories and blogs.
//
// Email and Username are unique across the collection; the store enforces that,
// not this struct. Password is stored exactly as received unless password hashing
// is switched on in the configuration.
type User struct {
	ID        primitive.ObjectID `json:"_id"       bson:"_id"`
	Email     string             `json:"email"     bson:"email"     validate:"required,max=100"`
	Username  string             `json:"username"  bson:"username"  validate:"required,max=100"`
	Password  string             `json:"password"  bson:"password"  validate:"required"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
