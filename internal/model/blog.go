package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog is a post filed under one category of one user.
// Lookups must match the blog id, the owning user and the owning category.
type Blog struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id"`
	User        primitive.ObjectID `json:"user"        bson:"user"`
	Category    primitive.ObjectID `json:"category"    bson:"category"`
	Title       string             `json:"title"       bson:"title"       validate:"required,max=100"`
	Description string             `json:"description" bson:"description" validate:"max=255"`
	CreatedAt   time.Time          `json:"createdAt"   bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"   bson:"updatedAt"`
}
