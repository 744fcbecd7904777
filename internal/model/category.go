package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups blogs and belongs to exactly one user.
// It is only reachable through lookups that also match its owner.
type Category struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id"`
	User        primitive.ObjectID `json:"user"        bson:"user"`
	Title       string             `json:"title"       bson:"title"       validate:"required,max=100"`
	Description string             `json:"description" bson:"description" validate:"max=255"`
	CreatedAt   time.Time          `json:"createdAt"   bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"   bson:"updatedAt"`
}

// ContentPatch carries the fields a PATCH may change on a category or blog.
type ContentPatch struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"required,max=255"`
}
