package mongodb

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/blog-api/internal/apperror"
	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

func categoryScope(id, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user": userID}
}

func blogScope(id, categoryID, userID primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "user": userID, "category": categoryID}
}

// withListOptions adds keyword and createdAt range conditions to base.
// Keywords are escaped so they match as a literal, case-insensitive substring.
func withListOptions(base bson.M, opts repository.ListOptions) bson.M {
	if opts.Keywords != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Keywords), Options: "i"}
		base["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
		}
	}

	if opts.From != nil || opts.To != nil {
		created := bson.M{}
		if opts.From != nil {
			created["$gte"] = *opts.From
		}
		if opts.To != nil {
			created["$lte"] = *opts.To
		}
		base["createdAt"] = created
	}

	return base
}

// findOptions translates pagination into skip/limit, with an optional sort.
func findOptions(opts repository.ListOptions, sort bson.D) *options.FindOptions {
	find := options.Find()
	if sort != nil {
		find.SetSort(sort)
	}
	if opts.Offset > 0 {
		find.SetSkip(int64(opts.Offset))
	}
	if opts.Limit > 0 {
		find.SetLimit(int64(opts.Limit))
	}
	return find
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func contentUpdate(patch model.ContentPatch, now time.Time) bson.M {
	return bson.M{"$set": bson.M{
		"title":       patch.Title,
		"description": patch.Description,
		"updatedAt":   now,
	}}
}

var returnAfter = options.FindOneAndUpdate().SetReturnDocument(options.After)

// wrapFind maps mongo.ErrNoDocuments to the entity's NotFound error and wraps
// anything else with the failed operation.
func wrapFind(err error, entity, op string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperror.NotFound(entity)
	}
	return fmt.Errorf("mongodb: %s: %w", op, err)
}
