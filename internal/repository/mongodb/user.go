package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

var _ repository.UserRepository = (*UserCollection)(nil)

// UserCollection stores users. Email and username carry unique indexes, so
// duplicates fail with a write exception.
type UserCollection struct {
	store *Store
}

func (u *UserCollection) CreateUser(ctx context.Context, user *model.User) error {
	coll, err := u.store.collection(ctx, usersCollection)
	if err != nil {
		return err
	}

	now := u.store.timestamp()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("mongodb: creating user: %w", err)
	}
	return nil
}

func (u *UserCollection) ListUsers(ctx context.Context) ([]model.User, error) {
	coll, err := u.store.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: listing users: %w", err)
	}

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongodb: decoding users: %w", err)
	}
	return users, nil
}

func (u *UserCollection) GetUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	coll, err := u.store.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, wrapFind(err, "User", "getting user "+id.Hex())
	}
	return &user, nil
}

func (u *UserCollection) UpdateUsername(ctx context.Context, id primitive.ObjectID, username string) (*model.User, error) {
	coll, err := u.store.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"username": username, "updatedAt": u.store.timestamp()}}

	var user model.User
	err = coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, returnAfter).Decode(&user)
	if err != nil {
		return nil, wrapFind(err, "User", "updating user "+id.Hex())
	}
	return &user, nil
}

func (u *UserCollection) DeleteUser(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	coll, err := u.store.collection(ctx, usersCollection)
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, wrapFind(err, "User", "deleting user "+id.Hex())
	}
	return &user, nil
}
