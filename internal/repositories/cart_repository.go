package repository

import (
	"context"
	"errors"

	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CartRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error)
	GetByOwner(ctx context.Context, ownerEmail string) (*models.Cart, error)
	// AddItem increments the owner's line for the product, appending the
	// line or creating the whole cart when absent. Returns the cart after
	// the update.
	AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error)
	IncrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) error
	// DecrementQuantity subtracts 1, removing the line entirely when the
	// quantity was 1. Reports whether the line was removed.
	DecrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) (bool, error)
	Clear(ctx context.Context, cartID primitive.ObjectID) error
}

type cartRepository struct {
	coll *mongo.Collection
}

func NewCartRepo(coll *mongo.Collection) CartRepository {
	return &cartRepository{coll: coll}
}

func (r *cartRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}
	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (r *cartRepository) GetByOwner(ctx context.Context, ownerEmail string) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cart := &models.Cart{}
	if err := r.coll.FindOne(dbCtx, bson.M{"user_email": ownerEmail}).Decode(cart); err != nil {
		return nil, err
	}

	return cart, nil
}

const addItemMaxRetries = 3

// AddItem is two targeted updates instead of read-modify-write: the first
// increments an existing line in place, the second is an upsert keyed by
// owner email that appends the line (and creates the cart document on
// first touch). A concurrent call can slip between the two statements;
// the unique user_email index turns the colliding insert into a duplicate
// key error, and the increment is retried against the cart that now
// exists.
func (r *cartRepository) AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	line := models.CartLine{ProductID: productID, Quantity: 1}

	for attempt := 0; ; attempt++ {
		cart := &models.Cart{}
		err := r.coll.FindOneAndUpdate(dbCtx,
			bson.M{"user_email": ownerEmail, "items.product_id": productID},
			bson.M{"$inc": bson.M{"items.$.quantity": 1}},
			after,
		).Decode(cart)

		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}

		err = r.coll.FindOneAndUpdate(dbCtx,
			bson.M{"user_email": ownerEmail, "items.product_id": bson.M{"$ne": productID}},
			bson.M{"$push": bson.M{"items": line}},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(cart)
		if err == nil {
			return cart, nil
		}

		if mongo.IsDuplicateKeyError(err) && attempt < addItemMaxRetries {
			continue
		}

		return nil, err
	}
}

func (r *cartRepository) IncrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"_id": cartID, "items.product_id": productID},
		bson.M{"$inc": bson.M{"items.$.quantity": 1}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *cartRepository) DecrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Only decrement lines above quantity 1; at exactly 1 the line is
	// pulled instead so quantity never reaches zero.
	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{
			"_id":   cartID,
			"items": bson.M{"$elemMatch": bson.M{"product_id": productID, "quantity": bson.M{"$gt": 1}}},
		},
		bson.M{"$inc": bson.M{"items.$.quantity": -1}})
	if err != nil {
		return false, err
	}

	if res.MatchedCount > 0 {
		return false, nil
	}

	res, err = r.coll.UpdateOne(dbCtx,
		bson.M{"_id": cartID},
		bson.M{"$pull": bson.M{"items": bson.M{"product_id": productID}}})
	if err != nil {
		return false, err
	}

	if res.MatchedCount == 0 || res.ModifiedCount == 0 {
		return false, mongo.ErrNoDocuments
	}

	return true, nil
}

func (r *cartRepository) Clear(ctx context.Context, cartID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"_id": cartID},
		bson.M{"$set": bson.M{"items": []models.CartLine{}}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
