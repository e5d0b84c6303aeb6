package repository

import (
	"context"

	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepository interface {
	// Upsert creates the user keyed by email. Returns the inserted id, or
	// nil when a user with that email already existed (no fields touched).
	Upsert(ctx context.Context, user *models.User) (*primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, email string, role models.Role) error
	LinkCart(ctx context.Context, email string, cartID primitive.ObjectID) error
	PushPendingItem(ctx context.Context, sellerEmail string, item models.OrderItem) error
	PushSoldItem(ctx context.Context, sellerEmail string, item models.OrderItem) error
	PullPendingItem(ctx context.Context, sellerEmail, itemID string) error
}

type userRepository struct {
	coll *mongo.Collection
}

func NewUserRepo(coll *mongo.Collection) UserRepository {
	return &userRepository{coll: coll}
}

func (r *userRepository) Upsert(ctx context.Context, user *models.User) (*primitive.ObjectID, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// $setOnInsert keeps the call idempotent on email: a second signup for
	// the same address matches the filter and changes nothing.
	update := bson.M{"$setOnInsert": bson.M{
		"name":     user.Name,
		"role":     user.Role,
		"password": user.Password,
	}}

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_email": user.Email},
		update,
		options.Update().SetUpsert(true))
	if err != nil {
		return nil, err
	}

	if res.UpsertedID == nil {
		return nil, nil
	}

	id, ok := res.UpsertedID.(primitive.ObjectID)
	if !ok {
		return nil, nil
	}

	return &id, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	user := &models.User{}
	if err := r.coll.FindOne(dbCtx, bson.M{"user_email": email}).Decode(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(dbCtx)

	var users []models.User
	if err := cursor.All(dbCtx, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) UpdateRole(ctx context.Context, email string, role models.Role) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_email": email},
		bson.M{"$set": bson.M{"role": role}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) LinkCart(ctx context.Context, email string, cartID primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_email": email},
		bson.M{"$set": bson.M{"cart_id": cartID}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *userRepository) PushPendingItem(ctx context.Context, sellerEmail string, item models.OrderItem) error {
	return r.pushItem(ctx, sellerEmail, "pending_items", item)
}

func (r *userRepository) PushSoldItem(ctx context.Context, sellerEmail string, item models.OrderItem) error {
	return r.pushItem(ctx, sellerEmail, "sold_items", item)
}

func (r *userRepository) pushItem(ctx context.Context, sellerEmail, field string, item models.OrderItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_email": sellerEmail},
		bson.M{"$push": bson.M{field: item}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// PullPendingItem removes by the item's own id, not the product id: a
// seller can hold several pending items for the same product.
func (r *userRepository) PullPendingItem(ctx context.Context, sellerEmail, itemID string) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"user_email": sellerEmail},
		bson.M{"$pull": bson.M{"pending_items": bson.M{"item_id": itemID}}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
