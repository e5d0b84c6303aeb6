package repository

import (
	"context"

	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	// SetProductIDs replaces the denormalized productIds list wholesale;
	// it is only written by the explicit rebuild operation.
	SetProductIDs(ctx context.Context, id primitive.ObjectID, productIDs []primitive.ObjectID) error
}

type categoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepo(coll *mongo.Collection) CategoryRepository {
	return &categoryRepository{coll: coll}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(dbCtx)

	var categories []models.Category
	if err := cursor.All(dbCtx, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}
	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(category); err != nil {
		return nil, err
	}

	return category, nil
}

func (r *categoryRepository) SetProductIDs(ctx context.Context, id primitive.ObjectID, productIDs []primitive.ObjectID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"productIds": productIDs}})
	if err != nil {
		return err
	}

	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
