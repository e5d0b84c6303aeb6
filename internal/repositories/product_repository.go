package repository

import (
	"context"

	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	// List applies equality filters built from query parameters.
	List(ctx context.Context, filter bson.M) ([]models.Product, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error)
}

type productRepository struct {
	coll *mongo.Collection
}

func NewProductRepo(coll *mongo.Collection) ProductRepository {
	return &productRepository{coll: coll}
}

func (r *productRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	product := &models.Product{}
	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(product); err != nil {
		return nil, err
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context, filter bson.M) ([]models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}

	cursor, err := r.coll.Find(dbCtx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(dbCtx)

	var products []models.Product
	if err := cursor.All(dbCtx, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	return r.List(ctx, bson.M{"_id": bson.M{"$in": ids}})
}
