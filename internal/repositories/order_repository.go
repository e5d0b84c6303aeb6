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

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListByBuyer(ctx context.Context, buyerEmail string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// MarkPaid flips pending -> paid. Reports false without error when the
	// order exists but was already paid, so the caller can treat the
	// transition as already satisfied.
	MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error)
	TotalSales(ctx context.Context) (models.SalesSummary, error)
}

type orderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepo(coll *mongo.Collection) OrderRepository {
	return &orderRepository{coll: coll}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	res, err := r.coll.InsertOne(dbCtx, order)
	if err != nil {
		return err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = id
	}

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	order := &models.Order{}
	if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Decode(order); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx,
		bson.M{"user_email": buyerEmail},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(dbCtx)

	var orders []models.Order
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(dbCtx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(dbCtx)

	var orders []models.Order
	if err := cursor.All(dbCtx, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	// Conditional on the current status so a repeated call matches
	// nothing instead of re-applying the transition.
	res, err := r.coll.UpdateOne(dbCtx,
		bson.M{"_id": id, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{"status": models.OrderStatusPaid}})
	if err != nil {
		return false, err
	}

	if res.MatchedCount == 0 {
		// Distinguish "already paid" from "no such order".
		if err := r.coll.FindOne(dbCtx, bson.M{"_id": id}).Err(); err != nil {
			return false, err
		}

		return false, nil
	}

	return true, nil
}

func (r *orderRepository) TotalSales(ctx context.Context) (models.SalesSummary, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"total": bson.M{"$sum": "$price"},
		}}},
	}

	cursor, err := r.coll.Aggregate(dbCtx, pipeline)
	if err != nil {
		return models.SalesSummary{}, err
	}
	defer cursor.Close(dbCtx)

	var rows []struct {
		Status models.OrderStatus `bson:"_id"`
		Total  float64            `bson:"total"`
	}
	if err := cursor.All(dbCtx, &rows); err != nil {
		return models.SalesSummary{}, err
	}

	var summary models.SalesSummary
	for _, row := range rows {
		if row.Status == models.OrderStatusPaid {
			summary.TotalPaid += row.Total
		} else {
			summary.TotalPending += row.Total
		}
	}
	summary.TotalSales = summary.TotalPaid + summary.TotalPending

	return summary, nil
}
