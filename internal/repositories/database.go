package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/medimart/medimart/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Repositories bundles one repository per collection, all sharing a single
// Mongo client.
type Repositories struct {
	client *mongo.Client

	User     UserRepository
	Product  ProductRepository
	Category CategoryRepository
	Cart     CartRepository
	Order    OrderRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	// Verify the deployment is reachable before serving traffic.
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)

	if err := ensureIndexes(ctx, db); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return &Repositories{
		client:   client,
		User:     NewUserRepo(db.Collection("users")),
		Product:  NewProductRepo(db.Collection("products")),
		Category: NewCategoryRepo(db.Collection("categories")),
		Cart:     NewCartRepo(db.Collection("carts")),
		Order:    NewOrderRepo(db.Collection("orders")),
	}, nil
}

// ensureIndexes creates the unique email indexes the upsert paths depend
// on. Mongo only dedupes concurrent upserts when the filter's equality
// fields carry a unique index, so without these, racing upserts in
// userRepository.Upsert and cartRepository.AddItem could each insert a
// document for the same email.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{"users", "carts"} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return fmt.Errorf("%s user_email index: %w", name, err)
		}
	}

	return nil
}

func (r *Repositories) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return r.client.Disconnect(ctx)
}
