package service

import (
	"context"
	"errors"
	"strconv"

	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id primitive.ObjectID) (*models.CategoryDetail, error)
	ListProducts(ctx context.Context, filters map[string]string) ([]models.Product, error)
	// RebuildCategory regenerates the denormalized productIds list from
	// the products collection. Category product lists are not kept
	// live-consistent with product writes; this is the maintenance hook.
	RebuildCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{categoryRepo: categoryRepo, productRepo: productRepo}
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list categories").WithError(err)
	}

	return categories, nil
}

func (s *catalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.CategoryDetail, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to get category").WithError(err)
	}

	products, err := s.productRepo.ListByIDs(ctx, category.ProductIDs)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to resolve category products").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return &models.CategoryDetail{Category: *category, Products: products}, nil
}

func (s *catalogService) ListProducts(ctx context.Context, filters map[string]string) ([]models.Product, error) {
	filter := bson.M{}

	for key, value := range filters {
		switch key {
		case "_id":
			id, err := primitive.ObjectIDFromHex(value)
			if err != nil {
				return nil, apperrors.BadRequestError("Invalid _id filter").WithError(err)
			}
			filter[key] = id
		case "price_per_unit":
			price, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, apperrors.BadRequestError("Invalid price filter").WithError(err)
			}
			filter[key] = price
		default:
			filter[key] = value
		}
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list products").WithError(err)
	}

	if products == nil {
		products = []models.Product{}
	}

	return products, nil
}

func (s *catalogService) RebuildCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundError("Category not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to get category").WithError(err)
	}

	products, err := s.productRepo.List(ctx, bson.M{"category": category.Name})
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list category products").WithError(err)
	}

	productIDs := make([]primitive.ObjectID, 0, len(products))
	for _, product := range products {
		productIDs = append(productIDs, product.ID)
	}

	if err := s.categoryRepo.SetProductIDs(ctx, id, productIDs); err != nil {
		return nil, apperrors.DatabaseError("Failed to update category products").WithError(err)
	}

	category.ProductIDs = productIDs

	return category, nil
}
