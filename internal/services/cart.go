package service

import (
	"context"
	"errors"

	"github.com/medimart/medimart/internal/api/middleware"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CartService interface {
	GetCart(ctx context.Context, callerEmail, ownerEmail string) (*models.CartView, error)
	AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error)
	ChangeQuantity(ctx context.Context, callerEmail string, cartID, productID primitive.ObjectID, direction models.QuantityDirection) error
	ClearCart(ctx context.Context, callerEmail string, cartID primitive.ObjectID) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo, userRepo: userRepo}
}

// GetCart returns the owner's cart with every line joined against the
// products collection. A user with no cart document gets an empty view,
// not an error.
func (s *cartService) GetCart(ctx context.Context, callerEmail, ownerEmail string) (*models.CartView, error) {
	if callerEmail != ownerEmail {
		return nil, apperrors.ForbiddenError("Forbidden Access")
	}

	cart, err := s.cartRepo.GetByOwner(ctx, ownerEmail)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.CartView{UserEmail: ownerEmail, Items: []models.CartLineView{}}, nil
		}

		return nil, apperrors.DatabaseError("Failed to get cart").WithError(err)
	}

	view := &models.CartView{
		ID:        cart.ID,
		UserEmail: cart.UserEmail,
		Items:     make([]models.CartLineView, 0, len(cart.Items)),
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, line := range cart.Items {
		ids = append(ids, line.ProductID)
	}

	products, err := s.productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to resolve cart products").WithError(err)
	}

	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	// A line whose product has since been deleted is dropped from the
	// view rather than surfaced as an error.
	for _, line := range cart.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			continue
		}

		view.Items = append(view.Items, models.CartLineView{Product: product, Quantity: line.Quantity})
	}

	return view, nil
}

func (s *cartService) AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundError("Product not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to look up product").WithError(err)
	}

	cart, err := s.cartRepo.AddItem(ctx, ownerEmail, productID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to add item to cart").WithError(err)
	}

	if err := s.userRepo.LinkCart(ctx, ownerEmail, cart.ID); err != nil {
		middleware.LoggerFromContext(ctx).Warn("failed to link cart to user",
			"email", ownerEmail, "cartId", cart.ID.Hex(), "error", err)
	}

	return cart, nil
}

func (s *cartService) ChangeQuantity(ctx context.Context, callerEmail string, cartID, productID primitive.ObjectID, direction models.QuantityDirection) error {
	if !direction.Valid() {
		return apperrors.BadRequestError("Unknown quantity direction")
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFoundError("Cart not found").WithError(err)
		}

		return apperrors.DatabaseError("Failed to get cart").WithError(err)
	}

	if cart.UserEmail != callerEmail {
		return apperrors.ForbiddenError("Forbidden Access")
	}

	switch direction {
	case models.QuantityIncrement:
		err = s.cartRepo.IncrementQuantity(ctx, cartID, productID)
	case models.QuantityDecrement:
		_, err = s.cartRepo.DecrementQuantity(ctx, cartID, productID)
	}

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFoundError("Item not found in cart").WithError(err)
		}

		return apperrors.DatabaseError("Failed to change quantity").WithError(err)
	}

	return nil
}

func (s *cartService) ClearCart(ctx context.Context, callerEmail string, cartID primitive.ObjectID) error {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.NotFoundError("Cart not found").WithError(err)
		}

		return apperrors.DatabaseError("Failed to get cart").WithError(err)
	}

	if cart.UserEmail != callerEmail {
		return apperrors.ForbiddenError("Forbidden Access")
	}

	if err := s.cartRepo.Clear(ctx, cartID); err != nil {
		return apperrors.DatabaseError("Failed to clear cart").WithError(err)
	}

	return nil
}
