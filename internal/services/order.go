package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/medimart/medimart/internal/api/middleware"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	"github.com/medimart/medimart/pkg/sendgrid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type OrderService interface {
	CreateOrder(ctx context.Context, buyerEmail string, req *models.CreateOrderRequest) (*models.Order, error)
	MarkPaid(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context, buyerEmail string) ([]models.Order, error)
	ListAllOrders(ctx context.Context) ([]models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	cartRepo  repository.CartRepository
	email     sendgrid.EmailService
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, cartRepo repository.CartRepository, email sendgrid.EmailService) OrderService {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo, cartRepo: cartRepo, email: email}
}

// CreateOrder snapshots the submitted items into an immutable pending
// order. The buyer identity always comes from the authenticated claims,
// never from the request body, and the price is recomputed server side.
// Each item gets a fresh item_id so the seller fan-out lists can be
// reconciled per line later.
func (s *orderService) CreateOrder(ctx context.Context, buyerEmail string, req *models.CreateOrderRequest) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	items := make([]models.OrderItem, 0, len(req.Items))
	total := 0.0

	for _, in := range req.Items {
		item := models.OrderItem{
			ItemID:      uuid.NewString(),
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			SellerEmail: in.SellerEmail,
			UnitPrice:   in.UnitPrice,
			Quantity:    in.Quantity,
		}
		items = append(items, item)
		total += in.UnitPrice * float64(in.Quantity)
	}

	order := &models.Order{
		UserEmail: buyerEmail,
		Price:     total,
		Status:    models.OrderStatusPending,
		Items:     items,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, apperrors.DatabaseError("Failed to create order").WithError(err)
	}

	// Fan-out: each seller sees the line in pending_items until payment.
	// A failed push leaves the order authoritative and is only logged;
	// the seller view is denormalized convenience data.
	for _, item := range order.Items {
		if err := s.userRepo.PushPendingItem(ctx, item.SellerEmail, item); err != nil {
			logger.Warn("failed to push pending item to seller",
				"orderId", order.ID.Hex(), "itemId", item.ItemID, "seller", item.SellerEmail, "error", err)
		}
	}

	// Best effort: checkout empties the buyer's cart.
	if cart, err := s.cartRepo.GetByOwner(ctx, buyerEmail); err == nil {
		if err := s.cartRepo.Clear(ctx, cart.ID); err != nil {
			logger.Warn("failed to clear cart after checkout", "cartId", cart.ID.Hex(), "error", err)
		}
	}

	return order, nil
}

// MarkPaid transitions a pending order to paid exactly once. Calling it
// again on a paid order is a no-op that still returns the order, so
// payment webhooks can retry safely.
func (s *orderService) MarkPaid(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	logger := middleware.LoggerFromContext(ctx)

	transitioned, err := s.orderRepo.MarkPaid(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, apperrors.DatabaseError("Failed to update payment status").WithError(err)
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to reload order").WithError(err)
	}

	if !transitioned {
		return order, nil
	}

	// Move each line from the seller's pending list to the sold list.
	// Push before pull: a crash between the two leaves a duplicate that
	// reconciliation can detect by item_id, never a lost sale.
	for _, item := range order.Items {
		if err := s.userRepo.PushSoldItem(ctx, item.SellerEmail, item); err != nil {
			logger.Warn("failed to push sold item to seller",
				"orderId", orderID.Hex(), "itemId", item.ItemID, "seller", item.SellerEmail, "error", err)
			continue
		}

		if err := s.userRepo.PullPendingItem(ctx, item.SellerEmail, item.ItemID); err != nil {
			logger.Warn("sold item pushed but pending item not removed, needs reconciliation",
				"orderId", orderID.Hex(), "itemId", item.ItemID, "seller", item.SellerEmail, "error", err)
		}
	}

	if s.email != nil {
		subject := "Your payment was received"
		body := fmt.Sprintf("Your order %s has been paid. Total: %.2f", order.ID.Hex(), order.Price)
		if err := s.email.Send(ctx, order.UserEmail, subject, body, ""); err != nil {
			logger.Warn("failed to send payment confirmation email", "orderId", orderID.Hex(), "error", err)
		}
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, buyerEmail string) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByBuyer(ctx, buyerEmail)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}

func (s *orderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to list orders").WithError(err)
	}

	if orders == nil {
		orders = []models.Order{}
	}

	return orders, nil
}
