package mocks

import (
	"context"

	"github.com/medimart/medimart/internal/models"
	service "github.com/medimart/medimart/internal/services"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testify mocks for the service interfaces, used by the handler tests.

type UserService struct{ mock.Mock }

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.RegisterResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) IssueToken(ctx context.Context, req *models.TokenRequest) (*service.TokenIssue, error) {
	args := m.Called(ctx, req)
	if issue, ok := args.Get(0).(*service.TokenIssue); ok {
		return issue, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]models.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *UserService) ChangeRole(ctx context.Context, req *models.ChangeRoleRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *UserService) HasRole(ctx context.Context, email string, role models.Role) (bool, error) {
	args := m.Called(ctx, email, role)

	return args.Bool(0), args.Error(1)
}

func (m *UserService) ResolveRole(ctx context.Context, email string) (models.Role, error) {
	args := m.Called(ctx, email)

	return args.Get(0).(models.Role), args.Error(1)
}

type CatalogService struct{ mock.Mock }

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) GetCategory(ctx context.Context, id primitive.ObjectID) (*models.CategoryDetail, error) {
	args := m.Called(ctx, id)
	if detail, ok := args.Get(0).(*models.CategoryDetail); ok {
		return detail, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) ListProducts(ctx context.Context, filters map[string]string) ([]models.Product, error) {
	args := m.Called(ctx, filters)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CatalogService) RebuildCategory(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*models.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

type CartService struct{ mock.Mock }

func (m *CartService) GetCart(ctx context.Context, callerEmail, ownerEmail string) (*models.CartView, error) {
	args := m.Called(ctx, callerEmail, ownerEmail)
	if view, ok := args.Get(0).(*models.CartView); ok {
		return view, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error) {
	args := m.Called(ctx, ownerEmail, productID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *CartService) ChangeQuantity(ctx context.Context, callerEmail string, cartID, productID primitive.ObjectID, direction models.QuantityDirection) error {
	return m.Called(ctx, callerEmail, cartID, productID, direction).Error(0)
}

func (m *CartService) ClearCart(ctx context.Context, callerEmail string, cartID primitive.ObjectID) error {
	return m.Called(ctx, callerEmail, cartID).Error(0)
}

type OrderService struct{ mock.Mock }

func (m *OrderService) CreateOrder(ctx context.Context, buyerEmail string, req *models.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, buyerEmail, req)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) MarkPaid(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, buyerEmail string) ([]models.Order, error) {
	args := m.Called(ctx, buyerEmail)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

type SalesService struct{ mock.Mock }

func (m *SalesService) TotalSales(ctx context.Context) (*models.SalesSummary, error) {
	args := m.Called(ctx)
	if summary, ok := args.Get(0).(*models.SalesSummary); ok {
		return summary, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *SalesService) SellerTotals(ctx context.Context, sellerEmail string) (*models.SalesSummary, error) {
	args := m.Called(ctx, sellerEmail)
	if summary, ok := args.Get(0).(*models.SalesSummary); ok {
		return summary, args.Error(1)
	}

	return nil, args.Error(1)
}

type PaymentService struct{ mock.Mock }

func (m *PaymentService) CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.PaymentIntentResponse); ok {
		return resp, args.Error(1)
	}

	return nil, args.Error(1)
}
