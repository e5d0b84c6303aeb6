package repository

import (
	"context"

	"github.com/medimart/medimart/internal/models"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testify mocks for the repository interfaces, shared by the service and
// handler tests.

type MockUserRepository struct{ mock.Mock }

func NewMockUserRepository() *MockUserRepository { return &MockUserRepository{} }

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) (*primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	if id, ok := args.Get(0).(*primitive.ObjectID); ok {
		return id, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]models.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, email string, role models.Role) error {
	return m.Called(ctx, email, role).Error(0)
}

func (m *MockUserRepository) LinkCart(ctx context.Context, email string, cartID primitive.ObjectID) error {
	return m.Called(ctx, email, cartID).Error(0)
}

func (m *MockUserRepository) PushPendingItem(ctx context.Context, sellerEmail string, item models.OrderItem) error {
	return m.Called(ctx, sellerEmail, item).Error(0)
}

func (m *MockUserRepository) PushSoldItem(ctx context.Context, sellerEmail string, item models.OrderItem) error {
	return m.Called(ctx, sellerEmail, item).Error(0)
}

func (m *MockUserRepository) PullPendingItem(ctx context.Context, sellerEmail, itemID string) error {
	return m.Called(ctx, sellerEmail, itemID).Error(0)
}

type MockCartRepository struct{ mock.Mock }

func NewMockCartRepository() *MockCartRepository { return &MockCartRepository{} }

func (m *MockCartRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Cart, error) {
	args := m.Called(ctx, id)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) GetByOwner(ctx context.Context, ownerEmail string) (*models.Cart, error) {
	args := m.Called(ctx, ownerEmail)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, ownerEmail string, productID primitive.ObjectID) (*models.Cart, error) {
	args := m.Called(ctx, ownerEmail, productID)
	if cart, ok := args.Get(0).(*models.Cart); ok {
		return cart, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCartRepository) IncrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) error {
	return m.Called(ctx, cartID, productID).Error(0)
}

func (m *MockCartRepository) DecrementQuantity(ctx context.Context, cartID, productID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, cartID, productID)

	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, cartID primitive.ObjectID) error {
	return m.Called(ctx, cartID).Error(0)
}

type MockProductRepository struct{ mock.Mock }

func NewMockProductRepository() *MockProductRepository { return &MockProductRepository{} }

func (m *MockProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*models.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter bson.M) ([]models.Product, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockProductRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	if products, ok := args.Get(0).([]models.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

type MockCategoryRepository struct{ mock.Mock }

func NewMockCategoryRepository() *MockCategoryRepository { return &MockCategoryRepository{} }

func (m *MockCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]models.Category); ok {
		return categories, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	args := m.Called(ctx, id)
	if category, ok := args.Get(0).(*models.Category); ok {
		return category, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCategoryRepository) SetProductIDs(ctx context.Context, id primitive.ObjectID, productIDs []primitive.ObjectID) error {
	return m.Called(ctx, id, productIDs).Error(0)
}

type MockOrderRepository struct{ mock.Mock }

func NewMockOrderRepository() *MockOrderRepository { return &MockOrderRepository{} }

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if order, ok := args.Get(0).(*models.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListByBuyer(ctx context.Context, buyerEmail string) ([]models.Order, error) {
	args := m.Called(ctx, buyerEmail)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]models.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockOrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)

	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) TotalSales(ctx context.Context) (models.SalesSummary, error) {
	args := m.Called(ctx)

	return args.Get(0).(models.SalesSummary), args.Error(1)
}

type MockRateLimitRepository struct{ mock.Mock }

func NewMockRateLimitRepository() *MockRateLimitRepository { return &MockRateLimitRepository{} }

func (m *MockRateLimitRepository) CheckTokenRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}
