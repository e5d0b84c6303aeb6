package service_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	service "github.com/medimart/medimart/internal/services"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func newSalesService() (service.SalesService, *repository.MockOrderRepository, *repository.MockUserRepository) {
	orderRepo := repository.NewMockOrderRepository()
	userRepo := repository.NewMockUserRepository()

	return service.NewSalesService(orderRepo, userRepo), orderRepo, userRepo
}

func TestTotalSales(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Totals Add Up", func(t *testing.T) {
		// Arrange
		salesService, orderRepo, _ := newSalesService()
		orderRepo.On("TotalSales", ctx).
			Return(models.SalesSummary{TotalSales: 500, TotalPaid: 300, TotalPending: 200}, nil).Once()

		// Act
		summary, err := salesService.TotalSales(ctx)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, summary.TotalSales, summary.TotalPaid+summary.TotalPending)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Failure - Aggregation Error", func(t *testing.T) {
		// Arrange
		salesService, orderRepo, _ := newSalesService()
		orderRepo.On("TotalSales", ctx).
			Return(models.SalesSummary{}, errors.New("aggregation failed")).Once()

		// Act
		summary, err := salesService.TotalSales(ctx)

		// Assert
		assert.Error(t, err)
		assert.Nil(t, summary)
		appErr, ok := appErrors.IsAppError(err)
		assert.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeDatabaseError, appErr.Code)
	})
}

func TestSellerTotals(t *testing.T) {
	ctx := context.Background()
	seller := "pharma@example.com"

	t.Run("Success - Sums Sold And Pending Items", func(t *testing.T) {
		// Arrange
		salesService, _, userRepo := newSalesService()

		userRepo.On("GetByEmail", ctx, seller).Return(&models.User{
			Email: seller,
			Role:  models.RoleSeller,
			SoldItems: []models.OrderItem{
				{ItemID: "a", UnitPrice: 100, Quantity: 2},
				{ItemID: "b", UnitPrice: 25, Quantity: 1},
			},
			PendingItems: []models.OrderItem{
				{ItemID: "c", UnitPrice: 50, Quantity: 3},
			},
		}, nil).Once()

		// Act
		summary, err := salesService.SellerTotals(ctx, seller)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, float64(225), summary.TotalPaid)
		assert.Equal(t, float64(150), summary.TotalPending)
		assert.Equal(t, float64(375), summary.TotalSales)
		assert.Equal(t, summary.TotalSales, summary.TotalPaid+summary.TotalPending)
		userRepo.AssertExpectations(t)
	})

	t.Run("Success - Seller With No Items Reports Zeros", func(t *testing.T) {
		// Arrange
		salesService, _, userRepo := newSalesService()
		userRepo.On("GetByEmail", ctx, seller).
			Return(&models.User{Email: seller, Role: models.RoleSeller}, nil).Once()

		// Act
		summary, err := salesService.SellerTotals(ctx, seller)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, summary.TotalSales)
		assert.Zero(t, summary.TotalPaid)
		assert.Zero(t, summary.TotalPending)
	})

	t.Run("Success - Unknown Seller Reports Zeros", func(t *testing.T) {
		// Arrange
		salesService, _, userRepo := newSalesService()
		userRepo.On("GetByEmail", ctx, seller).Return(nil, mongo.ErrNoDocuments).Once()

		// Act
		summary, err := salesService.SellerTotals(ctx, seller)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, summary.TotalSales)
	})
}
