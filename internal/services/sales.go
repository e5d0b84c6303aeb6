package service

import (
	"context"
	"errors"

	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	repository "github.com/medimart/medimart/internal/repositories"
	"go.mongodb.org/mongo-driver/mongo"
)

type SalesService interface {
	TotalSales(ctx context.Context) (*models.SalesSummary, error)
	SellerTotals(ctx context.Context, sellerEmail string) (*models.SalesSummary, error)
}

type salesService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

func NewSalesService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) SalesService {
	return &salesService{orderRepo: orderRepo, userRepo: userRepo}
}

func (s *salesService) TotalSales(ctx context.Context) (*models.SalesSummary, error) {
	summary, err := s.orderRepo.TotalSales(ctx)
	if err != nil {
		return nil, apperrors.DatabaseError("Failed to aggregate sales").WithError(err)
	}

	return &summary, nil
}

// SellerTotals derives the caller's figures from the denormalized
// pending_items and sold_items lists on the user document. A seller with
// no recorded items reports zeros.
func (s *salesService) SellerTotals(ctx context.Context, sellerEmail string) (*models.SalesSummary, error) {
	user, err := s.userRepo.GetByEmail(ctx, sellerEmail)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.SalesSummary{}, nil
		}

		return nil, apperrors.DatabaseError("Failed to look up seller").WithError(err)
	}

	summary := &models.SalesSummary{}

	for _, item := range user.SoldItems {
		summary.TotalPaid += item.UnitPrice * float64(item.Quantity)
	}

	for _, item := range user.PendingItems {
		summary.TotalPending += item.UnitPrice * float64(item.Quantity)
	}

	summary.TotalSales = summary.TotalPaid + summary.TotalPending

	return summary, nil
}
