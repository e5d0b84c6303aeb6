package service

import (
	"context"
	"math"

	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	"github.com/medimart/medimart/pkg/stripe"
)

type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error)
}

type paymentService struct {
	client   stripe.Client
	currency string
}

func NewPaymentService(client stripe.Client, currency string) PaymentService {
	return &paymentService{client: client, currency: currency}
}

func (s *paymentService) CreatePaymentIntent(_ context.Context, req *models.PaymentIntentRequest) (*models.PaymentIntentResponse, error) {

	// Gateway amounts are integral minor units.
	amount := int64(math.Round(req.Price * 100))
	if amount <= 0 {
		return nil, apperrors.BadRequestError("Price must be greater than zero")
	}

	intent, err := s.client.CreatePaymentIntent(amount, s.currency, "")
	if err != nil {
		return nil, apperrors.ThirdPartyError("Failed to create payment intent").WithError(err)
	}

	return &models.PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}
