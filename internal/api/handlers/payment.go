package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/medimart/medimart/internal/api/middleware"
	"github.com/medimart/medimart/internal/models"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/utils"
	"github.com/medimart/medimart/internal/utils/response"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: validator.New()}
}

// CreatePaymentIntent godoc
//	@Summary		Create a payment intent
//	@Description	Returns the gateway client secret for the given amount. The caller completes the payment on the client side and then hits the update-payment-status route.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			payment	body		models.PaymentIntentRequest	true	"Amount in major currency units"
//	@Success		200		{object}	models.PaymentIntentResponse
//	@Failure		400		{object}	response.ErrorResponse	"Non-positive amount"
//	@Failure		502		{object}	response.ErrorResponse	"Payment gateway error"
//	@Router			/create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		var req models.PaymentIntentRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		intent, err := h.paymentService.CreatePaymentIntent(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create payment intent",
				slog.Float64("price", req.Price), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment intent created", slog.Float64("price", req.Price))
		response.WriteJson(w, http.StatusOK, intent)
	}
}
