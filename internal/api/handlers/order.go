package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/medimart/medimart/internal/api/middleware"
	apperrors "github.com/medimart/medimart/internal/errors"
	"github.com/medimart/medimart/internal/models"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/utils"
	"github.com/medimart/medimart/internal/utils/response"
)

type OrderHandler struct {
	orderService service.OrderService
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, validator: validator.New()}
}

// CreateOrder godoc
//	@Summary		Place an order
//	@Description	The buyer is always the authenticated caller; a buyer email in the body is ignored. Each item is fanned out to its seller's pending list and the caller's cart is emptied.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CreateOrderRequest	true	"Order items"
//	@Success		201		{object}	models.Order
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Security		CookieAuth
//	@Router			/create-order [post]
func (h *OrderHandler) CreateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		var req models.CreateOrderRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.CreateOrder(r.Context(), claims.Email, &req)
		if err != nil {
			logger.Error("Failed to create order", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Order created",
			slog.String("orderId", order.ID.Hex()), slog.Float64("price", order.Price))
		response.Success(w, http.StatusCreated, order)
	}
}

// UpdatePaymentStatus godoc
//	@Summary		Mark an order paid (Admin)
//	@Description	Moves each item from the seller's pending list to their sold list. Repeating the call for an already paid order succeeds without side effects.
//	@Tags			Orders
//	@Produce		json
//	@Param			orderId	path		string	true	"Order ID"
//	@Success		200		{object}	models.Order
//	@Failure		404		{object}	response.ErrorResponse	"Order not found"
//	@Security		CookieAuth
//	@Router			/update-payment-status/{orderId} [patch]
func (h *OrderHandler) UpdatePaymentStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orderID, err := utils.ParseObjectID(r, "orderId")
		if err != nil {
			response.Error(w, err)
			return
		}

		order, err := h.orderService.MarkPaid(r.Context(), orderID)
		if err != nil {
			logger.Error("Failed to update payment status",
				slog.String("orderId", orderID.Hex()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Payment status updated", slog.String("orderId", orderID.Hex()))
		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//	@Summary	List the caller's orders
//	@Tags		Orders
//	@Produce	json
//	@Success	200	{array}		models.Order
//	@Failure	401	{object}	response.ErrorResponse	"Authentication required"
//	@Security	CookieAuth
//	@Router		/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		orders, err := h.orderService.ListOrders(r.Context(), claims.Email)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

// ListAllOrders godoc
//	@Summary	List every order (Admin)
//	@Tags		Orders
//	@Produce	json
//	@Success	200	{array}		models.Order
//	@Failure	403	{object}	response.ErrorResponse	"Admin role required"
//	@Security	CookieAuth
//	@Router		/orders/all [get]
func (h *OrderHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		orders, err := h.orderService.ListAllOrders(r.Context())
		if err != nil {
			logger.Error("Failed to list all orders", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}
