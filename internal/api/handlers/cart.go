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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get the caller's cart
//	@Description	Only ever shows the caller their own cart; lines are joined with their full product records.
//	@Tags			Carts
//	@Produce		json
//	@Param			email	query		string	true	"Cart owner's email (must match the caller)"
//	@Success		200		{object}	models.CartView
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse	"Requesting another user's cart"
//	@Security		CookieAuth
//	@Router			/carts [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		email := r.URL.Query().Get("email")
		if email == "" {
			response.Error(w, apperrors.BadRequestError("email query parameter is required"))
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.Email, email)
		if err != nil {
			logger.Warn("Failed to get cart", slog.String("owner", email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// AddItem godoc
//	@Summary		Add a product to the caller's cart
//	@Description	Adding the same product again increments the existing line instead of appending a duplicate.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.AddItemRequest	true	"Product ID"
//	@Success		200		{object}	models.Cart
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Security		CookieAuth
//	@Router			/carts [post]
func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), claims.Email, req.ProductID)
		if err != nil {
			logger.Error("Failed to add item to cart",
				slog.String("productId", req.ProductID.Hex()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Item added to cart",
			slog.String("cartId", cart.ID.Hex()), slog.String("productId", req.ProductID.Hex()))
		response.Success(w, http.StatusOK, cart)
	}
}

// ChangeQuantity godoc
//	@Summary		Change a cart line's quantity
//	@Description	Type is "increment" or "decrement". Decrementing a quantity of one removes the line.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			cartId	path		string					true	"Cart ID"
//	@Param			type	path		string					true	"increment or decrement"
//	@Param			item	body		models.AddItemRequest	true	"Product ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		403		{object}	response.ErrorResponse	"Caller does not own the cart"
//	@Failure		404		{object}	response.ErrorResponse	"Cart or line not found"
//	@Security		CookieAuth
//	@Router			/carts/change-quantity/{cartId}/{type} [post]
func (h *CartHandler) ChangeQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		cartID, err := utils.ParseObjectID(r, "cartId")
		if err != nil {
			response.Error(w, err)
			return
		}

		direction := models.QuantityDirection(r.PathValue("type"))
		if !direction.Valid() {
			response.Error(w, apperrors.BadRequestError("Unknown quantity direction"))
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		if err := h.cartService.ChangeQuantity(r.Context(), claims.Email, cartID, req.ProductID, direction); err != nil {
			logger.Warn("Failed to change cart quantity",
				slog.String("cartId", cartID.Hex()),
				slog.String("productId", req.ProductID.Hex()),
				slog.String("direction", string(direction)),
				slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, map[string]bool{"modified": true})
	}
}

// ClearCart godoc
//	@Summary		Empty a cart
//	@Description	Clears the items; the cart document itself is retained.
//	@Tags			Carts
//	@Produce		json
//	@Param			cartId	path		string	true	"Cart ID"
//	@Success		200		{object}	map[string]bool
//	@Failure		403		{object}	response.ErrorResponse	"Caller does not own the cart"
//	@Security		CookieAuth
//	@Router			/carts/clear/{cartId} [delete]
func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		cartID, err := utils.ParseObjectID(r, "cartId")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.cartService.ClearCart(r.Context(), claims.Email, cartID); err != nil {
			logger.Warn("Failed to clear cart", slog.String("cartId", cartID.Hex()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Cart cleared", slog.String("cartId", cartID.Hex()))
		response.Success(w, http.StatusOK, map[string]bool{"cleared": true})
	}
}
