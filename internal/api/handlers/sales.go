package handlers

import (
	"log/slog"
	"net/http"

	"github.com/medimart/medimart/internal/api/middleware"
	apperrors "github.com/medimart/medimart/internal/errors"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/utils/response"
)

type SalesHandler struct {
	salesService service.SalesService
}

func NewSalesHandler(salesService service.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// TotalSales godoc
//	@Summary	Platform-wide sales totals (Admin)
//	@Tags		Sales
//	@Produce	json
//	@Success	200	{object}	models.SalesSummary
//	@Failure	403	{object}	response.ErrorResponse	"Admin role required"
//	@Security	CookieAuth
//	@Router		/total-sales [get]
func (h *SalesHandler) TotalSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		summary, err := h.salesService.TotalSales(r.Context())
		if err != nil {
			logger.Error("Failed to aggregate total sales", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// SellerTotalSales godoc
//	@Summary		The calling seller's totals
//	@Description	Paid revenue comes from the seller's sold items, pending revenue from their pending items.
//	@Tags			Sales
//	@Produce		json
//	@Success		200	{object}	models.SalesSummary
//	@Failure		403	{object}	response.ErrorResponse	"Seller role required"
//	@Security		CookieAuth
//	@Router			/seller-total-sales [get]
func (h *SalesHandler) SellerTotalSales() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			response.Error(w, apperrors.UnauthorizedError("Unauthorized Access"))
			return
		}

		summary, err := h.salesService.SellerTotals(r.Context(), claims.Email)
		if err != nil {
			logger.Error("Failed to compute seller totals",
				slog.String("seller", claims.Email), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}
