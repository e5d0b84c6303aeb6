package handlers

import (
	"log/slog"
	"net/http"

	"github.com/medimart/medimart/internal/api/middleware"
	service "github.com/medimart/medimart/internal/services"
	"github.com/medimart/medimart/internal/utils"
	"github.com/medimart/medimart/internal/utils/response"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories godoc
//	@Summary	List all categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.Category
//	@Router		/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// GetCategory godoc
//	@Summary		Get a category with its resolved products
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	models.CategoryDetail
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Router			/categories/{id} [get]
func (h *CatalogHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		detail, err := h.catalogService.GetCategory(r.Context(), id)
		if err != nil {
			logger.Error("Failed to get category", slog.String("categoryId", id.Hex()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, detail)
	}
}

// RebuildCategory godoc
//	@Summary		Rebuild a category's product list (Admin)
//	@Description	Regenerates the denormalized productIds list from the products collection.
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	models.Category
//	@Failure		404	{object}	response.ErrorResponse	"Category not found"
//	@Security		CookieAuth
//	@Router			/categories/{id}/rebuild [post]
func (h *CatalogHandler) RebuildCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseObjectID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		category, err := h.catalogService.RebuildCategory(r.Context(), id)
		if err != nil {
			logger.Error("Failed to rebuild category", slog.String("categoryId", id.Hex()), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Category product list rebuilt",
			slog.String("categoryId", id.Hex()), slog.Int("products", len(category.ProductIDs)))
		response.Success(w, http.StatusOK, category)
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Every query parameter passes through as an equality filter, so /products?category=Tablet&seller_email=x@y.z narrows the listing.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}		models.Product
//	@Failure		400	{object}	response.ErrorResponse	"Invalid filter value"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filters := make(map[string]string)
		for key, values := range r.URL.Query() {
			if len(values) > 0 && values[0] != "" {
				filters[key] = values[0]
			}
		}

		products, err := h.catalogService.ListProducts(r.Context(), filters)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, products)
	}
}
