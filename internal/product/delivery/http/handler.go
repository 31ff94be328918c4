package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/product/usecase/command"
	"github.com/tair/warehouse-inventory/internal/product/usecase/query"
	"github.com/tair/warehouse-inventory/pkg/httputil"
	"github.com/tair/warehouse-inventory/pkg/middleware"
)

// ProductHandler handles HTTP requests for the product catalog using CQRS pattern
type ProductHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getProductHandler *query.GetProductHandler
	listHandler       *query.ListProductsHandler
}

// NewProductHandler creates a new product handler
func NewProductHandler(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
) *ProductHandler {
	return &ProductHandler{
		createHandler:     createHandler,
		updateHandler:     updateHandler,
		deleteHandler:     deleteHandler,
		getProductHandler: getProductHandler,
		listHandler:       listHandler,
	}
}

func (h *ProductHandler) RegisterRoutes(router *mux.Router, protect middleware.Protect) {
	// Public routes (no auth required)
	router.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)

	// Admin routes (admin role required)
	router.HandleFunc("/api/products", protect(h.CreateProduct)).Methods(http.MethodPost)
	router.HandleFunc("/api/products/{id:[0-9]+}", protect(h.UpdateProduct)).Methods(http.MethodPut)
	router.HandleFunc("/api/products/{id:[0-9]+}", protect(h.DeleteProduct)).Methods(http.MethodDelete)
}

type productRequest struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a new product (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body productRequest true "Product data"
// @Success 201 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, "Product created successfully", product)
}

// ListProducts godoc
// @Summary List all products
// @Description Get a list of all products with pagination
// @Tags Products
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} httputil.Response{data=httputil.ListData}
// @Router /api/products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}
	offset, err := httputil.QueryInt(r, "offset", 0)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	page, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Limit: limit, Offset: offset})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", httputil.ListData{
		Items:  page.Items,
		Total:  page.Total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetProduct godoc
// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	product, err := h.getProductHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", product)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Replaces name, sku and description (Admin only)
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body productRequest true "Product data"
// @Success 200 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	var req productRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct godoc
// @Summary Delete product
// @Description Fails with 409 while inventory still references the product (Admin only)
// @Tags Products
// @Security BearerAuth
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Product deleted successfully", nil)
}
