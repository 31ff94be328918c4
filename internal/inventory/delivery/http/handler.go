package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/inventory/usecase/command"
	"github.com/tair/warehouse-inventory/internal/inventory/usecase/query"
	"github.com/tair/warehouse-inventory/pkg/httputil"
	"github.com/tair/warehouse-inventory/pkg/middleware"
)

// IdempotencyKeyHeader carries the client supplied key that deduplicates transfers
const IdempotencyKeyHeader = "Idempotency-Key"

// InventoryHandler handles HTTP requests for the stock ledger using CQRS pattern
type InventoryHandler struct {
	// Command handlers
	createHandler   *command.CreateInventoryHandler
	updateHandler   *command.UpdateInventoryHandler
	deleteHandler   *command.DeleteInventoryHandler
	transferHandler *command.TransferStockHandler

	// Query handlers
	getHandler   *query.GetInventoryHandler
	listHandler  *query.ListInventoryHandler
	statsHandler *query.GetStatsHandler
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	createHandler *command.CreateInventoryHandler,
	updateHandler *command.UpdateInventoryHandler,
	deleteHandler *command.DeleteInventoryHandler,
	transferHandler *command.TransferStockHandler,
	getHandler *query.GetInventoryHandler,
	listHandler *query.ListInventoryHandler,
	statsHandler *query.GetStatsHandler,
) *InventoryHandler {
	return &InventoryHandler{
		createHandler:   createHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		transferHandler: transferHandler,
		getHandler:      getHandler,
		listHandler:     listHandler,
		statsHandler:    statsHandler,
	}
}

// RegisterRoutes mounts the ledger routes. Mutating routes go through protect.
func (h *InventoryHandler) RegisterRoutes(router *mux.Router, protect middleware.Protect) {
	// Public routes
	router.HandleFunc("/api/inventory", h.ListInventory).Methods(http.MethodGet)
	router.HandleFunc("/api/inventory/stats", h.GetStats).Methods(http.MethodGet)
	router.HandleFunc("/api/inventory/{id:[0-9]+}", h.GetInventory).Methods(http.MethodGet)

	// Admin routes
	router.HandleFunc("/api/inventory", protect(h.CreateInventory)).Methods(http.MethodPost)
	router.HandleFunc("/api/inventory/transfer", protect(h.TransferStock)).Methods(http.MethodPost)
	router.HandleFunc("/api/inventory/{id:[0-9]+}", protect(h.UpdateInventory)).Methods(http.MethodPut)
	router.HandleFunc("/api/inventory/{id:[0-9]+}", protect(h.DeleteInventory)).Methods(http.MethodDelete)
}

type createInventoryRequest struct {
	WarehouseID     uint   `json:"warehouse_id"`
	ProductID       uint   `json:"product_id"`
	Quantity        int    `json:"quantity"`
	StorageLocation string `json:"storage_location"`
}

type updateInventoryRequest struct {
	WarehouseID     *uint   `json:"warehouse_id"`
	ProductID       *uint   `json:"product_id"`
	Quantity        *int    `json:"quantity"`
	StorageLocation *string `json:"storage_location"`
}

type transferStockRequest struct {
	SourceWarehouseID      uint `json:"source_warehouse_id"`
	DestinationWarehouseID uint `json:"destination_warehouse_id"`
	ProductID              uint `json:"product_id"`
	Amount                 int  `json:"amount"`
}

// CreateInventory godoc
// @Summary Add stock
// @Description Records stock of a product in a warehouse. An existing record for the same pair is topped up.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body createInventoryRequest true "Inventory data"
// @Success 201 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/inventory [post]
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req createInventoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	inventory, err := h.createHandler.Handle(r.Context(), command.CreateInventoryCommand{
		WarehouseID:     req.WarehouseID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		StorageLocation: req.StorageLocation,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, "Inventory created successfully", inventory)
}

// ListInventory godoc
// @Summary List inventory
// @Description Lists inventory records, optionally filtered by warehouse or product
// @Tags Inventory
// @Produce json
// @Param warehouse_id query int false "Warehouse filter"
// @Param product_id query int false "Product filter"
// @Param limit query int false "Limit (0 lists everything)"
// @Param offset query int false "Offset"
// @Success 200 {object} httputil.Response{data=httputil.ListData}
// @Failure 400 {object} httputil.Response
// @Router /api/inventory [get]
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	q, err := listQuery(r)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	page, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", httputil.ListData{
		Items:  page.Items,
		Total:  page.Total,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
}

func listQuery(r *http.Request) (query.ListInventoryQuery, error) {
	var (
		q   query.ListInventoryQuery
		err error
	)
	if q.WarehouseID, err = httputil.QueryID(r, "warehouse_id"); err != nil {
		return q, err
	}
	if q.ProductID, err = httputil.QueryID(r, "product_id"); err != nil {
		return q, err
	}
	if q.Limit, err = httputil.QueryInt(r, "limit", 0); err != nil {
		return q, err
	}
	if q.Offset, err = httputil.QueryInt(r, "offset", 0); err != nil {
		return q, err
	}
	return q, nil
}

// GetInventory godoc
// @Summary Get inventory record
// @Tags Inventory
// @Produce json
// @Param id path int true "Inventory ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/inventory/{id} [get]
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	inventory, err := h.getHandler.Handle(r.Context(), query.GetInventoryQuery{ID: id})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", inventory)
}

// UpdateInventory godoc
// @Summary Update inventory record
// @Description Partial update. Moving a record onto a pair that already has a record merges the two.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Inventory ID"
// @Param request body updateInventoryRequest true "Fields to change"
// @Success 200 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/inventory/{id} [put]
func (h *InventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	var req updateInventoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	inventory, err := h.updateHandler.Handle(r.Context(), command.UpdateInventoryCommand{
		ID:              id,
		WarehouseID:     req.WarehouseID,
		ProductID:       req.ProductID,
		Quantity:        req.Quantity,
		StorageLocation: req.StorageLocation,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Inventory updated successfully", inventory)
}

// DeleteInventory godoc
// @Summary Delete inventory record
// @Tags Inventory
// @Security BearerAuth
// @Produce json
// @Param id path int true "Inventory ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteInventoryCommand{ID: id}); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Inventory deleted successfully", nil)
}

// TransferStock godoc
// @Summary Transfer stock between warehouses
// @Description Moves units of a product atomically. A repeated Idempotency-Key is rejected.
// @Tags Inventory
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Deduplication key"
// @Param request body transferStockRequest true "Transfer"
// @Success 200 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/inventory/transfer [post]
func (h *InventoryHandler) TransferStock(w http.ResponseWriter, r *http.Request) {
	var req transferStockRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	result, err := h.transferHandler.Handle(r.Context(), command.TransferStockCommand{
		SourceWarehouseID:      req.SourceWarehouseID,
		DestinationWarehouseID: req.DestinationWarehouseID,
		ProductID:              req.ProductID,
		Amount:                 req.Amount,
		IdempotencyKey:         r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Stock transferred successfully", result)
}

// GetStats godoc
// @Summary Inventory dashboard
// @Description Totals plus per-warehouse load and utilization
// @Tags Inventory
// @Produce json
// @Success 200 {object} httputil.Response{data=query.InventoryStats}
// @Router /api/inventory/stats [get]
func (h *InventoryHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(r.Context(), query.GetStatsQuery{})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", stats)
}
