package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/internal/warehouse/usecase/command"
	"github.com/tair/warehouse-inventory/internal/warehouse/usecase/query"
	"github.com/tair/warehouse-inventory/pkg/httputil"
	"github.com/tair/warehouse-inventory/pkg/middleware"
)

// WarehouseHandler handles HTTP requests for warehouses
type WarehouseHandler struct {
	createHandler *command.CreateWarehouseHandler
	updateHandler *command.UpdateWarehouseHandler
	deleteHandler *command.DeleteWarehouseHandler

	getHandler  *query.GetWarehouseHandler
	listHandler *query.ListWarehousesHandler
	loadHandler *query.GetLoadHandler
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(
	createHandler *command.CreateWarehouseHandler,
	updateHandler *command.UpdateWarehouseHandler,
	deleteHandler *command.DeleteWarehouseHandler,
	getHandler *query.GetWarehouseHandler,
	listHandler *query.ListWarehousesHandler,
	loadHandler *query.GetLoadHandler,
) *WarehouseHandler {
	return &WarehouseHandler{
		createHandler: createHandler,
		updateHandler: updateHandler,
		deleteHandler: deleteHandler,
		getHandler:    getHandler,
		listHandler:   listHandler,
		loadHandler:   loadHandler,
	}
}

func (h *WarehouseHandler) RegisterRoutes(router *mux.Router, protect middleware.Protect) {
	router.HandleFunc("/api/warehouses", h.ListWarehouses).Methods(http.MethodGet)
	router.HandleFunc("/api/warehouses/{id:[0-9]+}", h.GetWarehouse).Methods(http.MethodGet)
	router.HandleFunc("/api/warehouses/{id:[0-9]+}/load", h.GetLoad).Methods(http.MethodGet)

	router.HandleFunc("/api/warehouses", protect(h.CreateWarehouse)).Methods(http.MethodPost)
	router.HandleFunc("/api/warehouses/{id:[0-9]+}", protect(h.UpdateWarehouse)).Methods(http.MethodPut)
	router.HandleFunc("/api/warehouses/{id:[0-9]+}", protect(h.DeleteWarehouse)).Methods(http.MethodDelete)
}

type warehouseRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	MaxCapacity int    `json:"max_capacity"`
}

// CreateWarehouse godoc
// @Summary Create a warehouse
// @Tags Warehouses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body warehouseRequest true "Warehouse data"
// @Success 201 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Router /api/warehouses [post]
func (h *WarehouseHandler) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var req warehouseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	warehouse, err := h.createHandler.Handle(r.Context(), command.CreateWarehouseCommand{
		Name:        req.Name,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, "Warehouse created successfully", warehouse)
}

// ListWarehouses godoc
// @Summary List warehouses
// @Tags Warehouses
// @Produce json
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} httputil.Response{data=httputil.ListData}
// @Router /api/warehouses [get]
func (h *WarehouseHandler) ListWarehouses(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.listHandler.Handle(r.Context(), query.ListWarehousesQuery{Limit: limit, Offset: offset})
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

// GetWarehouse godoc
// @Summary Get warehouse by ID
// @Tags Warehouses
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Router /api/warehouses/{id} [get]
func (h *WarehouseHandler) GetWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	warehouse, err := h.getHandler.Handle(r.Context(), query.GetWarehouseQuery{ID: id})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", warehouse)
}

// GetLoad godoc
// @Summary Warehouse load
// @Description Units stored, capacity, free space and utilization ratio
// @Tags Warehouses
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} httputil.Response{data=domain.Load}
// @Failure 404 {object} httputil.Response
// @Router /api/warehouses/{id}/load [get]
func (h *WarehouseHandler) GetLoad(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	load, err := h.loadHandler.Handle(r.Context(), query.GetLoadQuery{ID: id})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "", load)
}

// UpdateWarehouse godoc
// @Summary Update warehouse
// @Description Replaces every field. max_capacity may not drop below the stored units.
// @Tags Warehouses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Warehouse ID"
// @Param request body warehouseRequest true "Warehouse data"
// @Success 200 {object} httputil.Response
// @Failure 400 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/warehouses/{id} [put]
func (h *WarehouseHandler) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	var req warehouseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	warehouse, err := h.updateHandler.Handle(r.Context(), command.UpdateWarehouseCommand{
		ID:          id,
		Name:        req.Name,
		Location:    req.Location,
		MaxCapacity: req.MaxCapacity,
	})
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Warehouse updated successfully", warehouse)
}

// DeleteWarehouse godoc
// @Summary Delete warehouse
// @Description Fails with 409 while the warehouse still holds inventory
// @Tags Warehouses
// @Security BearerAuth
// @Produce json
// @Param id path int true "Warehouse ID"
// @Success 200 {object} httputil.Response
// @Failure 404 {object} httputil.Response
// @Failure 409 {object} httputil.Response
// @Router /api/warehouses/{id} [delete]
func (h *WarehouseHandler) DeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathID(r, "id")
	if err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteWarehouseCommand{ID: id}); err != nil {
		httputil.RespondError(w, r, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, "Warehouse deleted successfully", nil)
}
