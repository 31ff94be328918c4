package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/internal/inventory/memstore"
	"github.com/tair/warehouse-inventory/pkg/auth"
	"github.com/tair/warehouse-inventory/pkg/middleware"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type api struct {
	t      *testing.T
	router *mux.Router
	token  string
}

func newAPI(t *testing.T, protect middleware.Protect) *api {
	t.Helper()
	handlers := InitializeHandlers(memstore.New().Stores(), nil, nil)
	router := mux.NewRouter()
	handlers.Inventory.RegisterRoutes(router, protect)
	handlers.Products.RegisterRoutes(router, protect)
	handlers.Warehouses.RegisterRoutes(router, protect)
	return &api{t: t, router: router}
}

func (a *api) do(method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (a *api) createID(path string, body interface{}) uint {
	a.t.Helper()
	rec, env := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, env.Error)
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &created))
	return created.ID
}

func TestInventoryLifecycle(t *testing.T) {
	a := newAPI(t, middleware.NoAuth)

	w1 := a.createID("/api/warehouses", map[string]interface{}{"name": "North", "location": "Oslo", "max_capacity": 100})
	w2 := a.createID("/api/warehouses", map[string]interface{}{"name": "South", "location": "Rome", "max_capacity": 30})
	p := a.createID("/api/products", map[string]interface{}{"name": "Bolt", "sku": "B-1"})

	inv := a.createID("/api/inventory", map[string]interface{}{
		"warehouse_id": w1, "product_id": p, "quantity": 50, "storage_location": "A1",
	})

	t.Run("get preloads associations", func(t *testing.T) {
		rec, env := a.do(http.MethodGet, fmt.Sprintf("/api/inventory/%d", inv), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var got struct {
			Quantity  int `json:"quantity"`
			Warehouse struct {
				Name string `json:"name"`
			} `json:"warehouse"`
			Product struct {
				SKU string `json:"sku"`
			} `json:"product"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 50, got.Quantity)
		assert.Equal(t, "North", got.Warehouse.Name)
		assert.Equal(t, "B-1", got.Product.SKU)
	})

	t.Run("capacity rejection maps to 409", func(t *testing.T) {
		rec, env := a.do(http.MethodPost, "/api/inventory", map[string]interface{}{
			"warehouse_id": w1, "product_id": p, "quantity": 51, "storage_location": "A1",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, env.Success)
		assert.Contains(t, env.Error, "capacity")
	})

	t.Run("transfer", func(t *testing.T) {
		body := map[string]interface{}{
			"source_warehouse_id": w1, "destination_warehouse_id": w2, "product_id": p, "amount": 20,
		}
		rec, env := a.do(http.MethodPost, "/api/inventory/transfer", body)
		require.Equal(t, http.StatusOK, rec.Code, env.Error)
		var result struct {
			SourceRemaining     int `json:"source_remaining"`
			DestinationQuantity int `json:"destination_quantity"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, 30, result.SourceRemaining)
		assert.Equal(t, 20, result.DestinationQuantity)

		body["amount"] = 11
		rec, _ = a.do(http.MethodPost, "/api/inventory/transfer", body)
		assert.Equal(t, http.StatusConflict, rec.Code)

		body["destination_warehouse_id"] = w1
		rec, _ = a.do(http.MethodPost, "/api/inventory/transfer", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list filters by warehouse", func(t *testing.T) {
		rec, env := a.do(http.MethodGet, fmt.Sprintf("/api/inventory?warehouse_id=%d", w2), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var page struct {
			Items []struct {
				StorageLocation string `json:"storage_location"`
			} `json:"items"`
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.EqualValues(t, 1, page.Total)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "Transferred", page.Items[0].StorageLocation)
	})

	t.Run("warehouse load and stats", func(t *testing.T) {
		rec, env := a.do(http.MethodGet, fmt.Sprintf("/api/warehouses/%d/load", w2), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var load struct {
			Load      int64 `json:"load"`
			Available int64 `json:"available"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &load))
		assert.EqualValues(t, 20, load.Load)
		assert.EqualValues(t, 10, load.Available)

		rec, env = a.do(http.MethodGet, "/api/inventory/stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var stats struct {
			TotalUnits   int64 `json:"total_units"`
			TotalRecords int64 `json:"total_records"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &stats))
		assert.EqualValues(t, 50, stats.TotalUnits)
		assert.EqualValues(t, 2, stats.TotalRecords)
	})

	t.Run("partial update", func(t *testing.T) {
		rec, env := a.do(http.MethodPut, fmt.Sprintf("/api/inventory/%d", inv), map[string]interface{}{"quantity": 25})
		require.Equal(t, http.StatusOK, rec.Code, env.Error)

		rec, _ = a.do(http.MethodPut, fmt.Sprintf("/api/inventory/%d", inv), map[string]interface{}{"quantity": 0})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("referenced entities cannot be deleted", func(t *testing.T) {
		rec, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/warehouses/%d", w1), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		rec, _ = a.do(http.MethodDelete, fmt.Sprintf("/api/products/%d", p), nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/inventory/%d", inv), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		rec, _ = a.do(http.MethodGet, fmt.Sprintf("/api/inventory/%d", inv), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBadRequests(t *testing.T) {
	a := newAPI(t, middleware.NoAuth)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"unknown field", http.MethodPost, "/api/products", map[string]interface{}{"name": "Bolt", "sku": "B", "price": 1}},
		{"bad limit", http.MethodGet, "/api/inventory?limit=-1", nil},
		{"limit above max", http.MethodGet, "/api/inventory?limit=5000", nil},
		{"bad filter", http.MethodGet, "/api/inventory?product_id=abc", nil},
		{"zero capacity", http.MethodPost, "/api/warehouses", map[string]interface{}{"name": "N", "location": "L", "max_capacity": 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := a.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestMutatingRoutesRequireAdmin(t *testing.T) {
	const secret = "test-secret"
	a := newAPI(t, middleware.AdminOnly(secret))

	rec, _ := a.do(http.MethodGet, "/api/warehouses", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := map[string]interface{}{"name": "North", "location": "Oslo", "max_capacity": 10}
	rec, _ = a.do(http.MethodPost, "/api/warehouses", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.GenerateToken(secret, 1, "admin", auth.RoleAdmin, time.Minute)
	require.NoError(t, err)
	a.token = token
	rec, _ = a.do(http.MethodPost, "/api/warehouses", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
