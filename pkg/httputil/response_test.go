package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/warehouse-inventory/pkg/apperror"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", fmt.Errorf("inventory 9: %w", apperror.ErrNotFound), http.StatusNotFound, "inventory 9: not found"},
		{"capacity", apperror.ErrCapacityExceeded, http.StatusConflict, "warehouse capacity exceeded"},
		{"internal hides detail", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/inventory/9", nil)
			rec := httptest.NewRecorder()

			RespondError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantError, resp.Error)
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Quantity int `json:"quantity"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"quantity": 4}`))
	require.NoError(t, DecodeJSON(req, &body))
	assert.Equal(t, 4, body.Quantity)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"qty": 4}`))
	assert.ErrorIs(t, DecodeJSON(req, &body), apperror.ErrInvalidArgument)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, DecodeJSON(req, &body), apperror.ErrInvalidArgument)
}

func TestPathID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "12"})
	id, err := PathID(req, "id")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, raw := range []string{"0", "-1", "abc", ""} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": raw})
		_, err := PathID(req, "id")
		assert.ErrorIs(t, err, apperror.ErrInvalidArgument, raw)
	}
}

func TestQueryParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&warehouse_id=3&offset=-2", nil)

	limit, err := QueryInt(req, "limit", 50)
	require.NoError(t, err)
	assert.Equal(t, 5, limit)

	page, err := QueryInt(req, "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, page)

	_, err = QueryInt(req, "offset", 0)
	assert.ErrorIs(t, err, apperror.ErrInvalidArgument)

	wid, err := QueryID(req, "warehouse_id")
	require.NoError(t, err)
	assert.Equal(t, uint(3), wid)

	pid, err := QueryID(req, "product_id")
	require.NoError(t, err)
	assert.Zero(t, pid)
}
