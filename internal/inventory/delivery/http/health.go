package http

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/warehouse-inventory/pkg/httputil"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// RegisterHealthCheck registers GET /health. A nil check always reports healthy.
//
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} httputil.Response
// @Failure 503 {object} httputil.Response
// @Router /health [get]
func RegisterHealthCheck(router *mux.Router, check func(ctx context.Context) error) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				logger.Warn(r.Context()).Err(err).Msg("Health check failed")
				httputil.RespondMessage(w, http.StatusServiceUnavailable, "Database unavailable")
				return
			}
		}

		httputil.RespondJSON(w, http.StatusOK, httputil.Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods(http.MethodGet)
}

// RegisterSwaggerDocs mounts the Swagger UI under /swagger/
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}
