package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-lakehouse/internal/observability/metrics"
)

func TestRouter(t *testing.T) {
	registry := prometheus.NewRegistry()
	var order []string

	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(
		WithMetrics(metrics.NewHTTPMetrics(registry)),
		WithRoutes(Route{
			Path:   "/v1/gold/:view",
			Method: http.MethodGet,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, httprouter.ParamsFromContext(r.Context()).ByName("view"))
			}),
			Middlewares: []func(http.Handler) http.Handler{mark("primeiro"), mark("segundo")},
		}),
	)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/gold/monthly_sales", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"primeiro", "segundo", "monthly_sales"}, order)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nada", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	count, err := testutil.GatherAndCount(registry, "lakehouse_http_requests_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
