package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vfg2006/sales-lakehouse/internal/api/handler/router"
	"github.com/vfg2006/sales-lakehouse/internal/usecases/pipeline"
	"github.com/vfg2006/sales-lakehouse/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Pipeline(executor pipeline.Executor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline/run",
			Method:      http.MethodPost,
			Handler:     RunPipeline(executor),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/pipeline/status",
			Method:      http.MethodGet,
			Handler:     GetPipelineStatus(executor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func PipelineSync(sync SyncService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/pipeline/run",
			Method:      http.MethodPost,
			Handler:     TriggerPipelineSync(sync),
			Middlewares: []func(http.Handler) http.Handler{middleware.OperatorOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetPipelineSyncStatus(sync),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Gold(reader ViewReader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/gold",
			Method:      http.MethodGet,
			Handler:     ListGoldViews(),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/gold/:view",
			Method:      http.MethodGet,
			Handler:     GetGoldView(reader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
