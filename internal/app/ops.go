package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"esimprocessor/pkg/health"
	"esimprocessor/pkg/metrics"
	"esimprocessor/pkg/postgres"
)

// newOpsHandler exposes liveness, readiness and metrics endpoints.
func newOpsHandler(pg *postgres.Postgres, imapAddr string) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	registry := health.NewRegistry(
		health.NewPostgresChecker(pg.Pool),
		health.NewIMAPChecker(imapAddr),
	)

	engine.GET("/live", health.LivenessHandler())
	engine.GET("/ready", health.ReadinessHandler(registry, health.DefaultTimeout))
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	return engine
}
