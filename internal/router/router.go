// Package router assembles the gin engine: middleware chain, the public
// booking surface, the admin API and the Prometheus endpoint.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beautybox/salon-api/internal/handler/appointment"
	"github.com/beautybox/salon-api/internal/handler/catalog"
	"github.com/beautybox/salon-api/internal/handler/client"
	"github.com/beautybox/salon-api/internal/handler/dashboard"
	"github.com/beautybox/salon-api/internal/handler/expense"
	"github.com/beautybox/salon-api/internal/handler/health"
	"github.com/beautybox/salon-api/internal/handler/request"
	"github.com/beautybox/salon-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	Mode        string
	CORS        middleware.CORSConfig
	PublicRPS   float64
	PublicBurst int
}

type Handlers struct {
	Health      *health.Handler
	Catalog     *catalog.Handler
	Client      *client.Handler
	Appointment *appointment.Handler
	Expense     *expense.Handler
	Request     *request.Handler
	Dashboard   *dashboard.Handler
}

func New(cfg Config, h Handlers) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORS),
	)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The booking form endpoint is the only unauthenticated write surface,
	// so it alone is rate limited.
	public := engine.Group("/api/v1/public")
	public.Use(middleware.NewIPRateLimiter(cfg.PublicRPS, cfg.PublicBurst).RateLimit())
	h.Request.RegisterPublicRoutes(public)

	api := engine.Group("/api/v1")
	for _, handler := range []Handler{
		h.Health,
		h.Catalog,
		h.Client,
		h.Appointment,
		h.Expense,
		h.Request,
		h.Dashboard,
	} {
		handler.RegisterRoutes(api)
	}

	return engine
}
