package router

import (
	"github.com/gin-gonic/gin"

	"github.com/skous2/nails-by-brooke/internal/handler/auth"
	"github.com/skous2/nails-by-brooke/internal/handler/health"
	"github.com/skous2/nails-by-brooke/internal/handler/prometheus"
	"github.com/skous2/nails-by-brooke/internal/middleware"
	"github.com/skous2/nails-by-brooke/pkg/httputil"
	"github.com/skous2/nails-by-brooke/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// Handlers are the route groups mounted under /api.
type Handlers struct {
	Health       *health.Handler
	Auth         *auth.Handler
	Clients      Handler
	Appointments Handler
	Dashboard    Handler
	Reports      Handler
}

type RouterConfig struct {
	CORSConfig   middleware.CORSConfig
	SizeLimit    middleware.SizeLimitConfig
	Security     middleware.SecurityConfig
	RateLimit    *middleware.RateLimiterConfig // nil disables rate limiting
	ExposeErrors bool
	Metrics      *metrics.Metrics
	Mode         string
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	config   RouterConfig
}

func NewRouter(auth *middleware.AuthMiddleware, handlers Handlers, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = false

	r := &Router{
		engine:   engine,
		auth:     auth,
		handlers: handlers,
		config:   config,
	}

	// Core middlewares. RequestID runs first so every later log line and
	// error carries it.
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ExposeErrors(config.ExposeErrors),
		middleware.SecurityHeaders(config.Security),
		middleware.CORS(config.CORSConfig),
	)
	if config.Metrics != nil {
		engine.Use(middleware.Metrics(config.Metrics))
	}

	return r
}

func (r *Router) Setup() {
	r.handlers.Health.RegisterRoutes(r.engine)
	if r.config.Metrics != nil {
		r.engine.GET("/metrics", prometheus.New(r.config.Metrics).Handler())
	}

	api := r.engine.Group("/api")
	api.Use(middleware.SizeLimit(r.config.SizeLimit))
	if r.config.RateLimit != nil {
		api.Use(middleware.NewRateLimiter(*r.config.RateLimit).RateLimit())
	}

	// Public routes; logout and me add the auth middleware themselves.
	r.handlers.Auth.RegisterRoutes(api, r.auth.Authenticate())

	protected := api.Group("")
	protected.Use(
		r.auth.Authenticate(),
		middleware.Cache(middleware.NoStoreConfig()),
	)
	r.handlers.Clients.RegisterRoutes(protected)
	r.handlers.Appointments.RegisterRoutes(protected)
	r.handlers.Dashboard.RegisterRoutes(protected)
	r.handlers.Reports.RegisterRoutes(protected)

	r.engine.NoRoute(httputil.NotFound)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
