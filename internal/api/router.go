package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/booking"
	bookingHttp "github.com/shareit-go/shareit/internal/booking/http"
	"github.com/shareit-go/shareit/internal/item"
	itemHttp "github.com/shareit-go/shareit/internal/item/http"
	"github.com/shareit-go/shareit/internal/itemrequest"
	requestHttp "github.com/shareit-go/shareit/internal/itemrequest/http"
	"github.com/shareit-go/shareit/internal/metrics"
	"github.com/shareit-go/shareit/internal/pkg/middleware"
	"github.com/shareit-go/shareit/internal/pkg/validation"
	"github.com/shareit-go/shareit/internal/user"
	userHttp "github.com/shareit-go/shareit/internal/user/http"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config holds dependencies and settings for the server router.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	Logger       zerolog.Logger
	DB           Pinger

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (request id, logging, metrics, CORS) and registers the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validation.Register()
	metrics.Register()

	r := gin.New()

	// Global Middleware:
	// - RequestID + Logger: request-scoped zerolog logger, one line per request.
	// - Metrics: Prometheus counters and latency histogram.
	// - Recovery: Captures panics and returns a 500 error.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		metrics.Middleware("server"),
		gin.Recovery(),
		middleware.CORS(cfg.IsProduction, cfg.ProdOrigins),
	)

	r.GET("/healthz", healthz(cfg.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// callerMiddleware: reads the caller from X-Sharer-User-Id.
	callerMiddleware := auth.UserIDRequired()

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService)
	itemHandler := itemHttp.NewHandler(cfg.ItemService)
	requestHandler := requestHttp.NewHandler(cfg.RequestService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		userHttp.RegisterRoutes(root, userHandler)
		itemHttp.RegisterRoutes(root, itemHandler, callerMiddleware)
		requestHttp.RegisterRoutes(root, requestHandler, callerMiddleware)
		bookingHttp.RegisterRoutes(root, bookingHandler, callerMiddleware)
	}

	return r
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
