package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/metrics"
	"github.com/shareit-go/shareit/internal/pkg/middleware"
	"github.com/shareit-go/shareit/internal/pkg/validation"
)

// Config holds dependencies and settings for the gateway router.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	Logger         zerolog.Logger
	Upstream       Upstream
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter builds the gateway. It exposes the server's route table and
// forwards every request that passes validation.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validation.Register()
	metrics.Register()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(cfg.Logger),
		metrics.Middleware("gateway"),
		gin.Recovery(),
		middleware.CORS(cfg.IsProduction, cfg.ProdOrigins),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("")
	if cfg.RateLimitRPS > 0 {
		api.Use(newRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).middleware())
	}

	h := NewHandler(cfg.Upstream)
	caller := auth.UserIDRequired()

	users := api.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.passThrough)
		users.GET("/:id", h.byID)
		users.PATCH("/:id", h.UpdateUser)
		users.DELETE("/:id", h.byID)
	}

	items := api.Group("/items", caller)
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/search", h.SearchItems)
		items.GET("/:id", h.byID)
		items.PATCH("/:id", h.UpdateItem)
		items.POST("/:id/comment", h.AddComment)
	}

	bookings := api.Group("/bookings", caller)
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListBookings)
		bookings.GET("/owner", h.ListBookings)
		bookings.GET("/:id", h.byID)
		bookings.PATCH("/:id", h.DecideBooking)
	}

	requests := api.Group("/requests", caller)
	{
		requests.POST("", h.CreateRequest)
		requests.GET("", h.passThrough)
		requests.GET("/all", h.ListOtherRequests)
		requests.GET("/:id", h.byID)
	}

	return r
}
