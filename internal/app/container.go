package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/shareit-go/shareit/internal/api"
	"github.com/shareit-go/shareit/internal/booking"
	"github.com/shareit-go/shareit/internal/item"
	"github.com/shareit-go/shareit/internal/itemrequest"
	"github.com/shareit-go/shareit/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine

	UserService    user.Service
	ItemService    item.Service
	RequestService itemrequest.Service
	BookingService booking.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Repositories
	userRepo := user.NewPgxRepository(cfg.DBPool)
	requestRepo := itemrequest.NewPgxRepository(cfg.DBPool)
	itemRepo := item.NewPgxRepository(cfg.DBPool)
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// User Module
	userService := user.NewService(userRepo)

	// Item Request Module (items are looked up through the item repository)
	requestService := itemrequest.NewService(requestRepo, userService, item.NewRequestItems(itemRepo))

	// Item Module (booking summaries come from the booking repository)
	itemService := item.NewService(itemRepo, userService, requestRepo, booking.NewItemBookings(bookingRepo))

	// Booking Module
	bookingService := booking.NewService(bookingRepo, itemService, userService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		Logger:         cfg.Logger,
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
	}
	if cfg.DBPool != nil {
		routerParams.DB = cfg.DBPool
	}

	return &Container{
		Router:         api.NewRouter(routerParams),
		UserService:    userService,
		ItemService:    itemService,
		RequestService: requestService,
		BookingService: bookingService,
	}
}
