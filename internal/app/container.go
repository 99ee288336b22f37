package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lokalbooking/facility-booking-backend/internal/api"
	"github.com/lokalbooking/facility-booking-backend/internal/auth"
	"github.com/lokalbooking/facility-booking-backend/internal/booking"
	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	"github.com/lokalbooking/facility-booking-backend/internal/facilityimage"
	"github.com/lokalbooking/facility-booking-backend/internal/notice"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/metrics"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/storage"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
	"github.com/lokalbooking/facility-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	StoragePath    string
	MetricsEnabled bool
	ServiceName    string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	localStorage, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init local storage failed: %w", err)
	}

	var metricsCollector *metrics.Metrics
	if cfg.MetricsEnabled {
		metricsCollector = metrics.New(cfg.ServiceName)
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Facility Module
	facRepo := facility.NewPgxRepository(cfg.DBPool)
	facService := facility.NewService(facRepo)

	// Pricing Module
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, facService, pricingService)

	// Facility Image Module
	imageRepo := facilityimage.NewRepository(cfg.DBPool)
	imageService := facilityimage.NewService(imageRepo, localStorage)

	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		FacilityService: facService,
		BookingService:  bookingService,
		PricingService:  pricingService,
		ImageService:    imageService,
		NoticeService:   noticeService,
		JWTManager:      jwtManager,
		Metrics:         metricsCollector,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
