package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lokalbooking/facility-booking-backend/internal/auth"
	"github.com/lokalbooking/facility-booking-backend/internal/booking"
	bookingHttp "github.com/lokalbooking/facility-booking-backend/internal/booking/http"
	"github.com/lokalbooking/facility-booking-backend/internal/facility"
	facilityHttp "github.com/lokalbooking/facility-booking-backend/internal/facility/http"
	"github.com/lokalbooking/facility-booking-backend/internal/facilityimage"
	imageHttp "github.com/lokalbooking/facility-booking-backend/internal/facilityimage/http"
	"github.com/lokalbooking/facility-booking-backend/internal/notice"
	noticeHttp "github.com/lokalbooking/facility-booking-backend/internal/notice/http"
	"github.com/lokalbooking/facility-booking-backend/internal/pkg/metrics"
	"github.com/lokalbooking/facility-booking-backend/internal/pricing"
	pricingHttp "github.com/lokalbooking/facility-booking-backend/internal/pricing/http"
	"github.com/lokalbooking/facility-booking-backend/internal/user"
	userHttp "github.com/lokalbooking/facility-booking-backend/internal/user/http"
)

// Config carries every service the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	FacilityService facility.Service
	BookingService  booking.Service
	PricingService  pricing.Service
	ImageService    facilityimage.Service
	NoticeService   notice.Service

	JWTManager *auth.JWTManager
	Metrics    *metrics.Metrics
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Frontend dev server
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// sysAdminMiddleware: Further checks if the authenticated user has System Admin privileges.
	sysAdminMiddleware := RequireSystemAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	facilityHandler := facilityHttp.NewHandler(cfg.FacilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService, cfg.Metrics)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)
	imageHandler := imageHttp.NewHandler(cfg.ImageService)
	noticeHandler := noticeHttp.NewHandler(cfg.NoticeService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, sysAdminMiddleware)
		facilityHttp.RegisterRoutes(v1, facilityHandler, authMiddleware, sysAdminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, sysAdminMiddleware)
		pricingHttp.RegisterRoutes(v1, pricingHandler, authMiddleware, sysAdminMiddleware)
		imageHttp.RegisterRoutes(v1, imageHandler, authMiddleware, sysAdminMiddleware)
		noticeHttp.RegisterRoutes(v1, noticeHandler, authMiddleware, sysAdminMiddleware)
	}

	return r
}
