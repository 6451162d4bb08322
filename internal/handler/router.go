package handler

import (
	"net/http"

	"github.com/projectblurimedia/Veggie-Tracker/internal/logger"
	"github.com/projectblurimedia/Veggie-Tracker/internal/middleware"
	"github.com/projectblurimedia/Veggie-Tracker/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles everything the HTTP layer calls into
type Services struct {
	Customers service.CustomerService
	Orders    service.OrderService
	Expenses  service.ExpenseService
	Items     service.ItemService
	Users     service.UserService
}

// RouterConfig carries the transport settings of the router
type RouterConfig struct {
	JWTSecret      []byte
	AllowedOrigins []string
	SecureCookie   bool
}

// NewRouter wires middleware and every handler onto a gin engine
func NewRouter(cfg RouterConfig, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger.WithComponent("http")))

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return true }
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api := router.Group("/api")

	authHandler := NewAuthHandler(svc.Users, cfg.SecureCookie)
	authHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.RequireAuth(cfg.JWTSecret))
	authHandler.RegisterProtectedRoutes(protected)
	NewCustomerHandler(svc.Customers).RegisterRoutes(protected)
	NewOrderHandler(svc.Orders).RegisterRoutes(protected)
	NewExpenseHandler(svc.Expenses).RegisterRoutes(protected)
	NewItemHandler(svc.Items).RegisterRoutes(protected)

	return router
}
