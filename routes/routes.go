package routes

import (
	"kef/config"
	"kef/controllers"
	"kef/middleware"
	"kef/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupRouter builds the gin.Engine with all routes registered.
func SetupRouter(db *gorm.DB, cfg *config.Config, gateway *services.PhonePe, pending services.PendingStore, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), middleware.RecoveryMiddleware())

	// CORS before routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	bootcampController := controllers.NewBootcampController(db, cfg)
	membershipController := controllers.NewMembershipController(db, cfg)
	contactController := controllers.NewContactController(db, cfg)
	verifyController := controllers.NewVerifyController(db)

	api := r.Group("/api")
	{
		api.POST("/bootcamp", bootcampController.Create)
		api.POST("/membership", membershipController.Create)
		api.POST("/contact", contactController.Create)
		api.GET("/verify/:id", verifyController.Verify)
	}

	SetupPhonePeRoutes(r, db, cfg, gateway, pending)
	SetupAdminRoutes(r, db, cfg, rdb)

	return r
}
