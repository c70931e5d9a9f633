package routes

import (
	"kef/config"
	admin "kef/controllers/admin"
	"kef/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the admin API. Everything except login sits
// behind RequireAdmin.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, rdb *redis.Client) {
	adminController := admin.NewAdminController(db, cfg)
	authController := admin.NewAuthController(cfg, rdb)

	group := r.Group("/api/admin")
	group.POST("/login", authController.Login)

	authed := group.Group("", middleware.RequireAdmin(cfg.JWTSecret, rdb))
	{
		authed.POST("/logout", authController.Logout)
		authed.GET("/dashboard", adminController.Dashboard)

		authed.GET("/bootcamp", adminController.ListBootcamp)
		authed.PATCH("/bootcamp/:id", adminController.UpdateBootcampStatus)
		authed.DELETE("/bootcamp/:id", adminController.DeleteBootcamp)

		authed.GET("/membership", adminController.ListMembership)
		authed.PATCH("/membership/:id", adminController.UpdateMembershipStatus)
		authed.DELETE("/membership/:id", adminController.DeleteMembership)

		authed.GET("/contact", adminController.ListContact)
		authed.DELETE("/contact/:id", adminController.DeleteContact)
	}
}
