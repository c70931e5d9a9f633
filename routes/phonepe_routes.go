package routes

import (
	"kef/config"
	"kef/controllers"
	"kef/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupPhonePeRoutes registers the payment flow endpoints.
func SetupPhonePeRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, gateway *services.PhonePe, pending services.PendingStore) {
	pc := controllers.NewPhonePeController(db, gateway, pending, cfg)

	group := r.Group("/api/phonepe")
	{
		group.POST("/initiate-payment", pc.InitiatePayment)
		// The gateway may bring the browser back with either method.
		group.GET("/callback/:merchantTransactionId", pc.Callback)
		group.POST("/callback/:merchantTransactionId", pc.Callback)
		group.GET("/status/:merchantTransactionId", pc.GetStatus)
		group.GET("/config", pc.GetConfig)
	}
}
