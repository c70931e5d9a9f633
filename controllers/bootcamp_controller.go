package controllers

import (
	"errors"
	"net/http"

	"kef/config"
	"kef/models"
	"kef/services"
	"kef/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BootcampController - public bootcamp registration endpoint
type BootcampController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewBootcampController(db *gorm.DB, cfg *config.Config) *BootcampController {
	return &BootcampController{db: db, cfg: cfg}
}

// Create registers a participant. This is also the finalize path for a
// completed payment: the client sends the form fields together with a
// paymentProof reference. The response is deliberately slim - the photo
// and payment proof blobs never come back.
// POST /api/bootcamp
func (bc *BootcampController) Create(c *gin.Context) {
	var req models.BootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	record, err := services.FinalizeBootcamp(bc.db, &req, "")
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "Validation failed",
				"fields":  verr.Fields,
			})
			return
		}
		utils.LogError(err, "BootcampCreate")
		resp := gin.H{
			"success": false,
			"error":   "Could not save your registration. Please try again.",
		}
		if !bc.cfg.IsProduction() {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    models.NewBootcampResponse(record),
	})
}
