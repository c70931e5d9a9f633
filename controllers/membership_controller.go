package controllers

import (
	"net/http"

	"kef/config"
	"kef/models"
	"kef/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MembershipController - public membership application endpoint
type MembershipController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewMembershipController(db *gorm.DB, cfg *config.Config) *MembershipController {
	return &MembershipController{db: db, cfg: cfg}
}

// Create submits a membership application.
// POST /api/membership
func (mc *MembershipController) Create(c *gin.Context) {
	var req models.MembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	record := models.MembershipApplication{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		Designation:  req.Designation,
		District:     req.District,
		Category:     req.Category,
		Motivation:   req.Motivation,
		Status:       models.StatusPending,
	}

	if err := mc.db.Create(&record).Error; err != nil {
		utils.LogError(err, "MembershipCreate")
		resp := gin.H{
			"success": false,
			"error":   "Could not save your application. Please try again.",
		}
		if !mc.cfg.IsProduction() {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    record,
	})
}
