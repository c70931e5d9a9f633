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

// ContactController - public contact form endpoint
type ContactController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewContactController(db *gorm.DB, cfg *config.Config) *ContactController {
	return &ContactController{db: db, cfg: cfg}
}

// Create stores a contact message. Contact submissions carry no status;
// admins only read and delete them.
// POST /api/contact
func (cc *ContactController) Create(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	record := models.ContactSubmission{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}

	if err := cc.db.Create(&record).Error; err != nil {
		utils.LogError(err, "ContactCreate")
		resp := gin.H{
			"success": false,
			"error":   "Could not send your message. Please try again.",
		}
		if !cc.cfg.IsProduction() {
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
