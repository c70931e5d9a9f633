package controllers

import (
	"net/http"
	"time"

	"kef/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerifyController - public registration verification
type VerifyController struct {
	db *gorm.DB
}

func NewVerifyController(db *gorm.DB) *VerifyController {
	return &VerifyController{db: db}
}

// verifyView is what anyone holding a registration id may see. Contact
// details and free-text answers stay private.
type verifyView struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Organization string    `json:"organization"`
	District     string    `json:"district"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Verify shows the public view of a bootcamp registration, e.g. behind a
// QR code on the invitation.
// GET /api/verify/:id
func (vc *VerifyController) Verify(c *gin.Context) {
	id := c.Param("id")

	var record models.BootcampRegistration
	if err := vc.db.First(&record, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Registration not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": verifyView{
			ID:           record.ID,
			FullName:     record.FullName,
			Organization: record.Organization,
			District:     record.District,
			Status:       record.Status,
			CreatedAt:    record.CreatedAt,
		},
	})
}
