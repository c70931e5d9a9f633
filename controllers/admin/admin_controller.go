package admin

import (
	"net/http"

	"kef/config"
	"kef/models"
	"kef/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController - submission review endpoints behind requireAdmin
type AdminController struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAdminController(db *gorm.DB, cfg *config.Config) *AdminController {
	return &AdminController{db: db, cfg: cfg}
}

// UpdateStatusRequest - PATCH body for status changes
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListBootcamp returns all bootcamp registrations, newest first.
// GET /api/admin/bootcamp
func (ac *AdminController) ListBootcamp(c *gin.Context) {
	var records []models.BootcampRegistration
	if err := ac.db.Order("created_at DESC").Find(&records).Error; err != nil {
		utils.LogError(err, "ListBootcamp")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not load registrations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// UpdateBootcampStatus sets a registration's status. Only the three known
// values are accepted; an admin may move a record back and forth freely.
// PATCH /api/admin/bootcamp/:id
func (ac *AdminController) UpdateBootcampStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "status must be one of pending, approved, rejected",
		})
		return
	}

	var record models.BootcampRegistration
	if err := ac.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Registration not found"})
		return
	}

	previous := record.Status
	record.Status = req.Status
	if err := ac.db.Save(&record).Error; err != nil {
		utils.LogError(err, "UpdateBootcampStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not update status"})
		return
	}

	// Approval email is best-effort; a mail failure never fails the
	// status change.
	if record.Status == models.StatusApproved && previous != models.StatusApproved && ac.cfg.SMTPHost != "" {
		go ac.sendApprovalEmail(record)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": models.NewBootcampResponse(&record)})
}

// DeleteBootcamp removes a registration permanently.
// DELETE /api/admin/bootcamp/:id
func (ac *AdminController) DeleteBootcamp(c *gin.Context) {
	res := ac.db.Delete(&models.BootcampRegistration{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.LogError(res.Error, "DeleteBootcamp")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not delete registration"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Registration not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListMembership returns all membership applications, newest first.
// GET /api/admin/membership
func (ac *AdminController) ListMembership(c *gin.Context) {
	var records []models.MembershipApplication
	if err := ac.db.Order("created_at DESC").Find(&records).Error; err != nil {
		utils.LogError(err, "ListMembership")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not load applications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// UpdateMembershipStatus sets an application's status.
// PATCH /api/admin/membership/:id
func (ac *AdminController) UpdateMembershipStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request"})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "status must be one of pending, approved, rejected",
		})
		return
	}

	var record models.MembershipApplication
	if err := ac.db.First(&record, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		return
	}

	record.Status = req.Status
	if err := ac.db.Save(&record).Error; err != nil {
		utils.LogError(err, "UpdateMembershipStatus")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not update status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// DeleteMembership removes an application permanently.
// DELETE /api/admin/membership/:id
func (ac *AdminController) DeleteMembership(c *gin.Context) {
	res := ac.db.Delete(&models.MembershipApplication{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.LogError(res.Error, "DeleteMembership")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not delete application"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Application not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListContact returns all contact messages, newest first.
// GET /api/admin/contact
func (ac *AdminController) ListContact(c *gin.Context) {
	var records []models.ContactSubmission
	if err := ac.db.Order("created_at DESC").Find(&records).Error; err != nil {
		utils.LogError(err, "ListContact")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not load messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// DeleteContact removes a contact message permanently.
// DELETE /api/admin/contact/:id
func (ac *AdminController) DeleteContact(c *gin.Context) {
	res := ac.db.Delete(&models.ContactSubmission{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		utils.LogError(res.Error, "DeleteContact")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Could not delete message"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Message not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Dashboard returns aggregate counts for the admin landing page.
// GET /api/admin/dashboard
func (ac *AdminController) Dashboard(c *gin.Context) {
	var contactTotal, membershipTotal, bootcampTotal int64
	ac.db.Model(&models.ContactSubmission{}).Count(&contactTotal)
	ac.db.Model(&models.MembershipApplication{}).Count(&membershipTotal)
	ac.db.Model(&models.BootcampRegistration{}).Count(&bootcampTotal)

	countByStatus := func(model interface{}) gin.H {
		counts := gin.H{}
		for _, status := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
			var n int64
			ac.db.Model(model).Where("status = ?", status).Count(&n)
			counts[status] = n
		}
		return counts
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"contact": gin.H{
				"total": contactTotal,
			},
			"membership": gin.H{
				"total":    membershipTotal,
				"byStatus": countByStatus(&models.MembershipApplication{}),
			},
			"bootcamp": gin.H{
				"total":    bootcampTotal,
				"byStatus": countByStatus(&models.BootcampRegistration{}),
			},
		},
	})
}

func (ac *AdminController) sendApprovalEmail(record models.BootcampRegistration) {
	body := "Hi " + record.FullName + ",\n\n" +
		"Your bootcamp registration has been approved.\n" +
		"Registration ID: " + record.ID + "\n\n" +
		"Please keep this ID handy at the venue.\n\n" +
		"Kerala Entrepreneurship Forum"
	err := utils.SendEmail(record.Email, "Bootcamp registration approved", body,
		ac.cfg.SMTPHost, ac.cfg.SMTPPort, ac.cfg.SMTPUser, ac.cfg.SMTPPass)
	if err != nil {
		utils.LogError(err, "sendApprovalEmail: "+record.ID)
	}
}
