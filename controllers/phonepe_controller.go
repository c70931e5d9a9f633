package controllers

import (
	"errors"
	"net/http"
	"net/url"

	"kef/config"
	"kef/models"
	"kef/services"
	"kef/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PhonePeController - handlers for the gateway payment flow
type PhonePeController struct {
	db      *gorm.DB
	gateway *services.PhonePe
	pending services.PendingStore
	cfg     *config.Config
}

func NewPhonePeController(db *gorm.DB, gateway *services.PhonePe, pending services.PendingStore, cfg *config.Config) *PhonePeController {
	return &PhonePeController{db: db, gateway: gateway, pending: pending, cfg: cfg}
}

// InitiatePayment starts a gateway payment and returns the checkout URL.
// POST /api/phonepe/initiate-payment
func (pc *PhonePeController) InitiatePayment(c *gin.Context) {
	var req models.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	if !pc.gateway.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   services.ErrNotConfigured.Error(),
		})
		return
	}

	result, err := pc.gateway.InitiatePayment(req.Amount, req.Name, req.Email, req.Phone, req.RedirectURL)
	if err != nil {
		utils.LogError(err, "InitiatePayment")
		if errors.Is(err, services.ErrAuth) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to authenticate with payment gateway. Please try again.",
			})
			return
		}
		resp := gin.H{
			"success": false,
			"error":   "Failed to initiate payment. Please try again.",
		}
		if !pc.cfg.IsProduction() {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	// Registration data waits server-side for the payment to resolve, so
	// the finalized record never depends on what the browser brings back.
	if req.Registration != nil {
		if err := pc.pending.Save(result.MerchantOrderID, req.Registration); err != nil {
			utils.LogError(err, "InitiatePayment: save pending registration")
		}
	}

	payment := models.Payment{
		MerchantOrderID: result.MerchantOrderID,
		Amount:          services.ToPaise(req.Amount),
		State:           "PENDING",
		PayerName:       req.Name,
		PayerEmail:      req.Email,
		PayerPhone:      req.Phone,
	}
	if err := pc.db.Create(&payment).Error; err != nil {
		utils.LogError(err, "InitiatePayment: save payment")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":               true,
		"paymentUrl":            result.RedirectURL,
		"merchantTransactionId": result.MerchantOrderID,
	})
}

// Callback handles the gateway sending the browser back after checkout.
// The status is resolved server-side and the browser is forwarded to the
// frontend status page with a success/failed/error flag.
// GET|POST /api/phonepe/callback/:merchantTransactionId
func (pc *PhonePeController) Callback(c *gin.Context) {
	orderID := c.Param("merchantTransactionId")
	target := c.Query("redirect")
	if target == "" {
		target = pc.cfg.FrontendURL + "/payment-status"
	}

	status, err := pc.gateway.GetOrderStatus(orderID)
	if err != nil {
		// The check failed, not the payment. Pending registration data is
		// kept so a later status poll or the reconcile cron can finish the
		// job.
		utils.LogError(err, "Callback: "+orderID)
		c.Redirect(http.StatusFound, redirectWith(target, map[string]string{
			"status":                "error",
			"merchantTransactionId": orderID,
		}))
		return
	}

	pc.recordState(orderID, status.State)

	switch status.Outcome {
	case services.OutcomeSuccess:
		regID := pc.finalizePending(orderID, status)
		params := map[string]string{
			"status":                "success",
			"merchantTransactionId": orderID,
			"transactionId":         status.TransactionID,
		}
		if regID != "" {
			params["registrationId"] = regID
		}
		c.Redirect(http.StatusFound, redirectWith(target, params))
	case services.OutcomeFailed:
		pc.pending.Delete(orderID)
		c.Redirect(http.StatusFound, redirectWith(target, map[string]string{
			"status":                "failed",
			"merchantTransactionId": orderID,
			"code":                  status.State,
		}))
	default:
		c.Redirect(http.StatusFound, redirectWith(target, map[string]string{
			"status":                "pending",
			"merchantTransactionId": orderID,
		}))
	}
}

// GetStatus lets the client poll for the outcome after being redirected
// back from the gateway.
// GET /api/phonepe/status/:merchantTransactionId
func (pc *PhonePeController) GetStatus(c *gin.Context) {
	orderID := c.Param("merchantTransactionId")

	status, err := pc.gateway.GetOrderStatus(orderID)
	if err != nil {
		utils.LogError(err, "GetStatus: "+orderID)
		resp := gin.H{
			"success": false,
			"code":    "STATUS_CHECK_FAILED",
			"error":   "Unable to verify payment status. Please try again.",
		}
		if !pc.cfg.IsProduction() {
			resp["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	pc.recordState(orderID, status.State)

	resp := gin.H{
		"success":       status.Outcome == services.OutcomeSuccess,
		"code":          status.State,
		"transactionId": status.TransactionID,
	}
	switch status.Outcome {
	case services.OutcomeSuccess:
		resp["message"] = "Payment successful"
		if regID := pc.finalizePending(orderID, status); regID != "" {
			resp["registrationId"] = regID
		}
	case services.OutcomeFailed:
		resp["message"] = "Payment failed"
		pc.pending.Delete(orderID)
	default:
		resp["message"] = "Payment pending"
	}
	c.JSON(http.StatusOK, resp)
}

// GetConfig reports whether gateway credentials are present, so the
// frontend can hide the pay-online option when they are not.
// GET /api/phonepe/config
func (pc *PhonePeController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"configured": pc.gateway.Configured(),
	})
}

// recordState keeps the local payment mirror in step with the gateway.
func (pc *PhonePeController) recordState(orderID, state string) {
	var payment models.Payment
	if err := pc.db.Where("merchant_order_id = ?", orderID).First(&payment).Error; err != nil {
		return
	}
	if payment.State != state {
		payment.State = state
		if err := pc.db.Save(&payment).Error; err != nil {
			utils.LogError(err, "recordState: "+orderID)
		}
	}
}

// finalizePending persists a registration waiting on this order, if any,
// and returns the new record id. Idempotent per order: the pending entry
// is deleted once used.
func (pc *PhonePeController) finalizePending(orderID string, status *services.StatusResult) string {
	reg, err := pc.pending.Load(orderID)
	if err != nil {
		utils.LogError(err, "finalizePending: load "+orderID)
		return ""
	}
	if reg == nil {
		return ""
	}

	ref := "PhonePe Transaction ID: " + status.TransactionID
	record, err := services.FinalizeBootcamp(pc.db, reg, ref)
	if err != nil {
		utils.LogError(err, "finalizePending: "+orderID)
		return ""
	}
	pc.pending.Delete(orderID)
	return record.ID
}

// redirectWith appends query parameters to a target URL.
func redirectWith(target string, params map[string]string) string {
	u, err := url.Parse(target)
	if err != nil {
		u = &url.URL{Path: "/payment-status"}
	}
	q := u.Query()
	for k, v := range params {
		if v != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
