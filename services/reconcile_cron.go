package services

import (
	"log"
	"time"

	"kef/models"
	"kef/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// reconcilePayments re-polls the gateway for local payments still in a
// non-final state. A lost browser redirect or callback leaves a row
// stuck in PENDING even though the gateway has resolved the order; this
// picks those up and finalizes any registration still waiting in the
// pending store.
func reconcilePayments(db *gorm.DB, gateway *PhonePe, pending PendingStore) {
	if !gateway.Configured() {
		return
	}

	var payments []models.Payment
	cutoffNew := time.Now().Add(-2 * time.Minute)
	cutoffOld := time.Now().Add(-24 * time.Hour)
	err := db.Where("state NOT IN ?", []string{"COMPLETED", "PAYMENT_SUCCESS", "FAILED", "PAYMENT_ERROR", "PAYMENT_DECLINED", "TIMED_OUT"}).
		Where("created_at < ? AND created_at > ?", cutoffNew, cutoffOld).
		Find(&payments).Error
	if err != nil {
		utils.LogError(err, "reconcilePayments: load worklist")
		return
	}

	for _, payment := range payments {
		status, err := gateway.GetOrderStatus(payment.MerchantOrderID)
		if err != nil {
			// Status check failed, not the payment. Leave the row for the
			// next run.
			utils.LogError(err, "reconcilePayments: "+payment.MerchantOrderID)
			continue
		}

		if status.State != payment.State {
			payment.State = status.State
			db.Save(&payment)
		}

		switch status.Outcome {
		case OutcomeSuccess:
			reg, err := pending.Load(payment.MerchantOrderID)
			if err != nil {
				utils.LogError(err, "reconcilePayments: load pending "+payment.MerchantOrderID)
				continue
			}
			if reg != nil {
				ref := "PhonePe Transaction ID: " + status.TransactionID
				if _, err := FinalizeBootcamp(db, reg, ref); err != nil {
					utils.LogError(err, "reconcilePayments: finalize "+payment.MerchantOrderID)
					continue
				}
				log.Printf("Reconciled payment %s, registration finalized", payment.MerchantOrderID)
			}
			pending.Delete(payment.MerchantOrderID)
		case OutcomeFailed:
			pending.Delete(payment.MerchantOrderID)
		}
	}
}

// StartReconcileCron runs payment reconciliation every 10 minutes.
func StartReconcileCron(db *gorm.DB, gateway *PhonePe, pending PendingStore) {
	c := cron.New()
	c.AddFunc("*/10 * * * *", func() {
		reconcilePayments(db, gateway, pending)
	})
	c.Start()
	log.Println("Payment reconcile cron started (every 10 minutes)")
}
