package models

import (
	"time"
)

// Payment - local mirror of a PhonePe order. The gateway owns the order
// lifecycle; this row exists so the reconcile cron has a worklist and so
// a lost callback can be recovered.
type Payment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	MerchantOrderID string    `json:"merchantOrderId" gorm:"uniqueIndex;not null"` // T<millis><random>
	Amount          int64     `json:"amount" gorm:"not null"`                      // paise (4999 INR = 499900)
	State           string    `json:"state" gorm:"default:'PENDING';index"`        // raw gateway state
	PayerName       string    `json:"payerName"`
	PayerEmail      string    `json:"payerEmail"`
	PayerPhone      string    `json:"payerPhone"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}

// InitiatePaymentRequest - request to start a gateway payment. Amount is
// in rupees; it is converted to paise before hitting the gateway.
// Registration, when present, is held server-side keyed by the merchant
// order id until the payment resolves.
type InitiatePaymentRequest struct {
	Amount       float64          `json:"amount" binding:"required,gt=0"`
	Name         string           `json:"name" binding:"required"`
	Email        string           `json:"email" binding:"required,email"`
	Phone        string           `json:"phone" binding:"required"`
	RedirectURL  string           `json:"redirectUrl"`
	Registration *BootcampRequest `json:"registration,omitempty"`
}
