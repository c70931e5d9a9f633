package models

import (
	"time"
)

// Record statuses set by admin actions. Default is pending; an admin may
// move a record between approved and rejected freely. Delete is final.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the three record statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// BootcampRegistration - registration for the startup bootcamp.
// Photo and PaymentProof may hold large base64 blobs; list and
// confirmation responses must not carry them.
type BootcampRegistration struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"not null"`
	Age          string    `json:"age"`
	Organization string    `json:"organization"`
	District     string    `json:"district" gorm:"not null"`
	Experience   string    `json:"experience"` // beginner, intermediate, advanced
	Expectations string    `json:"expectations" gorm:"type:text"`
	Photo        string    `json:"photo,omitempty" gorm:"type:text"`
	PaymentProof string    `json:"paymentProof,omitempty" gorm:"type:text"`
	Status       string    `json:"status" gorm:"default:'pending';index"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (BootcampRegistration) TableName() string {
	return "bootcamp_registrations"
}

// BootcampRequest - bootcamp form payload. PaymentProof carries the
// payment reference when the registration is finalized after a gateway
// payment ("Gateway Transaction ID: ...") or an uploaded screenshot
// reference for the manual flow.
type BootcampRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Age          string `json:"age"`
	Organization string `json:"organization"`
	District     string `json:"district" binding:"required"`
	Experience   string `json:"experience"`
	Expectations string `json:"expectations"`
	Photo        string `json:"photo"`
	PaymentProof string `json:"paymentProof"`
}

// BootcampResponse - slim confirmation view returned on create and
// finalize. Never includes Photo or PaymentProof.
type BootcampResponse struct {
	ID        string    `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewBootcampResponse builds the slim view from a stored record.
func NewBootcampResponse(r *BootcampRegistration) BootcampResponse {
	return BootcampResponse{
		ID:        r.ID,
		FullName:  r.FullName,
		Email:     r.Email,
		Phone:     r.Phone,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
