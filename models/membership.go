package models

import (
	"time"
)

// MembershipApplication - application to join the forum
type MembershipApplication struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	FullName     string    `json:"fullName" gorm:"not null"`
	Email        string    `json:"email" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"not null"`
	Organization string    `json:"organization"`
	Designation  string    `json:"designation"`
	District     string    `json:"district" gorm:"not null"`
	Category     string    `json:"category"` // student, aspiring, founder, mentor
	Motivation   string    `json:"motivation" gorm:"type:text"`
	Status       string    `json:"status" gorm:"default:'pending';index"` // pending, approved, rejected
	CreatedAt    time.Time `json:"createdAt"`
}

func (MembershipApplication) TableName() string {
	return "membership_applications"
}

// MembershipRequest - membership form payload
type MembershipRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	Organization string `json:"organization"`
	Designation  string `json:"designation"`
	District     string `json:"district" binding:"required"`
	Category     string `json:"category"`
	Motivation   string `json:"motivation"`
}
