package services

import (
	"strings"

	"kef/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ValidationError carries field-level messages back to the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func validateBootcamp(req *models.BootcampRequest) *ValidationError {
	fields := map[string]string{}
	if strings.TrimSpace(req.FullName) == "" {
		fields["fullName"] = "full name is required"
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		fields["email"] = "a valid email is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	if strings.TrimSpace(req.District) == "" {
		fields["district"] = "district is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// FinalizeBootcamp validates the registration payload and persists it
// with status pending. paymentRef, when set, overrides any client-sent
// payment proof with the server-verified gateway reference.
func FinalizeBootcamp(db *gorm.DB, req *models.BootcampRequest, paymentRef string) (*models.BootcampRegistration, error) {
	if verr := validateBootcamp(req); verr != nil {
		return nil, verr
	}

	record := models.BootcampRegistration{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Age:          req.Age,
		Organization: req.Organization,
		District:     req.District,
		Experience:   req.Experience,
		Expectations: req.Expectations,
		Photo:        req.Photo,
		PaymentProof: req.PaymentProof,
		Status:       models.StatusPending,
	}
	if paymentRef != "" {
		record.PaymentProof = paymentRef
	}

	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
