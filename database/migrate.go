package database

import (
	"kef/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.ContactSubmission{},
		&models.MembershipApplication{},
		&models.BootcampRegistration{},
		&models.Payment{},
	)
}
