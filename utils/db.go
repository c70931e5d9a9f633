package utils

import "gorm.io/gorm"

// Process-wide DB handle, set once at startup.
var db *gorm.DB

func SetDB(database *gorm.DB) {
	db = database
}

func GetDB() *gorm.DB {
	return db
}
