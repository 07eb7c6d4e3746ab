package migrations

import (
	"github.com/Rakhulsr/go-addressbook/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Address{})
}
