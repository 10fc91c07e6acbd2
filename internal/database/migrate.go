package database

import (
	"gorm.io/gorm"

	"github.com/kashmiricraft/treasures-api/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Product{},
	)
}
