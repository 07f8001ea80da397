package models

import (
	"log"

	"gorm.io/gorm"
)

func MigrateTable(db *gorm.DB) {
	err := db.AutoMigrate(
		&User{},
		&Allocation{},
		&Expenditure{},
		&Revenue{},
		&CashPosition{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
