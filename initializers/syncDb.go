package initializers

import (
	"log"

	"github.com/Voxodinson/webass-api/models"
	"gorm.io/gorm"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Company{},
		&models.Order{},
		&models.OrderItem{},
		&models.Feedback{},
		&models.SocialMedia{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
