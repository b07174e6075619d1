package config

import (
	"log"

	"memberhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedDefaultData seeds the default zone that mobile registration
// assigns to new members (zone id 1).
func SeedDefaultData(db *gorm.DB) error {
	if err := seedZones(db); err != nil {
		return err
	}

	log.Println("✅ Default data seeded successfully")
	return nil
}

func seedZones(db *gorm.DB) error {
	zones := []models.Zone{
		{
			Name:        "Central",
			Description: "Default zone assigned to self-registered members",
		},
		{
			Name:        "North",
			Description: "Northern district",
		},
		{
			Name:        "South",
			Description: "Southern district",
		},
	}

	for _, z := range zones {
		var existing models.Zone
		if err := db.Where("name = ?", z.Name).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&z).Error; err != nil {
					return err
				}
				log.Printf("   Created zone: %s", z.Name)
			}
		}
	}
	return nil
}
