package seed

import (
	"errors"
	"log"
	"strings"

	"donation-platform-server/models"
	"donation-platform-server/utils"

	"gorm.io/gorm"
)

var defaultCategories = []string{
	"Health",
	"Education",
	"Animals",
	"Environment",
	"Emergency",
}

// SeedCategories inserts the default category set if it is missing.
func SeedCategories() error {
	for _, name := range defaultCategories {
		slug := strings.ToLower(name)

		var existing models.Category
		err := utils.DB.Where("slug = ?", slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := utils.DB.Create(&models.Category{Name: name, Slug: slug}).Error; err != nil {
			return err
		}
	}

	log.Println("Default categories are in place.")
	return nil
}
