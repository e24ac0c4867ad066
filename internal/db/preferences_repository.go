package db

import (
	"errors"

	"github.com/terraincognita07/cyclecast/internal/models"
	"gorm.io/gorm"
)

type PreferencesRepository struct {
	database *gorm.DB
}

func NewPreferencesRepository(database *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{database: database}
}

// LoadPreferences returns the single preferences row, creating it with
// defaults on first use.
func (repo *PreferencesRepository) LoadPreferences() (models.Preferences, error) {
	var preferences models.Preferences
	err := repo.database.First(&preferences, models.PreferencesRowID).Error
	if err == nil {
		return preferences, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Preferences{}, err
	}

	preferences = models.DefaultPreferences()
	if err := repo.database.Create(&preferences).Error; err != nil {
		return models.Preferences{}, err
	}
	return preferences, nil
}

func (repo *PreferencesRepository) SavePreferences(preferences *models.Preferences) error {
	if _, err := repo.LoadPreferences(); err != nil {
		return err
	}
	preferences.ID = models.PreferencesRowID
	return repo.database.Save(preferences).Error
}
