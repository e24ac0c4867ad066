package db

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/models"
	"gorm.io/gorm"
)

type CycleEntryRepository struct {
	database *gorm.DB
}

func NewCycleEntryRepository(database *gorm.DB) *CycleEntryRepository {
	return &CycleEntryRepository{database: database}
}

func (repo *CycleEntryRepository) ListEntries() ([]models.CycleEntry, error) {
	entries := make([]models.CycleEntry, 0)
	if err := repo.database.Order("period_start ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	for index := range entries {
		entries[index].PeriodStart = storedDay(entries[index].PeriodStart)
	}
	return entries, nil
}

func (repo *CycleEntryRepository) CreateEntry(entry *models.CycleEntry) error {
	entry.PeriodStart = storedDay(entry.PeriodStart)
	return repo.database.Create(entry).Error
}

func (repo *CycleEntryRepository) DeleteEntry(id string) (bool, error) {
	result := repo.database.Where("id = ?", id).Delete(&models.CycleEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ReplaceAllEntries swaps the full history in one transaction.
func (repo *CycleEntryRepository) ReplaceAllEntries(entries []models.CycleEntry) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM cycle_entries`).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}

		rows := make([]models.CycleEntry, len(entries))
		for index, entry := range entries {
			entry.PeriodStart = storedDay(entry.PeriodStart)
			rows[index] = entry
		}
		return tx.Create(&rows).Error
	})
}

func storedDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
