package db

import "gorm.io/gorm"

type Repositories struct {
	CycleEntries *CycleEntryRepository
	Preferences  *PreferencesRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		CycleEntries: NewCycleEntryRepository(database),
		Preferences:  NewPreferencesRepository(database),
	}
}
