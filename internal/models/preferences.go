package models

import "time"

const (
	WeekStartSunday = "sunday"
	WeekStartMonday = "monday"

	PreferencesRowID = 1
)

// Preferences is a single-row table; the tracker has exactly one owner.
type Preferences struct {
	ID                   uint      `gorm:"primaryKey" json:"-"`
	CycleLengthDefault   int       `gorm:"not null" json:"cycle_length_default"`
	WeekStartDay         string    `gorm:"not null" json:"week_start_day"`
	DarkMode             bool      `gorm:"not null" json:"dark_mode"`
	NotificationsEnabled bool      `gorm:"not null" json:"notifications_enabled"`
	PinLockEnabled       bool      `gorm:"not null" json:"pin_lock_enabled"`
	PinHash              string    `gorm:"not null" json:"-"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (Preferences) TableName() string {
	return "preferences"
}

func DefaultPreferences() Preferences {
	return Preferences{
		ID:                   PreferencesRowID,
		CycleLengthDefault:   DefaultCycleLength,
		WeekStartDay:         WeekStartSunday,
		NotificationsEnabled: true,
	}
}
