package api

import (
	"time"

	"github.com/terraincognita07/cyclecast/internal/db"
	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	sessionTTL   time.Duration
	i18n         *i18n.Manager
	now          func() time.Time

	repositories    *db.Repositories
	historyService  *services.HistoryService
	settingsService *services.SettingsService
	pinService      *services.PinService
	exportService   *services.ExportService
}

type entryInput struct {
	PeriodStart string `json:"period_start" form:"period_start"`
	Notes       string `json:"notes" form:"notes"`
}

type pinInput struct {
	Pin string `json:"pin" form:"pin"`
}

type entryView struct {
	ID          string    `json:"id"`
	PeriodStart string    `json:"period_start"`
	CycleLength int       `json:"cycle_length"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type historyView struct {
	Entries            []entryView `json:"entries"`
	AverageCycleLength int         `json:"average_cycle_length"`
	CycleLengths       []int       `json:"cycle_lengths"`
}

type predictionView struct {
	CycleStart         string                   `json:"cycle_start"`
	NextPeriodStart    string                   `json:"next_period_start"`
	NextPeriodEnd      string                   `json:"next_period_end"`
	OvulationDate      string                   `json:"ovulation_date"`
	FertileWindowStart string                   `json:"fertile_window_start"`
	FertileWindowEnd   string                   `json:"fertile_window_end"`
	Confidence         float64                  `json:"confidence"`
	ConfidenceLevel    services.ConfidenceLevel `json:"confidence_level"`
	ConfidenceLabel    string                   `json:"confidence_label"`
	Countdown          services.CycleCountdown  `json:"countdown"`
	CountdownLabel     string                   `json:"countdown_label"`
}
