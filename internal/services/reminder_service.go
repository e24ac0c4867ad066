package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/models"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

type ReminderConfig struct {
	BotToken           string
	ChatID             string
	PeriodReminderDays int
	FertilityReminder  bool
	Interval           time.Duration
	APIBaseURL         string
}

type Reminder struct {
	Key  string
	Text string
}

type ReminderService struct {
	history                *HistoryService
	preferences            PreferencesReader
	config                 ReminderConfig
	client                 *http.Client
	now                    func() time.Time
	mu                     sync.Mutex
	sentDailyNotifications map[string]time.Time
}

func NewReminderService(history *HistoryService, preferences PreferencesReader, config ReminderConfig) *ReminderService {
	if config.Interval <= 0 {
		config.Interval = 6 * time.Hour
	}
	if config.PeriodReminderDays < 0 {
		config.PeriodReminderDays = 2
	}
	if strings.TrimSpace(config.APIBaseURL) == "" {
		config.APIBaseURL = defaultTelegramAPIBase
	}

	return &ReminderService{
		history:     history,
		preferences: preferences,
		config:      config,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
		now:                    time.Now,
		sentDailyNotifications: make(map[string]time.Time),
	}
}

func (service *ReminderService) Enabled() bool {
	return service.config.BotToken != "" && service.config.ChatID != ""
}

func (service *ReminderService) Start(ctx context.Context) {
	if !service.Enabled() {
		log.Info().Str("component", "reminders").Msg("telegram reminders disabled")
		return
	}

	ticker := time.NewTicker(service.config.Interval)
	go func() {
		defer ticker.Stop()

		service.runLogged(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.runLogged(ctx)
			}
		}
	}()
}

func (service *ReminderService) runLogged(ctx context.Context) {
	sent, err := service.RunOnce(ctx)
	if err != nil {
		log.Warn().Err(err).Str("component", "reminders").Int("sent", sent).Msg("reminder run failed")
	}
	if sent > 0 {
		log.Info().Str("component", "reminders").Int("sent", sent).Msg("reminders delivered")
	}
}

// RunOnce sends the reminders that are due today and reports how many went
// out. A reminder is sent at most once per calendar day. Delivery errors are
// joined and returned after every due reminder has been attempted.
func (service *ReminderService) RunOnce(ctx context.Context) (int, error) {
	if service.preferences != nil {
		preferences, err := service.preferences.LoadPreferences()
		if err != nil {
			return 0, fmt.Errorf("load preferences: %w", err)
		}
		if !preferences.NotificationsEnabled {
			return 0, nil
		}
	}

	prediction, _, err := service.history.PredictLatest()
	if errors.Is(err, ErrNoEntries) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	today := service.history.Today()
	sent := 0
	var sendErrs []error
	for _, reminder := range BuildReminders(today, prediction, service.config.PeriodReminderDays, service.config.FertilityReminder) {
		if service.alreadySent(reminder.Key, today) {
			continue
		}
		if err := service.sendTelegram(ctx, reminder.Text); err != nil {
			log.Warn().Err(err).Str("component", "reminders").Str("reminder", reminder.Key).Msg("reminder delivery failed")
			sendErrs = append(sendErrs, fmt.Errorf("send %s reminder: %w", reminder.Key, err))
			continue
		}
		service.markSent(reminder.Key, today)
		sent++
	}
	return sent, errors.Join(sendErrs...)
}

func BuildReminders(today time.Time, prediction models.PredictionResult, periodReminderDays int, fertilityReminder bool) []Reminder {
	reminders := make([]Reminder, 0, 2)
	dayKey := today.Format(dayLayout)

	countdown := BuildCycleCountdown(today, prediction)
	if countdown.DaysUntilNextPeriod == periodReminderDays {
		reminders = append(reminders, Reminder{
			Key: "period:" + dayKey,
			Text: fmt.Sprintf("Cyclecast reminder: your predicted period starts in %d day(s) on %s (confidence %.0f%%).",
				periodReminderDays,
				prediction.NextPeriodStart.Format("Jan 2"),
				prediction.Confidence*100,
			),
		})
	}

	if fertilityReminder && countdown.DaysUntilFertile == 0 {
		reminders = append(reminders, Reminder{
			Key: "fertility:" + dayKey,
			Text: fmt.Sprintf("Cyclecast reminder: your fertile window starts today (%s), ovulation expected %s.",
				prediction.FertileWindowStart.Format("Jan 2"),
				prediction.OvulationDate.Format("Jan 2"),
			),
		})
	}
	return reminders
}

func (service *ReminderService) alreadySent(key string, today time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	sentOn, ok := service.sentDailyNotifications[key]
	return ok && sameCalendarDay(sentOn, today)
}

// markSent is called only after Telegram accepted the message.
func (service *ReminderService) markSent(key string, today time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if len(service.sentDailyNotifications) >= 500 {
		service.sentDailyNotifications = make(map[string]time.Time)
	}
	service.sentDailyNotifications[key] = today
}

func (service *ReminderService) sendTelegram(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", service.config.ChatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(service.config.APIBaseURL, "/"), service.config.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := service.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
