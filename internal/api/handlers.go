package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/cyclecast/internal/i18n"
	"github.com/terraincognita07/cyclecast/internal/services"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("secret key is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if location == nil {
		location = time.UTC
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		sessionTTL:   services.DefaultSessionTTL,
		i18n:         i18nManager,
		now:          time.Now,
	}
	return handler.withDependencies(database), nil
}

// WithSessionTTL overrides how long an unlocked session stays valid.
func (handler *Handler) WithSessionTTL(ttl time.Duration) *Handler {
	if ttl > 0 {
		handler.sessionTTL = ttl
	}
	return handler
}

func (handler *Handler) HistoryService() *services.HistoryService {
	return handler.historyService
}
