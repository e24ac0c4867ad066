package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	PinLength          = 4
	MaxPinAttempts     = 3
	PinLockoutDuration = 5 * time.Minute
)

var (
	ErrPinFormatInvalid = errors.New("pin must be 4 digits")
	ErrPinMismatch      = errors.New("pin mismatch")
	ErrPinLockedOut     = errors.New("pin locked out")
	ErrPinNotConfigured = errors.New("pin lock not configured")
)

type PinService struct {
	preferences PreferencesStore
	limiter     *AttemptLimiter
	now         func() time.Time
}

func NewPinService(preferences PreferencesStore, limiter *AttemptLimiter) *PinService {
	if limiter == nil {
		limiter = NewAttemptLimiter()
	}
	return &PinService{
		preferences: preferences,
		limiter:     limiter,
		now:         time.Now,
	}
}

func NormalizePin(raw string) (string, error) {
	pin := strings.TrimSpace(raw)
	if len(pin) != PinLength {
		return "", ErrPinFormatInvalid
	}
	for _, char := range pin {
		if char < '0' || char > '9' {
			return "", ErrPinFormatInvalid
		}
	}
	return pin, nil
}

func HashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

// SetPin stores a salted one-way hash of the PIN and enables the lock. It
// returns the stored hash so callers can mint a fresh session.
func (service *PinService) SetPin(raw string) (string, error) {
	pin, err := NormalizePin(raw)
	if err != nil {
		return "", err
	}

	hash, err := HashPin(pin)
	if err != nil {
		return "", err
	}

	preferences, err := service.preferences.LoadPreferences()
	if err != nil {
		return "", fmt.Errorf("load preferences: %w", err)
	}
	preferences.PinHash = hash
	preferences.PinLockEnabled = true
	if err := service.preferences.SavePreferences(&preferences); err != nil {
		return "", fmt.Errorf("save preferences: %w", err)
	}

	log.Info().Str("component", "pin").Msg("pin lock enabled")
	return hash, nil
}

// VerifyPin checks raw against the stored hash. Failures are counted per
// key; the third failure inside the lockout window locks the key out.
func (service *PinService) VerifyPin(key string, raw string) (string, error) {
	now := service.now()
	if service.limiter.LockedFor(key, now) > 0 {
		return "", ErrPinLockedOut
	}

	preferences, err := service.preferences.LoadPreferences()
	if err != nil {
		return "", fmt.Errorf("load preferences: %w", err)
	}
	if !preferences.PinLockEnabled || strings.TrimSpace(preferences.PinHash) == "" {
		return "", ErrPinNotConfigured
	}

	pin, formatErr := NormalizePin(raw)
	if formatErr != nil || bcrypt.CompareHashAndPassword([]byte(preferences.PinHash), []byte(pin)) != nil {
		if service.limiter.AddFailure(key, now, MaxPinAttempts, PinLockoutDuration, PinLockoutDuration) {
			log.Warn().Str("component", "pin").Str("key", key).Dur("lockout", PinLockoutDuration).Msg("pin locked out after repeated failures")
		}
		return "", ErrPinMismatch
	}

	service.limiter.Reset(key)
	return preferences.PinHash, nil
}

func (service *PinService) RemainingLockout(key string) time.Duration {
	return service.limiter.LockedFor(key, service.now())
}

// AttemptsRemaining is how many more wrong PINs key may enter before the lockout.
func (service *PinService) AttemptsRemaining(key string) int {
	now := service.now()
	if service.limiter.LockedFor(key, now) > 0 {
		return 0
	}
	return max(MaxPinAttempts-service.limiter.RecentFailures(key, now, PinLockoutDuration), 0)
}

func (service *PinService) DisablePin() error {
	preferences, err := service.preferences.LoadPreferences()
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	preferences.PinHash = ""
	preferences.PinLockEnabled = false
	if err := service.preferences.SavePreferences(&preferences); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	log.Info().Str("component", "pin").Msg("pin lock disabled")
	return nil
}

// PinLockState reports whether the lock is on and the current hash, for
// session validation.
func (service *PinService) PinLockState() (bool, string, error) {
	preferences, err := service.preferences.LoadPreferences()
	if err != nil {
		return false, "", fmt.Errorf("load preferences: %w", err)
	}
	enabled := preferences.PinLockEnabled && strings.TrimSpace(preferences.PinHash) != ""
	return enabled, preferences.PinHash, nil
}
