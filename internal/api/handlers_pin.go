package api

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/services"
)

func (handler *Handler) UnlockPin(c *fiber.Ctx) error {
	input := pinInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	pinHash, err := handler.pinService.VerifyPin(c.IP(), input.Pin)
	switch {
	case errors.Is(err, services.ErrPinLockedOut):
		remaining := handler.pinService.RemainingLockout(c.IP())
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
		return localizedAPIError(c, fiber.StatusTooManyRequests, "too many pin attempts", "error.pin_locked", int(math.Ceil(remaining.Minutes())))
	case errors.Is(err, services.ErrPinNotConfigured):
		return apiError(c, fiber.StatusConflict, "pin lock is not enabled")
	case errors.Is(err, services.ErrPinMismatch):
		c.Set(pinAttemptsRemainingHeader, strconv.Itoa(handler.pinService.AttemptsRemaining(c.IP())))
		return localizedAPIError(c, fiber.StatusUnauthorized, "incorrect pin", "error.pin_mismatch")
	case err != nil:
		log.Error().Err(err).Str("component", "api").Msg("verify pin")
		return apiError(c, fiber.StatusInternalServerError, "failed to verify pin")
	}

	return handler.respondWithSession(c, fiber.StatusOK, pinHash)
}

func (handler *Handler) SetPin(c *fiber.Ctx) error {
	input := pinInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	pinHash, err := handler.pinService.SetPin(input.Pin)
	if errors.Is(err, services.ErrPinFormatInvalid) {
		return localizedAPIError(c, fiber.StatusBadRequest, "invalid pin", "error.pin_invalid")
	}
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("set pin")
		return apiError(c, fiber.StatusInternalServerError, "failed to set pin")
	}

	return handler.respondWithSession(c, fiber.StatusOK, pinHash)
}

func (handler *Handler) DisablePin(c *fiber.Ctx) error {
	if err := handler.pinService.DisablePin(); err != nil {
		log.Error().Err(err).Str("component", "api").Msg("disable pin")
		return apiError(c, fiber.StatusInternalServerError, "failed to disable pin")
	}
	handler.clearSessionCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) respondWithSession(c *fiber.Ctx, status int, pinHash string) error {
	now := handler.now()
	token, err := services.BuildSessionToken(handler.secretKey, pinHash, handler.sessionTTL, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	expiresAt := now.Add(handler.sessionTTL)
	handler.setSessionCookie(c, token, expiresAt)
	return c.Status(status).JSON(fiber.Map{
		"ok":         true,
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
