package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/terraincognita07/cyclecast/internal/services"
)

// PinLockRequired lets requests through while the PIN lock is off. Once it
// is on, a session token minted for the current PIN hash is required.
func (handler *Handler) PinLockRequired(c *fiber.Ctx) error {
	enabled, pinHash, err := handler.pinService.PinLockState()
	if err != nil {
		log.Error().Err(err).Str("component", "api").Msg("load pin lock state")
		return apiError(c, fiber.StatusInternalServerError, "failed to load preferences")
	}
	if !enabled {
		return c.Next()
	}

	claims, err := services.ParseSessionToken(handler.secretKey, sessionTokenFromRequest(c), handler.now())
	if err != nil || !services.IsPinStateFingerprintMatch(claims.PinState, pinHash) {
		return localizedAPIError(c, fiber.StatusUnauthorized, "unauthorized", "error.unauthorized")
	}
	return c.Next()
}

func sessionTokenFromRequest(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) > len("Bearer ") && strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return c.Cookies(sessionCookieName)
}
