package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const languageCookieMaxAge = 365 * 24 * time.Hour

// LanguageMiddleware picks the response language. An explicit ?lang= wins and
// is remembered in a cookie; otherwise the cookie, then Accept-Language.
func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	var language string
	switch {
	case c.Query("lang") != "":
		language = handler.i18n.NormalizeLanguage(c.Query("lang"))
		if c.Cookies(languageCookieName) != language {
			c.Cookie(&fiber.Cookie{
				Name:     languageCookieName,
				Value:    language,
				Path:     "/",
				Secure:   handler.cookieSecure,
				SameSite: fiber.CookieSameSiteLaxMode,
				MaxAge:   int(languageCookieMaxAge.Seconds()),
			})
		}
	case c.Cookies(languageCookieName) != "":
		language = handler.i18n.NormalizeLanguage(c.Cookies(languageCookieName))
	default:
		language = handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
	}

	c.Set(fiber.HeaderContentLanguage, language)
	c.Locals(contextLanguageKey, language)
	c.Locals(contextMessagesKey, handler.i18n.Messages(language))
	return c.Next()
}
