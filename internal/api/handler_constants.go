package api

const (
	sessionCookieName  = "cyclecast_session"
	languageCookieName = "cyclecast_lang"

	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"

	exportFilenamePrefix = "cyclecast-export"

	pinAttemptsRemainingHeader = "X-Pin-Attempts-Remaining"
)
