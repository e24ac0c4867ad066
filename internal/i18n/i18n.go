package i18n

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var embeddedLocales embed.FS

const (
	LangRU = "ru"
	LangEN = "en"
)

var requiredLocales = []string{LangEN, LangRU}

// Manager serves label catalogs. Every catalog already contains the default
// language's keys, so lookups never need a second pass.
type Manager struct {
	defaultLanguage string
	supported       []string
	matcher         language.Matcher
	catalogs        map[string]map[string]string
}

// NewEmbeddedManager loads the locales compiled into the binary.
func NewEmbeddedManager(defaultLanguage string) (*Manager, error) {
	locales, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, fmt.Errorf("open embedded locales: %w", err)
	}
	return NewManager(defaultLanguage, locales)
}

// NewManager reads one <lang>.json file per language from locales.
func NewManager(defaultLanguage string, locales fs.FS) (*Manager, error) {
	raw, err := readCatalogs(locales)
	if err != nil {
		return nil, err
	}
	for _, required := range requiredLocales {
		if _, ok := raw[required]; !ok {
			return nil, fmt.Errorf("required locale %q missing", required)
		}
	}

	supported := slices.Sorted(maps.Keys(raw))
	tags := make([]language.Tag, 0, len(supported))
	for _, lang := range supported {
		tags = append(tags, language.Make(lang))
	}

	manager := &Manager{
		defaultLanguage: LangEN,
		supported:       supported,
		matcher:         language.NewMatcher(tags),
	}
	manager.defaultLanguage = manager.NormalizeLanguage(defaultLanguage)

	manager.catalogs = make(map[string]map[string]string, len(raw))
	fallback := raw[manager.defaultLanguage]
	for lang, messages := range raw {
		merged := maps.Clone(fallback)
		maps.Copy(merged, messages)
		manager.catalogs[lang] = merged
	}
	return manager, nil
}

func readCatalogs(locales fs.FS) (map[string]map[string]string, error) {
	names, err := fs.Glob(locales, "*.json")
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	if len(names) == 0 {
		return nil, errors.New("no locales found")
	}

	catalogs := make(map[string]map[string]string, len(names))
	for _, name := range names {
		lang := strings.ToLower(strings.TrimSuffix(name, path.Ext(name)))
		content, err := fs.ReadFile(locales, name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", lang, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(content, &messages); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", lang, err)
		}
		if len(messages) == 0 {
			return nil, fmt.Errorf("locale %s is empty", lang)
		}
		catalogs[lang] = messages
	}
	return catalogs, nil
}

func (manager *Manager) DefaultLanguage() string {
	return manager.defaultLanguage
}

// NormalizeLanguage reduces tags like "ru_RU" or "en-GB" to a supported base
// language, or the default when none matches.
func (manager *Manager) NormalizeLanguage(raw string) string {
	base := baseLanguage(raw)
	if slices.Contains(manager.supported, base) {
		return base
	}
	return manager.defaultLanguage
}

func (manager *Manager) DetectFromAcceptLanguage(header string) string {
	tags, _, err := language.ParseAcceptLanguage(strings.ReplaceAll(header, "_", "-"))
	if err != nil || len(tags) == 0 {
		return manager.defaultLanguage
	}

	_, index, confidence := manager.matcher.Match(tags...)
	if confidence == language.No {
		return manager.defaultLanguage
	}
	return manager.supported[index]
}

// Messages returns the catalog for lang. Callers must not modify it.
func (manager *Manager) Messages(lang string) map[string]string {
	return manager.catalogs[manager.NormalizeLanguage(lang)]
}

func (manager *Manager) Translate(lang string, key string) string {
	if value := manager.Messages(lang)[key]; strings.TrimSpace(value) != "" {
		return value
	}
	return key
}

func baseLanguage(raw string) string {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(raw), "_", "-"))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
