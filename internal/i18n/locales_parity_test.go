package i18n

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
	"testing/fstest"
)

func TestLocaleKeysParity(t *testing.T) {
	en := mustLoadLocaleMessages(t, "en")
	ru := mustLoadLocaleMessages(t, "ru")

	missingInRU := missingKeys(en, ru)
	missingInEN := missingKeys(ru, en)

	if len(missingInRU) == 0 && len(missingInEN) == 0 {
		return
	}

	if len(missingInRU) > 0 {
		t.Errorf("keys missing in ru locale: %s", strings.Join(missingInRU, ", "))
	}
	if len(missingInEN) > 0 {
		t.Errorf("keys missing in en locale: %s", strings.Join(missingInEN, ", "))
	}
}

func mustLoadLocaleMessages(t *testing.T, language string) map[string]string {
	t.Helper()

	content, err := embeddedLocales.ReadFile("locales/" + language + ".json")
	if err != nil {
		t.Fatalf("read locale %q: %v", language, err)
	}

	messages := map[string]string{}
	if err := json.Unmarshal(content, &messages); err != nil {
		t.Fatalf("parse locale %q: %v", language, err)
	}
	if len(messages) == 0 {
		t.Fatalf("locale %q is empty", language)
	}

	return messages
}

func missingKeys(source map[string]string, target map[string]string) []string {
	missing := make([]string, 0)
	for key := range source {
		if _, ok := target[key]; !ok {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)
	return missing
}

func TestEmbeddedManagerTranslates(t *testing.T) {
	manager, err := NewEmbeddedManager("ru")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}

	if got := manager.DefaultLanguage(); got != LangRU {
		t.Fatalf("expected default language ru, got %q", got)
	}
	if got := manager.Translate("en", "fertility.ovulation"); got != "Ovulation" {
		t.Fatalf("expected english label, got %q", got)
	}
	if got := manager.Translate("de", "fertility.ovulation"); got != "Овуляция" {
		t.Fatalf("expected fallback to default language, got %q", got)
	}
	if got := manager.Translate("en", "missing.key"); got != "missing.key" {
		t.Fatalf("expected missing key echoed back, got %q", got)
	}
}

func TestDetectFromAcceptLanguage(t *testing.T) {
	manager, err := NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}

	tests := []struct {
		header string
		want   string
	}{
		{header: "ru-RU,ru;q=0.9,en;q=0.8", want: LangRU},
		{header: "de-DE, en_GB;q=0.7", want: LangEN},
		{header: "fr", want: LangEN},
		{header: "", want: LangEN},
	}
	for _, testCase := range tests {
		if got := manager.DetectFromAcceptLanguage(testCase.header); got != testCase.want {
			t.Fatalf("header %q: expected %q, got %q", testCase.header, testCase.want, got)
		}
	}
}

func TestNewManagerRequiresBaseLocales(t *testing.T) {
	locales := fstest.MapFS{
		"en.json": &fstest.MapFile{Data: []byte(`{"a":"b"}`)},
	}
	if _, err := NewManager("en", locales); err == nil {
		t.Fatal("expected missing ru locale to fail")
	}

	locales["ru.json"] = &fstest.MapFile{Data: []byte(`{}`)}
	if _, err := NewManager("en", locales); err == nil {
		t.Fatal("expected empty locale to fail")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	manager, err := NewEmbeddedManager("en")
	if err != nil {
		t.Fatalf("NewEmbeddedManager() unexpected error: %v", err)
	}

	tests := map[string]string{
		"ru":    LangRU,
		"RU_ru": LangRU,
		"en-GB": LangEN,
		"de":    LangEN,
		"":      LangEN,
		"!!":    LangEN,
	}
	for raw, want := range tests {
		if got := manager.NormalizeLanguage(raw); got != want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", raw, got, want)
		}
	}
}
